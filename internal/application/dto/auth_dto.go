package dto

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token emitido más los datos básicos del usuario.
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Tenant   string `json:"tenant,omitempty"`
}

// CreateUserRequest alta de usuario (solo administradores).
// LinkedCompany no vacío crea un usuario de empresa cliente (scope restringido).
type CreateUserRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	FullName      string `json:"full_name"`
	Department    string `json:"department"`
	LinkedCompany string `json:"linked_company"`
}

// UserResponse usuario sin campos sensibles.
type UserResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	FullName      string `json:"full_name"`
	Department    string `json:"department"`
	LinkedCompany string `json:"linked_company,omitempty"`
}
