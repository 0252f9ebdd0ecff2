package entity

// Roles de usuario.
const (
	RoleAdmin  = "admin"
	RoleWorker = "worker"
)

// User identidad de un operador de bodega o representante de empresa cliente.
// LinkedCompany no vacío ata al usuario a un tenant: todas sus operaciones
// quedan restringidas a ese scope.
type User struct {
	ID            string
	Username      string
	PasswordHash  string
	Role          string // admin | worker
	FullName      string
	Department    string
	LinkedCompany string
}
