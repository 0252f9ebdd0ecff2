package auth_test

import (
	"testing"

	"github.com/jhoicas/trace-warehouse/internal/application/auth"
	"github.com/jhoicas/trace-warehouse/internal/application/dto"
	"github.com/jhoicas/trace-warehouse/internal/domain"
	"github.com/jhoicas/trace-warehouse/internal/domain/entity"
	pkgjwt "github.com/jhoicas/trace-warehouse/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUserRepo fake en memoria de repository.UserRepository.
type memUserRepo struct {
	byUsername map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byUsername: make(map[string]*entity.User)}
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	return r.byUsername[username], nil
}

func (r *memUserRepo) Create(user *entity.User) error {
	r.byUsername[user.Username] = user
	return nil
}

func (r *memUserRepo) List() ([]*entity.User, error) {
	var list []*entity.User
	for _, u := range r.byUsername {
		list = append(list, u)
	}
	return list, nil
}

var testJWTCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "test"}

func TestCreateUserYLogin(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUserRepo(), testJWTCfg)

	created, err := uc.CreateUser(dto.CreateUserRequest{
		Username:      "acme",
		Password:      "acme123",
		FullName:      "ACME Account",
		LinkedCompany: "ACME Corp",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleWorker, created.Role, "sin rol explícito queda worker")
	assert.NotEmpty(t, created.ID)

	out, err := uc.Login(dto.LoginRequest{Username: "acme", Password: "acme123"})
	require.NoError(t, err)
	assert.Equal(t, "ACME Corp", out.Tenant)
	assert.NotEmpty(t, out.Token)

	// El token emitido lleva rol y tenant en los claims.
	userID, role, tenant, err := pkgjwt.Parse(testJWTCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, entity.RoleWorker, role)
	assert.Equal(t, "ACME Corp", tenant)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUserRepo(), testJWTCfg)
	_, err := uc.CreateUser(dto.CreateUserRequest{Username: "admin", Password: "admin123", Role: entity.RoleAdmin})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "admin", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "password incorrecta")

	_, err = uc.Login(dto.LoginRequest{Username: "nadie", Password: "admin123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuario inexistente")

	_, err = uc.Login(dto.LoginRequest{Username: "admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "password vacía")
}

func TestCreateUser_Validaciones(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUserRepo(), testJWTCfg)

	_, err := uc.CreateUser(dto.CreateUserRequest{Username: "x", Password: "pw", Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rol desconocido")

	_, err = uc.CreateUser(dto.CreateUserRequest{Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "username requerido")

	_, err = uc.CreateUser(dto.CreateUserRequest{Username: "dup", Password: "pw"})
	require.NoError(t, err)
	_, err = uc.CreateUser(dto.CreateUserRequest{Username: "dup", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestListUsers_SinCamposSensibles(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUserRepo(), testJWTCfg)
	_, err := uc.CreateUser(dto.CreateUserRequest{Username: "worker", Password: "worker123"})
	require.NoError(t, err)

	users, err := uc.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "worker", users[0].Username)
}
