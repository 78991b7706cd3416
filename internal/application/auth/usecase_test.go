package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdeflow/trazo-api/internal/application/auth"
	"github.com/verdeflow/trazo-api/internal/application/dto"
	"github.com/verdeflow/trazo-api/internal/domain"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
	"github.com/verdeflow/trazo-api/internal/domain/repository"
	pkgjwt "github.com/verdeflow/trazo-api/pkg/jwt"
)

type fakeUserRepo struct {
	users []*entity.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(user *entity.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.CompanyID == companyID {
			return u, nil
		}
	}
	return nil, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

var _ repository.CompanyRepository = (*fakeCompanyRepo)(nil)

func (r *fakeCompanyRepo) Create(company *entity.Company) error {
	r.companies[company.ID] = company
	return nil
}

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.companies[id], nil
}

func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	var list []*entity.Company
	for _, c := range r.companies {
		list = append(list, c)
	}
	return list, nil
}

func newAuthFixture() (*auth.AuthUseCase, *fakeUserRepo) {
	users := &fakeUserRepo{}
	companies := &fakeCompanyRepo{companies: map[string]*entity.Company{
		"empresa-1": {ID: "empresa-1", Name: "Finca Verde", CreatedAt: time.Now()},
	}}
	uc := auth.NewAuthUseCase(users, companies, auth.JWTConfig{
		Secret:     "secret-de-test",
		ExpMinutes: 60,
		Issuer:     "trazo-api-test",
	})
	return uc, users
}

func TestRegisterUser_HasheaYAsignaRolPorDefecto(t *testing.T) {
	uc, users := newAuthFixture()

	out, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: "empresa-1",
		Email:     "ana@finca.co",
		Password:  "secreta-123",
		Name:      "Ana",
	})
	require.NoError(t, err)

	assert.Equal(t, "cultivador", out.Role, "sin rol explícito debe asignarse cultivador")
	require.Len(t, users.users, 1)
	assert.NotEqual(t, "secreta-123", users.users[0].PasswordHash,
		"la contraseña nunca se persiste en claro")
}

func TestRegisterUser_EmailDuplicadoEnLaEmpresa(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: "empresa-1", Email: "ana@finca.co", Password: "secreta-123",
	})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{
		CompanyID: "empresa-1", Email: "ana@finca.co", Password: "otra-clave-99",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_EmpresaInexistente(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: "empresa-fantasma", Email: "ana@finca.co", Password: "secreta-123",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_TokenConClaimsCorrectos(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: "empresa-1", Email: "ana@finca.co", Password: "secreta-123", Role: "admin",
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@finca.co", Password: "secreta-123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, companyID, role, err := pkgjwt.Parse("secret-de-test", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "empresa-1", companyID)
	assert.Equal(t, "admin", role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		CompanyID: "empresa-1", Email: "ana@finca.co", Password: "secreta-123",
	})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@finca.co", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@finca.co", Password: "loquesea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
