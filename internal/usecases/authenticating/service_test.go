package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-planner-api/internal/config"
	"github.com/vfg2006/budget-planner-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{Secret: "segredo-de-teste"},
	}
}

func hashedUser(t *testing.T, password string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	return &domain.User{
		ID:           1,
		Name:         "Operador Teste",
		Email:        "operador@teste.com",
		PasswordHash: string(hash),
		Active:       true,
		RoleID:       2,
	}
}

func TestService_LoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testConfig())

	t.Run("Email e senha são obrigatórios", func(t *testing.T) {
		_, err := service.LoginUser("", "")
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})

	t.Run("Operador não encontrado", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByEmail("fantasma@teste.com").Return(nil, nil)

		_, err := service.LoginUser("fantasma@teste.com", "senha")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Conta desativada", func(t *testing.T) {
		user := hashedUser(t, "senha-correta")
		user.Active = false

		mockUserRepo.EXPECT().GetUserByEmail(user.Email).Return(user, nil)

		_, err := service.LoginUser(user.Email, "senha-correta")
		assert.ErrorIs(t, err, ErrUserDisabled)
	})

	t.Run("Senha incorreta", func(t *testing.T) {
		user := hashedUser(t, "senha-correta")

		mockUserRepo.EXPECT().GetUserByEmail(user.Email).Return(user, nil)

		_, err := service.LoginUser(user.Email, "senha-errada")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Email é normalizado antes da consulta", func(t *testing.T) {
		user := hashedUser(t, "senha-correta")

		mockUserRepo.EXPECT().GetUserByEmail("operador@teste.com").Return(user, nil)

		token, err := service.LoginUser("  Operador@Teste.com ", "senha-correta")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Token emitido valida com as claims do operador", func(t *testing.T) {
		user := hashedUser(t, "senha-correta")

		mockUserRepo.EXPECT().GetUserByEmail(user.Email).Return(user, nil)

		token, err := service.LoginUser(user.Email, "senha-correta")
		assert.NoError(t, err)

		claims, err := service.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Email, claims.UserEmail)
		assert.Equal(t, user.RoleID, claims.UserRoleID)
	})
}

func TestService_ValidateToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testConfig())

	t.Run("Token malformado", func(t *testing.T) {
		_, err := service.ValidateToken("nao-e-um-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token assinado com outro segredo", func(t *testing.T) {
		otherService := NewService(mockUserRepo, &config.Config{
			Auth: config.Auth{Secret: "outro-segredo"},
		})

		user := hashedUser(t, "senha-correta")
		mockUserRepo.EXPECT().GetUserByEmail(user.Email).Return(user, nil)

		token, err := otherService.LoginUser(user.Email, "senha-correta")
		assert.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_CreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testConfig())

	t.Run("Dados obrigatórios ausentes", func(t *testing.T) {
		_, err := service.CreateUser(&domain.User{Email: "operador@teste.com"}, "")
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})

	t.Run("Email já cadastrado", func(t *testing.T) {
		existing := hashedUser(t, "senha")

		mockUserRepo.EXPECT().GetUserByEmail(existing.Email).Return(existing, nil)

		_, err := service.CreateUser(&domain.User{
			Name:  "Outro Operador",
			Email: existing.Email,
		}, "senha")
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Senha vira hash e papel padrão é aplicado", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByEmail("novo@teste.com").Return(nil, nil)
		mockUserRepo.EXPECT().CreateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) (*domain.User, error) {
				assert.NotEqual(t, "senha-em-claro", user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("senha-em-claro")))
				assert.Equal(t, 2, user.RoleID)
				assert.True(t, user.Active)
				user.ID = 7
				return user, nil
			})

		user, err := service.CreateUser(&domain.User{
			Name:  "Novo Operador",
			Email: "Novo@Teste.com",
		}, "senha-em-claro")
		assert.NoError(t, err)
		assert.Equal(t, 7, user.ID)
		assert.Equal(t, "novo@teste.com", user.Email)
	})
}

func TestService_ListUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testConfig())

	mockUserRepo.EXPECT().ListUsers().Return([]*domain.User{
		{ID: 1, PasswordHash: "hash-um"},
		{ID: 2, PasswordHash: "hash-dois"},
	}, nil)

	users, err := service.ListUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	for _, user := range users {
		assert.Empty(t, user.PasswordHash)
	}
}
