package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creator-finance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/creator-finance-api/internal/config"
	"github.com/vfg2006/creator-finance-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	userRepo := mocks.NewMockUserRepository(ctrl)

	service := &Service{
		userRepo: userRepo,
		cfg:      &config.Config{SecretKey: "test-secret"},
	}

	return service, userRepo
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginUser(t *testing.T) {
	t.Run("Credenciais válidas geram token com claims do usuário", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByEmail("demo@creatorfinance.app").Return(&domain.User{
			ID:           7,
			Name:         "Demo",
			Email:        "demo@creatorfinance.app",
			Active:       true,
			RoleID:       2,
			PasswordHash: hashPassword(t, "demo1234"),
		}, nil)

		token, err := service.LoginUser("demo@creatorfinance.app", "demo1234")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.Equal(t, "Demo", claims.UserName)
		assert.Equal(t, 2, claims.UserRoleID)
	})

	t.Run("Email é normalizado antes da consulta", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByEmail("demo@creatorfinance.app").Return(&domain.User{
			ID:           7,
			Active:       true,
			PasswordHash: hashPassword(t, "demo1234"),
		}, nil)

		_, err := service.LoginUser("  Demo@CreatorFinance.App ", "demo1234")
		assert.NoError(t, err)
	})

	t.Run("Usuário inexistente", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByEmail(gomock.Any()).Return(nil, nil)

		token, err := service.LoginUser("nobody@creatorfinance.app", "x")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Conta desativada", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByEmail(gomock.Any()).Return(&domain.User{
			ID:           7,
			Active:       false,
			PasswordHash: hashPassword(t, "demo1234"),
		}, nil)

		_, err := service.LoginUser("demo@creatorfinance.app", "demo1234")
		assert.ErrorIs(t, err, ErrUserDisabled)
	})

	t.Run("Senha incorreta", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByEmail(gomock.Any()).Return(&domain.User{
			ID:           7,
			Active:       true,
			PasswordHash: hashPassword(t, "demo1234"),
		}, nil)

		_, err := service.LoginUser("demo@creatorfinance.app", "errada")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken_SegredoErrado(t *testing.T) {
	service, userRepo := newTestService(t)

	userRepo.EXPECT().GetUserByEmail(gomock.Any()).Return(&domain.User{
		ID:           7,
		Active:       true,
		PasswordHash: hashPassword(t, "demo1234"),
	}, nil)

	token, err := service.LoginUser("demo@creatorfinance.app", "demo1234")
	require.NoError(t, err)

	other := &Service{cfg: &config.Config{SecretKey: "outro-segredo"}}

	claims, err := other.ValidateToken(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestCreateUser(t *testing.T) {
	t.Run("Dados obrigatórios ausentes", func(t *testing.T) {
		service, _ := newTestService(t)

		user, err := service.CreateUser(&domain.User{Email: "a@b.c"})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})

	t.Run("Email já cadastrado", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByEmail("a@b.c").Return(&domain.User{ID: 1}, nil)

		user, err := service.CreateUser(&domain.User{
			Name:         "A",
			Lastname:     "B",
			Email:        "a@b.c",
			PasswordHash: "senha",
		})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Novo usuário nasce inativo com papel de criador e senha com hash", func(t *testing.T) {
		service, userRepo := newTestService(t)

		userRepo.EXPECT().GetUserByEmail("a@b.c").Return(nil, nil)
		userRepo.EXPECT().
			CreateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) (*domain.User, error) {
				assert.False(t, user.Active)
				assert.Equal(t, 2, user.RoleID)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("senha")))
				user.ID = 10
				return user, nil
			})

		user, err := service.CreateUser(&domain.User{
			Name:         "A",
			Lastname:     "B",
			Email:        "a@b.c",
			PasswordHash: "senha",
		})

		require.NoError(t, err)
		assert.Equal(t, 10, user.ID)
	})
}

func TestGenerateStrongPassword_SemPrivilegio(t *testing.T) {
	service, userRepo := newTestService(t)

	userRepo.EXPECT().GetUserByID(5).Return(&domain.User{ID: 5, RoleID: 2}, nil)

	password, err := service.GenerateStrongPassword(5, 7)

	assert.Empty(t, password)
	assert.ErrorIs(t, err, ErrNoAdminPrivileges)
}

func TestValidatePasswordStrength(t *testing.T) {
	service, _ := newTestService(t)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Senha forte passa", "Abcdef1!", false},
		{"Curta demais", "Ab1!", true},
		{"Sem maiúscula", "abcdef1!", true},
		{"Sem minúscula", "ABCDEF1!", true},
		{"Sem número", "Abcdefg!", true},
		{"Sem caractere especial", "Abcdefg1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
