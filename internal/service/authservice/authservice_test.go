package authservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/mkorolev/cryptomart/internal/domain"
	"github.com/mkorolev/cryptomart/pkg/auth"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *MockBalanceCreator, *auth.MockHashServiceInterface, *auth.MockJWTServiceInterface) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	walletService := NewMockBalanceCreator(ctrl)
	hashService := auth.NewMockHashServiceInterface(ctrl)
	jwtService := auth.NewMockJWTServiceInterface(ctrl)
	service := New(repo, walletService, hashService, jwtService)
	defer ctrl.Finish()
	return service, repo, walletService, hashService, jwtService
}

func TestRegister(t *testing.T) {
	service, userRepo, walletService, passwordHasher, _ := NewMock(t)

	tests := []struct {
		name          string
		login         string
		password      string
		prepareMock   func()
		expectedError error
	}{
		{
			name:     "Successful registration",
			login:    "newuser",
			password: "password",
			prepareMock: func() {
				userRepo.EXPECT().FindByLogin(gomock.Any(), "newuser").Return(nil, nil)
				passwordHasher.EXPECT().HashPassword("password").Return("hashedPassword", nil)
				userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.User{
					ID:    1,
					Login: "newuser",
				}, nil)
				walletService.EXPECT().CreateBalance(gomock.Any(), 1, domain.CurrencyXMR).Return(&domain.WalletBalance{
					UserID:   1,
					Currency: domain.CurrencyXMR,
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "Username already taken",
			login:    "existing",
			password: "password",
			prepareMock: func() {
				userRepo.EXPECT().FindByLogin(gomock.Any(), "existing").Return(&domain.User{
					ID:    2,
					Login: "existing",
				}, nil)
			},
			expectedError: errors.New("username already taken"),
		},
		{
			name:     "Error finding user",
			login:    "newuser",
			password: "password",
			prepareMock: func() {
				userRepo.EXPECT().FindByLogin(gomock.Any(), "newuser").Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
		{
			name:     "Error hashing password",
			login:    "newuser",
			password: "password",
			prepareMock: func() {
				userRepo.EXPECT().FindByLogin(gomock.Any(), "newuser").Return(nil, nil)
				passwordHasher.EXPECT().HashPassword("password").Return("", errors.New("hash error"))
			},
			expectedError: errors.New("hash error"),
		},
		{
			name:     "Error creating user",
			login:    "newuser",
			password: "password",
			prepareMock: func() {
				userRepo.EXPECT().FindByLogin(gomock.Any(), "newuser").Return(nil, nil)
				passwordHasher.EXPECT().HashPassword("password").Return("hashedPassword", nil)
				userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
		{
			name:     "Error opening wallet balance",
			login:    "newuser",
			password: "password",
			prepareMock: func() {
				userRepo.EXPECT().FindByLogin(gomock.Any(), "newuser").Return(nil, nil)
				passwordHasher.EXPECT().HashPassword("password").Return("hashedPassword", nil)
				userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&domain.User{
					ID:    1,
					Login: "newuser",
				}, nil)
				walletService.EXPECT().CreateBalance(gomock.Any(), 1, domain.CurrencyXMR).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			user, err := service.Register(context.Background(), tt.login, tt.password)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.login, user.Login)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	service, userRepo, _, passwordHasher, _ := NewMock(t)

	tests := []struct {
		name          string
		login         string
		password      string
		prepareMock   func()
		expectedError error
	}{
		{
			name:     "Successful authentication",
			login:    "user",
			password: "password",
			prepareMock: func() {
				userRepo.EXPECT().FindByLogin(gomock.Any(), "user").Return(&domain.User{
					ID:           1,
					Login:        "user",
					PasswordHash: "hashedPassword",
				}, nil)
				passwordHasher.EXPECT().ComparePassword("hashedPassword", "password").Return(true)
			},
			expectedError: nil,
		},
		{
			name:     "Unknown user",
			login:    "ghost",
			password: "password",
			prepareMock: func() {
				userRepo.EXPECT().FindByLogin(gomock.Any(), "ghost").Return(nil, nil)
			},
			expectedError: errors.New("invalid credentials"),
		},
		{
			name:     "Wrong password",
			login:    "user",
			password: "wrong",
			prepareMock: func() {
				userRepo.EXPECT().FindByLogin(gomock.Any(), "user").Return(&domain.User{
					ID:           1,
					Login:        "user",
					PasswordHash: "hashedPassword",
				}, nil)
				passwordHasher.EXPECT().ComparePassword("hashedPassword", "wrong").Return(false)
			},
			expectedError: errors.New("invalid credentials"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			user, err := service.Authenticate(context.Background(), tt.login, tt.password)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.login, user.Login)
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	service, _, _, _, jwtService := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedToken string
		expectedError error
	}{
		{
			name: "Token generated",
			prepareMock: func() {
				jwtService.EXPECT().GenerateJWT(1, gomock.Any()).Return("token", nil)
			},
			expectedToken: "token",
		},
		{
			name: "Signing error",
			prepareMock: func() {
				jwtService.EXPECT().GenerateJWT(1, gomock.Any()).Return("", errors.New("sign error"))
			},
			expectedError: errors.New("sign error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			token, err := service.GenerateToken(1)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedToken, token)
			}
		})
	}
}
