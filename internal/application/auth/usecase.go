package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/pkg/jwt"
)

// RoleAdmin is the only role issued: the CRM has a single operator account.
const RoleAdmin = "admin"

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credentials is the configured operator account.
type Credentials struct {
	Username     string
	PasswordHash string // bcrypt
}

// AuthUseCase checks the static credential and issues tokens.
type AuthUseCase struct {
	creds  Credentials
	jwtCfg JWTConfig
}

// NewAuthUseCase builds the use case.
func NewAuthUseCase(creds Credentials, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{creds: creds, jwtCfg: jwtCfg}
}

// HashPassword returns a bcrypt hash suitable for AUTH_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(hash), nil
}

// Login verifies username and password and returns a signed token.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(uc.creds.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(uc.creds.PasswordHash), []byte(in.Password))
	if !userOK || passErr != nil {
		return nil, fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, username, RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		Username:  username,
	}, nil
}
