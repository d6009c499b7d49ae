package service

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"leadstyle/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles supervisor and respondent authentication
type AuthService struct {
	supervisorPassword string
	jwtSecret          []byte
	sessionTTL         time.Duration
	now                func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(supervisorPassword, jwtSecret string, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = time.Hour
	}
	return &AuthService{
		supervisorPassword: supervisorPassword,
		jwtSecret:          []byte(jwtSecret),
		sessionTTL:         sessionTTL,
		now:                time.Now,
	}
}

// SessionTTL returns the lifetime of respondent tokens
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Login validates the supervisor password and returns a token
func (s *AuthService) Login(password string) (*model.LoginResponse, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.supervisorPassword)) != 1 {
		return nil, ErrInvalidCredentials
	}

	supervisorID := "sup_" + uuid.New().String()[:8]
	now := s.now()
	claims := &model.SupervisorClaims{
		SupervisorID: supervisorID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(12 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:        tokenString,
		SupervisorID: supervisorID,
	}, nil
}

// ValidateSupervisorToken validates a supervisor JWT and returns claims
func (s *AuthService) ValidateSupervisorToken(tokenString string) (*model.SupervisorClaims, error) {
	claims := &model.SupervisorClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.SupervisorID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateRespondentToken creates a token scoped to one respondent
func (s *AuthService) GenerateRespondentToken(respondentID string) (string, error) {
	now := s.now()
	claims := &model.RespondentClaims{
		RespondentID: respondentID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateRespondentToken validates a respondent JWT and returns claims
func (s *AuthService) ValidateRespondentToken(tokenString string) (*model.RespondentClaims, error) {
	claims := &model.RespondentClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.RespondentID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
