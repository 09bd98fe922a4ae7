package services

import (
	"context"
	"errors"
	"time"

	"messagely/internal/config"
	"messagely/internal/domain"
	"messagely/internal/repository"
	messagely_errors "messagely/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService is the credential store and session issuer: it owns password
// hashing, password verification and bearer token issuance.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	bcryptCost int
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(cfg.Auth.JWTSecret),
		accessTTL:  time.Duration(cfg.Auth.JWTExpiryHours) * time.Hour,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type LoginInput struct {
	Username string
	Password string
}

type AccessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Register hashes the password, stores the new user with join_at and
// last_login_at set to now, and returns a signed token for the account.
// A taken username surfaces as ErrAlreadyExists.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if err := validateRegister(in); err != nil {
		return "", err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return "", err
	}

	now := time.Now()
	newUser := &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		JoinAt:       now,
		LastLoginAt:  now,
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return "", err
	}

	token, err := s.IssueToken(newUser.Username)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, newUser.Username, time.Now()); err != nil {
		return "", err
	}

	return token, nil
}

// Authenticate reports whether the password matches the stored hash.
// An unknown username is an error; a wrong password is not.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil, nil
}

// Login verifies credentials, advances last_login_at and issues a token.
// Both an unknown user and a bad password come back as ErrUnauthorized so
// the response does not reveal which part was wrong.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	if in.Username == "" || in.Password == "" {
		return "", messagely_errors.ErrInvalidInput
	}

	ok, err := s.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, messagely_errors.ErrNotFound) {
			return "", messagely_errors.ErrUnauthorized
		}
		return "", err
	}
	if !ok {
		return "", messagely_errors.ErrUnauthorized
	}

	if err := s.userRepo.UpdateLastLogin(ctx, in.Username, time.Now()); err != nil {
		return "", err
	}

	return s.IssueToken(in.Username)
}

// IssueToken signs an HS256 bearer token asserting username.
func (s *AuthService) IssueToken(username string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, messagely_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, messagely_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, messagely_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, messagely_errors.ErrUnauthorized
	}

	return *claims, nil
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, messagely_errors.ErrInvalidInput),
		errors.Is(err, messagely_errors.ErrInvalidReference):
		return 400
	case errors.Is(err, messagely_errors.ErrUnauthorized):
		return 401
	case errors.Is(err, messagely_errors.ErrForbidden):
		return 403
	case errors.Is(err, messagely_errors.ErrNotFound):
		return 404
	case errors.Is(err, messagely_errors.ErrAlreadyExists):
		return 409
	case errors.Is(err, messagely_errors.ErrRateLimited):
		return 429
	default:
		return 500
	}
}

type ctxKey string

var usernameKey ctxKey = "username"

func WithUsernameContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

func UsernameFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(usernameKey)
	if value == nil {
		return "", false
	}
	username, ok := value.(string)
	return username, ok
}

func validateRegister(in RegisterInput) error {
	if in.Username == "" || in.Password == "" {
		return messagely_errors.ErrInvalidInput
	}
	if len(in.Password) < 8 {
		return messagely_errors.ErrInvalidInput
	}
	return nil
}

func (s *AuthService) hashPassword(password string) (string, error) {
	cost := s.bcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
