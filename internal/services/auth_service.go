package services

import (
	"strings"
	"time"

	"bikie/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the only role the admin panel knows.
const RoleAdmin = "admin"

const invalidCredentials = "invalid email or password"

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService checks the single configured admin account and issues HS256
// tokens for it.
type AuthService struct {
	email  string
	hash   []byte
	secret []byte
	ttl    time.Duration
	Now    func() time.Time
}

// NewAuthService prefers passwordHash (bcrypt). A plain password is hashed
// once here so the comparison path is the same either way.
func NewAuthService(email, password, passwordHash, secret string, ttl time.Duration) (*AuthService, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ValidationError{Field: "ADMIN_EMAIL", Msg: "is required"}
	}
	if secret == "" {
		return nil, domain.ValidationError{Field: "JWT_SECRET", Msg: "is required"}
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	hash := []byte(passwordHash)
	if len(hash) == 0 {
		if password == "" {
			return nil, domain.ValidationError{Field: "ADMIN_PASSWORD", Msg: "password or hash is required"}
		}
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, domain.InternalError{Msg: "failed to hash admin password", Err: err}
		}
		hash = h
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, domain.ValidationError{Field: "ADMIN_PASSWORD_HASH", Msg: "is not a bcrypt hash", Err: err}
	}

	return &AuthService{email: email, hash: hash, secret: []byte(secret), ttl: ttl}, nil
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login returns a signed token and its expiry. Wrong email and wrong password
// produce the same error.
func (s *AuthService) Login(email, password string) (string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email != s.email {
		// keep timing close to the wrong-password path
		_ = bcrypt.CompareHashAndPassword(s.hash, []byte(password))
		return "", time.Time{}, domain.UnauthorizedError{Msg: invalidCredentials}
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return "", time.Time{}, domain.UnauthorizedError{Msg: invalidCredentials, Err: err}
	}

	now := s.now()
	exp := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	return signed, exp, nil
}

// Verify parses a bearer token and returns who it was issued to.
func (s *AuthService) Verify(raw string) (domain.RequestContext, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "missing token"}
	}
	claims := &adminClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid or expired token", Err: err}
	}
	if claims.Role != RoleAdmin {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "token is not an admin token"}
	}
	return domain.RequestContext{Subject: claims.Subject, Role: claims.Role}, nil
}
