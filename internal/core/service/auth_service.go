package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// LoginInput picks the identity a demo login signs in as. Empty fields take
// the configured demo user's values.
type LoginInput struct {
	Name  string
	Email string
	Role  domain.Role
}

type sessionClaims struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies the HS256 session tokens shared by the
// portal and the reference backend. There are no passwords: logging in
// picks an identity.
type AuthService struct {
	secret []byte
	ttl    time.Duration
	demo   domain.Session
	now    func() time.Time
}

func NewAuthService(jwtSecret string, tokenTTL time.Duration, demo domain.Session) (*AuthService, error) {
	if jwtSecret == "" {
		return nil, errors.New("auth: empty signing secret")
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{secret: []byte(jwtSecret), ttl: tokenTTL, demo: demo, now: time.Now}, nil
}

// Demo returns the identity used for requests without a token.
func (s *AuthService) Demo() domain.Session {
	return s.demo
}

// Login builds a session from in and signs a token for it. The user id is
// derived from the email so the same person keeps the same id.
func (s *AuthService) Login(in LoginInput) (string, time.Time, domain.Session, error) {
	sess := s.demo
	if name := strings.TrimSpace(in.Name); name != "" {
		sess.Name = name
	}
	if in.Role != "" {
		role, err := domain.ParseRole(string(in.Role))
		if err != nil {
			return "", time.Time{}, domain.Session{}, err
		}
		sess.Role = role
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" && email != strings.ToLower(s.demo.Email) {
		sess.Email = email
		sess.UserID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String()
	}

	token, exp, err := s.IssueToken(sess)
	if err != nil {
		return "", time.Time{}, domain.Session{}, err
	}
	sess.Token = token
	return token, exp, sess, nil
}

// IssueToken signs a token carrying sess.
func (s *AuthService) IssueToken(sess domain.Session) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := sessionClaims{
		Name:  sess.Name,
		Email: sess.Email,
		Role:  sess.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, exp, nil
}

// ParseToken verifies raw and returns the session it carries, token
// included.
func (s *AuthService) ParseToken(raw string) (domain.Session, error) {
	var claims sessionClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tkn.Valid {
		return domain.Session{}, domain.ErrInvalidToken
	}

	role, err := domain.ParseRole(string(claims.Role))
	if err != nil || claims.Subject == "" {
		return domain.Session{}, domain.ErrInvalidToken
	}
	return domain.Session{
		UserID: claims.Subject,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   role,
		Token:  raw,
	}, nil
}
