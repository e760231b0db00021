package adminpanelauthhandler

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	authapimodels "job-board-backend/models/api/auth"
)

// CredentialPolicy decides whether a login attempt is the administrator.
// Injected so the single-admin check stays out of the session logic.
type CredentialPolicy interface {
	Verify(email, password string) bool
	AdminEmail() string
}

// StaticCredentialPolicy binds the panel to one configured admin account.
type StaticCredentialPolicy struct {
	Email    string
	Password string
}

func (p StaticCredentialPolicy) Verify(email, password string) bool {
	return email == p.Email && p.Password != "" && password == p.Password
}

func (p StaticCredentialPolicy) AdminEmail() string {
	return p.Email
}

// Session is the admin session record carried in the token claims.
type Session struct {
	Email     string
	LoginTime time.Time
	ExpiresAt time.Time
}

type Provider interface {
	Login(email, password string) (authapimodels.JWTResponse, error)
	// CheckAccess validates the session on every guarded access: the token must
	// be unexpired and bound to the configured admin email.
	CheckAccess(claims jwt.MapClaims) (Session, error)
}

var Instance Provider

func NewHandler(policy CredentialPolicy, jwtSecret string, sessionTTL time.Duration) {
	Instance = &impl{
		policy:     policy,
		jwtSecret:  []byte(jwtSecret),
		sessionTTL: sessionTTL,
	}
}

type impl struct {
	policy     CredentialPolicy
	jwtSecret  []byte
	sessionTTL time.Duration
}

func (i *impl) Login(email, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("email", email)
	if !i.policy.Verify(email, password) {
		logger.Debug("admin credential check failed")
		return authapimodels.JWTResponse{}, errors.New("invalid email or password")
	}
	now := time.Now()
	expiresAt := now.Add(i.sessionTTL)
	claims := jwt.MapClaims{
		"sub":       email,
		"email":     email,
		"loginTime": now.Format(time.RFC3339),
		"exp":       expiresAt.Unix(),
		"iat":       now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.jwtSecret)
	if err != nil {
		logger.WithError(err).Error("JWT generation failed")
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{
		Token:     tokenString,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}

func (i *impl) CheckAccess(claims jwt.MapClaims) (Session, error) {
	email, _ := claims["email"].(string)
	if email == "" || email != i.policy.AdminEmail() {
		return Session{}, errors.New("session is not bound to the admin account")
	}
	session := Session{Email: email}
	if loginTime, ok := claims["loginTime"].(string); ok {
		session.LoginTime, _ = time.Parse(time.RFC3339, loginTime)
	}
	switch exp := claims["exp"].(type) {
	case float64:
		session.ExpiresAt = time.Unix(int64(exp), 0)
	case int64:
		session.ExpiresAt = time.Unix(exp, 0)
	default:
		return Session{}, errors.New("session has no expiry")
	}
	if !time.Now().Before(session.ExpiresAt) {
		return Session{}, errors.New("session expired")
	}
	return session, nil
}
