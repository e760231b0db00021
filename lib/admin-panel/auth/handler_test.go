package adminpanelauthhandler

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testAdminEmail = "admin@dotgroup.com.br"
	testSecret     = "test-secret"
)

func newTestHandler() Provider {
	NewHandler(StaticCredentialPolicy{
		Email:    testAdminEmail,
		Password: "correct-password",
	}, testSecret, 24*time.Hour)
	return Instance
}

func parseClaims(t *testing.T, tokenString string) jwt.MapClaims {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.Nil(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.Equal(t, true, ok)
	return claims
}

func TestLogin(t *testing.T) {
	t.Run(`valid credentials issue a session token`, func(t *testing.T) {
		handler := newTestHandler()
		resp, err := handler.Login(testAdminEmail, "correct-password")
		require.Nil(t, err)
		require.NotEqual(t, "", resp.Token)

		claims := parseClaims(t, resp.Token)
		require.Equal(t, testAdminEmail, claims["email"])
		require.NotEqual(t, nil, claims["loginTime"])

		expiresAt, err := time.Parse(time.RFC3339, resp.ExpiresAt)
		require.Nil(t, err)
		require.Equal(t, true, expiresAt.After(time.Now().Add(23*time.Hour)))
	})

	t.Run(`wrong password is rejected`, func(t *testing.T) {
		handler := newTestHandler()
		_, err := handler.Login(testAdminEmail, "wrong")
		require.NotNil(t, err)
	})

	t.Run(`wrong email is rejected`, func(t *testing.T) {
		handler := newTestHandler()
		_, err := handler.Login("intruder@example.com", "correct-password")
		require.NotNil(t, err)
	})

	t.Run(`unconfigured password never verifies`, func(t *testing.T) {
		NewHandler(StaticCredentialPolicy{Email: testAdminEmail}, testSecret, time.Hour)
		_, err := Instance.Login(testAdminEmail, "")
		require.NotNil(t, err)
	})
}

func TestCheckAccess(t *testing.T) {
	t.Run(`issued token passes the session check`, func(t *testing.T) {
		handler := newTestHandler()
		resp, err := handler.Login(testAdminEmail, "correct-password")
		require.Nil(t, err)

		session, err := handler.CheckAccess(parseClaims(t, resp.Token))
		require.Nil(t, err)
		require.Equal(t, testAdminEmail, session.Email)
		require.Equal(t, false, session.LoginTime.IsZero())
		require.Equal(t, true, session.ExpiresAt.After(time.Now()))
	})

	t.Run(`session bound to another email is rejected`, func(t *testing.T) {
		handler := newTestHandler()
		claims := jwt.MapClaims{
			"email": "intruder@example.com",
			"exp":   float64(time.Now().Add(time.Hour).Unix()),
		}
		_, err := handler.CheckAccess(claims)
		require.NotNil(t, err)
	})

	t.Run(`expired session is rejected`, func(t *testing.T) {
		handler := newTestHandler()
		claims := jwt.MapClaims{
			"email":     testAdminEmail,
			"loginTime": time.Now().Add(-25 * time.Hour).Format(time.RFC3339),
			"exp":       float64(time.Now().Add(-time.Hour).Unix()),
		}
		_, err := handler.CheckAccess(claims)
		require.NotNil(t, err)
	})

	t.Run(`session without expiry is rejected`, func(t *testing.T) {
		handler := newTestHandler()
		claims := jwt.MapClaims{"email": testAdminEmail}
		_, err := handler.CheckAccess(claims)
		require.NotNil(t, err)
	})
}
