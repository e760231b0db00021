package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"job-board-backend/config"
	adminpanelauthhandler "job-board-backend/lib/admin-panel/auth"
	authutils "job-board-backend/lib/utils/auth-utils"
	apimodels "job-board-backend/models/api"
)

func AdminAuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.AdminAuth.JWTSecret),
		},
	})
}

// AdminSessionRequired re-checks the session record on every guarded access:
// token expiry plus the binding to the single admin account.
func AdminSessionRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claims := authutils.GetClaims(ctx)
		if _, err := adminpanelauthhandler.Instance.CheckAccess(claims); err != nil {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
		}
		return ctx.Next()
	}
}
