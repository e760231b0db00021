package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"job-board-backend/controllers"
	adminpanelauthhandler "job-board-backend/lib/admin-panel/auth"
	apimodels "job-board-backend/models/api"
	authapimodels "job-board-backend/models/api/auth"
)

type adminAuthApiController struct {
	controllers.BaseAPIController
}

func InitAdminAuthApiRouters(app *fiber.App) {
	controller := adminAuthApiController{}
	app.Post("login", controller.login)
}

func (c *adminAuthApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := adminpanelauthhandler.Instance.Login(payload.Email, payload.Password)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
