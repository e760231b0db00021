package apiv1

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"job-board-backend/controllers"
	jobfilter "job-board-backend/lib/job-filter"
	jobshandler "job-board-backend/lib/jobs"
	apimodels "job-board-backend/models/api"
	jobapimodels "job-board-backend/models/api/job"
)

type adminJobApiController struct {
	controllers.BaseAPIController
}

func InitAdminJobApiRouters(app *fiber.App) {
	controller := adminJobApiController{}
	app.Route("jobs", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Get(":id", controller.getByID)
		router.Put(":id", controller.update)
		router.Delete(":id", controller.delete)
	})
}

func (c *adminJobApiController) list(ctx *fiber.Ctx) error {
	var filter jobapimodels.AdminFilter
	if err := ctx.QueryParser(&filter); err != nil {
		log.WithError(err).Error("admin job filter parsing failed")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("unable to read filter parameters"))
	}
	list := jobfilter.FilterAdminJobs(jobshandler.Instance.List(), filter.SearchTerm, filter.Status)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

func (c *adminJobApiController) create(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	job, err := jobshandler.Instance.Create(ctx.UserContext(), payload.ToEntity())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(job))
}

func (c *adminJobApiController) getByID(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	job, ok := jobshandler.Instance.GetByID(id)
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("job not found"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(job))
}

func (c *adminJobApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapimodels.JobData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if _, ok := jobshandler.Instance.GetByID(id); !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("job not found"))
	}
	err = jobshandler.Instance.Update(ctx.UserContext(), id, payload.ToUpdateMap())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *adminJobApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := jobshandler.Instance.Delete(ctx.UserContext(), id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
