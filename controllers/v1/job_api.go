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

type jobApiController struct {
	controllers.BaseAPIController
}

func InitJobApiRouters(app *fiber.App) {
	controller := jobApiController{}
	app.Route("jobs", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get(":id", controller.getByID)
	})
}

func (c *jobApiController) list(ctx *fiber.Ctx) error {
	var filter jobapimodels.PublicFilter
	if err := ctx.QueryParser(&filter); err != nil {
		log.WithError(err).Error("job filter parsing failed")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("unable to read filter parameters"))
	}
	list := jobfilter.FilterJobs(jobshandler.Instance.List(), jobfilter.Filter{
		SearchTerm:         filter.SearchTerm,
		LocationSelections: filter.Locations,
		LocationQuery:      filter.LocationQuery,
		RequirementsQuery:  filter.RequirementsQuery,
	})
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

func (c *jobApiController) getByID(ctx *fiber.Ctx) error {
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
