package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"job-board-backend/controllers"
	candidateshandler "job-board-backend/lib/candidates"
	xlsexport "job-board-backend/lib/export/xls"
	suppliershandler "job-board-backend/lib/suppliers"
	apimodels "job-board-backend/models/api"
	candidateapimodels "job-board-backend/models/api/candidate"
)

type adminCandidateApiController struct {
	controllers.BaseAPIController
}

func InitAdminCandidateApiRouters(app *fiber.App) {
	controller := adminCandidateApiController{}
	app.Route("candidates", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get("export-xls", controller.exportXls)
		router.Get("by-job/:id", controller.listByJob)
		router.Get(":id", controller.getByID)
		router.Put(":id", controller.update)
		router.Patch(":id/status", controller.changeStatus)
		router.Post(":id/send-for-analysis", controller.sendForAnalysis)
		router.Delete(":id", controller.delete)
	})
}

func (c *adminCandidateApiController) list(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(candidateshandler.Instance.List()))
}

func (c *adminCandidateApiController) listByJob(ctx *fiber.Ctx) error {
	jobID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := candidateshandler.Instance.GetByJobID(ctx.UserContext(), jobID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

func (c *adminCandidateApiController) getByID(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	candidate, ok := candidateshandler.Instance.GetByID(id)
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("candidate not found"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(candidate))
}

func (c *adminCandidateApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.CandidateUpdate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if _, ok := candidateshandler.Instance.GetByID(id); !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("candidate not found"))
	}
	err = candidateshandler.Instance.Update(ctx.UserContext(), id, payload.ToUpdateMap())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *adminCandidateApiController) changeStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.StatusChange
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if _, ok := candidateshandler.Instance.GetByID(id); !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("candidate not found"))
	}
	err = candidateshandler.Instance.Update(ctx.UserContext(), id, map[string]interface{}{
		"status": string(payload.Status),
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *adminCandidateApiController) sendForAnalysis(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if _, ok := candidateshandler.Instance.GetByID(id); !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("candidate not found"))
	}
	if err := suppliershandler.Instance.SendForAnalysis(ctx.UserContext(), id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *adminCandidateApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := candidateshandler.Instance.Delete(ctx.UserContext(), id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *adminCandidateApiController) exportXls(ctx *fiber.Ctx) error {
	data, err := xlsexport.Instance.ExportCandidateList(candidateshandler.Instance.List())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	fileName := "candidatos.xlsx"
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}
