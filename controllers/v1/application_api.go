package apiv1

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"job-board-backend/controllers"
	applicationhandler "job-board-backend/lib/application"
	candidateshandler "job-board-backend/lib/candidates"
	jobshandler "job-board-backend/lib/jobs"
	"job-board-backend/middleware"
	"job-board-backend/models"
	apimodels "job-board-backend/models/api"
)

const customFieldPrefix = "customField_"

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Use(middleware.AuthorizationRequired())
	app.Post("jobs/:id/apply", controller.apply)
	app.Get("my-applications", controller.myApplications)
}

func (c *applicationApiController) apply(ctx *fiber.Ctx) error {
	jobID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		log.WithError(err).Error("application form parsing failed")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("unable to read application form"))
	}

	data := applicationhandler.SubmissionData{
		JobID:       jobID,
		Name:        formValue(form, "name"),
		Email:       formValue(form, "email"),
		Phone:       formValue(form, "phone"),
		Experience:  formValue(form, "experience"),
		Education:   formValue(form, "education"),
		Notes:       formValue(form, "notes"),
		FieldValues: map[string]interface{}{},
		FieldFiles:  map[string]applicationhandler.File{},
	}

	if headers := form.File["resume"]; len(headers) > 0 {
		resume, err := readFormFile(headers[0])
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		data.Resume = &resume
	}

	if err := c.collectFieldInputs(form, jobID, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	userID := middleware.GetUserID(ctx)
	candidate, err := applicationhandler.Instance.Submit(ctx.UserContext(), userID, data)
	if err != nil {
		if applicationhandler.IsValidationError(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(candidate))
}

func (c *applicationApiController) myApplications(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	list, err := candidateshandler.Instance.GetByUserID(ctx.UserContext(), userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// collectFieldInputs pulls the filled dynamic fields out of the multipart
// form, keyed by field id. Booleans arrive as form strings and are parsed
// here; unparsable values stay as strings so validation reports them.
func (c *applicationApiController) collectFieldInputs(form *multipart.Form, jobID string, data *applicationhandler.SubmissionData) error {
	job, ok := jobshandler.Instance.GetByID(jobID)
	if !ok {
		return nil
	}
	for _, field := range job.CustomFields {
		key := customFieldPrefix + field.ID
		if field.Type == models.DynamicFieldFile {
			if headers := form.File[key]; len(headers) > 0 {
				file, err := readFormFile(headers[0])
				if err != nil {
					return err
				}
				data.FieldFiles[field.ID] = file
			}
			continue
		}
		values, filled := form.Value[key]
		if !filled || len(values) == 0 {
			continue
		}
		if field.Type == models.DynamicFieldBoolean {
			if checked, err := strconv.ParseBool(values[0]); err == nil {
				data.FieldValues[field.ID] = checked
				continue
			}
		}
		data.FieldValues[field.ID] = values[0]
	}
	return nil
}

func formValue(form *multipart.Form, key string) string {
	if values, ok := form.Value[key]; ok && len(values) > 0 {
		return values[0]
	}
	return ""
}

func readFormFile(header *multipart.FileHeader) (applicationhandler.File, error) {
	buffer, err := header.Open()
	if err != nil {
		log.WithError(err).Error("form file open failed")
		return applicationhandler.File{}, err
	}
	defer buffer.Close()
	body, err := io.ReadAll(buffer)
	if err != nil {
		log.WithError(err).Error("form file read failed")
		return applicationhandler.File{}, err
	}
	return applicationhandler.File{
		Name:        header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Data:        body,
	}, nil
}
