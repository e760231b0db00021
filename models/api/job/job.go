package jobapimodels

import (
	"job-board-backend/models"
	entitymodels "job-board-backend/models/entity"

	"github.com/pkg/errors"
)

type JobData struct {
	Title        string                      `json:"title"`         // display title
	Location     string                      `json:"location"`      // free text, "Remoto" for remote work
	Status       models.JobStatus            `json:"status"`        // active/inactive/draft
	Description  string                      `json:"description"`   // free text, at least 10 characters
	Requirements string                      `json:"requirements"`  // optional
	ContactEmail string                      `json:"contact_email"` // optional
	Website      string                      `json:"website"`       // optional
	CustomFields []entitymodels.DynamicField `json:"custom_fields"` // dynamic application-form fields
}

func (j JobData) Validate() error {
	if j.Title == "" {
		return errors.New("job title is required")
	}
	if j.Location == "" {
		return errors.New("job location is required")
	}
	if len(j.Description) < 10 {
		return errors.New("description must have at least 10 characters")
	}
	if err := j.Status.Validate(); err != nil {
		return err
	}
	for _, field := range j.CustomFields {
		if field.ID == "" || field.Label == "" {
			return errors.New("custom field requires an id and a label")
		}
		if err := field.Type.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (j JobData) ToEntity() entitymodels.Job {
	return entitymodels.Job{
		Title:        j.Title,
		Location:     j.Location,
		Status:       j.Status,
		Description:  j.Description,
		Requirements: j.Requirements,
		ContactEmail: j.ContactEmail,
		Website:      j.Website,
		CustomFields: j.CustomFields,
	}
}

// ToUpdateMap builds the partial-update document for an edit. The
// applications counter and postedAt are not part of the edit surface and
// stay untouched.
func (j JobData) ToUpdateMap() map[string]interface{} {
	update := map[string]interface{}{
		"title":        j.Title,
		"location":     j.Location,
		"status":       string(j.Status),
		"description":  j.Description,
		"requirements": j.Requirements,
		"contactEmail": j.ContactEmail,
		"website":      j.Website,
	}
	// An empty field list is never written, so edits that clear every
	// custom field leave the stored list as it was.
	if len(j.CustomFields) > 0 {
		fields := make([]interface{}, 0, len(j.CustomFields))
		for _, field := range j.CustomFields {
			fields = append(fields, map[string]interface{}{
				"id":       field.ID,
				"label":    field.Label,
				"type":     string(field.Type),
				"required": field.Required,
			})
		}
		update["customFields"] = fields
	}
	return update
}

// PublicFilter carries the public listing's search controls.
// Locations (exact multi-select) takes precedence over LocationQuery when non-empty.
type PublicFilter struct {
	SearchTerm        string   `json:"search_term" query:"search"`
	Locations         []string `json:"locations" query:"locations"`
	LocationQuery     string   `json:"location_query" query:"location"`
	RequirementsQuery string   `json:"requirements_query" query:"requirements"`
}

// AdminFilter is the dashboard-side list filter (title search + status).
type AdminFilter struct {
	SearchTerm string `json:"search_term" query:"search"`
	Status     string `json:"status" query:"status"` // "all" or a JobStatus value
}
