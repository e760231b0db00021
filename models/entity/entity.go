package entitymodels

import (
	"job-board-backend/models"

	"github.com/pkg/errors"
)

// DynamicField is an admin-defined extra input on a job's application form.
type DynamicField struct {
	ID       string                  `json:"id"`
	Label    string                  `json:"label"`
	Type     models.DynamicFieldType `json:"type"`
	Required bool                    `json:"required"`
}

// ValidateValue checks a submitted value against the field definition.
// A required boolean is satisfied by an explicit false; "unanswered" (nil) is not.
// File fields carry no inline value, only the presence of a selected file.
func (f DynamicField) ValidateValue(value interface{}, hasFile bool) error {
	if !f.Required {
		return nil
	}
	switch f.Type {
	case models.DynamicFieldFile:
		if !hasFile {
			return errors.Errorf("field %q is required", f.Label)
		}
	case models.DynamicFieldBoolean:
		if _, ok := value.(bool); !ok {
			return errors.Errorf("field %q is required", f.Label)
		}
	default:
		text, _ := value.(string)
		if text == "" {
			return errors.Errorf("field %q is required", f.Label)
		}
	}
	return nil
}

// Job is a posted opportunity. The location value "Remoto" denotes remote work.
// PostedAt and AppliedAt dates are calendar-date strings (YYYY-MM-DD).
type Job struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Location     string           `json:"location"`
	Status       models.JobStatus `json:"status"`
	Applications int              `json:"applications"`
	PostedAt     string           `json:"postedAt"`
	Description  string           `json:"description"`
	Requirements string           `json:"requirements"`
	ContactEmail string           `json:"contactEmail"`
	Website      string           `json:"website"`
	CustomFields []DynamicField   `json:"customFields,omitempty"`
}

// Candidate is one applicant's submission against one job. JobTitle and Company
// are denormalized at application time and survive later job edits or deletes.
type Candidate struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Email            string                 `json:"email"`
	Phone            string                 `json:"phone"`
	JobID            string                 `json:"jobId"`
	JobTitle         string                 `json:"jobTitle"`
	Company          string                 `json:"company"`
	Status           models.CandidateStatus `json:"status"`
	AppliedAt        string                 `json:"appliedAt"`
	Resume           string                 `json:"resume"`
	Experience       string                 `json:"experience"`
	Education        string                 `json:"education"`
	Notes            string                 `json:"notes"`
	CandidateID      string                 `json:"candidateId"`
	CandidateUserID  string                 `json:"candidateUserId"`
	SentForAnalysis  bool                   `json:"sentForAnalysis"`
	CustomFieldsData map[string]interface{} `json:"customFieldsData,omitempty"`
}

// CandidateProfile is the per-user identity record, separate from applications.
type CandidateProfile struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}
