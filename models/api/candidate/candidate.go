package candidateapimodels

import (
	"job-board-backend/models"

	"github.com/pkg/errors"
)

// CandidateUpdate is the admin-side partial edit of an application.
type CandidateUpdate struct {
	Name       string                 `json:"name"`
	Email      string                 `json:"email"`
	Phone      string                 `json:"phone"`
	Company    string                 `json:"company"`
	Status     models.CandidateStatus `json:"status"`
	Experience string                 `json:"experience"`
	Education  string                 `json:"education"`
	Notes      string                 `json:"notes"`
}

func (c CandidateUpdate) Validate() error {
	if c.Name == "" {
		return errors.New("candidate name is required")
	}
	if c.Email == "" {
		return errors.New("candidate email is required")
	}
	return c.Status.Validate()
}

// ToUpdateMap builds the partial-update document. Any status-to-any-status
// transitions are allowed; the pipeline order is informational only.
func (c CandidateUpdate) ToUpdateMap() map[string]interface{} {
	return map[string]interface{}{
		"candidateName":  c.Name,
		"candidateEmail": c.Email,
		"candidatePhone": c.Phone,
		"company":        c.Company,
		"status":         string(c.Status),
		"experience":     c.Experience,
		"education":      c.Education,
		"notes":          c.Notes,
	}
}

type StatusChange struct {
	Status models.CandidateStatus `json:"status"`
}

func (s StatusChange) Validate() error {
	return s.Status.Validate()
}
