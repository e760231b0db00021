package applicationhandler

import (
	"context"
	"fmt"
	"regexp"

	log "github.com/sirupsen/logrus"

	candidateprofilehandler "job-board-backend/lib/candidate-profile"
	candidateshandler "job-board-backend/lib/candidates"
	"job-board-backend/lib/docstore"
	filestorage "job-board-backend/lib/file-storage"
	jobshandler "job-board-backend/lib/jobs"
	"job-board-backend/lib/smtp"
	"job-board-backend/models"
	entitymodels "job-board-backend/models/entity"
)

const (
	maxResumeSize    = 5 * 1024 * 1024  // resumes are PDF only
	maxFieldFileSize = 50 * 1024 * 1024 // dynamic file fields allow videos
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidationError is a pre-network rejection surfaced directly to the user;
// it is never retried automatically.
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string {
	return e.msg
}

func NewValidationError(format string, args ...interface{}) error {
	return ValidationError{msg: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	_, ok := err.(ValidationError)
	return ok
}

// File is an uploaded form file held in memory for the submission attempt.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// SubmissionData is one application attempt against one job.
type SubmissionData struct {
	JobID      string
	Name       string
	Email      string
	Phone      string
	Experience string
	Education  string
	Notes      string
	Resume     *File
	// dynamic-field values by field id: string for text, bool for boolean
	FieldValues map[string]interface{}
	FieldFiles  map[string]File
}

// Provider runs the application submission flow. The steps after validation
// can each fail independently and abort the remainder; earlier effects
// (profile writes, uploaded files) stay in place, there is no rollback.
type Provider interface {
	Submit(ctx context.Context, userID string, data SubmissionData) (entitymodels.Candidate, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(jobshandler.Instance, candidateshandler.Instance, candidateprofilehandler.Instance,
		filestorage.Instance, docstore.Instance, smtp.Instance)
}

func NewInstance(jobs jobshandler.Provider, candidates candidateshandler.Provider,
	profiles candidateprofilehandler.Provider, files filestorage.Provider,
	store docstore.Provider, mailer smtp.Provider) Provider {
	return &impl{
		jobs:       jobs,
		candidates: candidates,
		profiles:   profiles,
		files:      files,
		store:      store,
		mailer:     mailer,
	}
}

type impl struct {
	jobs       jobshandler.Provider
	candidates candidateshandler.Provider
	profiles   candidateprofilehandler.Provider
	files      filestorage.Provider
	store      docstore.Provider
	mailer     smtp.Provider
}

func (i *impl) Submit(ctx context.Context, userID string, data SubmissionData) (entitymodels.Candidate, error) {
	logger := log.WithField("user_id", userID).WithField("job_id", data.JobID)

	job, ok := i.jobs.GetByID(data.JobID)
	if !ok {
		return entitymodels.Candidate{}, NewValidationError("job not found or no longer available")
	}
	if err := i.validate(job, data); err != nil {
		return entitymodels.Candidate{}, err
	}

	// 1. resolve or create the candidate identity record
	profileID, err := i.profiles.Resolve(ctx, userID, data.Name, data.Email, data.Phone)
	if err != nil {
		logger.WithError(err).Error("candidate profile resolution failed")
		return entitymodels.Candidate{}, err
	}

	// 2. optional resume upload
	resumeURL := ""
	if data.Resume != nil {
		resumeURL, err = i.files.UploadResume(ctx, userID, job.ID, data.Resume.Name, data.Resume.Data)
		if err != nil {
			logger.WithError(err).Error("resume upload failed")
			return entitymodels.Candidate{}, err
		}
	}

	// 3. dynamic file uploads
	fieldValues := map[string]interface{}{}
	for _, field := range job.CustomFields {
		if field.Type == models.DynamicFieldFile {
			file, selected := data.FieldFiles[field.ID]
			if !selected {
				continue
			}
			url, err := i.files.UploadFieldFile(ctx, userID, job.ID, field.ID, file.Name, file.Data)
			if err != nil {
				logger.WithError(err).WithField("field_id", field.ID).Error("field file upload failed")
				return entitymodels.Candidate{}, err
			}
			fieldValues[field.ID] = url
			continue
		}
		if value, ok := data.FieldValues[field.ID]; ok {
			fieldValues[field.ID] = value
		}
	}

	// 4. duplicate prevention: one application per user per job
	existing, err := i.store.Query(ctx, docstore.ApplicationsCollection, map[string]interface{}{
		"candidateUserId": userID,
		"jobId":           job.ID,
	})
	if err != nil {
		logger.WithError(err).Error("duplicate application check failed")
		return entitymodels.Candidate{}, err
	}
	if len(existing) > 0 {
		return entitymodels.Candidate{}, NewValidationError("you have already applied to this job")
	}

	// 5. create the application document
	candidate := entitymodels.Candidate{
		Name:             data.Name,
		Email:            data.Email,
		Phone:            data.Phone,
		JobID:            job.ID,
		JobTitle:         job.Title,
		Status:           models.CandidateStatusNew,
		Resume:           resumeURL,
		Experience:       data.Experience,
		Education:        data.Education,
		Notes:            data.Notes,
		CandidateID:      profileID,
		CandidateUserID:  userID,
		CustomFieldsData: fieldValues,
	}
	if len(fieldValues) == 0 {
		candidate.CustomFieldsData = nil
	}
	candidate, err = i.candidates.Create(ctx, candidate)
	if err != nil {
		logger.WithError(err).Error("application create failed")
		return entitymodels.Candidate{}, err
	}

	// 6. bump the job's application counter. Plain read-then-write: two users
	// applying at the same moment can lose one increment. Kept as-is.
	err = i.jobs.Update(ctx, job.ID, map[string]interface{}{"applications": job.Applications + 1})
	if err != nil {
		logger.WithError(err).Error("application counter update failed")
		return entitymodels.Candidate{}, err
	}

	i.notify(job, candidate)
	return candidate, nil
}

// validate runs every pre-network check; nothing is written before it passes.
func (i *impl) validate(job entitymodels.Job, data SubmissionData) error {
	if data.Name == "" || data.Email == "" {
		return NewValidationError("name and email are required")
	}
	if !emailPattern.MatchString(data.Email) {
		return NewValidationError("email address is not valid")
	}
	if data.Phone == "" {
		return NewValidationError("phone is required")
	}
	if data.Resume != nil {
		if data.Resume.ContentType != "application/pdf" {
			return NewValidationError("only PDF files are accepted for the resume")
		}
		if len(data.Resume.Data) > maxResumeSize {
			return NewValidationError("resume file is too large, the limit is 5MB")
		}
	}
	for _, field := range job.CustomFields {
		_, hasFile := data.FieldFiles[field.ID]
		if err := field.ValidateValue(data.FieldValues[field.ID], hasFile); err != nil {
			return NewValidationError("%s", err.Error())
		}
		if file, ok := data.FieldFiles[field.ID]; ok && len(file.Data) > maxFieldFileSize {
			return NewValidationError("file for field %q is too large, the limit is 50MB", field.Label)
		}
	}
	return nil
}

// notify mails the job contact about the new application. Best effort only:
// a failure is logged and never fails the submission.
func (i *impl) notify(job entitymodels.Job, candidate entitymodels.Candidate) {
	if job.ContactEmail == "" || i.mailer == nil {
		return
	}
	subject := fmt.Sprintf("New application: %s", job.Title)
	message := fmt.Sprintf("%s (%s) applied to %q on %s.", candidate.Name, candidate.Email, job.Title, candidate.AppliedAt)
	if err := i.mailer.SendEMail(job.ContactEmail, subject, message); err != nil {
		log.WithError(err).WithField("job_id", job.ID).Error("application notification failed")
	}
}
