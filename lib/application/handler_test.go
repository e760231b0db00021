package applicationhandler

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	candidateprofilehandler "job-board-backend/lib/candidate-profile"
	candidateshandler "job-board-backend/lib/candidates"
	"job-board-backend/lib/docstore"
	memclient "job-board-backend/lib/docstore/mem-client"
	jobshandler "job-board-backend/lib/jobs"
	"job-board-backend/models"
)

type stubFiles struct {
	resumeUploads int
	fieldUploads  int
}

func (s *stubFiles) UploadResume(ctx context.Context, userID, jobID, fileName string, data []byte) (string, error) {
	s.resumeUploads++
	return "https://files/resumes/" + fileName, nil
}

func (s *stubFiles) UploadFieldFile(ctx context.Context, userID, jobID, fieldID, fileName string, data []byte) (string, error) {
	s.fieldUploads++
	return "https://files/fields/" + fieldID + "/" + fileName, nil
}

type stubMailer struct {
	recipients []string
}

func (s *stubMailer) SendEMail(to, subject, message string) error {
	s.recipients = append(s.recipients, to)
	return nil
}

type fixture struct {
	store      docstore.Provider
	jobs       jobshandler.Provider
	candidates candidateshandler.Provider
	files      *stubFiles
	mailer     *stubMailer
	handler    Provider
}

func newFixture(t *testing.T) *fixture {
	store := memclient.NewClient()
	jobs := jobshandler.NewInstance(store)
	require.Nil(t, jobs.Start(context.TODO()))
	candidates := candidateshandler.NewInstance(store)
	profiles := candidateprofilehandler.NewInstance(store)
	files := &stubFiles{}
	mailer := &stubMailer{}
	return &fixture{
		store:      store,
		jobs:       jobs,
		candidates: candidates,
		files:      files,
		mailer:     mailer,
		handler:    NewInstance(jobs, candidates, profiles, files, store, mailer),
	}
}

func (f *fixture) seedJob(t *testing.T, fields []interface{}) string {
	doc := map[string]interface{}{
		"title":        "Backend Developer",
		"location":     "Remoto",
		"status":       "active",
		"description":  "long enough description",
		"contactEmail": "hiring@example.com",
		"postedAt":     "2026-05-01",
	}
	if len(fields) > 0 {
		doc["customFields"] = fields
	}
	id, err := f.store.Add(context.TODO(), docstore.JobsCollection, doc)
	require.Nil(t, err)
	require.Eventually(t, func() bool {
		_, ok := f.jobs.GetByID(id)
		return ok
	}, time.Second, 10*time.Millisecond)
	return id
}

func validSubmission(jobID string) SubmissionData {
	return SubmissionData{
		JobID: jobID,
		Name:  "Maria Silva",
		Email: "maria@example.com",
		Phone: "+55 11 99999-0000",
		Resume: &File{
			Name:        "resume.pdf",
			ContentType: "application/pdf",
			Data:        []byte("%PDF-1.4 data"),
		},
	}
}

func TestSubmit(t *testing.T) {
	t.Run(`successful submission`, func(t *testing.T) {
		f := newFixture(t)
		jobID := f.seedJob(t, nil)

		candidate, err := f.handler.Submit(context.TODO(), "user-1", validSubmission(jobID))
		require.Nil(t, err)
		require.NotEqual(t, "", candidate.ID)
		require.Equal(t, models.CandidateStatusNew, candidate.Status)
		require.Equal(t, "Backend Developer", candidate.JobTitle)
		require.Equal(t, "user-1", candidate.CandidateUserID)
		require.NotEqual(t, "", candidate.CandidateID)
		require.Equal(t, "https://files/resumes/resume.pdf", candidate.Resume)
		require.Equal(t, 1, f.files.resumeUploads)
		require.Equal(t, []string{"hiring@example.com"}, f.mailer.recipients)

		// The counter is a plain read-then-write; two racing submissions can
		// lose an increment. Only the single-writer behavior is asserted here.
		require.Eventually(t, func() bool {
			job, ok := f.jobs.GetByID(jobID)
			return ok && job.Applications == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run(`second application to the same job is rejected`, func(t *testing.T) {
		f := newFixture(t)
		jobID := f.seedJob(t, nil)

		_, err := f.handler.Submit(context.TODO(), "user-1", validSubmission(jobID))
		require.Nil(t, err)

		_, err = f.handler.Submit(context.TODO(), "user-1", validSubmission(jobID))
		require.NotNil(t, err)
		require.Equal(t, true, IsValidationError(err))

		docs, err := f.store.Query(context.TODO(), docstore.ApplicationsCollection, map[string]interface{}{
			"candidateUserId": "user-1",
			"jobId":           jobID,
		})
		require.Nil(t, err)
		require.Len(t, docs, 1)
	})

	t.Run(`same user can apply to a different job`, func(t *testing.T) {
		f := newFixture(t)
		firstJob := f.seedJob(t, nil)
		secondJob := f.seedJob(t, nil)

		_, err := f.handler.Submit(context.TODO(), "user-1", validSubmission(firstJob))
		require.Nil(t, err)
		_, err = f.handler.Submit(context.TODO(), "user-1", validSubmission(secondJob))
		require.Nil(t, err)
	})

	t.Run(`unknown job is a validation error`, func(t *testing.T) {
		f := newFixture(t)
		_, err := f.handler.Submit(context.TODO(), "user-1", validSubmission("missing"))
		require.NotNil(t, err)
		require.Equal(t, true, IsValidationError(err))
	})

	t.Run(`invalid email fails before anything is written`, func(t *testing.T) {
		f := newFixture(t)
		jobID := f.seedJob(t, nil)

		data := validSubmission(jobID)
		data.Email = "not-an-email"
		_, err := f.handler.Submit(context.TODO(), "user-1", data)
		require.NotNil(t, err)
		require.Equal(t, true, IsValidationError(err))

		profiles, err := f.store.Query(context.TODO(), docstore.ProfilesCollection, map[string]interface{}{"userId": "user-1"})
		require.Nil(t, err)
		require.Len(t, profiles, 0)
		require.Equal(t, 0, f.files.resumeUploads)
	})

	t.Run(`resume must be a PDF within the size limit`, func(t *testing.T) {
		f := newFixture(t)
		jobID := f.seedJob(t, nil)

		data := validSubmission(jobID)
		data.Resume.ContentType = "image/png"
		_, err := f.handler.Submit(context.TODO(), "user-1", data)
		require.NotNil(t, err)
		require.Equal(t, true, IsValidationError(err))

		data = validSubmission(jobID)
		data.Resume.Data = bytes.Repeat([]byte("a"), maxResumeSize+1)
		_, err = f.handler.Submit(context.TODO(), "user-1", data)
		require.NotNil(t, err)
		require.Equal(t, true, IsValidationError(err))
	})

	t.Run(`resume is optional`, func(t *testing.T) {
		f := newFixture(t)
		jobID := f.seedJob(t, nil)

		data := validSubmission(jobID)
		data.Resume = nil
		candidate, err := f.handler.Submit(context.TODO(), "user-1", data)
		require.Nil(t, err)
		require.Equal(t, "", candidate.Resume)
		require.Equal(t, 0, f.files.resumeUploads)
	})

	t.Run(`required boolean accepts an explicit false`, func(t *testing.T) {
		f := newFixture(t)
		jobID := f.seedJob(t, []interface{}{
			map[string]interface{}{"id": "relocate", "label": "Willing to relocate", "type": "boolean", "required": true},
		})

		data := validSubmission(jobID)
		_, err := f.handler.Submit(context.TODO(), "user-1", data)
		require.NotNil(t, err)
		require.Equal(t, true, IsValidationError(err))

		data.FieldValues = map[string]interface{}{"relocate": false}
		candidate, err := f.handler.Submit(context.TODO(), "user-1", data)
		require.Nil(t, err)
		require.Equal(t, false, candidate.CustomFieldsData["relocate"])
	})

	t.Run(`required file field demands an upload`, func(t *testing.T) {
		f := newFixture(t)
		jobID := f.seedJob(t, []interface{}{
			map[string]interface{}{"id": "certificate", "label": "Certificate", "type": "file", "required": true},
		})

		data := validSubmission(jobID)
		_, err := f.handler.Submit(context.TODO(), "user-1", data)
		require.NotNil(t, err)
		require.Equal(t, true, IsValidationError(err))

		data.FieldFiles = map[string]File{
			"certificate": {Name: "cert.pdf", ContentType: "application/pdf", Data: []byte("data")},
		}
		candidate, err := f.handler.Submit(context.TODO(), "user-1", data)
		require.Nil(t, err)
		require.Equal(t, "https://files/fields/certificate/cert.pdf", candidate.CustomFieldsData["certificate"])
		require.Equal(t, 1, f.files.fieldUploads)
	})

	t.Run(`optional fields may stay empty`, func(t *testing.T) {
		f := newFixture(t)
		jobID := f.seedJob(t, []interface{}{
			map[string]interface{}{"id": "portfolio", "label": "Portfolio", "type": "text", "required": false},
		})

		candidate, err := f.handler.Submit(context.TODO(), "user-1", validSubmission(jobID))
		require.Nil(t, err)
		require.Nil(t, candidate.CustomFieldsData)
	})

	t.Run(`contact mail stays best effort when unset`, func(t *testing.T) {
		f := newFixture(t)
		id, err := f.store.Add(context.TODO(), docstore.JobsCollection, map[string]interface{}{
			"title":       "No Contact",
			"location":    "Remoto",
			"status":      "active",
			"description": "long enough description",
		})
		require.Nil(t, err)
		require.Eventually(t, func() bool {
			_, ok := f.jobs.GetByID(id)
			return ok
		}, time.Second, 10*time.Millisecond)

		_, err = f.handler.Submit(context.TODO(), "user-1", validSubmission(id))
		require.Nil(t, err)
		require.Len(t, f.mailer.recipients, 0)
	})

	t.Run(`profile is reused and refreshed across jobs`, func(t *testing.T) {
		f := newFixture(t)
		firstJob := f.seedJob(t, nil)
		secondJob := f.seedJob(t, nil)

		first, err := f.handler.Submit(context.TODO(), "user-1", validSubmission(firstJob))
		require.Nil(t, err)

		data := validSubmission(secondJob)
		data.Phone = "+55 11 88888-0000"
		second, err := f.handler.Submit(context.TODO(), "user-1", data)
		require.Nil(t, err)
		require.Equal(t, first.CandidateID, second.CandidateID)

		profiles, err := f.store.Query(context.TODO(), docstore.ProfilesCollection, map[string]interface{}{"userId": "user-1"})
		require.Nil(t, err)
		require.Len(t, profiles, 1)
		require.Equal(t, "+55 11 88888-0000", profiles[0].Data["phone"])
	})
}
