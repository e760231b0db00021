package jobfilter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"job-board-backend/models"
	entitymodels "job-board-backend/models/entity"
)

func sampleJobs() []entitymodels.Job {
	return []entitymodels.Job{
		{ID: "1", Title: "Backend Developer", Location: RemoteLocation, Status: models.JobStatusActive, Description: "Go services for the hiring platform", Requirements: "go, mongodb, docker"},
		{ID: "2", Title: "Frontend Developer", Location: "São Paulo", Status: models.JobStatusActive, Description: "Dashboard and public pages", Requirements: "react, typescript"},
		{ID: "3", Title: "Data Analyst", Location: "Rio de Janeiro", Status: models.JobStatusActive, Description: "Reporting over hiring data", Requirements: ""},
		{ID: "4", Title: "DevOps Engineer", Location: RemoteLocation, Status: models.JobStatusInactive, Description: "Infrastructure automation", Requirements: "terraform, aws"},
		{ID: "5", Title: "Product Manager", Location: "São Paulo", Status: models.JobStatusDraft, Description: "Own the roadmap of the product", Requirements: "discovery"},
	}
}

func ids(jobs []entitymodels.Job) []string {
	result := make([]string, 0, len(jobs))
	for _, job := range jobs {
		result = append(result, job.ID)
	}
	return result
}

func TestFilterJobs(t *testing.T) {
	t.Run(`empty filter keeps only active jobs in order`, func(t *testing.T) {
		result := FilterJobs(sampleJobs(), Filter{})
		require.Equal(t, []string{"1", "2", "3"}, ids(result))
	})

	t.Run(`search term matches title, description or requirements`, func(t *testing.T) {
		result := FilterJobs(sampleJobs(), Filter{SearchTerm: "developer"})
		require.Equal(t, []string{"1", "2"}, ids(result))

		result = FilterJobs(sampleJobs(), Filter{SearchTerm: "hiring"})
		require.Equal(t, []string{"1", "3"}, ids(result))

		result = FilterJobs(sampleJobs(), Filter{SearchTerm: "MONGODB"})
		require.Equal(t, []string{"1"}, ids(result))
	})

	t.Run(`surrounding whitespace on the term is ignored`, func(t *testing.T) {
		result := FilterJobs(sampleJobs(), Filter{SearchTerm: "  developer  "})
		require.Equal(t, []string{"1", "2"}, ids(result))
	})

	t.Run(`location selections use exact membership`, func(t *testing.T) {
		result := FilterJobs(sampleJobs(), Filter{LocationSelections: []string{"São Paulo"}})
		require.Equal(t, []string{"2"}, ids(result))

		result = FilterJobs(sampleJobs(), Filter{LocationSelections: []string{"São Paulo", RemoteLocation}})
		require.Equal(t, []string{"1", "2"}, ids(result))
	})

	t.Run(`selections take precedence over the free-text query`, func(t *testing.T) {
		result := FilterJobs(sampleJobs(), Filter{
			LocationSelections: []string{RemoteLocation},
			LocationQuery:      "rio",
		})
		require.Equal(t, []string{"1"}, ids(result))
	})

	t.Run(`free-text location query is a substring match`, func(t *testing.T) {
		result := FilterJobs(sampleJobs(), Filter{LocationQuery: "rio"})
		require.Equal(t, []string{"3"}, ids(result))
	})

	t.Run(`requirements terms are OR-combined`, func(t *testing.T) {
		result := FilterJobs(sampleJobs(), Filter{RequirementsQuery: "react, go"})
		require.Equal(t, []string{"1", "2"}, ids(result))
	})

	t.Run(`requirements query excludes jobs without requirements`, func(t *testing.T) {
		result := FilterJobs(sampleJobs(), Filter{RequirementsQuery: "go"})
		require.Equal(t, []string{"1"}, ids(result))
	})

	t.Run(`stages combine`, func(t *testing.T) {
		result := FilterJobs(sampleJobs(), Filter{
			SearchTerm:         "developer",
			LocationSelections: []string{RemoteLocation},
			RequirementsQuery:  "go",
		})
		require.Equal(t, []string{"1"}, ids(result))
	})

	t.Run(`no match yields an empty, non-nil list`, func(t *testing.T) {
		result := FilterJobs(sampleJobs(), Filter{SearchTerm: "nonexistent"})
		require.NotNil(t, result)
		require.Len(t, result, 0)
	})
}

func TestFilterAdminJobs(t *testing.T) {
	t.Run(`all statuses stay visible by default`, func(t *testing.T) {
		result := FilterAdminJobs(sampleJobs(), "", "")
		require.Len(t, result, 5)

		result = FilterAdminJobs(sampleJobs(), "", "all")
		require.Len(t, result, 5)
	})

	t.Run(`status narrows the list`, func(t *testing.T) {
		result := FilterAdminJobs(sampleJobs(), "", "draft")
		require.Equal(t, []string{"5"}, ids(result))
	})

	t.Run(`search covers title and location`, func(t *testing.T) {
		result := FilterAdminJobs(sampleJobs(), "devops", "")
		require.Equal(t, []string{"4"}, ids(result))

		result = FilterAdminJobs(sampleJobs(), "são paulo", "")
		require.Equal(t, []string{"2", "5"}, ids(result))
	})

	t.Run(`input slice is not mutated`, func(t *testing.T) {
		jobs := sampleJobs()
		FilterAdminJobs(jobs, "devops", "")
		require.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(jobs))
	})
}
