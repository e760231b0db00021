package jobfilter

import (
	"strings"

	"job-board-backend/models"
	entitymodels "job-board-backend/models/entity"
)

// RemoteLocation is the sentinel location value denoting remote work.
const RemoteLocation = "Remoto"

// Filter carries the public listing's search controls.
type Filter struct {
	SearchTerm         string
	LocationSelections []string
	LocationQuery      string
	RequirementsQuery  string
}

// FilterJobs derives the public, displayable subset of jobs. Stages run in
// order, each on the previous stage's output, and none reorders: the input's
// descending postedAt order is preserved.
//
//  1. only active jobs are listed;
//  2. search term: case-insensitive substring over title, description or
//     requirements (OR);
//  3. location: exact multi-select membership when selections exist, otherwise
//     case-insensitive substring on the free-text query;
//  4. requirements query: comma-separated terms, keep jobs whose non-empty
//     requirements contain at least one term (OR, not AND).
func FilterJobs(jobs []entitymodels.Job, filter Filter) []entitymodels.Job {
	result := make([]entitymodels.Job, 0, len(jobs))
	for _, job := range jobs {
		if job.Status == models.JobStatusActive {
			result = append(result, job)
		}
	}

	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		result = keep(result, func(job entitymodels.Job) bool {
			return containsFold(job.Title, term) ||
				containsFold(job.Description, term) ||
				containsFold(job.Requirements, term)
		})
	}

	if len(filter.LocationSelections) > 0 {
		result = keep(result, func(job entitymodels.Job) bool {
			for _, location := range filter.LocationSelections {
				if job.Location == location {
					return true
				}
			}
			return false
		})
	} else if query := strings.TrimSpace(filter.LocationQuery); query != "" {
		result = keep(result, func(job entitymodels.Job) bool {
			return containsFold(job.Location, query)
		})
	}

	if terms := splitTerms(filter.RequirementsQuery); len(terms) > 0 {
		result = keep(result, func(job entitymodels.Job) bool {
			if job.Requirements == "" {
				return false
			}
			for _, term := range terms {
				if containsFold(job.Requirements, term) {
					return true
				}
			}
			return false
		})
	}

	return result
}

// FilterAdminJobs narrows the dashboard job list. The status "all" (or empty)
// keeps every job; drafts and inactive jobs stay visible to admins.
func FilterAdminJobs(jobs []entitymodels.Job, searchTerm, status string) []entitymodels.Job {
	result := make([]entitymodels.Job, len(jobs))
	copy(result, jobs)

	if term := strings.TrimSpace(searchTerm); term != "" {
		result = keep(result, func(job entitymodels.Job) bool {
			return containsFold(job.Title, term) || containsFold(job.Location, term)
		})
	}
	if status != "" && status != "all" {
		result = keep(result, func(job entitymodels.Job) bool {
			return string(job.Status) == status
		})
	}
	return result
}

func keep(jobs []entitymodels.Job, match func(entitymodels.Job) bool) []entitymodels.Job {
	result := jobs[:0]
	for _, job := range jobs {
		if match(job) {
			result = append(result, job)
		}
	}
	return result
}

func splitTerms(query string) []string {
	var terms []string
	for _, part := range strings.Split(query, ",") {
		if term := strings.TrimSpace(part); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
