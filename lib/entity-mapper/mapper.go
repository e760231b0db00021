package entitymapper

import (
	"fmt"
	"strings"
	"time"

	"job-board-backend/lib/docstore"
	"job-board-backend/models"
	entitymodels "job-board-backend/models/entity"
)

const dateLayout = "2006-01-02"

// customFieldPrefix marks flattened dynamic-field values on application documents.
const customFieldPrefix = "customField_"

// MappingError reports a document that cannot be converted to an entity.
// Callers log it and skip the document; the rest of the snapshot still applies.
type MappingError struct {
	DocID  string
	Reason string
}

func (e MappingError) Error() string {
	return fmt.Sprintf("document %s: %s", e.DocID, e.Reason)
}

// JobFromDoc converts a raw job document, substituting defaults for missing
// fields: status falls back to draft, counters to zero, optional text to "".
func JobFromDoc(doc docstore.Document) (entitymodels.Job, error) {
	if len(doc.Data) == 0 {
		return entitymodels.Job{}, MappingError{DocID: doc.ID, Reason: "document has no data"}
	}
	data := doc.Data
	job := entitymodels.Job{
		ID:           doc.ID,
		Title:        strField(data, "title"),
		Location:     strField(data, "location"),
		Status:       models.JobStatus(strField(data, "status")),
		Applications: intField(data, "applications"),
		Description:  strField(data, "description"),
		Requirements: strField(data, "requirements"),
		ContactEmail: strField(data, "contactEmail"),
		Website:      strField(data, "website"),
		CustomFields: dynamicFields(data["customFields"]),
	}
	if job.Status == "" {
		job.Status = models.JobStatusDraft
	}
	if posted, ok := data["postedAt"]; ok {
		job.PostedAt = NormalizeDate(posted)
	} else {
		job.PostedAt = NormalizeDate(data["createdAt"])
	}
	return job, nil
}

// CandidateFromDoc converts a raw application document. It accepts both the
// canonical field names and the alternates older documents carry
// (name/candidateName, resume/resumeUrl).
func CandidateFromDoc(doc docstore.Document) (entitymodels.Candidate, error) {
	if len(doc.Data) == 0 {
		return entitymodels.Candidate{}, MappingError{DocID: doc.ID, Reason: "document has no data"}
	}
	data := doc.Data
	candidate := entitymodels.Candidate{
		ID:              doc.ID,
		Name:            strField(data, "candidateName", "name"),
		Email:           strField(data, "candidateEmail", "email"),
		Phone:           strField(data, "candidatePhone", "phone"),
		JobID:           strField(data, "jobId"),
		JobTitle:        strField(data, "jobTitle"),
		Company:         strField(data, "company"),
		Status:          models.CandidateStatus(strField(data, "status")),
		AppliedAt:       NormalizeDate(data["appliedAt"]),
		Resume:          strField(data, "resumeUrl", "resume"),
		Experience:      strField(data, "experience"),
		Education:       strField(data, "education"),
		Notes:           strField(data, "notes"),
		CandidateID:     strField(data, "candidateId"),
		CandidateUserID: strField(data, "candidateUserId"),
		SentForAnalysis: boolField(data, "sentForAnalysis"),
	}
	if candidate.Status == "" {
		candidate.Status = models.CandidateStatusNew
	}
	for key, value := range data {
		if !strings.HasPrefix(key, customFieldPrefix) {
			continue
		}
		if candidate.CustomFieldsData == nil {
			candidate.CustomFieldsData = map[string]interface{}{}
		}
		candidate.CustomFieldsData[strings.TrimPrefix(key, customFieldPrefix)] = value
	}
	return candidate, nil
}

// JobToDoc prepares a job for persistence. Optional text is normalized to "",
// an empty custom-field list is omitted entirely, and updatedAt is stamped.
func JobToDoc(job entitymodels.Job) map[string]interface{} {
	doc := map[string]interface{}{
		"title":        job.Title,
		"location":     job.Location,
		"status":       string(job.Status),
		"applications": job.Applications,
		"postedAt":     job.PostedAt,
		"description":  job.Description,
		"requirements": job.Requirements,
		"contactEmail": job.ContactEmail,
		"website":      job.Website,
		"updatedAt":    time.Now(),
	}
	if len(job.CustomFields) > 0 {
		fields := make([]interface{}, 0, len(job.CustomFields))
		for _, field := range job.CustomFields {
			fields = append(fields, map[string]interface{}{
				"id":       field.ID,
				"label":    field.Label,
				"type":     string(field.Type),
				"required": field.Required,
			})
		}
		doc["customFields"] = fields
	}
	return StripAbsent(doc)
}

// CandidateToDoc prepares an application for persistence, flattening the
// dynamic-field values back into customField_<id> keys.
func CandidateToDoc(candidate entitymodels.Candidate) map[string]interface{} {
	now := time.Now()
	doc := map[string]interface{}{
		"candidateId":     candidate.CandidateID,
		"candidateUserId": candidate.CandidateUserID,
		"candidateName":   candidate.Name,
		"candidateEmail":  candidate.Email,
		"candidatePhone":  candidate.Phone,
		"jobId":           candidate.JobID,
		"jobTitle":        candidate.JobTitle,
		"company":         candidate.Company,
		"status":          string(candidate.Status),
		"experience":      candidate.Experience,
		"education":       candidate.Education,
		"notes":           candidate.Notes,
		"resumeUrl":       candidate.Resume,
		"sentForAnalysis": candidate.SentForAnalysis,
		"appliedAt":       now,
		"createdAt":       now,
		"updatedAt":       now,
	}
	for fieldID, value := range candidate.CustomFieldsData {
		doc[customFieldPrefix+fieldID] = value
	}
	return StripAbsent(doc)
}

// StripAbsent removes nil-valued keys; the store rejects explicit "no value"
// markers, so omission is the only accepted encoding.
func StripAbsent(doc map[string]interface{}) map[string]interface{} {
	cleaned := make(map[string]interface{}, len(doc))
	for key, value := range doc {
		if value != nil {
			cleaned[key] = value
		}
	}
	return cleaned
}

// NormalizeDate folds the date representations found in stored documents
// (native timestamps, ISO strings, epoch millis, absent) into YYYY-MM-DD.
// A wholly absent date becomes the current date.
func NormalizeDate(value interface{}) string {
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Format(dateLayout)
	case string:
		if v == "" {
			return time.Now().UTC().Format(dateLayout)
		}
		if idx := strings.IndexByte(v, 'T'); idx > 0 {
			return v[:idx]
		}
		return v
	case int64:
		return time.UnixMilli(v).UTC().Format(dateLayout)
	case float64:
		return time.UnixMilli(int64(v)).UTC().Format(dateLayout)
	default:
		return time.Now().UTC().Format(dateLayout)
	}
}

// ParseDate turns a normalized calendar-date string back into a time for
// sorting. Unparseable input sorts last via the zero time.
func ParseDate(date string) time.Time {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Today returns the current calendar date in storage format.
func Today() string {
	return time.Now().UTC().Format(dateLayout)
}

func strField(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := data[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func intField(data map[string]interface{}, key string) int {
	switch v := data[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func boolField(data map[string]interface{}, key string) bool {
	value, _ := data[key].(bool)
	return value
}

func dynamicFields(value interface{}) []entitymodels.DynamicField {
	items, ok := value.([]interface{})
	if !ok || len(items) == 0 {
		return nil
	}
	fields := make([]entitymodels.DynamicField, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		fields = append(fields, entitymodels.DynamicField{
			ID:       strField(raw, "id"),
			Label:    strField(raw, "label"),
			Type:     models.DynamicFieldType(strField(raw, "type")),
			Required: boolField(raw, "required"),
		})
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
