package models

import "github.com/pkg/errors"

type JobStatus string

const (
	JobStatusActive   JobStatus = "active"
	JobStatusInactive JobStatus = "inactive"
	JobStatusDraft    JobStatus = "draft"
)

func (s JobStatus) Validate() error {
	switch s {
	case JobStatusActive, JobStatusInactive, JobStatusDraft:
		return nil
	}
	return errors.Errorf("unknown job status: %v", s)
}

type CandidateStatus string

// Pipeline order: new → technical_evaluation → technical_analysis → interview → approved/homologated/rejected.
// Transitions are not restricted; the admin may move a candidate between any two statuses.
const (
	CandidateStatusNew                 CandidateStatus = "new"
	CandidateStatusTechnicalEvaluation CandidateStatus = "technical_evaluation"
	CandidateStatusTechnicalAnalysis   CandidateStatus = "technical_analysis"
	CandidateStatusInterview           CandidateStatus = "interview"
	CandidateStatusApproved            CandidateStatus = "approved"
	CandidateStatusHomologated         CandidateStatus = "homologated"
	CandidateStatusRejected            CandidateStatus = "rejected"
)

func (s CandidateStatus) Validate() error {
	switch s {
	case CandidateStatusNew, CandidateStatusTechnicalEvaluation, CandidateStatusTechnicalAnalysis,
		CandidateStatusInterview, CandidateStatusApproved, CandidateStatusHomologated, CandidateStatusRejected:
		return nil
	}
	return errors.Errorf("unknown candidate status: %v", s)
}

type DynamicFieldType string

const (
	DynamicFieldText    DynamicFieldType = "text"
	DynamicFieldBoolean DynamicFieldType = "boolean"
	DynamicFieldFile    DynamicFieldType = "file"
)

func (t DynamicFieldType) Validate() error {
	switch t {
	case DynamicFieldText, DynamicFieldBoolean, DynamicFieldFile:
		return nil
	}
	return errors.Errorf("unknown dynamic field type: %v", t)
}
