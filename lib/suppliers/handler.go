package suppliershandler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	candidateshandler "job-board-backend/lib/candidates"
	"job-board-backend/lib/docstore"
)

// Provider exports candidate identities to the downstream supplier registry.
// The supplier record keeps its original Portuguese field names; downstream
// consumers read that collection as-is.
type Provider interface {
	// SendForAnalysis creates a supplier record for the candidate (deduplicated
	// by email) and flips the candidate's sentForAnalysis flag. The flag is a
	// one-way transition and is never reset by this flow.
	SendForAnalysis(ctx context.Context, candidateID string) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(candidateshandler.Instance, docstore.Instance)
}

func NewInstance(candidates candidateshandler.Provider, store docstore.Provider) Provider {
	return &impl{
		candidates: candidates,
		store:      store,
	}
}

type impl struct {
	candidates candidateshandler.Provider
	store      docstore.Provider
}

func (i *impl) SendForAnalysis(ctx context.Context, candidateID string) error {
	logger := log.WithField("candidate_id", candidateID)
	candidate, ok := i.candidates.GetByID(candidateID)
	if !ok {
		return errors.New("candidate not found")
	}

	existing, err := i.store.Query(ctx, docstore.SuppliersCollection, map[string]interface{}{"email": candidate.Email})
	if err != nil {
		logger.WithError(err).Error("supplier lookup failed")
		return err
	}
	if len(existing) > 0 {
		logger.Info("supplier already registered, skipping create")
	} else {
		_, err = i.store.Add(ctx, docstore.SuppliersCollection, map[string]interface{}{
			"nome":              candidate.Name,
			"email":             candidate.Email,
			"tipo":              "PF",
			"categoria":         "Recursos Humanos",
			"centroDeCusto":     "RH",
			"phone":             candidate.Phone,
			"candidateId":       candidate.ID,
			"jobId":             candidate.JobID,
			"jobTitle":          candidate.JobTitle,
			"createdAt":         time.Now(),
			"sentForAnalysisAt": time.Now(),
		})
		if err != nil {
			logger.WithError(err).Error("supplier create failed")
			return err
		}
	}

	return i.candidates.Update(ctx, candidate.ID, map[string]interface{}{"sentForAnalysis": true})
}
