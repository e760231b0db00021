package candidateshandler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"job-board-backend/lib/docstore"
	entitymapper "job-board-backend/lib/entity-mapper"
	"job-board-backend/models"
	entitymodels "job-board-backend/models/entity"
)

// Provider keeps a live view of the whole applications collection. The
// subscription carries no server-side filter, so all applications across all
// jobs sit in memory; acceptable at moderate volume, and per-job views use
// GetByJobID for an authoritative independent fetch instead.
type Provider interface {
	Start(ctx context.Context) error
	List() []entitymodels.Candidate
	GetByID(id string) (entitymodels.Candidate, bool)
	Subscribe() (updates <-chan []entitymodels.Candidate, unsubscribe func())
	Create(ctx context.Context, candidate entitymodels.Candidate) (entitymodels.Candidate, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	GetByJobID(ctx context.Context, jobID string) ([]entitymodels.Candidate, error)
	GetByUserID(ctx context.Context, userID string) ([]entitymodels.Candidate, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(docstore.Instance)
}

func NewInstance(store docstore.Provider) Provider {
	return &impl{
		store: store,
		subs:  map[int]chan []entitymodels.Candidate{},
	}
}

type impl struct {
	store docstore.Provider

	mu         sync.RWMutex
	candidates []entitymodels.Candidate
	subs       map[int]chan []entitymodels.Candidate
	nextSubID  int
}

func (i *impl) Start(ctx context.Context) error {
	updates, cancel, err := i.store.Subscribe(ctx, docstore.ApplicationsCollection)
	if err != nil {
		return errors.Wrap(err, "applications subscription failed")
	}
	go func() {
		defer cancel()
		for snap := range updates {
			i.applySnapshot(snap)
		}
		log.Info("applications subscription closed")
	}()
	return nil
}

func (i *impl) applySnapshot(snap docstore.Snapshot) {
	list := make([]entitymodels.Candidate, 0, len(snap))
	for _, doc := range snap {
		candidate, err := entitymapper.CandidateFromDoc(doc)
		if err != nil {
			log.WithError(err).Error("application document conversion failed")
			continue
		}
		list = append(list, candidate)
	}
	sortCandidates(list)

	i.mu.Lock()
	defer i.mu.Unlock()
	i.candidates = list
	for _, sub := range i.subs {
		select {
		case sub <- copyCandidates(list):
		default:
			log.Debug("slow candidates subscriber, update dropped")
		}
	}
}

func (i *impl) List() []entitymodels.Candidate {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return copyCandidates(i.candidates)
}

func (i *impl) GetByID(id string) (entitymodels.Candidate, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for _, candidate := range i.candidates {
		if candidate.ID == id {
			return candidate, true
		}
	}
	return entitymodels.Candidate{}, false
}

func (i *impl) Subscribe() (<-chan []entitymodels.Candidate, func()) {
	i.mu.Lock()
	defer i.mu.Unlock()
	subID := i.nextSubID
	i.nextSubID++
	ch := make(chan []entitymodels.Candidate, 8)
	i.subs[subID] = ch
	ch <- copyCandidates(i.candidates)
	return ch, func() {
		i.mu.Lock()
		defer i.mu.Unlock()
		if sub, ok := i.subs[subID]; ok {
			delete(i.subs, subID)
			close(sub)
		}
	}
}

func (i *impl) Create(ctx context.Context, candidate entitymodels.Candidate) (entitymodels.Candidate, error) {
	candidate.ID = ""
	if candidate.Status == "" {
		candidate.Status = models.CandidateStatusNew
	}
	id, err := i.store.Add(ctx, docstore.ApplicationsCollection, entitymapper.CandidateToDoc(candidate))
	if err != nil {
		return entitymodels.Candidate{}, err
	}
	candidate.ID = id
	candidate.AppliedAt = entitymapper.Today()
	return candidate, nil
}

// Update merges the given fields into the stored application. updatedAt is
// stamped on every call, even when no other field changes.
func (i *impl) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	cleaned := entitymapper.StripAbsent(fields)
	cleaned["updatedAt"] = time.Now()
	return i.store.Update(ctx, docstore.ApplicationsCollection, id, cleaned)
}

func (i *impl) Delete(ctx context.Context, id string) error {
	return i.store.Delete(ctx, docstore.ApplicationsCollection, id)
}

// GetByJobID is a one-shot query against the store, bypassing the live view.
func (i *impl) GetByJobID(ctx context.Context, jobID string) ([]entitymodels.Candidate, error) {
	return i.queryBy(ctx, map[string]interface{}{"jobId": jobID})
}

// GetByUserID lists one user's applications across all jobs.
func (i *impl) GetByUserID(ctx context.Context, userID string) ([]entitymodels.Candidate, error) {
	return i.queryBy(ctx, map[string]interface{}{"candidateUserId": userID})
}

func (i *impl) queryBy(ctx context.Context, filter map[string]interface{}) ([]entitymodels.Candidate, error) {
	docs, err := i.store.Query(ctx, docstore.ApplicationsCollection, filter)
	if err != nil {
		return nil, err
	}
	list := make([]entitymodels.Candidate, 0, len(docs))
	for _, doc := range docs {
		candidate, err := entitymapper.CandidateFromDoc(doc)
		if err != nil {
			log.WithError(err).Error("application document conversion failed")
			continue
		}
		list = append(list, candidate)
	}
	sortCandidates(list)
	return list, nil
}

func sortCandidates(list []entitymodels.Candidate) {
	sort.SliceStable(list, func(a, b int) bool {
		return entitymapper.ParseDate(list[a].AppliedAt).After(entitymapper.ParseDate(list[b].AppliedAt))
	})
}

func copyCandidates(list []entitymodels.Candidate) []entitymodels.Candidate {
	out := make([]entitymodels.Candidate, len(list))
	copy(out, list)
	return out
}
