package jobshandler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"job-board-backend/lib/docstore"
	entitymapper "job-board-backend/lib/entity-mapper"
	entitymodels "job-board-backend/models/entity"
)

// Provider keeps a live, ordered view of the jobs collection. Every pushed
// snapshot fully replaces the working set; there is no incremental patching.
type Provider interface {
	Start(ctx context.Context) error
	List() []entitymodels.Job
	GetByID(id string) (entitymodels.Job, bool)
	Subscribe() (updates <-chan []entitymodels.Job, unsubscribe func())
	Create(ctx context.Context, job entitymodels.Job) (entitymodels.Job, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(docstore.Instance)
}

func NewInstance(store docstore.Provider) Provider {
	return &impl{
		store: store,
		subs:  map[int]chan []entitymodels.Job{},
	}
}

type impl struct {
	store docstore.Provider

	mu        sync.RWMutex
	jobs      []entitymodels.Job
	subs      map[int]chan []entitymodels.Job
	nextSubID int
}

func (i *impl) Start(ctx context.Context) error {
	updates, cancel, err := i.store.Subscribe(ctx, docstore.JobsCollection)
	if err != nil {
		return errors.Wrap(err, "jobs subscription failed")
	}
	go func() {
		defer cancel()
		for snap := range updates {
			i.applySnapshot(snap)
		}
		log.Info("jobs subscription closed")
	}()
	return nil
}

// applySnapshot rebuilds the whole in-memory list from a pushed snapshot.
// Documents the mapper rejects are logged and skipped; the rest still apply.
func (i *impl) applySnapshot(snap docstore.Snapshot) {
	list := make([]entitymodels.Job, 0, len(snap))
	for _, doc := range snap {
		job, err := entitymapper.JobFromDoc(doc)
		if err != nil {
			log.WithError(err).Error("job document conversion failed")
			continue
		}
		list = append(list, job)
	}
	sortJobs(list)

	i.mu.Lock()
	defer i.mu.Unlock()
	i.jobs = list
	for _, sub := range i.subs {
		select {
		case sub <- copyJobs(list):
		default:
			log.Debug("slow jobs subscriber, update dropped")
		}
	}
}

func (i *impl) List() []entitymodels.Job {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return copyJobs(i.jobs)
}

// GetByID looks up the current in-memory snapshot only; it never reaches the
// store, so ids not yet reflected in the last push report not found.
func (i *impl) GetByID(id string) (entitymodels.Job, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for _, job := range i.jobs {
		if job.ID == id {
			return job, true
		}
	}
	return entitymodels.Job{}, false
}

func (i *impl) Subscribe() (<-chan []entitymodels.Job, func()) {
	i.mu.Lock()
	defer i.mu.Unlock()
	subID := i.nextSubID
	i.nextSubID++
	ch := make(chan []entitymodels.Job, 8)
	i.subs[subID] = ch
	ch <- copyJobs(i.jobs)
	return ch, func() {
		i.mu.Lock()
		defer i.mu.Unlock()
		if sub, ok := i.subs[subID]; ok {
			delete(i.subs, subID)
			close(sub)
		}
	}
}

// Create persists a new job and returns it with the store-assigned id without
// waiting for the next subscription push. The local copy is a read-your-write
// optimistic value; the echoing snapshot carries the same document.
func (i *impl) Create(ctx context.Context, job entitymodels.Job) (entitymodels.Job, error) {
	job.ID = ""
	job.Applications = 0
	job.PostedAt = entitymapper.Today()
	doc := entitymapper.JobToDoc(job)
	doc["createdAt"] = time.Now()
	id, err := i.store.Add(ctx, docstore.JobsCollection, doc)
	if err != nil {
		return entitymodels.Job{}, err
	}
	job.ID = id
	return job, nil
}

// Update merges the given fields into the stored document. updatedAt is
// stamped on every call, even when no other field changes.
func (i *impl) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	cleaned := entitymapper.StripAbsent(fields)
	cleaned["updatedAt"] = time.Now()
	return i.store.Update(ctx, docstore.JobsCollection, id, cleaned)
}

func (i *impl) Delete(ctx context.Context, id string) error {
	return i.store.Delete(ctx, docstore.JobsCollection, id)
}

// sortJobs orders descending by postedAt; ties keep snapshot order.
func sortJobs(list []entitymodels.Job) {
	sort.SliceStable(list, func(a, b int) bool {
		return entitymapper.ParseDate(list[a].PostedAt).After(entitymapper.ParseDate(list[b].PostedAt))
	})
}

func copyJobs(list []entitymodels.Job) []entitymodels.Job {
	out := make([]entitymodels.Job, len(list))
	copy(out, list)
	return out
}
