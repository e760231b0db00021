package memclient

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"job-board-backend/lib/docstore"
)

// NewClient returns an in-memory document store. It backs local development
// runs and the test suites; the contract matches the mongo driver, including
// the rejection of nil-valued fields and full-snapshot subscription pushes.
func NewClient() docstore.Provider {
	return &impl{
		collections: map[string]map[string]map[string]interface{}{},
		subs:        map[string]map[int]chan docstore.Snapshot{},
	}
}

type impl struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]interface{} //map[collection]map[docID]data
	subs        map[string]map[int]chan docstore.Snapshot
	nextSubID   int
}

func (i *impl) Subscribe(ctx context.Context, collection string) (<-chan docstore.Snapshot, func(), error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.subs[collection] == nil {
		i.subs[collection] = map[int]chan docstore.Snapshot{}
	}
	subID := i.nextSubID
	i.nextSubID++
	ch := make(chan docstore.Snapshot, 16)
	i.subs[collection][subID] = ch
	ch <- i.snapshotLocked(collection)

	cancel := func() {
		i.mu.Lock()
		defer i.mu.Unlock()
		if sub, ok := i.subs[collection][subID]; ok {
			delete(i.subs[collection], subID)
			close(sub)
		}
	}
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ch, cancel, nil
}

func (i *impl) Query(ctx context.Context, collection string, filter map[string]interface{}) ([]docstore.Document, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	var result []docstore.Document
	for id, data := range i.collections[collection] {
		matched := true
		for key, want := range filter {
			if data[key] != want {
				matched = false
				break
			}
		}
		if matched {
			result = append(result, docstore.Document{ID: id, Data: copyData(data)})
		}
	}
	return result, nil
}

func (i *impl) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	if err := docstore.CheckFields(data); err != nil {
		return "", err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.collections[collection] == nil {
		i.collections[collection] = map[string]map[string]interface{}{}
	}
	id := uuid.NewString()
	i.collections[collection][id] = copyData(data)
	i.notifyLocked(collection)
	return id, nil
}

func (i *impl) Update(ctx context.Context, collection string, id string, fields map[string]interface{}) error {
	if err := docstore.CheckFields(fields); err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	doc, ok := i.collections[collection][id]
	if !ok {
		return errors.Errorf("document %s not found in %s", id, collection)
	}
	for key, value := range fields {
		doc[key] = value
	}
	i.notifyLocked(collection)
	return nil
}

func (i *impl) Delete(ctx context.Context, collection string, id string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.collections[collection][id]; !ok {
		return errors.Errorf("document %s not found in %s", id, collection)
	}
	delete(i.collections[collection], id)
	i.notifyLocked(collection)
	return nil
}

func (i *impl) snapshotLocked(collection string) docstore.Snapshot {
	snap := docstore.Snapshot{}
	for id, data := range i.collections[collection] {
		snap = append(snap, docstore.Document{ID: id, Data: copyData(data)})
	}
	return snap
}

func (i *impl) notifyLocked(collection string) {
	snap := i.snapshotLocked(collection)
	for _, sub := range i.subs[collection] {
		select {
		case sub <- snap:
		default:
			log.WithField("collection", collection).Debug("slow subscriber, snapshot dropped")
		}
	}
}

func copyData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for key, value := range data {
		out[key] = value
	}
	return out
}
