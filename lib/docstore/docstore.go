package docstore

import (
	"context"

	"github.com/pkg/errors"
)

const (
	JobsCollection         = "dot_jobs"
	ApplicationsCollection = "job_applications"
	ProfilesCollection     = "candidates"
	SuppliersCollection    = "suppliers"
)

// Document is one raw record of a collection. Data never contains nil values:
// absence of a key is the canonical "no value" encoding on the wire.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Snapshot is the full current set of documents in a collection as delivered
// by a subscription push. Consumers rebuild their whole state from it.
type Snapshot []Document

// Provider is the remote document store boundary. Writes reject documents
// carrying nil-valued fields; callers strip those before calling.
type Provider interface {
	// Subscribe establishes a standing subscription to a collection. The first
	// message carries the current snapshot; every subsequent change pushes a
	// fresh full snapshot. cancel tears the subscription down and must be
	// called on consumer shutdown.
	Subscribe(ctx context.Context, collection string) (updates <-chan Snapshot, cancel func(), err error)
	// Query runs a one-shot equality-filtered read, independent of subscriptions.
	Query(ctx context.Context, collection string, filter map[string]interface{}) ([]Document, error)
	Add(ctx context.Context, collection string, data map[string]interface{}) (id string, err error)
	Update(ctx context.Context, collection string, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, collection string, id string) error
}

var Instance Provider

// CheckFields rejects nil-valued fields ahead of a write.
func CheckFields(data map[string]interface{}) error {
	for key, value := range data {
		if value == nil {
			return errors.Errorf("field %q has no value; omit it instead", key)
		}
	}
	return nil
}
