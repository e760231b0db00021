package mongoclient

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"job-board-backend/lib/docstore"
)

// NewClient connects to the hosted document database. Change streams back the
// subscription contract, so the URI must point at a replica set.
func NewClient(ctx context.Context, uri, database string) (docstore.Provider, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "document store connection failed")
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "document store is unreachable")
	}
	return &impl{db: client.Database(database)}, nil
}

type impl struct {
	db *mongo.Database
}

func (i *impl) Subscribe(ctx context.Context, collection string) (<-chan docstore.Snapshot, func(), error) {
	streamCtx, cancel := context.WithCancel(ctx)
	stream, err := i.db.Collection(collection).Watch(streamCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, nil, errors.Wrap(err, "change stream open failed")
	}
	updates := make(chan docstore.Snapshot, 8)
	go i.pump(streamCtx, collection, stream, updates)
	return updates, cancel, nil
}

// pump delivers the current snapshot, then a fresh full snapshot per change
// event. An error ends only this stream; other subscriptions keep running.
func (i *impl) pump(ctx context.Context, collection string, stream *mongo.ChangeStream, updates chan docstore.Snapshot) {
	logger := log.WithField("collection", collection)
	defer close(updates)
	defer func() {
		if err := stream.Close(context.Background()); err != nil {
			logger.WithError(err).Error("change stream close failed")
		}
	}()

	push := func() bool {
		snap, err := i.fetchAll(ctx, collection)
		if err != nil {
			logger.WithError(err).Error("snapshot fetch failed")
			return false
		}
		select {
		case updates <- snap:
		case <-ctx.Done():
			return false
		}
		return true
	}
	if !push() {
		return
	}
	for stream.Next(ctx) {
		if !push() {
			return
		}
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		logger.WithError(err).Error("change stream ended")
	}
}

func (i *impl) fetchAll(ctx context.Context, collection string) (docstore.Snapshot, error) {
	cursor, err := i.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var raw []bson.M
	if err = cursor.All(ctx, &raw); err != nil {
		return nil, err
	}
	snap := docstore.Snapshot{}
	for _, item := range raw {
		snap = append(snap, toDocument(item))
	}
	return snap, nil
}

func (i *impl) Query(ctx context.Context, collection string, filter map[string]interface{}) ([]docstore.Document, error) {
	cursor, err := i.db.Collection(collection).Find(ctx, bson.M(filter))
	if err != nil {
		return nil, err
	}
	var raw []bson.M
	if err = cursor.All(ctx, &raw); err != nil {
		return nil, err
	}
	var result []docstore.Document
	for _, item := range raw {
		result = append(result, toDocument(item))
	}
	return result, nil
}

func (i *impl) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	if err := docstore.CheckFields(data); err != nil {
		return "", err
	}
	res, err := i.db.Collection(collection).InsertOne(ctx, bson.M(data))
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

func (i *impl) Update(ctx context.Context, collection string, id string, fields map[string]interface{}) error {
	if err := docstore.CheckFields(fields); err != nil {
		return err
	}
	res, err := i.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": docID(id)}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.Errorf("document %s not found in %s", id, collection)
	}
	return nil
}

func (i *impl) Delete(ctx context.Context, collection string, id string) error {
	res, err := i.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": docID(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.Errorf("document %s not found in %s", id, collection)
	}
	return nil
}

func docID(id string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

func toDocument(raw bson.M) docstore.Document {
	doc := docstore.Document{Data: map[string]interface{}{}}
	for key, value := range raw {
		if key == "_id" {
			if oid, ok := value.(primitive.ObjectID); ok {
				doc.ID = oid.Hex()
			} else {
				doc.ID = fmt.Sprintf("%v", value)
			}
			continue
		}
		doc.Data[key] = normalizeValue(value)
	}
	return doc
}

// normalizeValue converts driver-specific types so the mapper only ever sees
// plain Go values.
func normalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case primitive.DateTime:
		return v.Time()
	case primitive.Timestamp:
		return int64(v.T) * 1000
	case primitive.ObjectID:
		return v.Hex()
	case primitive.A:
		out := make([]interface{}, 0, len(v))
		for _, item := range v {
			out = append(out, normalizeValue(item))
		}
		return out
	case bson.M:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[key] = normalizeValue(item)
		}
		return out
	case bson.D:
		out := make(map[string]interface{}, len(v))
		for _, elem := range v {
			out[elem.Key] = normalizeValue(elem.Value)
		}
		return out
	default:
		return value
	}
}
