package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/laneflow/laneflow/pkg/errors"
)

// Collection names.
const (
	processCollection = "processes"
	diagramCollection = "diagrams"
)

// MongoStore persists records in two MongoDB collections. Records use
// their UUID as the document _id, so saves are idempotent upserts.
type MongoStore struct {
	client    *mongo.Client
	processes *mongo.Collection
	diagrams  *mongo.Collection
}

// NewMongoStore connects to MongoDB and pings it before returning.
// An empty database name defaults to "laneflow".
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "mongo store: connection URI is required")
	}
	if database == "" {
		database = "laneflow"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "connect to MongoDB")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "ping MongoDB")
	}

	db := client.Database(database)
	return &MongoStore{
		client:    client,
		processes: db.Collection(processCollection),
		diagrams:  db.Collection(diagramCollection),
	}, nil
}

func (s *MongoStore) SaveProcess(ctx context.Context, rec *ProcessRecord) error {
	if rec == nil {
		return errs.New(errs.ErrCodeInvalidInput, "save process: record is nil")
	}
	rec.stamp()

	_, err := s.processes.ReplaceOne(ctx,
		bson.M{"_id": rec.ID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "save process %q", rec.ID)
	}
	return nil
}

func (s *MongoStore) GetProcess(ctx context.Context, id string) (*ProcessRecord, error) {
	var rec ProcessRecord
	err := s.processes.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.New(errs.ErrCodeProcessNotFound, "process %q not found", id)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "get process %q", id)
	}
	return &rec, nil
}

func (s *MongoStore) ListProcesses(ctx context.Context) ([]*ProcessRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.processes.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "list processes")
	}

	var out []*ProcessRecord
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "decode process list")
	}
	return out, nil
}

func (s *MongoStore) SaveDiagram(ctx context.Context, rec *DiagramRecord) error {
	if rec == nil {
		return errs.New(errs.ErrCodeInvalidInput, "save diagram: record is nil")
	}
	rec.stamp()

	_, err := s.diagrams.ReplaceOne(ctx,
		bson.M{"_id": rec.ID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "save diagram %q", rec.ID)
	}
	return nil
}

func (s *MongoStore) GetDiagram(ctx context.Context, id string) (*DiagramRecord, error) {
	var rec DiagramRecord
	err := s.diagrams.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.New(errs.ErrCodeDiagramNotFound, "diagram %q not found", id)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "get diagram %q", id)
	}
	return &rec, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "disconnect MongoDB")
	}
	return nil
}
