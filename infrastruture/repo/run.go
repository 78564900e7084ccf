package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	writeTimeout = time.Second
	readTimeout  = 2 * time.Second
)

// RunRepo handles the persistence of finished runs.
type RunRepo struct {
	collection *mongo.Collection
}

var _ i.RunRepo = &RunRepo{}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RunRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the index backing the leaderboard query.
func (r *RunRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "rows", Value: 1}, {Key: "cols", Value: 1}, {Key: "moves", Value: 1}},
	})
	return err
}

// Save inserts or updates a run in the repository.
func (r *RunRepo) Save(ctx context.Context, run *dmn.RunRecord) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	filter := bson.M{"_id": run.ID}
	update := bson.M{
		"$set": bson.M{
			"rows":       run.Rows,
			"cols":       run.Cols,
			"moves":      run.Moves,
			"blocked":    run.Blocked,
			"rotations":  run.Rotations,
			"visited":    run.Visited,
			"startedAt":  run.StartedAt,
			"finishedAt": run.FinishedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("saving run %s: %w", run.ID, err)
	}
	return nil
}

// ByID retrieves a run by its session ID.
func (r *RunRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.RunRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var run dmn.RunRecord
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&run); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrRunNotFound
		}
		return nil, fmt.Errorf("loading run %s: %w", id, err)
	}
	return &run, nil
}

// Best returns up to limit runs through rows x cols mazes, fewest moves first
// and earliest finish breaking ties.
func (r *RunRepo) Best(ctx context.Context, rows, cols int, limit int64) ([]*dmn.RunRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	filter := bson.M{"rows": rows, "cols": cols}
	opts := options.Find().
		SetSort(bson.D{{Key: "moves", Value: 1}, {Key: "finishedAt", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	runs := make([]*dmn.RunRecord, 0)
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("decoding runs: %w", err)
	}
	return runs, nil
}
