// Package mongo keeps named graph snapshots in a MongoDB collection.
//
// Each snapshot is one document holding the graph in the same shape as the
// JSON exchange format. Saving under an existing name adds a new version;
// [Store.Load] returns the newest.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/graphdesk/pkg/cache"
	"github.com/matzehuels/graphdesk/pkg/graph"
	graphio "github.com/matzehuels/graphdesk/pkg/io"
)

// Defaults used when [Options] leaves a field empty.
const (
	DefaultDatabase   = "graphdesk"
	DefaultCollection = "snapshots"
)

// ErrSnapshotNotFound is returned by [Store.Load] and [Store.Delete] when no
// snapshot has the requested name.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Options configures the connection.
type Options struct {
	URI        string
	Database   string
	Collection string
}

// Snapshot is one stored version of a graph.
type Snapshot struct {
	ID        string           `bson:"_id" json:"id"`
	Name      string           `bson:"name" json:"name"`
	CreatedAt time.Time        `bson:"created_at" json:"created_at"`
	Vertices  int              `bson:"vertex_count" json:"vertex_count"`
	Edges     int              `bson:"edge_count" json:"edge_count"`
	Graph     graphio.Document `bson:"graph" json:"graph"`
}

// Store saves and loads snapshots.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *log.Logger
	now    func() time.Time
}

// Connect dials MongoDB, retrying transient failures, and ensures the
// name/created_at index exists. A nil logger discards output.
func Connect(ctx context.Context, opts Options, logger *log.Logger) (*Store, error) {
	if opts.URI == "" {
		return nil, errors.New("mongo: URI is required")
	}
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo index: %w", err)
	}

	logger.Debug("connected to mongo", "database", opts.Database, "collection", opts.Collection)
	return &Store{client: client, coll: coll, logger: logger, now: time.Now}, nil
}

// Save stores g as a new version of the named snapshot and returns it.
func (s *Store) Save(ctx context.Context, name string, g *graph.Store) (Snapshot, error) {
	snap := Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
		Vertices:  g.VertexCount(),
		Edges:     g.EdgeCount(),
		Graph:     graphio.FromStore(g),
	}
	if _, err := s.coll.InsertOne(ctx, snap); err != nil {
		return Snapshot{}, fmt.Errorf("save snapshot %q: %w", name, err)
	}
	s.logger.Debug("saved snapshot", "name", name, "id", snap.ID)
	return snap, nil
}

// Load returns the newest version of the named snapshot as a graph.
func (s *Store) Load(ctx context.Context, name string) (*graph.Store, Snapshot, error) {
	var snap Snapshot
	err := s.coll.FindOne(ctx, bson.M{"name": name},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, Snapshot{}, fmt.Errorf("load %q: %w", name, ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, Snapshot{}, fmt.Errorf("load %q: %w", name, err)
	}

	g, err := snap.Graph.ToStore()
	if err != nil {
		return nil, Snapshot{}, fmt.Errorf("load %q: %w", name, err)
	}
	return g, snap, nil
}

// List returns every stored version, newest first, without graph bodies.
func (s *Store) List(ctx context.Context) ([]Snapshot, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"graph": 0}))
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	var out []Snapshot
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return out, nil
}

// Delete removes every version of the named snapshot.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteMany(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete %q: %w", name, ErrSnapshotNotFound)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
