// Package sql persists graphs in a relational database through gorm.
//
// Two tables hold a graph: GraphNodes (one row per vertex) and GraphEdges (one
// row per adjacency entry, keyed by both endpoints). An undirected edge
// therefore occupies two rows. [Store.Save] replaces both tables in a single
// transaction, so readers never see a half-written graph.
//
// The driver is the pure-Go SQLite port, which needs no cgo:
//
//	s, err := sql.Open("graph.db", logger)
//	defer s.Close()
//	err = s.Save(ctx, g)
//	g, err = s.Load(ctx)
package sql

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// batchSize bounds the rows per INSERT statement.
const batchSize = 500

// ErrClosed is returned by operations on a closed [Store].
var ErrClosed = errors.New("store closed")

// GraphNode is one vertex row.
type GraphNode struct {
	NodeID int `gorm:"column:NodeID;primaryKey;autoIncrement:false"`
}

// TableName implements gorm's tabler.
func (GraphNode) TableName() string { return "GraphNodes" }

// GraphEdge is one adjacency entry row. Deleting either endpoint cascades.
type GraphEdge struct {
	FromNode int `gorm:"column:FromNode;primaryKey;autoIncrement:false"`
	ToNode   int `gorm:"column:ToNode;primaryKey;autoIncrement:false"`
	Weight   int `gorm:"column:Weight;not null"`

	From GraphNode `gorm:"foreignKey:FromNode;references:NodeID;constraint:OnDelete:CASCADE"`
	To   GraphNode `gorm:"foreignKey:ToNode;references:NodeID;constraint:OnDelete:CASCADE"`
}

// TableName implements gorm's tabler.
func (GraphEdge) TableName() string { return "GraphEdges" }

// Store saves and loads a single graph.
type Store struct {
	db     *gorm.DB
	logger *log.Logger
}

// Open connects to the SQLite database at dsn and creates the tables if they
// do not exist. Foreign keys are enabled on the connection. A nil logger
// discards output.
func Open(dsn string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	db, err := gorm.Open(sqlite.Open(withForeignKeys(dsn)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	// SQLite allows one writer, and every connection to ":memory:" would
	// otherwise get its own empty database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&GraphNode{}, &GraphEdge{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Debug("database ready", "dsn", dsn)
	return &Store{db: db, logger: logger}, nil
}

// Save replaces the stored graph with g. Every adjacency entry is written as
// its own row, so directed arcs survive a round trip.
func (s *Store) Save(ctx context.Context, g *graph.Store) error {
	if s.db == nil {
		return ErrClosed
	}
	nodes := make([]GraphNode, 0, g.VertexCount())
	var edges []GraphEdge
	for _, v := range g.InsertionOrder() {
		nodes = append(nodes, GraphNode{NodeID: v})
		for _, n := range g.Neighbors(v) {
			edges = append(edges, GraphEdge{FromNode: v, ToNode: n.ID, Weight: n.Weight})
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&GraphEdge{}).Error; err != nil {
			return fmt.Errorf("clear edges: %w", err)
		}
		if err := all.Delete(&GraphNode{}).Error; err != nil {
			return fmt.Errorf("clear nodes: %w", err)
		}
		if len(nodes) > 0 {
			if err := tx.CreateInBatches(nodes, batchSize).Error; err != nil {
				return fmt.Errorf("insert nodes: %w", err)
			}
		}
		if len(edges) > 0 {
			if err := tx.Omit(clause.Associations).CreateInBatches(edges, batchSize).Error; err != nil {
				return fmt.Errorf("insert edges: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save graph: %w", err)
	}
	s.logger.Debug("saved graph", "vertices", len(nodes), "entries", len(edges))
	return nil
}

// Load reads the stored graph. Vertices are added first in ascending id
// order, then each edge row is replayed as a directed entry. An empty
// database yields an empty graph.
func (s *Store) Load(ctx context.Context) (*graph.Store, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	db := s.db.WithContext(ctx)

	var nodes []GraphNode
	if err := db.Order(`"NodeID"`).Find(&nodes).Error; err != nil {
		return nil, fmt.Errorf("load nodes: %w", err)
	}
	var edges []GraphEdge
	if err := db.Order(`"FromNode", "ToNode"`).Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("load edges: %w", err)
	}

	g := graph.New()
	for _, n := range nodes {
		g.AddVertex(n.NodeID)
	}
	for _, e := range edges {
		if err := g.AddEdge(e.FromNode, e.ToNode, e.Weight, true); err != nil {
			return nil, fmt.Errorf("load edge %d->%d: %w", e.FromNode, e.ToNode, err)
		}
	}
	s.logger.Debug("loaded graph", "vertices", len(nodes), "entries", len(edges))
	return g, nil
}

// Close releases the database connection. Calling Close twice is safe.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	s.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
