package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	gderrors "github.com/matzehuels/graphdesk/pkg/errors"
	"github.com/matzehuels/graphdesk/pkg/graph"
	graphio "github.com/matzehuels/graphdesk/pkg/io"
	"github.com/matzehuels/graphdesk/pkg/storage/mongo"
	"github.com/matzehuels/graphdesk/pkg/storage/sql"
)

// dbFlags selects the storage backend of a db subcommand.
type dbFlags struct {
	dsn  string // SQLite database; overrides [database].dsn
	name string // MongoDB snapshot name; selects the mongo backend
}

// dbCommand creates the db command for persisting graphs.
func (c *CLI) dbCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Save and load graphs in a database",
		Long: `Save and load graphs in a database.

Without --name graphs go to the SQLite database configured in [database]
(or --dsn), which holds exactly one graph. With --name they go to MongoDB as
named snapshots, keeping every saved version.`,
	}

	cmd.AddCommand(c.dbSaveCommand())
	cmd.AddCommand(c.dbLoadCommand())
	cmd.AddCommand(c.dbListCommand())
	cmd.AddCommand(c.dbDeleteCommand())

	return cmd
}

func addDBFlags(cmd *cobra.Command, f *dbFlags) {
	cmd.Flags().StringVar(&f.dsn, "dsn", "", "SQLite database file (default from config)")
	cmd.Flags().StringVar(&f.name, "name", "", "MongoDB snapshot name")
}

func (c *CLI) dbSaveCommand() *cobra.Command {
	var f dbFlags

	cmd := &cobra.Command{
		Use:   "save [graph file]",
		Short: "Store a graph file in the database",
		Example: `  graphdesk db save graph.txt
  graphdesk db save graph.json --name nightly`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := c.loadGraph(ctx, args[0])
			if err != nil {
				return err
			}
			if f.name != "" {
				return c.saveSnapshot(ctx, f.name, g)
			}
			return c.saveSQL(ctx, c.dsn(f), g)
		},
	}

	addDBFlags(cmd, &f)
	return cmd
}

func (c *CLI) dbLoadCommand() *cobra.Command {
	var f dbFlags

	cmd := &cobra.Command{
		Use:   "load [output file]",
		Short: "Write the stored graph to a file",
		Example: `  graphdesk db load graph.csv
  graphdesk db load graph.json --name nightly`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := args[0]
			if err := gderrors.ValidatePath(out); err != nil {
				return err
			}

			ctx := cmd.Context()
			var (
				g   *graph.Store
				err error
			)
			if f.name != "" {
				g, err = c.loadSnapshot(ctx, f.name)
			} else {
				g, err = c.loadSQL(ctx, c.dsn(f))
			}
			if err != nil {
				return err
			}

			if err := graphio.ExportFile(g, out); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			printSuccess("Loaded graph")
			printFile(out)
			printStats(g.VertexCount(), g.EdgeCount(), nil)
			return nil
		},
	}

	addDBFlags(cmd, &f)
	return cmd
}

func (c *CLI) dbListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List MongoDB snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.connectMongo(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			snaps, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				printInfo("No snapshots")
				return nil
			}
			for _, s := range snaps {
				printKeyValue(s.Name, fmt.Sprintf("%d vertices, %d edges  %s",
					s.Vertices, s.Edges, StyleDim.Render(s.CreatedAt.Format("2006-01-02 15:04:05"))))
			}
			return nil
		},
	}
}

func (c *CLI) dbDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete every MongoDB snapshot with the given name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := gderrors.ValidateSnapshotName(name); err != nil {
				return err
			}
			ctx := cmd.Context()
			store, err := c.connectMongo(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			if err := store.Delete(ctx, name); err != nil {
				return err
			}
			printSuccess("Deleted snapshot %s", StyleHighlight.Render(name))
			return nil
		},
	}
}

// =============================================================================
// SQLite
// =============================================================================

func (c *CLI) dsn(f dbFlags) string {
	if f.dsn != "" {
		return f.dsn
	}
	return c.Config.Database.DSN
}

func (c *CLI) saveSQL(ctx context.Context, dsn string, g *graph.Store) error {
	store, err := sql.Open(dsn, c.Logger)
	if err != nil {
		return gderrors.Wrap(gderrors.ErrCodeStorage, err, "open database %s", dsn)
	}
	defer store.Close()

	if err := store.Save(ctx, g); err != nil {
		return gderrors.Wrap(gderrors.ErrCodeStorage, err, "save graph")
	}
	printSuccess("Saved graph to %s", StyleHighlight.Render(dsn))
	printStats(g.VertexCount(), g.EdgeCount(), nil)
	return nil
}

func (c *CLI) loadSQL(ctx context.Context, dsn string) (*graph.Store, error) {
	store, err := sql.Open(dsn, c.Logger)
	if err != nil {
		return nil, gderrors.Wrap(gderrors.ErrCodeStorage, err, "open database %s", dsn)
	}
	defer store.Close()

	g, err := store.Load(ctx)
	if err != nil {
		return nil, gderrors.Wrap(gderrors.ErrCodeStorage, err, "load graph")
	}
	return g, nil
}

// =============================================================================
// MongoDB
// =============================================================================

func (c *CLI) connectMongo(ctx context.Context) (*mongo.Store, error) {
	store, err := mongo.Connect(ctx, mongo.Options{
		URI:        c.Config.Mongo.URI,
		Database:   c.Config.Mongo.Database,
		Collection: c.Config.Mongo.Collection,
	}, c.Logger)
	if err != nil {
		return nil, gderrors.Wrap(gderrors.ErrCodeStorage, err, "connect mongo")
	}
	return store, nil
}

func (c *CLI) saveSnapshot(ctx context.Context, name string, g *graph.Store) error {
	if err := gderrors.ValidateSnapshotName(name); err != nil {
		return err
	}
	store, err := c.connectMongo(ctx)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	snap, err := store.Save(ctx, name, g)
	if err != nil {
		return err
	}
	printSuccess("Saved snapshot %s", StyleHighlight.Render(name))
	printDetail("id: %s", snap.ID)
	printStats(snap.Vertices, snap.Edges, nil)
	return nil
}

func (c *CLI) loadSnapshot(ctx context.Context, name string) (*graph.Store, error) {
	if err := gderrors.ValidateSnapshotName(name); err != nil {
		return nil, err
	}
	store, err := c.connectMongo(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close(ctx)

	g, snap, err := store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded snapshot", "name", name, "id", snap.ID, "created", snap.CreatedAt)
	return g, nil
}
