package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/interlinear/pkg/buildinfo"
	"github.com/matzehuels/interlinear/pkg/cache"
	"github.com/matzehuels/interlinear/pkg/pipeline"
	"github.com/matzehuels/interlinear/pkg/source"
	"github.com/matzehuels/interlinear/pkg/source/file"
	"github.com/matzehuels/interlinear/pkg/source/mongo"
	"github.com/matzehuels/interlinear/pkg/tier"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "interlinear"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Verbose reports whether debug logging is enabled.
func (c *CLI) Verbose() bool {
	return c.Logger.GetLevel() <= log.DebugLevel
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Interlinear lays out annotation tiers on a shared time grid",
		Long: `Interlinear exports time-aligned annotation tiers (words, glosses,
translations, ...) as a character grid where one column stands for a fixed
slice of time. Output goes to plain text, HTML, colored terminal text or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.tiersCommand())
	root.AddCommand(c.blocksCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/interlinear/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Document Loading
// =============================================================================

// sourceFlags selects where a document comes from. A positional file argument
// wins; otherwise the MongoDB flags must name a document.
type sourceFlags struct {
	mongoURI        string
	mongoDB         string
	mongoCollection string
	mongoDocument   string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", os.Getenv("INTERLINEAR_MONGO_URI"), "MongoDB connection URI (instead of a file)")
	cmd.Flags().StringVar(&f.mongoDB, "mongo-db", "interlinear", "MongoDB database")
	cmd.Flags().StringVar(&f.mongoCollection, "mongo-collection", "annotations", "MongoDB collection")
	cmd.Flags().StringVar(&f.mongoDocument, "mongo-document", "", "document name to load from MongoDB")
}

// loadDocument resolves the source and loads the document. Mongo documents
// go through the document cache unless noCache is set.
func (c *CLI) loadDocument(ctx context.Context, args []string, f sourceFlags, noCache bool) (*tier.Document, error) {
	logger := loggerFromContext(ctx)

	if len(args) > 0 {
		src := file.New(args[0])
		logger.Debug("loading document", "source", src.Kind(), "path", src.Name())
		return src.Load(ctx)
	}
	if f.mongoURI == "" {
		return nil, fmt.Errorf("no input: pass a document file or --mongo-uri with --mongo-document")
	}
	if f.mongoDocument == "" {
		return nil, fmt.Errorf("--mongo-document is required with --mongo-uri")
	}

	client, coll, err := mongo.Connect(ctx, f.mongoURI, f.mongoDB, f.mongoCollection)
	if err != nil {
		return nil, err
	}
	defer client.Disconnect(context.WithoutCancel(ctx))

	docCache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	defer docCache.Close()

	src := source.Cached(mongo.New(coll, f.mongoDocument), docCache, nil, logger)
	logger.Debug("loading document", "source", src.Kind(), "name", src.Name())
	return src.Load(ctx)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
