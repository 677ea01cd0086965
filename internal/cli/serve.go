package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/interlinear/pkg/api"
	"github.com/matzehuels/interlinear/pkg/buildinfo"
	"github.com/matzehuels/interlinear/pkg/cache"
	"github.com/matzehuels/interlinear/pkg/observability"
	"github.com/matzehuels/interlinear/pkg/pipeline"
)

const defaultAddr = ":8080"

type serveFlags struct {
	envFile string
	addr    string
	noCache bool
	maxBody int64
	redis   cache.RedisConfig
}

// serveCommand creates the serve command that runs the HTTP render API.
func (c *CLI) serveCommand() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render API",
		Long: `Run the HTTP render API.

Settings not given as flags are read from the environment, after loading the
file named by --env-file if it exists:

  INTERLINEAR_ADDR            listen address (default :8080)
  INTERLINEAR_REDIS_ADDR      Redis address; enables the shared artifact cache
  INTERLINEAR_REDIS_PASSWORD  Redis password
  INTERLINEAR_REDIS_PREFIX    Redis key prefix

Without Redis the local file cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.loadEnv(cmd.Flags()); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), f)
		},
	}

	f.register(cmd)
	return cmd
}

func (f *serveFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.envFile, "env-file", ".env", "environment file to load if present")
	fs.StringVar(&f.addr, "addr", defaultAddr, "listen address")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.Int64Var(&f.maxBody, "max-body", api.DefaultMaxBodyBytes, "maximum request body size in bytes")
	fs.StringVar(&f.redis.Addr, "redis-addr", "", "Redis address for a shared artifact cache")
	fs.IntVar(&f.redis.DB, "redis-db", 0, "Redis database number")
	fs.StringVar(&f.redis.Prefix, "redis-prefix", appName+":", "Redis key prefix")
}

// loadEnv fills unset flags from the environment after reading the env file.
func (f *serveFlags) loadEnv(fs *pflag.FlagSet) error {
	if _, err := os.Stat(f.envFile); err == nil {
		if err := godotenv.Load(f.envFile); err != nil {
			return fmt.Errorf("load %s: %w", f.envFile, err)
		}
	}

	fromEnv := func(flag, key string, dst *string) {
		if v := os.Getenv(key); v != "" && !fs.Changed(flag) {
			*dst = v
		}
	}
	fromEnv("addr", "INTERLINEAR_ADDR", &f.addr)
	fromEnv("redis-addr", "INTERLINEAR_REDIS_ADDR", &f.redis.Addr)
	fromEnv("redis-prefix", "INTERLINEAR_REDIS_PREFIX", &f.redis.Prefix)
	f.redis.Password = os.Getenv("INTERLINEAR_REDIS_PASSWORD")
	return nil
}

func (c *CLI) runServe(ctx context.Context, f serveFlags) error {
	artifacts, err := c.serveCache(ctx, f)
	if err != nil {
		return err
	}

	// Outputs of one release must not be served by another.
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	runner := pipeline.NewRunner(artifacts, keyer, c.Logger)
	defer runner.Close()

	if c.Verbose() {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
		defer observability.Reset()
	}

	srv := api.New(runner, c.Logger, api.WithMaxBodyBytes(f.maxBody))
	printInfo("Serving on %s", StyleLink.Render(f.addr))

	err = srv.ListenAndServe(ctx, f.addr)
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *CLI) serveCache(ctx context.Context, f serveFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	if f.redis.Addr == "" {
		return newCache(false)
	}
	rc, err := cache.NewRedisCache(ctx, f.redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", f.redis.Addr, err)
	}
	c.Logger.Info("using redis cache", "addr", f.redis.Addr, "db", f.redis.DB)
	return rc, nil
}
