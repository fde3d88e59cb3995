// Package cli implements the wikimol command tree: local rendering, infobox
// generation, and orientation diagnostics against the PubChem resolver.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wikimol/wikimolgen/internal/application/compound"
	"github.com/wikimol/wikimolgen/internal/application/render"
	"github.com/wikimol/wikimolgen/internal/config"
	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/logging"
	"github.com/wikimol/wikimolgen/internal/infrastructure/pubchem"
	"github.com/wikimol/wikimolgen/internal/infrastructure/storage"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	ArtifactDir  string
	Verbose      bool
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	Render       render.Service
	Compound     compound.Service
	OutputFormat string
}

// NewRootCommand creates the root command with global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "wikimol",
		Short: "wikimol — molecule depiction and wiki markup from PubChem records",
		Long: "wikimol resolves compound identifiers (CID, name, or SMILES) against\n" +
			"PubChem and produces Wikipedia-style structure diagrams, 3D stick\n" +
			"renders, and infobox wikitext.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: env + built-in defaults)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json)")
	pf.StringVar(&opts.ArtifactDir, "artifact-dir", "./artifacts", "directory for stored render artifacts")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose output")

	cmd.AddCommand(
		NewRender2DCmd(),
		NewRender3DCmd(),
		NewOrientCmd(),
		NewInfoboxCmd(),
	)

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// persistentPreRun initializes config, logger, and services, then stores the
// CLIContext on the command. A CLIContext already present on the context
// (injected by tests) wins.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	if getCLIContext(cmd) != nil {
		return nil
	}

	cfg, err := initConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	store, err := storage.NewLocalStore(opts.ArtifactDir)
	if err != nil {
		return fmt.Errorf("artifact store initialization failed: %w", err)
	}

	// The CLI talks to PubChem directly, without the Redis layer the server
	// carries; each invocation is one-shot so a cache would never warm up.
	resolver := pubchem.NewClient(cfg.Resolver, logger)

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		Render:       render.NewService(cfg, resolver, store, nil, logger),
		Compound:     compound.NewService(resolver, nil, logger),
		OutputFormat: opts.OutputFormat,
	}
	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cliCtx))
	return nil
}

func initConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}
	if p := defaultConfigPath(); p != "" {
		return config.Load(p)
	}
	return config.LoadFromEnv()
}

// defaultConfigPath returns the first config file found on the search path,
// or empty when none exists.
func defaultConfigPath() string {
	paths := []string{"./wikimol.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".wikimol", "config.yaml"))
	}
	paths = append(paths, "/etc/wikimol/config.yaml")

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// initLogger builds a console logger on stderr so command output on stdout
// stays clean for piping.
func initLogger(opts *RootOptions) (logging.Logger, error) {
	level := strings.ToLower(opts.LogLevel)
	if opts.Verbose {
		level = "debug"
	}
	return logging.NewLogger(logging.Config{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// getCLIContext extracts the CLIContext, or nil when none was initialized.
func getCLIContext(cmd *cobra.Command) *CLIContext {
	if cmd.Context() == nil {
		return nil
	}
	cliCtx, _ := cmd.Context().Value(cliContextKey{}).(*CLIContext)
	return cliCtx
}

// requireCLIContext is getCLIContext for RunE bodies, where a missing
// context is a programming error.
func requireCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	cliCtx := getCLIContext(cmd)
	if cliCtx == nil {
		return nil, fmt.Errorf("cli context not initialized")
	}
	return cliCtx, nil
}

// WithCLIContext returns a context carrying deps, for wiring the command
// tree with pre-built services.
func WithCLIContext(ctx context.Context, deps *CLIContext) context.Context {
	return context.WithValue(ctx, cliContextKey{}, deps)
}

// printJSON writes v as indented JSON on the command's stdout.
func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
