package main

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/fuelforge/internal/config"
	"github.com/hammamikhairi/fuelforge/internal/domain"
	"github.com/hammamikhairi/fuelforge/internal/logger"
	"github.com/hammamikhairi/fuelforge/internal/predict"
	"github.com/hammamikhairi/fuelforge/internal/report"
	"github.com/hammamikhairi/fuelforge/internal/storage"
	"github.com/hammamikhairi/fuelforge/internal/storage/sqlite"
)

var version = "dev"

// globalFlags override the matching config values when set.
type globalFlags struct {
	envFile   string
	apiURL    string
	dbPath    string
	exportDir string
	logFile   string
	fuel      string
	verbose   bool
	quiet     bool
}

func newRootCommand() *cobra.Command {
	g := &globalFlags{}
	cmd := &cobra.Command{
		Use:   "fuelforge",
		Short: "FuelForge - interactive fuel blend designer",
		Long: `FuelForge composes gasoline and diesel blends, asks a prediction
service for their properties, and compares pinned blends side by side.

Without a subcommand it starts the interactive session.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, g)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&g.envFile, "env", ".env", "dotenv file to load before reading the environment")
	f.StringVar(&g.apiURL, "api-url", "", "prediction service base URL (overrides FUELFORGE_API_URL)")
	f.StringVar(&g.dbPath, "db", "", "SQLite archive path (overrides FUELFORGE_DB_PATH)")
	f.StringVar(&g.exportDir, "export-dir", "", "directory for PDF exports (overrides FUELFORGE_EXPORT_DIR)")
	f.StringVar(&g.logFile, "log-file", "", `log file (use "stderr" to log to console)`)
	f.StringVar(&g.fuel, "fuel", "", "starting fuel type: gasoline or diesel")
	f.BoolVar(&g.verbose, "verbose", false, "enable verbose/debug logging")
	f.BoolVar(&g.quiet, "quiet", false, "disable all logging")

	cmd.AddCommand(newPredictCommand(g))
	cmd.AddCommand(newCompareCommand(g))
	cmd.AddCommand(newCatalogCommand(g))
	cmd.AddCommand(newRadarCommand(g))
	return cmd
}

// deps is everything a command needs, built from config and flags.
type deps struct {
	cfg      *config.Config
	log      *logger.Logger
	client   *predict.Client
	store    domain.BlendStore
	exporter *report.Exporter
	closers  []func() error
}

func (g *globalFlags) load() (*deps, error) {
	cfg, err := config.Load(g.envFile)
	if err != nil {
		return nil, err
	}
	if g.apiURL != "" {
		cfg.APIURL = g.apiURL
	}
	if g.dbPath != "" {
		cfg.DBPath = g.dbPath
	}
	if g.exportDir != "" {
		cfg.ExportDir = g.exportDir
	}
	if g.logFile != "" {
		cfg.LogFile = g.logFile
	}
	if g.fuel != "" {
		cfg.Fuel = g.fuel
	}
	if g.verbose {
		cfg.LogLevel = logger.LevelVerbose.String()
	}
	if g.quiet {
		cfg.LogLevel = logger.LevelOff.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg}

	// Logs go to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" && cfg.LogFile != "stderr" {
		if dir := filepath.Dir(cfg.LogFile); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.LogFile, err)
		} else {
			logOut = f
			d.closers = append(d.closers, f.Close)
		}
	}
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)
	d.log = logger.New(cfg.Level(), logOut)

	d.client = predict.NewClient(cfg.APIURL, d.log.With("predict"), predict.WithHTTPTimeout(cfg.HTTPTimeout))
	d.exporter = report.NewExporter(cfg.ExportDir, d.log.With("report"))

	if cfg.DBPath == "" {
		d.store = storage.NewMemoryStore(d.log.With("store"))
	} else {
		s, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("open archive: %w", err)
		}
		d.store = s
		d.closers = append([]func() error{s.Close}, d.closers...)
		d.log.Info("archiving blends in %s", cfg.DBPath)
	}
	return d, nil
}

// Close releases the archive and log file.
func (d *deps) Close() {
	for _, c := range d.closers {
		_ = c()
	}
}
