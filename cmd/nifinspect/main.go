package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nifgraph/internal/config"
	"nifgraph/internal/nif"
	"nifgraph/internal/nifcache"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
)

// Global flags
var (
	configFile      string
	dataDir         string
	outputDir       string
	strict          bool
	loadUnsupported bool
	charset         string
	verbose         bool
	workers         int
)

func main() {
	if err := execRootCmd(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, red("Error:"), err)
		os.Exit(1)
	}
}

func execRootCmd(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args[1:])
	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nifinspect",
		Short:         "Inspect NetImmerse/Gamebryo model files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config.json file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Game data directory (default: auto-detect)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "Export directory (default: <data-dir>/nif-export)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Treat trailing data and a missing footer as errors")
	rootCmd.PersistentFlags().BoolVar(&loadUnsupported, "load-unsupported", false, "Attempt files with unsupported versions")
	rootCmd.PersistentFlags().StringVar(&charset, "charset", "", "Code page of text in files, e.g. windows-1252")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug traces")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "Number of worker goroutines (default: NumCPU)")

	rootCmd.AddCommand(
		newInfoCmd(),
		newRecordsCmd(),
		newTreeCmd(),
		newTexturesCmd(),
		newBatchCmd(),
	)
	return rootCmd
}

// app holds the resolved settings shared by all commands.
type app struct {
	cfg  config.Config
	log  *slog.Logger
	opts nif.Options
}

func newApp() (*app, error) {
	// Load config
	var cfg config.Config
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		DataDir:         dataDir,
		OutputDir:       outputDir,
		Strict:          strict,
		LoadUnsupported: loadUnsupported,
		Charset:         charset,
		Workers:         workers,
	})

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts, err := cfg.LoaderOptions(logger)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: logger, opts: opts}, nil
}

func (a *app) load(path string) (*nif.File, error) {
	return nif.LoadFile(path, a.opts)
}

func (a *app) cache() (*nifcache.Cache, error) {
	return nifcache.New(a.cfg.CacheSize, func(_ context.Context, path string) (*nif.File, error) {
		return nif.LoadFile(path, a.opts)
	})
}
