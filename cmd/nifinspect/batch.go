package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"nifgraph/internal/batch"
)

func newBatchCmd() *cobra.Command {
	var manifestPath string
	cmd := &cobra.Command{
		Use:   "batch <file|dir>...",
		Short: "Load many files in parallel and write a JSON manifest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			paths, err := collectPaths(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No files to load.")
				return nil
			}
			cache, err := a.cache()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Files: %d, Workers: %d\n", len(paths), a.cfg.Workers)
			fmt.Fprintln(out, "------------------------------------------------------------")

			start := time.Now()
			results, err := batch.Run(cmd.Context(), batch.Config{
				Cache:    cache,
				Workers:  a.cfg.Workers,
				Progress: out,
			}, paths)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "------------------------------------------------------------")
			fmt.Fprintf(out, "Done in %.1fs\n", time.Since(start).Seconds())

			m := batch.NewManifest(results)
			fmt.Fprintf(out, "Loaded: %d/%d", m.Files-m.Failed, m.Files)
			if m.Warned > 0 {
				fmt.Fprintf(out, " (%s)", yellow(fmt.Sprintf("%d with warnings", m.Warned)))
			}
			fmt.Fprintln(out)

			if m.Failed > 0 {
				fmt.Fprintf(out, "\nFailed (%d):\n", m.Failed)
				shown := 0
				for _, r := range results {
					if r.Success {
						continue
					}
					if shown == 20 {
						fmt.Fprintln(out, "  ...")
						break
					}
					fmt.Fprintf(out, "  %s: %s\n", r.Path, red(r.Error))
					shown++
				}
			}

			// Write manifest
			if manifestPath == "" {
				manifestPath = filepath.Join(a.cfg.OutputDir, "manifest.json")
			}
			if err := os.MkdirAll(filepath.Dir(manifestPath), 0755); err != nil {
				return err
			}
			if err := batch.WriteManifest(manifestPath, results); err != nil {
				return fmt.Errorf("manifest write failed: %w", err)
			}
			fmt.Fprintf(out, "Manifest: %s\n", manifestPath)

			if m.Failed > 0 {
				return fmt.Errorf("%d of %d files failed to load", m.Failed, m.Files)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Manifest path (default: <output-dir>/manifest.json)")
	return cmd
}

// collectPaths expands directory arguments to the .nif, .kf and .nifcache
// files below them.
func collectPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".nif", ".kf", ".nifcache":
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}
