package batch

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"nifgraph/internal/nif"
	"nifgraph/internal/nifcache"
	"nifgraph/internal/scenewalk"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Cache   *nifcache.Cache
	Workers int

	// Progress receives a status line every two seconds when set.
	Progress io.Writer
}

// Result holds the outcome of loading one file.
type Result struct {
	Path     string   `json:"path"`
	Version  string   `json:"version,omitempty"`
	Records  int      `json:"records"`
	Roots    int      `json:"roots"`
	Objects  int      `json:"objects"`
	Textures []string `json:"textures,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Success  bool     `json:"success"`
	Error    string   `json:"error,omitempty"`
}

// Run loads all paths through the cache using a bounded worker pool. A failed
// file is reported in its Result and does not stop the run; only cancellation
// of ctx does.
func Run(ctx context.Context, cfg Config, paths []string) ([]Result, error) {
	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f files/sec\n", p, total, rate)
					}
				}
			}
		}()
	}
	defer close(done)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = processFile(gctx, cfg, path)
			processed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func processFile(ctx context.Context, cfg Config, path string) Result {
	f, err := cfg.Cache.Get(ctx, path)
	if err != nil {
		return Result{Path: path, Error: err.Error()}
	}
	return summarize(path, f)
}

func summarize(path string, f *nif.File) Result {
	scene := scenewalk.Walk(f)
	res := Result{
		Path:     path,
		Version:  f.Version().String(),
		Records:  f.NumRecords(),
		Roots:    len(f.RootRecords()),
		Objects:  len(scene.Objects),
		Textures: scene.Textures,
		Success:  true,
	}
	for _, w := range f.Warnings() {
		res.Warnings = append(res.Warnings, w.String())
	}
	return res
}
