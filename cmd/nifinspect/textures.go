package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"nifgraph/internal/nif"
	"nifgraph/internal/scenewalk"
	"nifgraph/internal/texture"
)

func newTexturesCmd() *cobra.Command {
	var export bool
	cmd := &cobra.Command{
		Use:   "textures <file>",
		Short: "List external textures and export embedded images as WebP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			scene := scenewalk.Walk(f)

			if len(scene.Textures) > 0 {
				cache := texture.NewCache(texture.BuildIndex(a.cfg.DataDir))
				for _, name := range scene.Textures {
					img, err := cache.Load(name)
					switch {
					case err != nil:
						fmt.Fprintf(out, "  %s  %s\n", yellow("unreadable"), name)
						a.log.Debug("texture decode failed", "texture", name, "err", err)
					case img == nil:
						fmt.Fprintf(out, "  %s  %s\n", red("missing"), name)
					default:
						b := img.Bounds()
						fmt.Fprintf(out, "  %s  %s (%dx%d)\n", green("ok"), name, b.Dx(), b.Dy())
					}
				}
			}

			pixels := f.RecordsOfType(nif.RCNiPixelData)
			if len(pixels) == 0 {
				return nil
			}
			if !export {
				fmt.Fprintf(out, "%d embedded image(s), use --export to write them\n", len(pixels))
				return nil
			}
			if err := os.MkdirAll(a.cfg.OutputDir, 0755); err != nil {
				return err
			}
			stem := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			for _, rec := range pixels {
				path := filepath.Join(a.cfg.OutputDir, fmt.Sprintf("%s_%d.webp", stem, rec.Index()))
				if err := exportPixelData(rec.(*nif.NiPixelData), path); err != nil {
					fmt.Fprintf(out, "  %s  record %d: %v\n", red("failed"), rec.Index(), err)
					continue
				}
				fmt.Fprintf(out, "  %s  %s\n", green("wrote"), path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&export, "export", false, "Write embedded pixel data to the output directory")
	return cmd
}

func exportPixelData(d *nif.NiPixelData, path string) error {
	img, err := texture.DecodePixelData(d, 0)
	if err != nil {
		return err
	}
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := texture.EncodeWebP(w, img); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
