package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"nifgraph/internal/nif"
	"nifgraph/internal/scenewalk"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print the header and a record type summary",
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
			printInfo(cmd, f)
			return nil
		},
	}
}

func printInfo(cmd *cobra.Command, f *nif.File) {
	out := cmd.OutOrStdout()
	h := f.Header()

	fmt.Fprintf(out, "File:     %s\n", f.Name())
	fmt.Fprintf(out, "Header:   %s\n", h.Magic)
	fmt.Fprintf(out, "Version:  %s (user %d, bethesda %d)\n", f.Version(), f.UserVersion(), f.BethVersion())
	if h.Author != "" || h.ExportScript != "" {
		fmt.Fprintf(out, "Export:   author=%q process=%q export=%q\n", h.Author, h.ProcessScript, h.ExportScript)
	}
	if h.MaxFilePath != "" {
		fmt.Fprintf(out, "MaxPath:  %q\n", h.MaxFilePath)
	}
	fmt.Fprintf(out, "Records:  %d\n", f.NumRecords())
	fmt.Fprintf(out, "Strings:  %d\n", f.Strings().Len())
	fmt.Fprintf(out, "Skinning: %t\n", f.UsesSkinning())

	roots := make([]string, 0, f.Roots().Len())
	for _, r := range f.RootRecords() {
		roots = append(roots, fmt.Sprintf("%d:%s", r.Index(), r.TypeName()))
	}
	fmt.Fprintf(out, "Roots:    %s\n", strings.Join(roots, ", "))

	// Record type histogram
	counts := make(map[string]int)
	for _, r := range f.Records() {
		counts[r.TypeName()]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	fmt.Fprintln(out, "------------------------------------------------------------")
	for _, name := range names {
		fmt.Fprintf(out, "  %5d  %s\n", counts[name], name)
	}

	if n := len(f.Warnings()); n > 0 {
		fmt.Fprintln(out, yellow(fmt.Sprintf("%d warning(s)", n)))
	}
}

func newRecordsCmd() *cobra.Command {
	var typeFilter string
	cmd := &cobra.Command{
		Use:   "records <file>",
		Short: "List every record with its type and name",
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
			for _, r := range f.Records() {
				if typeFilter != "" && !strings.EqualFold(r.TypeName(), typeFilter) {
					continue
				}
				line := fmt.Sprintf("%5d  %-32s", r.Index(), r.TypeName())
				if n, ok := r.(nif.NamedRecord); ok && n.NamedBase().Name != "" {
					line += fmt.Sprintf(" %q", n.NamedBase().Name)
				}
				fmt.Fprintln(out, strings.TrimRight(line, " "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&typeFilter, "type", "", "Only list records of this type name")
	return cmd
}

func newTreeCmd() *cobra.Command {
	var showWorld bool
	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the scene graph below the roots",
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
			printTree(cmd, scenewalk.Walk(f), showWorld)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showWorld, "world", false, "Print world-space positions")
	return cmd
}

func printTree(cmd *cobra.Command, scene *scenewalk.Scene, showWorld bool) {
	out := cmd.OutOrStdout()
	for _, o := range scene.Objects {
		line := fmt.Sprintf("%s%s [%s]", strings.Repeat("  ", o.Depth), o.Name(), o.Record.TypeName())
		if showWorld {
			p := o.World.Col(3)
			line += fmt.Sprintf(" @ (%.3f, %.3f, %.3f)", p[0], p[1], p[2])
		}
		fmt.Fprintln(out, line)
	}
	for _, s := range scene.Skinned {
		fmt.Fprintf(out, "skin: %s -> %s (%d bones)\n", s.Geometry.AVObjectBase().Name, s.Root, len(s.Bones))
	}
	if len(scene.Textures) > 0 {
		fmt.Fprintf(out, "textures: %s\n", strings.Join(scene.Textures, ", "))
	}
}
