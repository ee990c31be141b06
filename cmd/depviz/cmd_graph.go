package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/velkom/depviz/pkg/graph"
	"github.com/velkom/depviz/pkg/repo"
)

func newGraphCmd() *cobra.Command {
	var repoPath string
	var graphvizPath string
	var output string
	var configPath string
	var openAfter bool

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Build the commit/file dependency graph and emit a dot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, repoPath)
			if err != nil {
				return err
			}
			if graphvizPath == "" {
				graphvizPath = cfg.GraphvizPath
			}
			if output == "" {
				output = cfg.Output
			}
			if !cmd.Flags().Changed("open") {
				openAfter = cfg.Open
			}

			r, err := repo.Open(repoPath)
			if err != nil {
				return err
			}

			warn := color.New(color.FgYellow)
			g, err := graph.Build(r, graph.BuildOptions{
				Warnf: func(format string, args ...any) {
					warn.Fprintf(cmd.ErrOrStderr(), "warning: "+format+"\n", args...)
				},
			})
			if err != nil {
				return err
			}

			dotPath := output
			if dotPath == "" {
				tmp, err := os.CreateTemp("", "depviz-*.dot")
				if err != nil {
					return fmt.Errorf("create dot file: %w", err)
				}
				dotPath = tmp.Name()
				tmp.Close()
			}

			f, err := os.Create(dotPath)
			if err != nil {
				return fmt.Errorf("write dot file %s: %w", dotPath, err)
			}
			if err := graph.WriteDot(f, g, cfg.style()); err != nil {
				f.Close()
				return fmt.Errorf("write dot file %s: %w", dotPath, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("write dot file %s: %w", dotPath, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "graph: %d nodes, %d edges\n", len(g.Nodes), len(g.Edges))
			fmt.Fprintf(out, "dot file: %s\n", dotPath)

			if graphvizPath == "" {
				return nil
			}

			pngPath := dotPath + ".png"
			if err := renderPNG(cmd.Context(), graphvizPath, dotPath, pngPath); err != nil {
				return err
			}
			fmt.Fprintf(out, "rendered: %s\n", pngPath)

			if openAfter {
				if err := openViewer(cmd.Context(), pngPath); err != nil {
					fmt.Fprintf(out, "could not open viewer, image saved at %s\n", pngPath)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo-path", ".", "path to the git repository to analyze")
	cmd.Flags().StringVar(&graphvizPath, "graphviz-path", "", "path to the Graphviz dot binary; skip rendering when empty")
	cmd.Flags().StringVarP(&output, "output", "o", "", "dot file output path (default: a temp file)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: .depviz.toml in the repository root)")
	cmd.Flags().BoolVar(&openAfter, "open", false, "open the rendered image with the system viewer")

	return cmd
}
