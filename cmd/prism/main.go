// Package main provides the prism command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/kovidgoyal/prism"
)

var _ = fmt.Print

type global_options struct {
	verbose, quiet bool
	reg            *prism.Registry
}

func (g *global_options) setup() {
	level := hclog.Off
	if g.verbose {
		level = hclog.Debug
	}
	g.reg = prism.DefaultRegistry().Clone()
	g.reg.SetLogger(hclog.New(&hclog.LoggerOptions{Name: "prism", Output: os.Stderr, Level: level}))
}

func root_command() *cobra.Command {
	g := &global_options{}
	root := &cobra.Command{
		Use:   "prism",
		Short: "Convert, measure, mix and gamut map colors",
		Long: `Convert, measure, mix and gamut map colors.

Colors are given as CSS color names, hex notation or space:c1,c2,c3[,alpha]
where none marks an undefined channel.

Examples:
  prism convert red --to oklch
  prism fit display-p3:1,0,0 --space srgb --method raytrace
  prism deltae '#ff0000' orange --method 2000
  prism steps red blue --count 5 --space oklch`,
		Version:       prism.Version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			g.setup()
		},
	}
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log debug information to stderr")
	root.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "print only results, without swatches")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")
	root.AddCommand(
		convert_command(g),
		fit_command(g),
		deltae_command(g),
		mix_command(g),
		steps_command(g),
		spaces_command(g),
		image_command(g),
	)
	return root
}

func main() {
	if err := root_command().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
