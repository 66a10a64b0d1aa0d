package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kovidgoyal/prism"
	"github.com/kovidgoyal/prism/convert"
	"github.com/kovidgoyal/prism/types"
)

var _ = fmt.Print

func convert_command(g *global_options) *cobra.Command {
	var to, fit string
	cmd := &cobra.Command{
		Use:   "convert COLOR...",
		Short: "Convert colors to another space",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colors, err := parse_colors(g.reg, args)
			if err != nil {
				return err
			}
			var opts []prism.Option
			if fit != "" {
				opts = append(opts, prism.GamutMapped(fit))
			}
			if err = prism.ConvertAll(colors, to, opts...); err != nil {
				return err
			}
			p := new_printer(g)
			for _, c := range colors {
				p.color(c)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "srgb", "the space to convert to")
	cmd.Flags().StringVar(&fit, "fit", "", "gamut map results with this method")
	return cmd
}

func fit_command(g *global_options) *cobra.Command {
	var space, method, pspace string
	var adaptive float64
	cmd := &cobra.Command{
		Use:   "fit COLOR...",
		Short: "Gamut map colors into a space",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colors, err := parse_colors(g.reg, args)
			if err != nil {
				return err
			}
			var opts []prism.Option
			if pspace != "" {
				opts = append(opts, prism.Perceptual(pspace))
			}
			if adaptive != 0 {
				opts = append(opts, prism.Adaptive(adaptive))
			}
			if err = prism.FitAll(colors, space, method, opts...); err != nil {
				return err
			}
			p := new_printer(g)
			for _, c := range colors {
				p.color(c)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&space, "space", "srgb", "the space whose gamut to map into")
	cmd.Flags().StringVar(&method, "method", prism.DefaultFit, "the gamut mapping method")
	cmd.Flags().StringVar(&pspace, "perceptual", "", "override the perceptual space of the method")
	cmd.Flags().Float64Var(&adaptive, "adaptive", 0, "adaptive lightness anchoring strength, 0 disables it")
	return cmd
}

func deltae_command(g *global_options) *cobra.Command {
	var method, space string
	cmd := &cobra.Command{
		Use:   "deltae COLOR1 COLOR2",
		Short: "Measure the difference between two colors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			colors, err := parse_colors(g.reg, args)
			if err != nil {
				return err
			}
			var opts []prism.Option
			if space != "" {
				opts = append(opts, prism.DeltaESpace(space))
			}
			d, err := colors[0].DeltaE(colors[1], method, opts...)
			if err != nil {
				return err
			}
			new_printer(g).line("%.6g", d)
			return nil
		},
	}
	cmd.Flags().StringVar(&method, "method", prism.DefaultDeltaE, "the delta-E method")
	cmd.Flags().StringVar(&space, "space", "", "the working space for methods that accept one")
	return cmd
}

type interpolation_flags struct {
	space, out, hue, method string
	premultiplied           bool
	carryforward, powerless bool
}

func (f *interpolation_flags) add(fs *pflag.FlagSet) {
	fs.StringVar(&f.space, "space", prism.DefaultInterpolate, "the space to interpolate in")
	fs.StringVar(&f.out, "out", "", "the space of the results, defaults to that of the first color")
	fs.StringVar(&f.hue, "hue", prism.DefaultHue, "the hue policy: shorter, longer, increasing, decreasing or specified")
	fs.StringVar(&f.method, "method", "linear", "the interpolation method")
	fs.BoolVar(&f.premultiplied, "premultiplied", true, "premultiply alpha")
	fs.BoolVar(&f.carryforward, "carryforward", false, "carry undefined channels into the interpolation space")
	fs.BoolVar(&f.powerless, "powerless", false, "treat the hue of achromatic colors as undefined")
}

func (f *interpolation_flags) options() []prism.InterpolateOption {
	ans := []prism.InterpolateOption{
		prism.InSpace(f.space), prism.Hue(f.hue), prism.Method(f.method), prism.Premultiplied(f.premultiplied),
	}
	if f.out != "" {
		ans = append(ans, prism.OutSpace(f.out))
	}
	if f.carryforward {
		ans = append(ans, prism.Carryforward())
	}
	if f.powerless {
		ans = append(ans, prism.Powerless())
	}
	return ans
}

func as_any(colors []*prism.Color) []any {
	ans := make([]any, len(colors))
	for i, c := range colors {
		ans[i] = c
	}
	return ans
}

func mix_command(g *global_options) *cobra.Command {
	f := &interpolation_flags{}
	var t float64
	cmd := &cobra.Command{
		Use:   "mix COLOR1 COLOR2",
		Short: "Mix two colors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			colors, err := parse_colors(g.reg, args)
			if err != nil {
				return err
			}
			c, err := colors[0].Mix(colors[1], t, f.options()...)
			if err != nil {
				return err
			}
			new_printer(g).color(c)
			return nil
		},
	}
	f.add(cmd.Flags())
	cmd.Flags().Float64VarP(&t, "amount", "t", prism.DefaultMix, "how far towards the second color to mix")
	return cmd
}

func to_image_colors(colors []*prism.Color) ([]color.Color, error) {
	ans := make([]color.Color, len(colors))
	for i, c := range colors {
		q, err := c.ToNRGBA64()
		if err != nil {
			return nil, err
		}
		ans[i] = q
	}
	return ans, nil
}

func steps_command(g *global_options) *cobra.Command {
	f := &interpolation_flags{}
	var (
		count, max_steps int
		max_delta_e      float64
		delta_e          string
		animate, swatch  string
		size             int
		delay            time.Duration
	)
	cmd := &cobra.Command{
		Use:   "steps COLOR COLOR...",
		Short: "Produce evenly spaced colors along an interpolation",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			colors, err := parse_colors(g.reg, args)
			if err != nil {
				return err
			}
			opts := append(f.options(), prism.StepCount(count), prism.MaxSteps(max_steps))
			if max_delta_e > 0 {
				opts = append(opts, prism.MaxDeltaE(max_delta_e, delta_e))
			}
			steps, err := g.reg.Steps(as_any(colors), opts...)
			if err != nil {
				return err
			}
			p := new_printer(g)
			for _, c := range steps {
				p.color(c)
			}
			if animate == "" && swatch == "" {
				return nil
			}
			ic, err := to_image_colors(steps)
			if err != nil {
				return err
			}
			if swatch != "" {
				if err = convert.Save(convert.Swatch(ic, image.Pt(size, size)), swatch); err != nil {
					return err
				}
			}
			if animate != "" {
				w, err := os.Create(animate)
				if err != nil {
					return err
				}
				defer w.Close()
				if err = convert.SwatchAnimation(ic, image.Pt(size, size), delay).EncodeAsPNG(w); err != nil {
					return err
				}
			}
			return nil
		},
	}
	f.add(cmd.Flags())
	cmd.Flags().IntVarP(&count, "count", "n", 2, "the number of colors to produce")
	cmd.Flags().IntVar(&max_steps, "max-steps", prism.DefaultMaxSteps, "the most colors to produce")
	cmd.Flags().Float64Var(&max_delta_e, "max-delta-e", 0, "insert colors until neighbors are no further apart than this")
	cmd.Flags().StringVar(&delta_e, "delta-e", prism.DefaultDeltaE, "the delta-E method used by --max-delta-e")
	cmd.Flags().StringVar(&animate, "animate", "", "write an animated PNG cycling through the colors to this file")
	cmd.Flags().StringVar(&swatch, "swatch", "", "write a PNG strip of the colors to this file")
	cmd.Flags().IntVar(&size, "size", 64, "the size in pixels of each swatch or animation frame")
	cmd.Flags().DurationVar(&delay, "delay", 100*time.Millisecond, "the time each animation frame is shown")
	return cmd
}

func spaces_command(g *global_options) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "spaces",
		Short: "List color spaces and their channels, or the plugins of another category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := new_printer(g)
			if category != prism.CategorySpace {
				for _, name := range g.reg.Names(category) {
					p.line("%s", name)
				}
				return nil
			}
			for _, name := range g.reg.Spaces() {
				s, err := g.reg.Space(name)
				if err != nil {
					return err
				}
				chans := make([]string, 0, len(s.Channels()))
				for _, ch := range s.Channels() {
					chans = append(chans, describe_channel(ch))
				}
				p.line("%-20s %-14s %s", name, "→ "+s.Base(), strings.Join(chans, " "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", prism.CategorySpace, "the plugin category to list: space, delta-e, cat, fit, filter or interpolate")
	return cmd
}

func describe_channel(ch types.Channel) string {
	if ch.IsAngle() {
		return ch.Name + "[angle]"
	}
	return fmt.Sprintf("%s[%g,%g]", ch.Name, ch.Low, ch.High)
}

func image_command(g *global_options) *cobra.Command {
	var from, to, fit string
	cmd := &cobra.Command{
		Use:   "image INPUT OUTPUT.png",
		Short: "Convert the pixels of an image to another RGB space",
		Long: `Convert the pixels of an image to another RGB space and write it as PNG.

The space of the input is detected from its EXIF data, Adobe RGB images are
recognized by their interoperability index, anything else is treated as sRGB.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, detected, err := convert.Open(args[0])
			if err != nil {
				return err
			}
			if from == "" {
				from = detected
			}
			g.reg.Logger().Info("converting image", "path", args[0], "from", from, "to", to, "size", img.Bounds().Size())
			if img, err = convert.Image(img, g.reg, from, to, fit); err != nil {
				return err
			}
			return convert.Save(img, args[1])
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "the space of the input, detected when not given")
	cmd.Flags().StringVar(&to, "to", "srgb", "the space to convert to")
	cmd.Flags().StringVar(&fit, "fit", "clip", "the gamut mapping method")
	return cmd
}
