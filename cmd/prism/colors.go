package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/kovidgoyal/prism"
)

var _ = fmt.Print

// parse_color accepts the notations of prism.Parse and space:c1,c2,c3[,alpha].
func parse_color(reg *prism.Registry, text string) (*prism.Color, error) {
	space, rest, found := strings.Cut(text, ":")
	if !found {
		return reg.Parse(text)
	}
	s, err := reg.Space(space)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(rest, ",")
	n := len(s.Channels())
	if len(parts) != n && len(parts) != n+1 {
		return nil, fmt.Errorf("%w: %s needs %d or %d comma separated values, got: %s", prism.ErrValue, space, n, n+1, rest)
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if strings.EqualFold(p, "none") {
			vals[i] = math.NaN()
			continue
		}
		if vals[i], err = strconv.ParseFloat(p, 64); err != nil {
			return nil, fmt.Errorf("%w: %#v is not a number", prism.ErrValue, p)
		}
	}
	alpha := 1.0
	if len(vals) > n {
		alpha = vals[n]
	}
	return reg.New(space, vals[:n], alpha)
}

func parse_colors(reg *prism.Registry, args []string) ([]*prism.Color, error) {
	ans := make([]*prism.Color, len(args))
	for i, a := range args {
		c, err := parse_color(reg, a)
		if err != nil {
			return nil, err
		}
		ans[i] = c
	}
	return ans, nil
}

type printer struct {
	w      io.Writer
	swatch bool
}

func new_printer(g *global_options) *printer {
	return &printer{w: os.Stdout, swatch: !g.quiet && term.IsTerminal(int(os.Stdout.Fd()))}
}

func (p *printer) color(c *prism.Color) {
	if p.swatch {
		if q, err := c.ToNRGBA64(); err == nil {
			fmt.Fprintf(p.w, "\x1b[48;2;%d;%d;%dm    \x1b[m ", q.R>>8, q.G>>8, q.B>>8)
		}
	}
	fmt.Fprintln(p.w, c)
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}
