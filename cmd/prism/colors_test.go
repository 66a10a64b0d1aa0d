package main

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovidgoyal/prism"
)

var _ = fmt.Print

func TestParseColor(t *testing.T) {
	reg := prism.DefaultRegistry()
	c, err := parse_color(reg, "oklch:0.5,none,120,0.25")
	require.NoError(t, err)
	assert.Equal(t, "oklch", c.Space())
	coords := c.Coords()
	assert.Equal(t, 0.5, coords[0])
	assert.True(t, math.IsNaN(coords[1]))
	assert.Equal(t, 120.0, coords[2])
	assert.Equal(t, 0.25, c.Alpha())

	c, err = parse_color(reg, "srgb:1,0,0")
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Alpha())

	c, err = parse_color(reg, "cornflowerblue")
	require.NoError(t, err)
	assert.Equal(t, "srgb", c.Space())

	for _, bad := range []string{"srgb:1,0", "srgb:1,x,0", "nonexistent:1,2,3", "notacolor"} {
		_, err = parse_color(reg, bad)
		assert.Error(t, err, bad)
	}
	_, err = parse_color(reg, "srgb:1,0")
	assert.ErrorIs(t, err, prism.ErrValue)
	_, err = parse_color(reg, "nonexistent:1,2,3")
	assert.ErrorIs(t, err, prism.ErrLookup)
}

func TestPrinter(t *testing.T) {
	reg := prism.DefaultRegistry()
	c, err := parse_color(reg, "srgb:1,0,0")
	require.NoError(t, err)
	var buf bytes.Buffer
	p := &printer{w: &buf}
	p.color(c)
	assert.Equal(t, "color(srgb 1 0 0 / 1)\n", buf.String())
	buf.Reset()
	p.swatch = true
	p.color(c)
	assert.True(t, strings.HasPrefix(buf.String(), "\x1b[48;2;255;0;0m"), buf.String())
}

func TestCommands(t *testing.T) {
	for _, args := range [][]string{
		{"convert", "red", "--to", "hsl"},
		{"fit", "display-p3:1,0,0", "--method", "raytrace"},
		{"deltae", "red", "orange", "--method", "2000"},
		{"mix", "red", "blue", "-t", "0.25"},
		{"steps", "red", "blue", "-n", "3", "--max-delta-e", "10"},
		{"spaces"},
		{"spaces", "--category", "fit"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			cmd := root_command()
			cmd.SetArgs(append(args, "--quiet"))
			require.NoError(t, cmd.Execute())
		})
	}
	cmd := root_command()
	cmd.SetArgs([]string{"convert", "red", "--to", "nonexistent"})
	require.ErrorIs(t, cmd.Execute(), prism.ErrLookup)
}
