/*
Package prism provides color management: conversion between color spaces through a graph of
pairwise transforms, chromatic adaptation, gamut checks and gamut mapping, color difference
metrics and interpolation.

Colors belong to a Registry, which holds the color spaces and the named methods used to
measure, map and interpolate them. DefaultRegistry has everything that ships with prism,
use Clone to customize a registry without affecting others.
*/
package prism

import "fmt"

type PrismVersion struct {
	Major, Minor, Patch uint
}

func (v PrismVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v PrismVersion) Equal(o PrismVersion) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch
}

func (v PrismVersion) After(o PrismVersion) bool {
	switch {
	case v.Major != o.Major:
		return v.Major > o.Major
	case v.Minor != o.Minor:
		return v.Minor > o.Minor
	}
	return v.Patch > o.Patch
}

func (v PrismVersion) Before(o PrismVersion) bool {
	return !v.Equal(o) && !v.After(o)
}

var Version = PrismVersion{0, 3, 0}
