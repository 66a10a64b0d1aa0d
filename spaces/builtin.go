package spaces

import (
	"github.com/kovidgoyal/prism/types"
)

// All returns every built-in space, parents before children.
func All() []types.Space {
	return []types.Space{
		XYZD65, XYZD50,
		SRGBLinear, SRGB, HSL, HSV, HWB,
		DisplayP3Linear, DisplayP3,
		A98RGBLinear, A98RGB,
		ProPhotoRGBLinear, ProPhotoRGB,
		Rec2020Linear, Rec2020,
		LabD50, LChD50, LabD65, LChD65,
		Oklab, Oklch,
		Luv, LChuv,
		DIN99o, LCh99o,
		Jzazbz, Jzczhz,
		CAM16JMh, HCT,
	}
}

// ByName returns the built-in space with the specified name or nil.
func ByName(name string) types.Space {
	for _, s := range All() {
		if s.Name() == name {
			return s
		}
	}
	return nil
}
