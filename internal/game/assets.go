package game

import (
	"image/color"
	"strings"

	"github.com/Garsondee/Iso-City/internal/logger"
	"golang.org/x/image/colornames"
)

// Swatch is how one asset id is drawn: a base colour and block height.
type Swatch struct {
	Fill   color.RGBA
	Height float64 // local-space pixels; 0 for flat ground
}

// AssetResolver maps a type or ground key to its look.
type AssetResolver interface {
	Resolve(id string) (Swatch, bool)
}

// placeholderSwatch marks ids nobody could resolve.
var placeholderSwatch = Swatch{Fill: colornames.Magenta, Height: 20}

// PaletteAssets derives swatches from the key naming convention.
type PaletteAssets struct{}

// Resolve implements AssetResolver.
func (PaletteAssets) Resolve(id string) (Swatch, bool) {
	switch {
	case id == string(GroundGrass):
		return Swatch{Fill: colornames.Yellowgreen}, true
	case strings.HasPrefix(id, "road_"):
		return Swatch{Fill: colornames.Dimgray}, true
	case strings.HasPrefix(id, "grass_road_"):
		return Swatch{Fill: colornames.Tan}, true
	case strings.HasPrefix(id, "sidewalk_"):
		return Swatch{Fill: colornames.Lightgray}, true
	case strings.HasPrefix(id, "apartment_"):
		return apartmentSwatch(id)
	case strings.HasPrefix(id, "signature_"):
		return signatureSwatch(id)
	}
	return Swatch{}, false
}

// apartmentSwatch reads colour and level from apartment_<Colour>_<WxH>_<level>.
func apartmentSwatch(id string) (Swatch, bool) {
	parts := strings.Split(id, "_")
	if len(parts) < 4 {
		return Swatch{}, false
	}
	c, ok := colornames.Map[strings.ToLower(parts[1])]
	if !ok {
		return Swatch{}, false
	}
	level := 1
	switch parts[3] {
	case "2":
		level = 2
	case "3":
		level = 3
	}
	return Swatch{Fill: c, Height: float64(18 + 22*level)}, true
}

var signatureColours = map[string]color.RGBA{
	"signature_university":        colornames.Steelblue,
	"signature_townhall":          colornames.Wheat,
	"signature_library":           colornames.Sienna,
	"signature_football_american": colornames.Forestgreen,
	"signature_football_soccer":   colornames.Seagreen,
	"signature_cricket":           colornames.Olivedrab,
	"signature_baseball":          colornames.Darkkhaki,
	"signature_fire_station":      colornames.Firebrick,
	"signature_police_station":    colornames.Navy,
	"signature_hospital":          colornames.Whitesmoke,
	"signature_emergency_room":    colornames.Lightcoral,
}

func signatureSwatch(id string) (Swatch, bool) {
	c, ok := signatureColours[id]
	if !ok {
		return Swatch{}, false
	}
	return Swatch{Fill: c, Height: 70}, true
}

// AssetCache resolves ids through a resolver, falling back to the
// placeholder and warning once per unresolved id.
type AssetCache struct {
	resolver AssetResolver
	cache    map[string]Swatch
	missing  map[string]bool
}

func NewAssetCache(r AssetResolver) *AssetCache {
	if r == nil {
		r = PaletteAssets{}
	}
	return &AssetCache{
		resolver: r,
		cache:    make(map[string]Swatch),
		missing:  make(map[string]bool),
	}
}

// Swatch returns the look for id, never failing.
func (ac *AssetCache) Swatch(id string) Swatch {
	if s, ok := ac.cache[id]; ok {
		return s
	}
	s, ok := ac.resolver.Resolve(id)
	if !ok {
		if !ac.missing[id] {
			ac.missing[id] = true
			logger.Log.WithField("asset", id).Warn("asset not found, using placeholder")
		}
		s = placeholderSwatch
	}
	ac.cache[id] = s
	return s
}

// Missing lists the ids that fell back to the placeholder.
func (ac *AssetCache) Missing() []string {
	out := make([]string, 0, len(ac.missing))
	for id := range ac.missing {
		out = append(out, id)
	}
	return out
}
