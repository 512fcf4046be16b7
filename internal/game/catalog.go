package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Category names used by the building menu.
const (
	CategoryApartments = "apartments"
	CategorySignature  = "signature"
	CategoryRoads      = "roads"
	CategoryPaths      = "paths"
	CategoryDelete     = "delete"
)

// Categories lists the selectable menu categories in bar order.
var Categories = []string{CategoryApartments, CategorySignature, CategoryRoads, CategoryPaths, CategoryDelete}

// Footprint is the rectangle of cells a structure covers.
type Footprint struct {
	Width  int
	Height int
}

// maxFootprintSide bounds the origin scan used when a tile has no owner index.
const maxFootprintSide = 2

// CatalogEntry describes one selectable type.
type CatalogEntry struct {
	Key              string
	Name             string
	Category         string
	RequiredWorkshop string // empty = always available
}

var apartmentColours = []string{"Blue", "Green", "Red", "Yellow", "Pink", "Grey"}

var apartmentSizes = []struct {
	size, level, label string
}{
	{"1x1", "1", "Small"},
	{"1x1", "2", "Medium"},
	{"1x1", "3", "Tall"},
	{"2x2", "1", "Large"},
}

var signatureEntries = []CatalogEntry{
	{Key: "signature_university", Name: "University"},
	{Key: "signature_townhall", Name: "Town Hall", RequiredWorkshop: "COMMON"},
	{Key: "signature_library", Name: "Library", RequiredWorkshop: "A1"},
	{Key: "signature_football_american", Name: "Football Stadium", RequiredWorkshop: "A2"},
	{Key: "signature_football_soccer", Name: "Soccer Stadium", RequiredWorkshop: "B2"},
	{Key: "signature_cricket", Name: "Cricket Stadium", RequiredWorkshop: "C2"},
	{Key: "signature_baseball", Name: "Baseball Stadium", RequiredWorkshop: "F1"},
	{Key: "signature_fire_station", Name: "Fire Station", RequiredWorkshop: "F2"},
	{Key: "signature_police_station", Name: "Police Station", RequiredWorkshop: "F3"},
	{Key: "signature_hospital", Name: "Hospital", RequiredWorkshop: "F4"},
	{Key: "signature_emergency_room", Name: "Emergency Room", RequiredWorkshop: "E"},
}

var roadNames = [9]string{
	"Straight Road", "Straight Road", "Turn Road", "Turn Road", "Turn Road",
	"Turn Road", "T-Junction", "Crossroad", "End Cap",
}

var pathNames = [9]string{
	"Garden Path", "Garden Path", "Garden Turn", "Garden Turn", "Garden Turn",
	"Garden Turn", "Garden Junction", "Garden Cross", "Garden End",
}

// Catalog returns every selectable type, grouped by category in menu order.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, 0, 64)
	for _, c := range apartmentColours {
		for _, s := range apartmentSizes {
			out = append(out, CatalogEntry{
				Key:      fmt.Sprintf("apartment_%s_%s_%s", c, s.size, s.level),
				Name:     c + " " + s.label,
				Category: CategoryApartments,
			})
		}
	}
	for _, e := range signatureEntries {
		e.Category = CategorySignature
		out = append(out, e)
	}
	for i, n := range roadNames {
		out = append(out, CatalogEntry{Key: fmt.Sprintf("road_%d", i+1), Name: n, Category: CategoryRoads})
	}
	for i, n := range pathNames {
		out = append(out, CatalogEntry{Key: fmt.Sprintf("grass_road_%d", i+1), Name: n, Category: CategoryPaths})
	}
	out = append(out, CatalogEntry{Key: string(GroundGrass), Name: "Grass", Category: CategoryPaths})
	return out
}

// CatalogFor returns the entries of one category.
func CatalogFor(category string) []CatalogEntry {
	var out []CatalogEntry
	for _, e := range Catalog() {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// LookupType finds a catalog entry by key.
func LookupType(key string) (CatalogEntry, bool) {
	for _, e := range Catalog() {
		if e.Key == key {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// IsGroundCover reports whether typeKey changes a tile's surface instead of
// placing a structure. The two placement modes never overlap.
func IsGroundCover(typeKey string) bool {
	return typeKey == string(GroundGrass) || GroundKey(typeKey).IsRoad()
}

// IsUnique reports whether at most one structure of typeKey may exist.
func IsUnique(typeKey string) bool {
	return strings.HasPrefix(typeKey, "signature_")
}

// FootprintOf derives the footprint from the naming convention: signature
// buildings are 2×2, apartments carry a WxH size token, all else is 1×1.
func FootprintOf(typeKey string) Footprint {
	switch {
	case strings.HasPrefix(typeKey, "signature_"):
		return Footprint{Width: 2, Height: 2}
	case strings.HasPrefix(typeKey, "apartment_"):
		for _, tok := range strings.Split(typeKey, "_") {
			if fp, ok := parseSizeToken(tok); ok {
				return fp
			}
		}
	}
	return Footprint{Width: 1, Height: 1}
}

// parseSizeToken parses "2x2"-style tokens within the known footprint bound.
func parseSizeToken(tok string) (Footprint, bool) {
	ws, hs, found := strings.Cut(tok, "x")
	if !found {
		return Footprint{}, false
	}
	w, err1 := strconv.Atoi(ws)
	h, err2 := strconv.Atoi(hs)
	if err1 != nil || err2 != nil || w < 1 || h < 1 || w > maxFootprintSide || h > maxFootprintSide {
		return Footprint{}, false
	}
	return Footprint{Width: w, Height: h}, true
}

// CategoryOf returns the menu category a key belongs to, or "" if unknown.
func CategoryOf(typeKey string) string {
	switch {
	case strings.HasPrefix(typeKey, "apartment_"):
		return CategoryApartments
	case strings.HasPrefix(typeKey, "signature_"):
		return CategorySignature
	case strings.HasPrefix(typeKey, "road_"):
		return CategoryRoads
	case strings.HasPrefix(typeKey, "grass_road_"), strings.HasPrefix(typeKey, "sidewalk_"), typeKey == string(GroundGrass):
		return CategoryPaths
	}
	return ""
}
