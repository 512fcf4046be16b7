package game

import "testing"

func TestFootprintOf_NamingConvention(t *testing.T) {
	cases := map[string]Footprint{
		"signature_university":   {Width: 2, Height: 2},
		"signature_anything":     {Width: 2, Height: 2},
		"apartment_Blue_2x2_1":   {Width: 2, Height: 2},
		"apartment_Blue_1x1_3":   {Width: 1, Height: 1},
		"apartment_Blue_2x1_1":   {Width: 2, Height: 1},
		"apartment_Blue_9x9_1":   {Width: 1, Height: 1}, // beyond the known bound
		"apartment_Blue":         {Width: 1, Height: 1},
		"road_1":                 {Width: 1, Height: 1},
		"something_unrecognised": {Width: 1, Height: 1},
	}
	for key, want := range cases {
		if got := FootprintOf(key); got != want {
			t.Fatalf("FootprintOf(%q)=%+v, want %+v", key, got, want)
		}
	}
}

func TestIsGroundCover(t *testing.T) {
	for _, k := range []string{"grass", "road_1", "grass_road_9", "sidewalk_1"} {
		if !IsGroundCover(k) {
			t.Fatalf("%q should be ground cover", k)
		}
	}
	for _, k := range []string{"apartment_Blue_1x1_1", "signature_university", ""} {
		if IsGroundCover(k) {
			t.Fatalf("%q should not be ground cover", k)
		}
	}
}

func TestCatalog_KeysUniqueAndCategorised(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range Catalog() {
		if seen[e.Key] {
			t.Fatalf("duplicate catalog key %q", e.Key)
		}
		seen[e.Key] = true
		if got := CategoryOf(e.Key); got != e.Category {
			t.Fatalf("CategoryOf(%q)=%q, catalog says %q", e.Key, got, e.Category)
		}
	}
	if n := len(CatalogFor(CategoryRoads)); n != 9 {
		t.Fatalf("expected 9 road variants, got %d", n)
	}
	if n := len(CatalogFor(CategoryPaths)); n != 10 {
		t.Fatalf("expected 9 path variants plus grass, got %d", n)
	}
	if _, ok := LookupType("signature_university"); !ok {
		t.Fatal("hub type missing from catalog")
	}
}

func TestIsUnique_SignatureOnly(t *testing.T) {
	if !IsUnique("signature_library") {
		t.Fatal("signature buildings are unique")
	}
	if IsUnique("apartment_Red_1x1_1") {
		t.Fatal("apartments are not unique")
	}
}

func TestCompletedWorkshops_Unlocks(t *testing.T) {
	cw := CompletedWorkshops{}
	if !cw.IsTypeUnlocked("signature_university") {
		t.Fatal("types without a workshop are always unlocked")
	}
	if !cw.IsTypeUnlocked("apartment_Red_1x1_1") {
		t.Fatal("apartments are always unlocked")
	}
	if cw.IsTypeUnlocked("signature_library") {
		t.Fatal("library needs its workshop")
	}
	cw.Complete("A1")
	if !cw.IsTypeUnlocked("signature_library") {
		t.Fatal("library should unlock after A1")
	}
}
