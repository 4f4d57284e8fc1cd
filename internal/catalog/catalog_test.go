package catalog

import "testing"

func TestDefaults_ItemsAndRegions(t *testing.T) {
	s := Defaults()

	if len(s.Items) != 19 {
		t.Fatalf("len(items) = %d, want 19", len(s.Items))
	}
	if len(s.Regions) != 6 {
		t.Fatalf("len(regions) = %d, want 6", len(s.Regions))
	}

	c := s.Catalog()
	for _, id := range []string{"midia_padrao_24", "maker_padrao_24", "infantil_padrao_18", "maker_ferr_padrao", "midia_ferr_padrao", "infantil_ferr_18"} {
		it, ok := c.Item(id)
		if !ok {
			t.Fatalf("missing base item %q", id)
		}
		if !it.IsBase {
			t.Fatalf("%s.IsBase = false, want true", id)
		}
	}

	minima, _ := c.Item("maker_minima")
	if minima.IsBase || minima.IsUpgrade || minima.RequiresAssembly {
		t.Fatalf("maker_minima flags = %+v, want none set", minima)
	}
}

func TestCatalog_DuplicateIDsKeepFirst(t *testing.T) {
	c := New([]Item{
		{ID: "a", Price: 1},
		{ID: "a", Price: 2},
		{ID: "b", Price: 3},
	})

	if got := len(c.Items()); got != 2 {
		t.Fatalf("len(items) = %d, want 2", got)
	}
	a, _ := c.Item("a")
	if a.Price != 1 {
		t.Fatalf("a.Price = %v, want 1", a.Price)
	}
	if c.Has("z") {
		t.Fatalf("Has(z) = true, want false")
	}
}

func TestCatalog_Pair(t *testing.T) {
	c := New(DefaultItems())

	got := c.Pair(CategoryMaker, TypeTools)
	want := []string{"maker_ferr_padrao", "maker_ferr_digitais", "maker_ferr_pc", "maker_ferr_red_18"}
	if len(got) != len(want) {
		t.Fatalf("len(pair) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("pair[%d] = %s, want %s", i, got[i].ID, want[i])
		}
	}
}

func TestSettings_RegionFallsBackToFirst(t *testing.T) {
	s := Defaults()

	if r := s.Region("norte"); r.PriceAssembly != 21800 {
		t.Fatalf("norte.PriceAssembly = %v, want 21800", r.PriceAssembly)
	}
	if r := s.Region("atlantida"); r.ID != "ate_700" {
		t.Fatalf("unknown region = %s, want ate_700", r.ID)
	}
	if r := (Settings{}).Region("sul"); r != (Region{}) {
		t.Fatalf("empty regions = %+v, want zero", r)
	}
}

func TestSettings_NormalizeKeepsStoredVariables(t *testing.T) {
	s := Settings{
		Regions:   []Region{{ID: "x", PriceSimple: 1, PriceAssembly: 2}},
		Variables: Variables{MaterialBonus: 0, InfraBonus: -0.1},
	}.Normalize()

	if len(s.Items) != len(DefaultItems()) {
		t.Fatalf("items not defaulted: %d", len(s.Items))
	}
	if len(s.Regions) != 1 || s.Regions[0].ID != "x" {
		t.Fatalf("regions = %+v, want stored list kept", s.Regions)
	}
	if s.Variables.MaterialBonus != 0 {
		t.Fatalf("MaterialBonus = %v, want explicit 0 kept", s.Variables.MaterialBonus)
	}
	if s.Variables.InfraBonus != 0 {
		t.Fatalf("InfraBonus = %v, want negative clamped to 0", s.Variables.InfraBonus)
	}
	if s.Variables.MarketplaceMargin != DefaultMarketplaceMargin {
		t.Fatalf("MarketplaceMargin = %v, want %v", s.Variables.MarketplaceMargin, DefaultMarketplaceMargin)
	}
}

func TestSettings_NormalizeBackfillsSeats(t *testing.T) {
	stored := []Item{
		{ID: "maker_padrao_24", Category: CategoryMaker, Type: TypeFurnishing, Price: 1, IsBase: true},
		{ID: "maker_up_12", Category: CategoryMaker, Type: TypeFurnishing, Price: 1, IsUpgrade: true, Seats: 10},
		{ID: "robotica_kit", Category: "robotica", Type: TypeTools, Price: 1},
	}
	s := Settings{Items: stored}.Normalize()

	want := map[string]int{"maker_padrao_24": 24, "maker_up_12": 10, "robotica_kit": 0}
	for _, it := range s.Items {
		if it.Seats != want[it.ID] {
			t.Fatalf("%s seats = %d, want %d", it.ID, it.Seats, want[it.ID])
		}
	}
	if stored[0].Seats != 0 {
		t.Fatalf("stored items were mutated")
	}
}

func TestRegionForState(t *testing.T) {
	cases := map[string]string{
		"SP": "ate_700",
		"RJ": "sudeste",
		"RS": "sul",
		"DF": "centro_oeste",
		"BA": "nordeste",
		"AM": "norte",
	}
	for uf, want := range cases {
		got, ok := RegionForState(uf)
		if !ok || got != want {
			t.Fatalf("RegionForState(%s) = %s, %v, want %s", uf, got, ok, want)
		}
	}
	if _, ok := RegionForState("XX"); ok {
		t.Fatalf("RegionForState(XX) ok = true, want false")
	}
}
