package selection

import (
	"testing"

	json "github.com/goccy/go-json"

	"github.com/littlemaker/configurador/internal/catalog"
)

var stock = catalog.New(catalog.DefaultItems())

func assertSet(t *testing.T, name string, got Set, want ...string) {
	t.Helper()
	if !got.Equal(Of(want...)) {
		t.Fatalf("%s = %v, want %v", name, got.IDs(), Of(want...).IDs())
	}
}

func TestToggle_UnknownIDIsNoop(t *testing.T) {
	in := Of("maker_padrao_24")
	got := Toggle(in, "nope", stock)
	assertSet(t, "selection", got, "maker_padrao_24")

	got.Add("x")
	if in.Has("x") {
		t.Fatalf("Toggle returned the input set instead of a copy")
	}
}

func TestToggle_UpgradeAddsBase(t *testing.T) {
	got := Toggle(Set{}, "maker_up_12", stock)
	assertSet(t, "selection", got, "maker_padrao_24", "maker_up_12")
}

func TestToggle_ExclusiveUpgrades(t *testing.T) {
	got := Toggle(Of("midia_padrao_24", "midia_up_12"), "midia_up_6", stock)
	assertSet(t, "selection", got, "midia_padrao_24", "midia_up_6")
}

func TestToggle_CumulativeToolUpgrades(t *testing.T) {
	s := Toggle(Set{}, "maker_ferr_digitais", stock)
	s = Toggle(s, "maker_ferr_pc", stock)
	assertSet(t, "selection", s, "maker_ferr_padrao", "maker_ferr_digitais", "maker_ferr_pc")
}

func TestToggle_RemovingBaseCascades(t *testing.T) {
	got := Toggle(Of("maker_ferr_padrao", "maker_ferr_digitais", "maker_ferr_pc", "maker_padrao_24"), "maker_ferr_padrao", stock)
	assertSet(t, "selection", got, "maker_padrao_24")
}

func TestToggle_RemovingUpgradeKeepsBase(t *testing.T) {
	got := Toggle(Of("infantil_padrao_18", "infantil_up_6", "infantil_ferr_18"), "infantil_up_6", stock)
	assertSet(t, "selection", got, "infantil_padrao_18", "infantil_ferr_18")
}

func TestToggle_AlternateModes(t *testing.T) {
	tests := []struct {
		name string
		in   Set
		id   string
		want []string
	}{
		{
			name: "minima removes standard maker furnishing",
			in:   Of("maker_padrao_24", "maker_up_6", "maker_ferr_padrao"),
			id:   "maker_minima",
			want: []string{"maker_minima", "maker_ferr_padrao"},
		},
		{
			name: "standard maker furnishing removes minima",
			in:   Of("maker_minima"),
			id:   "maker_padrao_24",
			want: []string{"maker_padrao_24"},
		},
		{
			name: "maker upgrade removes minima",
			in:   Of("maker_minima"),
			id:   "maker_up_6",
			want: []string{"maker_padrao_24", "maker_up_6"},
		},
		{
			name: "reduced tools removes standard tools and upgrades",
			in:   Of("maker_ferr_padrao", "maker_ferr_pc"),
			id:   "maker_ferr_red_18",
			want: []string{"maker_ferr_red_18"},
		},
		{
			name: "tools upgrade removes reduced tools",
			in:   Of("maker_ferr_red_18"),
			id:   "maker_ferr_pc",
			want: []string{"maker_ferr_padrao", "maker_ferr_pc"},
		},
		{
			name: "cart removes standard infantil furnishing",
			in:   Of("infantil_padrao_18", "infantil_up_12", "infantil_ferr_18"),
			id:   "infantil_carrinho",
			want: []string{"infantil_carrinho", "infantil_ferr_18"},
		},
		{
			name: "standard infantil furnishing removes cart and adds tools",
			in:   Of("infantil_carrinho"),
			id:   "infantil_padrao_18",
			want: []string{"infantil_padrao_18", "infantil_ferr_18"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSet(t, "selection", Toggle(tt.in, tt.id, stock), tt.want...)
		})
	}
}

func TestToggle_TwiceReturnsToConsistentSelection(t *testing.T) {
	start := Of("maker_padrao_24", "maker_ferr_padrao", "midia_padrao_24")
	for _, id := range []string{"maker_up_12", "maker_ferr_digitais", "maker_up_6", "midia_up_6"} {
		once := Toggle(start, id, stock)
		twice := Toggle(once, id, stock)
		assertSet(t, "toggle twice "+id, twice, start.IDs()...)
	}
}

func TestRules_DerivedForUnlistedPair(t *testing.T) {
	c := catalog.New([]catalog.Item{
		{ID: "b", Category: "robotica", Type: catalog.TypeTools, IsBase: true},
		{ID: "u1", Category: "robotica", Type: catalog.TypeTools, IsUpgrade: true},
		{ID: "u2", Category: "robotica", Type: catalog.TypeTools, IsUpgrade: true},
	})

	s := Toggle(Set{}, "u1", c)
	s = Toggle(s, "u2", c)
	assertSet(t, "after upgrades", s, "b", "u1", "u2")

	s = Toggle(s, "b", c)
	assertSet(t, "after base removal", s)
}

func TestNormalize_DropsUnknown(t *testing.T) {
	got := Normalize(Of("maker_minima", "gone"), stock)
	assertSet(t, "normalized", got, "maker_minima")
}

func TestSet_JSONIsSortedArray(t *testing.T) {
	b, err := json.Marshal(Of("b", "a", "c"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `["a","b","c"]` {
		t.Fatalf("json = %s, want [\"a\",\"b\",\"c\"]", b)
	}

	var s Set
	if err := json.Unmarshal([]byte(`["x","x","y"]`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	assertSet(t, "decoded", s, "x", "y")
}
