// Package capacity derives the student ceilings quoted in proposal texts.
// The figures are descriptive only and never affect price.
package capacity

import (
	"strconv"
	"strings"

	"github.com/littlemaker/configurador/internal/catalog"
	"github.com/littlemaker/configurador/internal/selection"
)

// Capacity holds the furniture and tool ceilings of one category.
type Capacity struct {
	Furniture int `json:"num"`
	Tools     int `json:"numf"`
}

// Compute sums the seats of the selected furnishing items of cat and applies
// the tool caps of the reduced and alternate modes.
func Compute(sel selection.Set, cat catalog.Category, c catalog.Catalog) Capacity {
	var cp Capacity
	for _, it := range sel.Items(c) {
		if it.Category == cat && it.Type == catalog.TypeFurnishing {
			cp.Furniture += it.Seats
		}
	}
	cp.Tools = cp.Furniture

	switch cat {
	case catalog.CategoryMaker:
		switch {
		case sel.Has("maker_ferr_red_18"):
			cp.Tools = 18
		case sel.Has("maker_minima"):
			cp.Tools = 24
		}
	case catalog.CategoryEarlyChildhood:
		if sel.Has("infantil_carrinho") {
			cp.Tools = 18
			if up, ok := c.Item("infantil_ferr_up_6"); ok && sel.Has(up.ID) {
				cp.Tools += up.Seats
			}
		}
	}
	return cp
}

// Variant keys select the descriptive text block for a category.
const (
	MakerMinimaReduced  = "maker_minima_reduzida"
	MakerMinimaStandard = "maker_minima_padrao"
	MakerMinimaSolo     = "maker_minima_solo"
	MakerCompletePC     = "maker_completa_pc"
	MakerComplete       = "maker_completa"
	MakerStandard       = "maker_padrao"
	MediaWithComputers  = "midia_com_computadores"
	MediaStandard       = "midia_padrao"
	EarlyCart           = "infantil_carrinho"
	EarlyWorkshop       = "infantil_oficina"
)

// Variant picks the text block for cat given the selection.
func Variant(sel selection.Set, cat catalog.Category) string {
	switch cat {
	case catalog.CategoryMaker:
		if sel.Has("maker_minima") {
			switch {
			case sel.Has("maker_ferr_red_18"):
				return MakerMinimaReduced
			case sel.Has("maker_ferr_padrao"):
				return MakerMinimaStandard
			default:
				return MakerMinimaSolo
			}
		}
		switch {
		case sel.Has("maker_ferr_digitais") && sel.Has("maker_ferr_pc"):
			return MakerCompletePC
		case sel.Has("maker_ferr_digitais"):
			return MakerComplete
		default:
			return MakerStandard
		}
	case catalog.CategoryMedia:
		if sel.Has("midia_ferr_pc") {
			return MediaWithComputers
		}
		return MediaStandard
	case catalog.CategoryEarlyChildhood:
		if sel.Has("infantil_carrinho") {
			return EarlyCart
		}
		return EarlyWorkshop
	}
	return ""
}

// Fill replaces the {{num}} and {{numf}} placeholders in text.
func Fill(text string, cp Capacity) string {
	return strings.NewReplacer(
		"{{num}}", strconv.Itoa(cp.Furniture),
		"{{numf}}", strconv.Itoa(cp.Tools),
	).Replace(text)
}
