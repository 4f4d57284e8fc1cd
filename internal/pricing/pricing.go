package pricing

import (
	"errors"

	"github.com/littlemaker/configurador/internal/catalog"
	"github.com/littlemaker/configurador/internal/selection"
)

// ErrNoStudents is returned by per-student helpers when the student count is zero.
var ErrNoStudents = errors.New("total students must be greater than zero")

// BonusMode tells which discount path produced the bonuses.
type BonusMode string

const (
	BonusNone     BonusMode = "none"
	BonusMaterial BonusMode = "material"
	BonusInfra    BonusMode = "infra"
)

// Result is the full financial breakdown of one proposal.
type Result struct {
	BaseRate            float64 `json:"baseRate"`
	AppliedRatePerYear  float64 `json:"appliedRatePerYear"`
	AppliedRatePerMonth float64 `json:"appliedRatePerMonth"`

	GrossMaterialContract float64 `json:"grossMaterialContract"`
	MaterialBonus         float64 `json:"materialBonus"`
	NetMaterialContract   float64 `json:"netMaterialContract"`
	NetRatePerYear        float64 `json:"netRatePerYear"`
	NetRatePerMonth       float64 `json:"netRatePerMonth"`

	InfraItemsTotal  float64 `json:"infraItemsTotal"`
	Freight          float64 `json:"freight"`
	InfraGross       float64 `json:"infraGross"`
	InfraBonus       float64 `json:"infraBonus"`
	InfraNet         float64 `json:"infraNet"`
	InfraInstallment float64 `json:"infraInstallment"`
	HasInfraItems    bool    `json:"hasInfraItems"`

	BonusMode BonusMode `json:"bonusMode"`
	// Overflow is set when the material bonus is the infra bonus surplus.
	Overflow bool `json:"overflow"`
	// PerStudentDefined is false when there are no students; per-student net rates are then zero.
	PerStudentDefined bool `json:"perStudentDefined"`
}

// BaseMaterialRate is the yearly material price per student for a school size.
func BaseMaterialRate(students int) float64 {
	switch {
	case students >= 800:
		return 240
	case students >= 400:
		return 280
	case students >= 200:
		return 350
	case students >= 100:
		return 480
	default:
		return 650
	}
}

// Freight returns the surcharge for a selection: nothing when empty, the
// assembly tier when any item requires assembly, the simple tier otherwise.
func Freight(items []catalog.Item, region catalog.Region) float64 {
	if len(items) == 0 {
		return 0
	}
	for _, it := range items {
		if it.RequiresAssembly {
			return region.PriceAssembly
		}
	}
	return region.PriceSimple
}

// Compute derives the pricing breakdown. It is pure and never fails; selected
// ids missing from the catalog are ignored.
func Compute(sel selection.Set, region catalog.Region, c Commercial, vars catalog.Variables, cat catalog.Catalog) Result {
	students := c.TotalStudents
	if students < 0 {
		students = 0
	}
	n := float64(students)

	base := BaseMaterialRate(students)
	applied := base
	if c.UseMarketplace && vars.MarketplaceMargin > 0 {
		applied = base / vars.MarketplaceMargin
	}
	if c.Overrides.MaterialPricePerYear != nil {
		applied = *c.Overrides.MaterialPricePerYear
	}

	items := sel.Items(cat)
	itemsTotal := 0.0
	for _, it := range items {
		itemsTotal += it.Price
	}
	freight := Freight(items, region)
	infraGross := itemsTotal + freight
	if c.Overrides.InfraTotal != nil {
		infraGross = *c.Overrides.InfraTotal
	}

	r := Result{
		BaseRate:            base,
		AppliedRatePerYear:  applied,
		AppliedRatePerMonth: applied / 12,
		InfraItemsTotal:     itemsTotal,
		Freight:             freight,
		InfraGross:          infraGross,
		HasInfraItems:       len(items) > 0,
		BonusMode:           BonusNone,
		PerStudentDefined:   students > 0,
	}

	if c.ContractDuration == ThreeYears {
		reference := applied * n * 3
		if c.UseMarketplace && c.ApplyInfraBonus && r.HasInfraItems {
			r.BonusMode = BonusInfra
			candidate := reference * vars.InfraBonus
			if candidate > infraGross {
				r.InfraBonus = infraGross
				r.MaterialBonus = candidate - infraGross
				r.Overflow = true
			} else {
				r.InfraBonus = candidate
			}
		} else {
			r.BonusMode = BonusMaterial
			r.MaterialBonus = reference * vars.MaterialBonus
		}
	}
	if c.Overrides.MaterialBonus != nil {
		r.MaterialBonus = *c.Overrides.MaterialBonus
		r.Overflow = false
	}
	if c.Overrides.InfraBonus != nil {
		r.InfraBonus = *c.Overrides.InfraBonus
	}

	r.GrossMaterialContract = applied * n * 3
	r.NetMaterialContract = r.GrossMaterialContract - r.MaterialBonus
	if students > 0 {
		r.NetRatePerYear = r.NetMaterialContract / 3 / n
		r.NetRatePerMonth = r.NetRatePerYear / 12
	}

	r.InfraNet = r.InfraGross - r.InfraBonus
	r.InfraInstallment = r.InfraNet / 3
	return r
}

// NetRatePerYear recomputes the net yearly rate per student, refusing a zero
// student count instead of dividing by it.
func NetRatePerYear(r Result, students int) (float64, error) {
	if students <= 0 {
		return 0, ErrNoStudents
	}
	return r.NetMaterialContract / 3 / float64(students), nil
}
