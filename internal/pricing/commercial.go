package pricing

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNotPrivileged   = errors.New("manual overrides require a privileged user")
	ErrUnknownOverride = errors.New("unknown override field")
)

// Duration is the contract length in years.
type Duration int

const (
	OneYear    Duration = 1
	ThreeYears Duration = 3
)

// Valid reports whether d is a supported contract length.
func (d Duration) Valid() bool { return d == OneYear || d == ThreeYears }

// Overrides are manual replacements for computed values. A nil field is unset.
type Overrides struct {
	MaterialPricePerYear *float64 `json:"materialPricePerYear,omitempty"`
	InfraTotal           *float64 `json:"infraTotal,omitempty"`
	MaterialBonus        *float64 `json:"materialBonus,omitempty"`
	InfraBonus           *float64 `json:"infraBonus,omitempty"`
}

// OverrideField names one of the four override slots.
type OverrideField string

const (
	FieldMaterialPricePerYear OverrideField = "materialPricePerYear"
	FieldInfraTotal           OverrideField = "infraTotal"
	FieldMaterialBonus        OverrideField = "materialBonus"
	FieldInfraBonus           OverrideField = "infraBonus"
)

func (o *Overrides) slot(f OverrideField) (**float64, error) {
	switch f {
	case FieldMaterialPricePerYear:
		return &o.MaterialPricePerYear, nil
	case FieldInfraTotal:
		return &o.InfraTotal, nil
	case FieldMaterialBonus:
		return &o.MaterialBonus, nil
	case FieldInfraBonus:
		return &o.InfraBonus, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOverride, f)
	}
}

func (o Overrides) clone() Overrides {
	cp := func(p *float64) *float64 {
		if p == nil {
			return nil
		}
		v := *p
		return &v
	}
	return Overrides{
		MaterialPricePerYear: cp(o.MaterialPricePerYear),
		InfraTotal:           cp(o.InfraTotal),
		MaterialBonus:        cp(o.MaterialBonus),
		InfraBonus:           cp(o.InfraBonus),
	}
}

// Commercial is the per-proposal commercial configuration.
type Commercial struct {
	TotalStudents    int       `json:"totalStudents"`
	ContractDuration Duration  `json:"contractDuration"`
	UseMarketplace   bool      `json:"useMarketplace"`
	ApplyInfraBonus  bool      `json:"applyInfraBonus"`
	Overrides        Overrides `json:"overrides"`
}

// Clone returns a copy that shares no override pointers with c.
func (c Commercial) Clone() Commercial {
	c.Overrides = c.Overrides.clone()
	return c
}

func (c Commercial) clearBonusOverrides() Commercial {
	c = c.Clone()
	c.Overrides.MaterialBonus = nil
	c.Overrides.InfraBonus = nil
	return c
}

// ToggleContract switches between one and three years. Leaving the
// three-year contract also turns the infra bonus off.
func (c Commercial) ToggleContract() Commercial {
	c = c.clearBonusOverrides()
	if c.ContractDuration == ThreeYears {
		c.ContractDuration = OneYear
		c.ApplyInfraBonus = false
	} else {
		c.ContractDuration = ThreeYears
	}
	return c
}

// ToggleMarketplace flips the sales channel. Without the marketplace the
// infra bonus does not apply.
func (c Commercial) ToggleMarketplace() Commercial {
	c = c.clearBonusOverrides()
	c.UseMarketplace = !c.UseMarketplace
	if !c.UseMarketplace {
		c.ApplyInfraBonus = false
	}
	return c
}

func (c Commercial) ToggleInfraBonus() Commercial {
	c = c.clearBonusOverrides()
	c.ApplyInfraBonus = !c.ApplyInfraBonus
	return c
}

// MaxStudents bounds student counts taken from untyped input.
const MaxStudents = 1_000_000_000

// StudentCount converts a decoded number into a student count: fractions are
// truncated, NaN and non-positive values become 0 and huge values saturate at
// MaxStudents.
func StudentCount(f float64) int {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= MaxStudents {
		return MaxStudents
	}
	return int(f)
}

// SetStudents replaces the student count; negative counts become zero.
func (c Commercial) SetStudents(n int) Commercial {
	c = c.Clone()
	if n < 0 {
		n = 0
	}
	c.TotalStudents = n
	return c
}

// SetOverride stores a manual value for field. Only privileged callers may do it.
func (c Commercial) SetOverride(f OverrideField, v float64, privileged bool) (Commercial, error) {
	if !privileged {
		return c, ErrNotPrivileged
	}
	c = c.Clone()
	p, err := c.Overrides.slot(f)
	if err != nil {
		return c, err
	}
	*p = &v
	return c, nil
}

// ClearOverride removes the manual value for field.
func (c Commercial) ClearOverride(f OverrideField, privileged bool) (Commercial, error) {
	if !privileged {
		return c, ErrNotPrivileged
	}
	c = c.Clone()
	p, err := c.Overrides.slot(f)
	if err != nil {
		return c, err
	}
	*p = nil
	return c, nil
}

// Normalize coerces out-of-range values into the supported domain.
func (c Commercial) Normalize() Commercial {
	if c.TotalStudents < 0 {
		c.TotalStudents = 0
	}
	if !c.ContractDuration.Valid() {
		c.ContractDuration = OneYear
	}
	return c
}
