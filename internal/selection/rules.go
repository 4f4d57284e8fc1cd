package selection

import "github.com/littlemaker/configurador/internal/catalog"

// Rule couples the items of one category/type pair.
type Rule struct {
	Category catalog.Category
	Type     catalog.ItemType
	Base     string
	Upgrades []string
	// ExclusiveUpgrades allows at most one upgrade of the pair at a time.
	ExclusiveUpgrades bool
	// Alternate is incompatible with the base and its upgrades.
	Alternate string
	// Companion is force-added whenever the base or an upgrade is added.
	Companion string
}

// Rules is a rule table keyed by category/type pair.
type Rules []Rule

// DefaultRules is the canonical coupling table for the stock catalog.
var DefaultRules = Rules{
	{
		Category: catalog.CategoryMedia, Type: catalog.TypeFurnishing,
		Base:              "midia_padrao_24",
		Upgrades:          []string{"midia_up_12", "midia_up_6"},
		ExclusiveUpgrades: true,
	},
	{
		Category: catalog.CategoryMaker, Type: catalog.TypeFurnishing,
		Base:              "maker_padrao_24",
		Upgrades:          []string{"maker_up_12", "maker_up_6"},
		ExclusiveUpgrades: true,
		Alternate:         "maker_minima",
	},
	{
		Category: catalog.CategoryMaker, Type: catalog.TypeTools,
		Base:      "maker_ferr_padrao",
		Upgrades:  []string{"maker_ferr_digitais", "maker_ferr_pc"},
		Alternate: "maker_ferr_red_18",
	},
	{
		Category: catalog.CategoryMedia, Type: catalog.TypeTools,
		Base:     "midia_ferr_padrao",
		Upgrades: []string{"midia_ferr_pc"},
	},
	{
		Category: catalog.CategoryEarlyChildhood, Type: catalog.TypeFurnishing,
		Base:              "infantil_padrao_18",
		Upgrades:          []string{"infantil_up_12", "infantil_up_6"},
		ExclusiveUpgrades: true,
		Alternate:         "infantil_carrinho",
		Companion:         "infantil_ferr_18",
	},
	{
		Category: catalog.CategoryEarlyChildhood, Type: catalog.TypeTools,
		Base:              "infantil_ferr_18",
		Upgrades:          []string{"infantil_ferr_up_6"},
		ExclusiveUpgrades: true,
	},
}

// For returns the rule for a pair. Pairs missing from the table get a rule
// derived from the catalog flags: the first base item and every upgrade,
// cumulative, with no alternate.
func (rs Rules) For(cat catalog.Category, typ catalog.ItemType, c catalog.Catalog) Rule {
	for _, r := range rs {
		if r.Category == cat && r.Type == typ {
			return r
		}
	}
	r := Rule{Category: cat, Type: typ}
	for _, it := range c.Pair(cat, typ) {
		switch {
		case it.IsBase && r.Base == "":
			r.Base = it.ID
		case it.IsUpgrade:
			r.Upgrades = append(r.Upgrades, it.ID)
		}
	}
	return r
}

// upgrades merges the listed upgrades with every catalog item of the pair
// flagged as an upgrade.
func (r Rule) upgrades(c catalog.Catalog) []string {
	out := append([]string(nil), r.Upgrades...)
	seen := make(map[string]bool, len(out))
	for _, id := range out {
		seen[id] = true
	}
	for _, it := range c.Pair(r.Category, r.Type) {
		if it.IsUpgrade && !seen[it.ID] {
			out = append(out, it.ID)
			seen[it.ID] = true
		}
	}
	return out
}

func (r Rule) isUpgrade(id string, c catalog.Catalog) bool {
	for _, u := range r.upgrades(c) {
		if u == id {
			return true
		}
	}
	return false
}

// Toggle adds or removes id and applies the coupling rules of its pair.
// Unknown ids leave the selection unchanged. The input set is never mutated.
func (rs Rules) Toggle(s Set, id string, c catalog.Catalog) Set {
	next := s.Clone()
	item, ok := c.Item(id)
	if !ok {
		return next
	}
	r := rs.For(item.Category, item.Type, c)

	if next.Has(id) {
		next.Remove(id)
		if id == r.Base {
			for _, u := range r.upgrades(c) {
				next.Remove(u)
			}
		}
		return next
	}

	next.Add(id)
	switch {
	case r.Alternate != "" && id == r.Alternate:
		next.Remove(r.Base)
		for _, u := range r.upgrades(c) {
			next.Remove(u)
		}
	case id == r.Base || r.isUpgrade(id, c):
		if r.Alternate != "" {
			next.Remove(r.Alternate)
		}
		if id != r.Base {
			if r.Base != "" && c.Has(r.Base) {
				next.Add(r.Base)
			}
			if r.ExclusiveUpgrades {
				for _, u := range r.upgrades(c) {
					if u != id {
						next.Remove(u)
					}
				}
			}
		}
		if r.Companion != "" && c.Has(r.Companion) {
			next.Add(r.Companion)
		}
	}
	return next
}

// Toggle applies DefaultRules.
func Toggle(s Set, id string, c catalog.Catalog) Set {
	return DefaultRules.Toggle(s, id, c)
}
