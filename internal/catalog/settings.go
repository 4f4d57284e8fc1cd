package catalog

// Variables are the tenant-wide rate tunables.
type Variables struct {
	MarketplaceMargin float64 `json:"marketplaceMargin"`
	MaterialBonus     float64 `json:"materialBonus"`
	InfraBonus        float64 `json:"infraBonus"`
}

// Normalize keeps the margin usable as a divisor and clamps negative bonus
// fractions to zero. A zero bonus fraction disables that bonus. Missing keys
// are filled by decoding over DefaultVariables, not here.
func (v Variables) Normalize() Variables {
	if v.MarketplaceMargin <= 0 {
		v.MarketplaceMargin = DefaultMarketplaceMargin
	}
	if v.MaterialBonus < 0 {
		v.MaterialBonus = 0
	}
	if v.InfraBonus < 0 {
		v.InfraBonus = 0
	}
	return v
}

// Settings is the tenant configuration document: catalog, freight table and variables.
type Settings struct {
	Items     []Item    `json:"items"`
	Regions   []Region  `json:"regions"`
	Variables Variables `json:"variables"`
}

// Defaults returns the stock settings document.
func Defaults() Settings {
	return Settings{
		Items:     DefaultItems(),
		Regions:   DefaultRegions(),
		Variables: DefaultVariables(),
	}
}

// Normalize fills an empty catalog or freight table with the stock lists,
// restores the seat counts of stock items stored without them and clamps
// the variables.
func (s Settings) Normalize() Settings {
	if len(s.Items) == 0 {
		s.Items = DefaultItems()
	} else {
		s.Items = backfillSeats(s.Items)
	}
	if len(s.Regions) == 0 {
		s.Regions = DefaultRegions()
	}
	s.Variables = s.Variables.Normalize()
	return s
}

func backfillSeats(items []Item) []Item {
	stock := make(map[string]int, len(items))
	for _, it := range DefaultItems() {
		stock[it.ID] = it.Seats
	}
	out := make([]Item, len(items))
	for i, it := range items {
		if it.Seats == 0 {
			it.Seats = stock[it.ID]
		}
		out[i] = it
	}
	return out
}

// Catalog indexes the settings items.
func (s Settings) Catalog() Catalog {
	return New(s.Items)
}

// Region returns the region with the given id, or the first region when the
// id is unknown. The zero Region is returned only for an empty freight table.
func (s Settings) Region(id string) Region {
	for _, r := range s.Regions {
		if r.ID == id {
			return r
		}
	}
	if len(s.Regions) == 0 {
		return Region{}
	}
	return s.Regions[0]
}
