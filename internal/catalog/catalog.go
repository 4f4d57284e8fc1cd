package catalog

// Category groups catalog items by workshop kind.
type Category string

const (
	CategoryMedia          Category = "midia"
	CategoryMaker          Category = "maker"
	CategoryEarlyChildhood Category = "infantil"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryMaker, CategoryMedia, CategoryEarlyChildhood}

// Label returns the display name used in proposals.
func (c Category) Label() string {
	switch c {
	case CategoryMedia:
		return "Mídia"
	case CategoryMaker:
		return "Maker"
	case CategoryEarlyChildhood:
		return "Infantil"
	default:
		return string(c)
	}
}

// ItemType tells furnishing items apart from tool kits.
type ItemType string

const (
	TypeFurnishing ItemType = "ambientacao"
	TypeTools      ItemType = "ferramentas"
)

// Item is one sellable infrastructure package.
type Item struct {
	ID               string   `json:"id"`
	Label            string   `json:"label"`
	Category         Category `json:"category"`
	Type             ItemType `json:"type"`
	Price            float64  `json:"price"`
	Description      string   `json:"description"`
	RequiresAssembly bool     `json:"requiresAssembly"`
	IsBase           bool     `json:"isBase,omitempty"`
	IsUpgrade        bool     `json:"isUpgrade,omitempty"`
	// Seats is the nominal capacity of a base item or the increment of an upgrade.
	Seats int `json:"seats,omitempty"`
}

// Region holds the two freight tiers for a delivery area.
type Region struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	PriceSimple   float64 `json:"priceSimple"`
	PriceAssembly float64 `json:"priceAssembly"`
}

// Catalog is a read-only index over a list of items.
type Catalog struct {
	items []Item
	byID  map[string]int
}

// New indexes items by id. Later duplicates are ignored.
func New(items []Item) Catalog {
	c := Catalog{
		items: make([]Item, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for _, it := range items {
		if _, ok := c.byID[it.ID]; ok {
			continue
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c
}

// Item looks up an item by id.
func (c Catalog) Item(id string) (Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Has reports whether id is a known item.
func (c Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Items returns a copy of the items in catalog order.
func (c Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Pair returns the items sharing category and type, in catalog order.
func (c Catalog) Pair(cat Category, typ ItemType) []Item {
	var out []Item
	for _, it := range c.items {
		if it.Category == cat && it.Type == typ {
			out = append(out, it)
		}
	}
	return out
}
