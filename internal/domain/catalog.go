package domain

// CatalogEntry is one selectable component.
type CatalogEntry struct {
	Label   string
	Value   string // component name, used as Component.Name
	Details PropertyBag
}

// CatalogGroup groups entries sharing a base name ("Ethanol" ->
// "Ethanol (C2)", ...).
type CatalogGroup struct {
	Label   string
	Entries []CatalogEntry
}

// CatalogSection is the base/additive split for one fuel type.
type CatalogSection struct {
	Bases     []CatalogGroup
	Additives []CatalogGroup
}

// Catalog holds the selectable components for every fuel type.
type Catalog struct {
	Sections map[FuelType]CatalogSection
}

// Empty reports whether the catalog has no entries at all.
func (c *Catalog) Empty() bool {
	if c == nil {
		return true
	}
	for _, s := range c.Sections {
		if len(s.Bases) > 0 || len(s.Additives) > 0 {
			return false
		}
	}
	return true
}

// Section returns the section for ft (zero value if absent).
func (c *Catalog) Section(ft FuelType) CatalogSection {
	if c == nil || c.Sections == nil {
		return CatalogSection{}
	}
	return c.Sections[ft]
}

// FirstBase returns the first base entry for ft.
func (c *Catalog) FirstBase(ft FuelType) (CatalogEntry, bool) {
	return first(c.Section(ft).Bases)
}

// FirstAdditive returns the first additive entry for ft.
func (c *Catalog) FirstAdditive(ft FuelType) (CatalogEntry, bool) {
	return first(c.Section(ft).Additives)
}

// Additives returns every additive entry for ft in catalog order.
func (c *Catalog) Additives(ft FuelType) []CatalogEntry {
	return flatten(c.Section(ft).Additives)
}

// Bases returns every base entry for ft in catalog order.
func (c *Catalog) Bases(ft FuelType) []CatalogEntry {
	return flatten(c.Section(ft).Bases)
}

// Lookup finds a base or additive of fuel type ft by component name.
func (c *Catalog) Lookup(ft FuelType, name string) (CatalogEntry, bool) {
	s := c.Section(ft)
	for _, groups := range [][]CatalogGroup{s.Bases, s.Additives} {
		for _, e := range flatten(groups) {
			if e.Value == name {
				return e, true
			}
		}
	}
	return CatalogEntry{}, false
}

func first(groups []CatalogGroup) (CatalogEntry, bool) {
	for _, g := range groups {
		if len(g.Entries) > 0 {
			return g.Entries[0], true
		}
	}
	return CatalogEntry{}, false
}

func flatten(groups []CatalogGroup) []CatalogEntry {
	var out []CatalogEntry
	for _, g := range groups {
		out = append(out, g.Entries...)
	}
	return out
}
