package catalog

import "sort"

// Catalog is the loaded set of reference architectures. It is safe for
// concurrent readers: nothing mutates it after Load returns.
type Catalog struct {
	entries []ArchitectureEntry
	byID    map[string]int
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns all entries sorted by ID ascending. Callers must treat
// the returned slice as read-only.
func (c *Catalog) Entries() []ArchitectureEntry {
	return c.entries
}

// Get returns the entry with the given ID.
func (c *Catalog) Get(id string) (ArchitectureEntry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return ArchitectureEntry{}, false
	}
	return c.entries[i], true
}

// Stats summarizes the catalog composition for display and export.
type Stats struct {
	Total      int                    `json:"total"`
	ByFamily   map[Family]int         `json:"by_family"`
	ByDomain   map[WorkloadDomain]int `json:"by_domain"`
	ByTier     map[QualityTier]int    `json:"by_tier"`
	Treatments map[Treatment]int      `json:"by_treatment"`
}

// Stats computes a composition summary of the catalog.
func (c *Catalog) Stats() Stats {
	s := Stats{
		Total:      len(c.entries),
		ByFamily:   make(map[Family]int),
		ByDomain:   make(map[WorkloadDomain]int),
		ByTier:     make(map[QualityTier]int),
		Treatments: make(map[Treatment]int),
	}
	for _, e := range c.entries {
		s.ByFamily[e.Family]++
		s.ByDomain[e.Domain]++
		s.ByTier[e.QualityTier]++
		for _, t := range e.Treatments {
			s.Treatments[t]++
		}
	}
	return s
}

func newCatalog(entries []ArchitectureEntry) *Catalog {
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	byID := make(map[string]int, len(entries))
	for i, e := range entries {
		byID[e.ID] = i
	}
	return &Catalog{entries: entries, byID: byID}
}
