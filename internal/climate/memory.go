package climate

import "context"

// MapSource is an in-memory Source, used for fixtures and seed files.
type MapSource struct {
	sites map[string]Site
}

// NewMapSource indexes sites by ID. Later duplicates replace earlier ones.
func NewMapSource(sites ...Site) *MapSource {
	m := &MapSource{sites: make(map[string]Site, len(sites))}
	for _, s := range sites {
		m.sites[s.ID] = s
	}
	return m
}

func (m *MapSource) Lookup(_ context.Context, siteID string) (Site, error) {
	s, ok := m.sites[siteID]
	if !ok {
		return Site{}, notFound(siteID)
	}
	return s, nil
}
