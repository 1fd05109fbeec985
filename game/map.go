package game

import (
	"fmt"
	"slices"
)

// TerritoryID identifies a node of the map graph.
type TerritoryID string

// Territory is the static description of a map node.
type Territory struct {
	ID           TerritoryID   `json:"id" yaml:"id"`
	Name         string        `json:"name,omitempty" yaml:"name,omitempty"`
	Abbreviation string        `json:"abbreviation,omitempty" yaml:"abbreviation,omitempty"`
	AdjacentIDs  []TerritoryID `json:"adjacent" yaml:"adjacent"`
}

// Continent groups territories and grants a bonus to a player owning all of them.
type Continent struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name,omitempty" yaml:"name,omitempty"`
	Territories []TerritoryID `json:"territories" yaml:"territories"`
	Bonus       int           `json:"bonus" yaml:"bonus"`
}

// GraphMap is the immutable topology a game is played on.
type GraphMap struct {
	ID         string
	Name       string
	order      []TerritoryID
	territory  map[TerritoryID]*Territory
	adjacent   map[TerritoryID]map[TerritoryID]struct{}
	continents []Continent
}

// NewGraphMap builds a map from territory definitions. Borders are made
// bidirectional; a border to an undefined territory is an error.
func NewGraphMap(id, name string, territories []Territory, continents []Continent) (*GraphMap, error) {
	m := &GraphMap{
		ID:        id,
		Name:      name,
		territory: make(map[TerritoryID]*Territory, len(territories)),
		adjacent:  make(map[TerritoryID]map[TerritoryID]struct{}, len(territories)),
	}

	for _, t := range territories {
		if t.ID == "" {
			return nil, fmt.Errorf("territory with empty id")
		}
		if _, ok := m.territory[t.ID]; ok {
			return nil, fmt.Errorf("duplicate territory %q", t.ID)
		}
		m.territory[t.ID] = &Territory{ID: t.ID, Name: t.Name, Abbreviation: t.Abbreviation}
		m.adjacent[t.ID] = make(map[TerritoryID]struct{})
		m.order = append(m.order, t.ID)
	}

	for _, t := range territories {
		for _, adj := range t.AdjacentIDs {
			if _, ok := m.territory[adj]; !ok {
				return nil, fmt.Errorf("territory %q borders unknown territory %q", t.ID, adj)
			}
			if adj == t.ID {
				return nil, fmt.Errorf("territory %q borders itself", t.ID)
			}
			m.addBorder(t.ID, adj)
		}
	}

	for _, c := range continents {
		for _, id := range c.Territories {
			if _, ok := m.territory[id]; !ok {
				return nil, fmt.Errorf("continent %q contains unknown territory %q", c.ID, id)
			}
		}
		m.continents = append(m.continents, Continent{
			ID:          c.ID,
			Name:        c.Name,
			Territories: append([]TerritoryID(nil), c.Territories...),
			Bonus:       c.Bonus,
		})
	}
	return m, nil
}

// addBorder adds a bidirectional border between two territories.
func (m *GraphMap) addBorder(a, b TerritoryID) {
	if _, ok := m.adjacent[a][b]; !ok {
		m.adjacent[a][b] = struct{}{}
		m.territory[a].AdjacentIDs = append(m.territory[a].AdjacentIDs, b)
	}
	if _, ok := m.adjacent[b][a]; !ok {
		m.adjacent[b][a] = struct{}{}
		m.territory[b].AdjacentIDs = append(m.territory[b].AdjacentIDs, a)
	}
}

// TerritoryIDs returns territory IDs in definition order.
func (m *GraphMap) TerritoryIDs() []TerritoryID {
	return append([]TerritoryID(nil), m.order...)
}

// Territory returns the definition of a territory and whether it exists.
func (m *GraphMap) Territory(id TerritoryID) (Territory, bool) {
	t, ok := m.territory[id]
	if !ok {
		return Territory{}, false
	}
	out := *t
	out.AdjacentIDs = append([]TerritoryID(nil), t.AdjacentIDs...)
	return out, true
}

// Has reports whether the territory exists on the map.
func (m *GraphMap) Has(id TerritoryID) bool {
	_, ok := m.territory[id]
	return ok
}

// Neighbors returns the territories bordering id, in insertion order.
func (m *GraphMap) Neighbors(id TerritoryID) []TerritoryID {
	t, ok := m.territory[id]
	if !ok {
		return nil
	}
	return slices.Clone(t.AdjacentIDs)
}

// AreAdjacent checks if two territories share a border.
func (m *GraphMap) AreAdjacent(a, b TerritoryID) bool {
	_, ok := m.adjacent[a][b]
	return ok
}

// Continents returns a copy of the continent groupings of the map.
func (m *GraphMap) Continents() []Continent {
	out := make([]Continent, len(m.continents))
	for i, c := range m.continents {
		out[i] = c
		out[i].Territories = slices.Clone(c.Territories)
	}
	return out
}

// Len is the number of territories.
func (m *GraphMap) Len() int {
	return len(m.order)
}

// Reachable runs a breadth-first search from `from` and reports whether `to`
// is reached. Intermediate territories must be accepted by traverse; the two
// endpoints are not filtered.
func (m *GraphMap) Reachable(from, to TerritoryID, traverse func(TerritoryID) bool) bool {
	if from == to {
		return true
	}
	visited := map[TerritoryID]bool{from: true}
	queue := []TerritoryID{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, adj := range m.Neighbors(current) {
			if visited[adj] {
				continue
			}
			if adj == to {
				return true
			}
			if !traverse(adj) {
				continue
			}
			visited[adj] = true
			queue = append(queue, adj)
		}
	}
	return false
}
