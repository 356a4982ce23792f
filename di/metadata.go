package di

import (
	"sort"
	"sync"
)

// Requirement declares that a constructor parameter is injected from Key.
type Requirement struct {
	Key      Key
	Index    int
	Optional bool
}

// Metadata maps classes, by identity token, to their declared requirements
// and parent class.
type Metadata struct {
	mu       sync.RWMutex
	requires map[uint64][]Requirement
	parents  map[uint64]*Class
}

// NewMetadata creates an empty registry.
func NewMetadata() *Metadata {
	return &Metadata{
		requires: make(map[uint64][]Requirement),
		parents:  make(map[uint64]*Class),
	}
}

var defaultMetadata = NewMetadata()

// DefaultMetadata returns the process-wide registry NewClass declares into.
func DefaultMetadata() *Metadata { return defaultMetadata }

// Declare records that parameter index of class is injected from key.
// Declaring the same index again replaces the earlier requirement.
func (m *Metadata) Declare(class *Class, key Key, index int, optional bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	req := Requirement{Key: key, Index: index, Optional: optional}
	list := m.requires[class.id]
	for i := range list {
		if list[i].Index == index {
			list[i] = req
			return
		}
	}
	m.requires[class.id] = append(list, req)
}

// SetParent links class to parent for requirement inheritance.
func (m *Metadata) SetParent(class, parent *Class) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parents[class.id] = parent
}

// Requirements returns the requirements of class sorted by index. A class
// with no own declarations uses those of its nearest ancestor that has any.
func (m *Metadata) Requirements(class *Class) []Requirement {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[uint64]bool)
	for c := class; c != nil && !seen[c.id]; c = m.parents[c.id] {
		seen[c.id] = true
		if own := m.requires[c.id]; len(own) > 0 {
			out := make([]Requirement, len(own))
			copy(out, own)
			sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
			return out
		}
	}
	return nil
}
