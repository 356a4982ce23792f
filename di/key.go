package di

import (
	"sync"

	"github.com/kbukum/scopedi/logger"
)

// Key identifies a binding. Keys compare by identity.
type Key interface {
	// KeyName returns a human-readable name used in logs and errors.
	KeyName() string
}

// Identifier is a named key. Identifiers are deduplicated by name through a
// process-wide table, see CreateIdentifier.
type Identifier struct {
	name string
}

// KeyName returns the identifier name.
func (id *Identifier) KeyName() string { return id.name }

func (id *Identifier) String() string { return id.name }

var identifiers = struct {
	mu    sync.Mutex
	table map[string]*Identifier
}{table: make(map[string]*Identifier)}

// CreateIdentifier returns the identifier registered under name, creating it
// on first use. Creating the same name twice logs a warning and returns the
// existing identifier.
func CreateIdentifier(name string) *Identifier {
	identifiers.mu.Lock()
	defer identifiers.mu.Unlock()

	if id, ok := identifiers.table[name]; ok {
		logger.Get("di").Warn("duplicated identifier", logger.Fields(logger.FieldKey, name))
		return id
	}
	id := &Identifier{name: name}
	identifiers.table[name] = id
	return id
}
