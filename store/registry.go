package store

import (
	"maps"
	"slices"
	"sync"
)

// Driver describes one compiled-in storage engine: its configuration name,
// the module path of the engine library (used for version reporting), and
// the routine that opens a connection. Exactly one driver serves any given
// Handle; drivers never call each other and share no state.
type Driver struct {
	Name       string
	ModulePath string
	Open       func(path string) (Backend, error)
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// Register makes a driver selectable by Open. Adapter packages call it
// from init, so importing an adapter is what compiles an engine in. The
// registered set is fixed once program init completes.
//
// Register panics on an incomplete driver or a duplicate name; both are
// programmer errors.
func Register(d Driver) {
	if d.Name == "" || d.Open == nil {
		panic("store: Register called with incomplete driver")
	}
	driversMu.Lock()
	defer driversMu.Unlock()
	if _, dup := drivers[d.Name]; dup {
		panic("store: Register called twice for driver " + d.Name)
	}
	drivers[d.Name] = d
}

func lookup(name string) (Driver, bool) {
	driversMu.RLock()
	defer driversMu.RUnlock()
	d, ok := drivers[name]
	return d, ok
}

// Backends returns the names of all registered drivers, sorted.
func Backends() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	return slices.Sorted(maps.Keys(drivers))
}

// Registered reports whether a driver is registered under name.
func Registered(name string) bool {
	_, ok := lookup(name)
	return ok
}
