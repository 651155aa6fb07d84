package options

// Store is a generic key/value settings store.
type Store interface {
	Lookup(key string) (map[string]any, bool)
}

// MapStore is an in-memory Store.
type MapStore map[string]map[string]any

// Lookup implements Store.
func (m MapStore) Lookup(key string) (map[string]any, bool) {
	v, ok := m[key]
	return v, ok
}

// Load reads the print settings blob from store and validates it. A missing
// blob yields the defaults.
func Load(store Store, registered []string) Options {
	var raw map[string]any
	if store != nil {
		raw, _ = store.Lookup(SettingsKey)
	}
	return Validate(raw, registered)
}
