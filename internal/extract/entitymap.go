// Package extract turns document-analysis output into canonical shipment
// records. It degrades through an ordered cascade of extraction strategies
// (form fields, structured entities, raw-text rules) and never panics on
// malformed input; unparseable values become absence.
package extract

// EntityMap is the intermediate canonical-key → string-value store built
// during extraction. Precedence between extraction strategies is enforced at
// write time: once a key holds a non-empty value, later writes are ignored.
type EntityMap map[string]string

// Set writes value under key unless a higher-priority source already set it.
// Empty values are never written. Reports whether the write took effect.
func (m EntityMap) Set(key, value string) bool {
	if key == "" || value == "" {
		return false
	}
	if existing, ok := m[key]; ok && existing != "" {
		return false
	}
	m[key] = value
	return true
}

// Get returns the value for key, or "" when absent.
func (m EntityMap) Get(key string) string {
	return m[key]
}

// First returns the first non-empty value among the given keys.
func (m EntityMap) First(keys ...string) string {
	for _, k := range keys {
		if v := m[k]; v != "" {
			return v
		}
	}
	return ""
}

// Merge copies every entry of other into m, respecting write-once semantics.
func (m EntityMap) Merge(other EntityMap) {
	for k, v := range other {
		m.Set(k, v)
	}
}
