package profile

import "sort"

// Key addresses a top-level document section for merge-engine reads and
// writes.
type Key string

const (
	// KeyRoot denotes the whole document.
	KeyRoot Key = "cv"
	// KeyUser denotes the user section.
	KeyUser Key = "user"
	// KeyTheme denotes the theme section.
	KeyTheme Key = "theme"
)

// Save shallow-merges data into the section addressed by key and persists
// the whole document. The legal sections are a fixed set, so dispatch is a
// switch; the recursive scan below it only exists for forward compatibility
// with unknown nested sections. Returns false, with nothing persisted, when
// the key is absent everywhere in the tree.
func (m *Model) Save(data map[string]any, key Key) bool {
	switch key {
	case KeyRoot:
		m.doc = mergeSection(m.doc, data)
		return m.persist()
	case KeyUser, KeyTheme:
		// ensured at construction time, but existence is what matters
		if _, ok := m.doc[string(key)]; ok {
			m.doc[string(key)] = mergeSection(m.doc[string(key)], data)
			return m.persist()
		}
	}
	if writeNested(m.doc, string(key), data) {
		return m.persist()
	}
	return false
}

// Lookup retrieves the value addressed by key without the caller knowing
// the tree shape. KeyRoot returns the whole document. An empty map counts
// as found; ok is false only when the key matches nothing anywhere.
func (m *Model) Lookup(key Key) (any, bool) {
	if key == KeyRoot {
		return m.doc, true
	}
	switch key {
	case KeyUser, KeyTheme:
		if value, ok := m.doc[string(key)]; ok && !emptyScalar(value) {
			return value, true
		}
	}
	return lookupNested(m.doc, string(key))
}

// writeNested merges data at the first node owning key, scanning map-valued
// properties pre-order. Ownership is an existence check, not a truthiness
// check, so a present-but-empty value still receives the merge.
func writeNested(root map[string]any, key string, data map[string]any) bool {
	if _, ok := root[key]; ok {
		root[key] = mergeSection(root[key], data)
		return true
	}
	for _, k := range sortedKeys(root) {
		child, ok := root[k].(map[string]any)
		if !ok {
			// arrays and primitives do not recurse
			continue
		}
		if writeNested(child, key, data) {
			return true
		}
	}
	return false
}

func lookupNested(root map[string]any, key string) (any, bool) {
	if value, ok := root[key]; ok && !emptyScalar(value) {
		return value, true
	}
	for _, k := range sortedKeys(root) {
		child, ok := root[k].(map[string]any)
		if !ok {
			continue
		}
		if value, found := lookupNested(child, key); found {
			return value, true
		}
	}
	return nil, false
}

// mergeSection returns {...existing, ...data}: existing keys not present in
// data survive, keys present in data overwrite. A non-map existing value is
// discarded, matching spread semantics.
func mergeSection(existing any, data map[string]any) map[string]any {
	merged := make(map[string]any, len(data))
	if prior, ok := existing.(map[string]any); ok {
		for k, v := range prior {
			merged[k] = v
		}
	}
	for k, v := range data {
		merged[k] = v
	}
	return merged
}

// emptyScalar reports values a lookup should scan past: absent-equivalent
// scalars. Empty maps and slices are real matches.
func emptyScalar(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	}
	return false
}

// sortedKeys fixes the scan order; Go maps have no natural enumeration
// order to preserve.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
