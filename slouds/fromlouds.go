package slouds

import "github.com/TomTonic/psearch/louds"

// FromLouds freezes a dynamic louds.Trie into a static Trie, discarding
// the ability to insert further keys in exchange for a flatter,
// precomputed rank/select layout.
func FromLouds[V any](src *louds.Trie[V]) *Trie[V] {
	dynamicEntries := src.Entries()
	entries := make([]Entry[V], len(dynamicEntries))
	for i, e := range dynamicEntries {
		entries[i] = Entry[V]{Key: e.Key, Value: e.Value}
	}
	return From(entries)
}
