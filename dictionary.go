// dictionary.go — the Process Dictionary: a small per-process
// key/value store for put/1/erase/1/get/1, backed by a plain map since
// unlike the mailbox it never needs ordered mid-collection removal.
package procore

// Dictionary is a process's private key/value store.
type Dictionary struct {
	entries map[Term]Term
}

func newDictionary() *Dictionary {
	return &Dictionary{entries: make(map[Term]Term)}
}

// Get returns the value stored under key, if any.
func (d *Dictionary) Get(key Term) (Term, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// Put stores value under key, returning the previous value if one existed.
func (d *Dictionary) Put(key, value Term) (Term, bool) {
	old, existed := d.entries[key]
	d.entries[key] = value
	return old, existed
}

// Erase removes key, returning the value it held if any.
func (d *Dictionary) Erase(key Term) (Term, bool) {
	v, ok := d.entries[key]
	delete(d.entries, key)
	return v, ok
}

// Keys returns all keys currently stored, in unspecified order.
func (d *Dictionary) Keys() []Term {
	keys := make([]Term, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of entries currently stored.
func (d *Dictionary) Len() int { return len(d.entries) }

// Destroy releases the dictionary's backing map.
func (d *Dictionary) Destroy() {
	d.entries = nil
}
