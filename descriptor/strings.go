package descriptor

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/text/encoding/unicode"
)

// StringKey identifies a string descriptor on the bus.
type StringKey struct {
	Address uint8
	Index   uint8
}

// StringTable collects the string descriptors seen during a decode run.
// It is safe for concurrent use.
type StringTable struct {
	mu      sync.RWMutex
	entries map[StringKey]string
}

// NewStringTable returns an empty table.
func NewStringTable() *StringTable {
	return &StringTable{entries: make(map[StringKey]string)}
}

// Set records s as string index of the device at address.
func (t *StringTable) Set(address, index uint8, s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[StringKey{address, index}] = s
}

// SetUTF16 decodes little-endian UTF-16 code units and records the result.
func (t *StringTable) SetUTF16(address, index uint8, units []byte) (string, error) {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	b, err := dec.Bytes(units)
	if err != nil {
		return "", fmt.Errorf("string %d of device %d: %w", index, address, err)
	}
	s := string(b)
	t.Set(address, index, s)
	return s, nil
}

// Lookup returns the string index of the device at address.
func (t *StringTable) Lookup(address, index uint8) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.entries[StringKey{address, index}]
	return s, ok
}

// Len returns the number of recorded strings.
func (t *StringTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Keys returns the recorded keys ordered by address, then index.
func (t *StringTable) Keys() []StringKey {
	t.mu.RLock()
	keys := make([]StringKey, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	t.mu.RUnlock()

	slices.SortFunc(keys, func(a, b StringKey) int {
		if c := cmp.Compare(a.Address, b.Address); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	return keys
}
