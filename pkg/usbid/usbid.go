package usbid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// ErrNotFound indicates none of the searched paths holds a database.
var ErrNotFound = errors.New("usb.ids database not found")

// DefaultPaths lists the usual locations of usb.ids.
var DefaultPaths = []string{
	"/usr/share/hwdata/usb.ids",
	"/var/lib/usbutils/usb.ids",
	"/usr/share/misc/usb.ids",
}

// Database holds names parsed from usb.ids.
type Database struct {
	mu       sync.RWMutex
	vendors  map[uint16]string
	products map[uint32]string // vid<<16 | pid
	classes  map[uint8]string
}

// New returns an empty database.
func New() *Database {
	return &Database{
		vendors:  make(map[uint16]string),
		products: make(map[uint32]string),
		classes:  make(map[uint8]string),
	}
}

// LoadDefault loads the first of DefaultPaths that can be opened and
// returns its path.
func (db *Database) LoadDefault() (string, error) {
	for _, path := range DefaultPaths {
		err := db.LoadFile(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return path, err
		}
	}
	return "", ErrNotFound
}

// LoadFile adds the entries of the database at path.
func (db *Database) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := db.Parse(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// section is the part of usb.ids being read.
type section uint8

const (
	sectionVendors section = iota
	sectionClasses
	sectionOther
)

// Parse adds the entries read from r. Malformed lines are skipped.
func (db *Database) Parse(r io.Reader) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	sc := bufio.NewScanner(r)
	sec := sectionVendors
	var vid uint16
	haveVendor := false

	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] == '#' {
			continue
		}

		if line[0] == '\t' {
			// Products belong to the vendor above; deeper levels are ignored.
			if sec != sectionVendors || !haveVendor || strings.HasPrefix(line, "\t\t") {
				continue
			}
			if pid, name, ok := parseEntry(line[1:], 4); ok {
				db.products[uint32(vid)<<16|uint32(pid)] = name
			}
			continue
		}

		haveVendor = false
		switch {
		case strings.HasPrefix(line, "C "):
			sec = sectionClasses
			if class, name, ok := parseEntry(line[2:], 2); ok {
				db.classes[uint8(class)] = name
			}
		case len(line) > 1 && line[1] == ' ' && line[0] >= 'A' && line[0] <= 'Z':
			// HID usages, languages and the other keyed sections.
			sec = sectionOther
		case sec == sectionVendors:
			id, name, ok := parseEntry(line, 4)
			if !ok {
				if len(line) >= 4 {
					if n, err := strconv.ParseUint(line[:4], 16, 16); err == nil {
						vid, haveVendor = uint16(n), true
					}
				}
				continue
			}
			vid, haveVendor = uint16(id), true
			db.vendors[vid] = name
		}
	}
	return sc.Err()
}

// parseEntry splits "xxxx  Name" where the ID has digits hex digits.
func parseEntry(s string, digits int) (uint16, string, bool) {
	if len(s) < digits+2 || s[digits] != ' ' {
		return 0, "", false
	}
	id, err := strconv.ParseUint(s[:digits], 16, 16)
	if err != nil {
		return 0, "", false
	}
	name := strings.TrimLeft(s[digits:], " ")
	if name == "" {
		return 0, "", false
	}
	return uint16(id), name, true
}

// Vendor returns the name of vendor vid.
func (db *Database) Vendor(vid uint16) (string, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	name, ok := db.vendors[vid]
	return name, ok
}

// Product returns the name of product pid of vendor vid.
func (db *Database) Product(vid, pid uint16) (string, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	name, ok := db.products[uint32(vid)<<16|uint32(pid)]
	return name, ok
}

// Class returns the name of device or interface class code class.
func (db *Database) Class(class uint8) (string, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	name, ok := db.classes[class]
	return name, ok
}

// Len returns the number of vendors, products and classes known.
func (db *Database) Len() (vendors, products, classes int) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.vendors), len(db.products), len(db.classes)
}
