package usbid

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `# USB ID Database
# Comment line

1234  Test Vendor One
	5678  Test Product One
		00  Test Interface
	9abc  Test Product Two
abcd  Test Vendor Two
	def0  Test Product Three

# Another comment
0001  Another Vendor
	0002  Another Product

C 00  (Defined at Interface level)
C 03  Human Interface Device
	01  Boot Interface Subclass
		01  Keyboard
C 0a  CDC Data

AT 0000  Undefined
	0001  Not a product
HID 00  Undefined
`

func load(t *testing.T, content string) *Database {
	t.Helper()
	db := New()
	if err := db.Parse(strings.NewReader(content)); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return db
}

func TestParse(t *testing.T) {
	db := load(t, sample)

	tests := []struct {
		name        string
		vid, pid    uint16
		wantVendor  string
		wantProduct string
	}{
		{"first vendor and product", 0x1234, 0x5678, "Test Vendor One", "Test Product One"},
		{"second product of first vendor", 0x1234, 0x9abc, "Test Vendor One", "Test Product Two"},
		{"second vendor", 0xabcd, 0xdef0, "Test Vendor Two", "Test Product Three"},
		{"third vendor", 0x0001, 0x0002, "Another Vendor", "Another Product"},
		{"unknown vendor", 0xFFFF, 0x0000, "", ""},
		{"known vendor, unknown product", 0x1234, 0xFFFF, "Test Vendor One", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := db.Vendor(tt.vid); got != tt.wantVendor {
				t.Errorf("Vendor(0x%04x) = %q, want %q", tt.vid, got, tt.wantVendor)
			}
			got, ok := db.Product(tt.vid, tt.pid)
			if got != tt.wantProduct || ok != (tt.wantProduct != "") {
				t.Errorf("Product(0x%04x, 0x%04x) = %q, %v, want %q",
					tt.vid, tt.pid, got, ok, tt.wantProduct)
			}
		})
	}

	if vendors, products, classes := db.Len(); vendors != 3 || products != 4 || classes != 3 {
		t.Errorf("Len() = %d, %d, %d, want 3, 4, 3", vendors, products, classes)
	}
}

func TestClasses(t *testing.T) {
	db := load(t, sample)
	tests := []struct {
		class uint8
		want  string
	}{
		{0x00, "(Defined at Interface level)"},
		{0x03, "Human Interface Device"},
		{0x0A, "CDC Data"},
		{0xFF, ""},
	}
	for _, tt := range tests {
		if got, _ := db.Class(tt.class); got != tt.want {
			t.Errorf("Class(0x%02x) = %q, want %q", tt.class, got, tt.want)
		}
	}
	// Subclass lines under a class must not leak into the last vendor.
	if _, ok := db.Product(0x0001, 0x0001); ok {
		t.Error("Product(0x0001, 0x0001) found a subclass line")
	}
}

func TestMalformedLines(t *testing.T) {
	db := load(t, `# Test malformed lines
1234  Valid Vendor
	5678  Valid Product
ZZZZ  Invalid VID (non-hex)
	YYYY  Invalid PID (non-hex)
	1111  Product of invalid vendor
12    Too short
	34    Too short
1234Valid Vendor No Space
	5678Valid Product No Space
9abc  Another Valid Vendor
	def0  Another Valid Product
`)
	if vendors, products, _ := db.Len(); vendors != 2 || products != 2 {
		t.Errorf("Len() = %d vendors, %d products, want 2 and 2", vendors, products)
	}
	if got, _ := db.Vendor(0x1234); got != "Valid Vendor" {
		t.Errorf("Vendor(0x1234) = %q, want %q", got, "Valid Vendor")
	}
	if got, _ := db.Product(0x1234, 0x5678); got != "Valid Product" {
		t.Errorf("Product(0x1234, 0x5678) = %q, want %q", got, "Valid Product")
	}
	if got, _ := db.Product(0x9abc, 0xdef0); got != "Another Valid Product" {
		t.Errorf("Product(0x9abc, 0xdef0) = %q, want %q", got, "Another Valid Product")
	}
}

func TestEmpty(t *testing.T) {
	db := load(t, "# Only comments\n# No actual data\n")
	if vendors, products, classes := db.Len(); vendors+products+classes != 0 {
		t.Errorf("Len() = %d, %d, %d, want zeros", vendors, products, classes)
	}
	if _, ok := db.Vendor(0x1234); ok {
		t.Error("Vendor() found an entry in an empty database")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usb.ids")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	db := New()
	if err := db.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got, _ := db.Vendor(0xabcd); got != "Test Vendor Two" {
		t.Errorf("Vendor(0xabcd) = %q, want %q", got, "Test Vendor Two")
	}

	err := New().LoadFile(filepath.Join(t.TempDir(), "missing.ids"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile(missing) error = %v, want ErrNotExist", err)
	}
}

func TestLoadDefaultSearchesPaths(t *testing.T) {
	dir := t.TempDir()
	saved := DefaultPaths
	t.Cleanup(func() { DefaultPaths = saved })

	DefaultPaths = []string{filepath.Join(dir, "none.ids")}
	if _, err := New().LoadDefault(); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadDefault() error = %v, want ErrNotFound", err)
	}

	path := filepath.Join(dir, "usb.ids")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	DefaultPaths = append(DefaultPaths, path)
	db := New()
	got, err := db.LoadDefault()
	if err != nil || got != path {
		t.Errorf("LoadDefault() = %q, %v, want %q", got, err, path)
	}
}
