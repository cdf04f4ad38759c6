package descriptor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/usbdecode/event"
	"github.com/ardnew/usbdecode/usb"
)

func stringRequest(index uint8) usb.SetupPacket {
	s := getDescriptor(usb.DescriptorTypeString, index, 255)
	if index != 0 {
		s.Index = 0x0409
	}
	return s
}

func TestStringDescriptor(t *testing.T) {
	table := NewStringTable()
	p := New(5, table)
	p.SetRequest(stringRequest(1))

	r := feed(p,
		[]byte{0x08, 0x03, 'U'},
		[]byte{0x00, 'S', 0x00, 'B', 0x00},
	)

	got, ok := table.Lookup(5, 1)
	if !ok || got != "USB" {
		t.Errorf("Lookup(5, 1) = %q, %v, want %q, true", got, ok, "USB")
	}

	want := []fieldSummary{
		{"bLength", 8, 1, event.FlagDataDescriptor},
		{"bDescriptorType", usb.DescriptorTypeString, 1, event.FlagNone},
		{"wchar", 'U', 1, event.FlagFieldIncomplete},
		{"wchar", 'U', 2, event.FlagNone},
		{"wchar", 'S', 2, event.FlagNone},
		{"wchar", 'B', 2, event.FlagNone},
	}
	if diff := cmp.Diff(want, summarize(r.Fields())); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestStringDescriptorUTF16(t *testing.T) {
	table := NewStringTable()
	p := New(5, table)
	p.SetRequest(stringRequest(2))
	// "µ€" then a surrogate pair for U+1F600.
	feed(p, []byte{0x0A, 0x03, 0xB5, 0x00, 0xAC, 0x20, 0x3D, 0xD8, 0x00, 0xDE})

	if got, _ := table.Lookup(5, 2); got != "µ€\U0001F600" {
		t.Errorf("Lookup(5, 2) = %q, want %q", got, "µ€\U0001F600")
	}
}

func TestLanguageTable(t *testing.T) {
	table := NewStringTable()
	p := New(5, table)
	p.SetRequest(stringRequest(0))
	r := feed(p, []byte{0x06, 0x03, 0x09, 0x04, 0x07, 0x04})

	want := []fieldSummary{
		{"bLength", 6, 1, event.FlagDataDescriptor},
		{"bDescriptorType", usb.DescriptorTypeString, 1, event.FlagNone},
		{"wLANGID", 0x0409, 2, event.FlagNone},
		{"wLANGID", 0x0407, 2, event.FlagNone},
	}
	if diff := cmp.Diff(want, summarize(r.Fields())); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if f := r.Fields()[2]; f.Format != event.FormatLANGID {
		t.Errorf("wLANGID format = %v, want %v", f.Format, event.FormatLANGID)
	}
	if n := table.Len(); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
}

func TestStringShorterThanPacket(t *testing.T) {
	table := NewStringTable()
	p := New(5, table)
	p.SetRequest(stringRequest(3))
	r := feed(p, []byte{0x04, 0x03, 'A', 0x00, 0xFF, 0xEE})

	fs := r.Fields()
	if n := len(fs); n != 5 {
		t.Fatalf("fields = %d, want 5", n)
	}
	for i, want := range []uint32{0xFF, 0xEE} {
		if f := fs[3+i]; f.Name != "byte" || f.Value != want {
			t.Errorf("field %d = %s=0x%X, want byte=0x%X", 3+i, f.Name, f.Value, want)
		}
	}
	if got, _ := table.Lookup(5, 3); got != "A" {
		t.Errorf("Lookup(5, 3) = %q, want %q", got, "A")
	}
}

func TestStringTableKeys(t *testing.T) {
	table := NewStringTable()
	table.Set(2, 1, "b")
	table.Set(1, 3, "c")
	table.Set(1, 2, "a")

	want := []StringKey{{1, 2}, {1, 3}, {2, 1}}
	if diff := cmp.Diff(want, table.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if _, ok := table.Lookup(3, 1); ok {
		t.Error("Lookup(3, 1) found an entry")
	}
}
