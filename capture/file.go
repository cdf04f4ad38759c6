package capture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"go.uber.org/multierr"

	"github.com/ardnew/usbdecode/pkg"
)

// File is a multi-channel logic capture.
type File struct {
	// SampleRate is the capture rate in samples per second.
	SampleRate uint64 `cbor:"1,keyasint"`
	// Samples is the capture length. Every edge lies below it.
	Samples  uint64  `cbor:"2,keyasint"`
	Channels []Trace `cbor:"3,keyasint"`
}

// Trace is the stored form of one channel.
type Trace struct {
	Name    string   `cbor:"1,keyasint"`
	Initial bool     `cbor:"2,keyasint"`
	Edges   []uint64 `cbor:"3,keyasint"`
}

var encMode = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// Add appends a channel to the capture and extends Samples to cover it.
func (f *File) Add(name string, initial bool, edges []uint64) {
	f.Channels = append(f.Channels, Trace{Name: name, Initial: initial, Edges: edges})
	if n := len(edges); n > 0 && edges[n-1] >= f.Samples {
		f.Samples = edges[n-1] + 1
	}
}

// Validate reports every structural problem with the capture.
func (f *File) Validate() error {
	var err error
	if f.SampleRate == 0 {
		err = multierr.Append(err, errors.New("sample rate is zero"))
	}
	if len(f.Channels) == 0 {
		err = multierr.Append(err, errors.New("no channels"))
	}
	seen := make(map[string]int, len(f.Channels))
	for i, t := range f.Channels {
		if j, dup := seen[t.Name]; dup && t.Name != "" {
			err = multierr.Append(err, fmt.Errorf("channel %d: name %q already used by channel %d", i, t.Name, j))
		}
		seen[t.Name] = i
		for k := range t.Edges {
			if k > 0 && t.Edges[k] <= t.Edges[k-1] {
				err = multierr.Append(err, fmt.Errorf("channel %d: edge %d not increasing", i, k))
				break
			}
		}
		if n := len(t.Edges); n > 0 && t.Edges[n-1] >= f.Samples {
			err = multierr.Append(err, fmt.Errorf("channel %d: edge at sample %d beyond capture length %d",
				i, t.Edges[n-1], f.Samples))
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %w", pkg.ErrInvalidCapture, err)
	}
	return nil
}

// Channel returns a cursor over the channel named ref. If no channel has
// that name and ref is a decimal number, it selects the channel at that
// index.
func (f *File) Channel(ref string) (*Channel, error) {
	for _, t := range f.Channels {
		if t.Name == ref {
			return f.open(t)
		}
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 0 && i < len(f.Channels) {
		return f.open(f.Channels[i])
	}
	return nil, fmt.Errorf("%q: %w", ref, pkg.ErrChannelNotFound)
}

func (f *File) open(t Trace) (*Channel, error) {
	end := f.Samples
	if end > 0 {
		end--
	}
	return NewChannel(t.Name, t.Initial, t.Edges, end)
}

// Duration returns the capture length in nanoseconds.
func (f *File) Duration() float64 {
	if f.SampleRate == 0 {
		return 0
	}
	return float64(f.Samples) * 1e9 / float64(f.SampleRate)
}

// Save writes the capture in canonical CBOR.
func (f *File) Save(w io.Writer) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return encMode.NewEncoder(w).Encode(f)
}

// SaveFile writes the capture to path.
func (f *File) SaveFile(path string) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()
	return f.Save(out)
}

// Load reads and validates a CBOR capture.
func Load(r io.Reader) (*File, error) {
	var f File
	if err := cbor.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", pkg.ErrInvalidCapture, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	pkg.LogDebug(pkg.ComponentCapture, "loaded capture",
		"rate", f.SampleRate, "samples", f.Samples, "channels", len(f.Channels))
	return &f, nil
}

// LoadFile reads a CBOR capture from path.
func LoadFile(path string) (*File, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return Load(in)
}
