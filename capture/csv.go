package capture

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ardnew/usbdecode/pkg"
)

// ReadCSV converts a logic analyzer transition table into a capture.
//
// The first record is a header naming the time column followed by one
// column per channel. Each later record holds a time in seconds and the
// level of every channel at that time, written as 0 or 1. Times are shifted
// so the first record lands on sample zero and are rounded to the nearest
// sample at sampleRate.
func ReadCSV(r io.Reader, sampleRate uint64) (*File, error) {
	if sampleRate == 0 {
		return nil, fmt.Errorf("sample rate is zero: %w", pkg.ErrInvalidParameter)
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", pkg.ErrInvalidCapture, err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: header has no channel columns", pkg.ErrInvalidCapture)
	}
	names := make([]string, len(header)-1)
	for i, h := range header[1:] {
		names[i] = strings.TrimSpace(h)
	}

	var (
		levels  = make([]bool, len(names))
		initial = make([]bool, len(names))
		edges   = make([][]uint64, len(names))
		origin  float64
		last    uint64
		rows    int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", pkg.ErrInvalidCapture, err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%w: line %d: %d fields, want %d",
				pkg.ErrInvalidCapture, line, len(rec), len(header))
		}
		secs, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", pkg.ErrInvalidCapture, line, err)
		}
		if rows == 0 {
			origin = secs
		}
		at := math.Round((secs - origin) * float64(sampleRate))
		if at < 0 {
			return nil, fmt.Errorf("%w: line %d: time goes backwards", pkg.ErrInvalidCapture, line)
		}
		sample := uint64(at)
		for i, field := range rec[1:] {
			var level bool
			switch strings.TrimSpace(field) {
			case "0":
			case "1":
				level = true
			default:
				return nil, fmt.Errorf("%w: line %d: level %q", pkg.ErrInvalidCapture, line, field)
			}
			if rows == 0 {
				initial[i], levels[i] = level, level
				continue
			}
			if level == levels[i] {
				continue
			}
			if n := len(edges[i]); sample == 0 || (n > 0 && sample <= edges[i][n-1]) {
				pkg.LogWarn(pkg.ComponentCapture, "dropping transition below sample resolution",
					"channel", names[i], "line", line)
				continue
			}
			levels[i] = level
			edges[i] = append(edges[i], sample)
		}
		last = sample
		rows++
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: no samples", pkg.ErrInvalidCapture)
	}

	f := &File{SampleRate: sampleRate, Samples: last + 1}
	for i, name := range names {
		f.Add(name, initial[i], edges[i])
	}
	return f, nil
}
