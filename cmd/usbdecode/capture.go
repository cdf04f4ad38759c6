package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/usbdecode/capture"
	"github.com/ardnew/usbdecode/pkg"
)

// loadCapture reads path as a CSV transition table when its extension is
// ".csv" and as a CBOR capture otherwise.
func loadCapture(path string, sampleRate uint64) (*capture.File, error) {
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return capture.LoadFile(path)
	}
	if sampleRate == 0 {
		return nil, fmt.Errorf("%s: --sample-rate is required for CSV captures: %w", path, pkg.ErrInvalidParameter)
	}
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	f, err := capture.ReadCSV(in, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
