// Command usbdecode decodes USB 1.x low and full speed traffic from a
// two channel logic capture of D+ and D-.
//
// Usage:
//
//	usbdecode decode [flags] capture.cbor
//	usbdecode decode --sample-rate 48000000 export.csv
//	usbdecode inspect capture.cbor
//	usbdecode convert --sample-rate 48000000 export.csv capture.cbor
//
// Captures are read from the CBOR container written by convert, or from a
// logic analyzer CSV transition table when the file name ends in ".csv".
// Decoded events are written to standard output, one record per event, in
// text or JSON form. Diagnostics go to standard error or, with --log-file,
// to a size-rotated file.
package main

import (
	"context"
	"os"

	"github.com/ardnew/usbdecode/pkg"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		pkg.LogError(pkg.ComponentCLI, "usbdecode failed", "error", err)
		os.Exit(1)
	}
}
