// Package pkg provides shared utilities for the usbdecode pipeline.
//
// This package contains common functionality used by every decoder stage,
// including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error values for bus decoding failures
//   - Component identifiers for log filtering
//
// # Logging
//
// The logging subsystem wraps [log/slog] with per-stage context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogDebug(pkg.ComponentPacket, "malformed packet", "start", 1200)
//
// Output can be redirected, for example to a rotating file:
//
//	pkg.SetLogOutput(w, pkg.LogFormatJSON)
//
// # Errors
//
// Decoding failures are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrMalformedPacket) {
//	    // report the region as an error frame
//	}
package pkg
