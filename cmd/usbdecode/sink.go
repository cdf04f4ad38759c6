package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/usbdecode/descriptor"
	"github.com/ardnew/usbdecode/event"
	"github.com/ardnew/usbdecode/pkg"
	"github.com/ardnew/usbdecode/pkg/usbid"
)

// logSink writes committed events as structured log records, one record
// per event, with the event kind as the message.
type logSink struct {
	log     *slog.Logger
	pending []event.Event
	count   int

	// names, if set, annotates vendor, product and class fields.
	names   *usbid.Database
	vendors map[uint8]uint16 // last idVendor per device address

	// strings, if set, annotates string index fields already read.
	strings *descriptor.StringTable
}

var _ event.Sink = (*logSink)(nil)

func newLogSink(w io.Writer, format pkg.LogFormat) *logSink {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}
	var log *slog.Logger
	if format == pkg.LogFormatJSON {
		log = pkg.NewJSONLogger(w, opts)
	} else {
		log = pkg.NewLogger(w, opts)
	}
	return &logSink{log: log, vendors: make(map[uint8]uint16)}
}

// Emit implements event.Sink.
func (s *logSink) Emit(e event.Event) {
	s.pending = append(s.pending, e)
}

// Commit implements event.Sink.
func (s *logSink) Commit() {
	for _, e := range s.pending {
		s.write(e)
	}
	s.count += len(s.pending)
	s.pending = s.pending[:0]
}

// Count returns the number of events written.
func (s *logSink) Count() int {
	return s.count
}

// String writes a string descriptor recorded during the decode.
func (s *logSink) String(address, index uint8, value string) {
	s.log.Info("string", "address", address, "index", index, "value", value)
}

func (s *logSink) write(e event.Event) {
	b := e.Bounds()
	args := []any{"start", b.Start, "end", b.End}
	level := slog.LevelInfo

	switch e := e.(type) {
	case event.Signal:
		args = append(args, "state", e.State.String())
	case event.PID:
		args = append(args, "pid", e.PID.String())
		args = withFlag(args, e.Flag)
	case event.FrameNum:
		args = append(args, "frame", e.Frame)
	case event.AddrEndp:
		args = append(args, "address", e.Address, "endpoint", e.Endpoint)
	case event.CRC5:
		args = append(args, "crc", hexValue(uint32(e.Received), 1))
		if !e.Valid() {
			level = slog.LevelWarn
			args = append(args, "computed", hexValue(uint32(e.Computed), 1))
		}
	case event.CRC16:
		args = append(args, "crc", hexValue(uint32(e.Received), 2))
		if !e.Valid() {
			level = slog.LevelWarn
			args = append(args, "computed", hexValue(uint32(e.Computed), 2))
		}
	case event.Byte:
		args = append(args, "value", hexValue(uint32(e.Value), 1))
	case event.Error:
		level = slog.LevelWarn
		args = append(args, "error", e.Err)
	case event.Field:
		args = append(args,
			"address", e.Address,
			"name", e.Name,
			"value", hexValue(e.Value, e.Width))
		if e.Format != event.FormatNone {
			args = append(args, "format", e.Format.String())
		}
		if e.Flag != event.FlagFieldIncomplete {
			args = s.annotate(args, e)
		}
		args = withFlag(args, e.Flag)
	case event.HIDItem:
		args = append(args,
			"address", e.Address,
			"item", hex.EncodeToString(e.Item),
			"indent", e.Indent,
			"usage_page", hexValue(uint32(e.UsagePage), 2))
		args = withFlag(args, e.Flag)
	}
	s.log.Log(context.Background(), level, e.Kind().String(), args...)
}

// annotate adds the database name of an ID field.
func (s *logSink) annotate(args []any, f event.Field) []any {
	var name string
	var ok bool
	switch {
	case f.Format == event.FormatString:
		if s.strings != nil && f.Value != 0 {
			name, ok = s.strings.Lookup(f.Address, uint8(f.Value))
		}
	case s.names == nil:
	case f.Format == event.FormatVendorID:
		s.vendors[f.Address] = uint16(f.Value)
		name, ok = s.names.Vendor(uint16(f.Value))
	case f.Name == "idProduct":
		if vid, seen := s.vendors[f.Address]; seen {
			name, ok = s.names.Product(vid, uint16(f.Value))
		}
	case f.Format == event.FormatClassCode:
		name, ok = s.names.Class(uint8(f.Value))
	}
	if !ok {
		return args
	}
	return append(args, "label", name)
}

func withFlag(args []any, f event.Flag) []any {
	if f == event.FlagNone {
		return args
	}
	return append(args, "flag", f.String())
}

func hexValue(v uint32, width int) string {
	return fmt.Sprintf("0x%0*X", 2*width, v)
}
