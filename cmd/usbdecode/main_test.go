package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/usbdecode/capture"
	"github.com/ardnew/usbdecode/internal/synth"
	"github.com/ardnew/usbdecode/packet"
	"github.com/ardnew/usbdecode/pkg"
	"github.com/ardnew/usbdecode/usb"
)

const csvCapture = `Time [s], D+, D-
0.5, 1, 0
0.500001, 0, 1
0.500002, 1, 0
0.500003, 1, 1
`

// writeCapture stores a full speed SET_ADDRESS setup stage in dir.
func writeCapture(t *testing.T, dir string) string {
	t.Helper()
	req := usb.SetupPacket{Request: usb.RequestSetAddress, Value: 9}
	b := synth.New(48_000_000, usb.SpeedFull).Idle(8)
	for _, w := range [][]byte{
		packet.Token(packet.PIDSetup, 0, 0),
		packet.Data(packet.PIDData0, req.Bytes()),
		packet.Handshake(packet.PIDAck),
	} {
		b.Packet(w).Idle(4)
	}
	path := filepath.Join(dir, "setup.cbor")
	if err := b.File().SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	// Later flags win, so a test may still override the log level.
	cmd.SetArgs(append([]string{args[0], "--log-level", "error"}, args[1:]...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDecodeText(t *testing.T) {
	path := writeCapture(t, t.TempDir())
	out, err := execute(t, "decode", path)
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	for _, want := range []string{
		"msg=pid start=",
		"pid=SETUP",
		"name=bmRequestType value=0x00 format=bmRequestType_NoData flag=setup",
		"name=wValue value=0x0009",
		"pid=ACK",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "time=") {
		t.Error("output carries timestamps")
	}
}

func TestDecodeJSON(t *testing.T) {
	path := writeCapture(t, t.TempDir())
	out, err := execute(t, "decode", path, "--output", "json", "--level", "packets")
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}

	counts := make(map[string]int)
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		counts[rec["msg"].(string)]++
	}
	if counts["pid"] != 3 || counts["eop"] != 3 || counts["byte"] != 8 {
		t.Errorf("record counts = %v, want 3 pid, 3 eop, 8 byte", counts)
	}
	if counts["field"] != 0 {
		t.Errorf("packet level emitted %d fields", counts["field"])
	}
}

func TestDecodeErrors(t *testing.T) {
	path := writeCapture(t, t.TempDir())
	csv := writeFile(t, "capture.csv", csvCapture)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown channel", []string{"decode", path, "--dp", "D3"}, pkg.ErrChannelNotFound},
		{"unknown level", []string{"decode", path, "--level", "frames"}, pkg.ErrInvalidParameter},
		{"csv without rate", []string{"decode", csv}, pkg.ErrInvalidParameter},
		{"rate too low", []string{"decode", csv, "--sample-rate", "1000000"}, pkg.ErrInvalidParameter},
		{"bad log level", []string{"decode", path, "--log-level", "loud"}, pkg.ErrInvalidParameter},
		{"bad memory profile kind", []string{"decode", path, "--memprofile-kind", "goroutine"}, pkg.ErrInvalidParameter},
		{"bad output", []string{"decode", path, "--output", "yaml"}, pkg.ErrInvalidParameter},
		{"not a capture", []string{"decode", writeFile(t, "junk.cbor", "junk")}, pkg.ErrInvalidCapture},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInspectCSV(t *testing.T) {
	path := writeFile(t, "capture.csv", csvCapture)
	out, err := execute(t, "inspect", path, "--sample-rate", "1000000")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	for _, want := range []string{
		"sample rate: 1000000 Hz",
		"samples:     4",
		"duration:    4µs",
		`channel 0: "D+" initial=1 edges=2`,
		`channel 1: "D-" initial=0 edges=3`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConvert(t *testing.T) {
	in := writeFile(t, "capture.csv", csvCapture)
	out := filepath.Join(t.TempDir(), "capture.cbor")
	if _, err := execute(t, "convert", in, out, "--sample-rate", "1000000"); err != nil {
		t.Fatalf("convert error = %v", err)
	}
	f, err := capture.LoadFile(out)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if f.SampleRate != 1_000_000 || len(f.Channels) != 2 || f.Samples != 4 {
		t.Errorf("converted capture = %+v", f)
	}
}

func TestLogFile(t *testing.T) {
	path := writeCapture(t, t.TempDir())
	logPath := filepath.Join(t.TempDir(), "usbdecode.log")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"decode", path, "--log-level", "info", "--log-file", logPath})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	pkg.SetLogFormat(pkg.LogFormatText)
	pkg.SetLogLevel(slog.LevelWarn)

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "decode complete") {
		t.Errorf("log file missing summary:\n%s", data)
	}
}

func TestMemProfile(t *testing.T) {
	path := writeCapture(t, t.TempDir())
	out := filepath.Join(t.TempDir(), "mem.pprof")
	for _, kind := range []string{"heap", "allocs"} {
		t.Run(kind, func(t *testing.T) {
			if _, err := execute(t, "decode", path, "--memprofile", out, "--memprofile-kind", kind); err != nil {
				t.Errorf("decode error = %v", err)
			}
		})
	}
}
