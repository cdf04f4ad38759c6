package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ardnew/usbdecode/pkg"
	"github.com/ardnew/usbdecode/pkg/prof"
)

// Rotation limits of the --log-file sink.
const (
	logFileMaxSize    = 20 // megabytes
	logFileMaxBackups = 3
)

// options holds the flags shared by every subcommand.
type options struct {
	logLevel   string
	logFormat  string
	logFile    string
	cpuProfile string
	memProfile string
	memKind    string
	sampleRate uint64

	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "usbdecode",
		Short: "Decode USB low and full speed captures",
		Long: `usbdecode recovers bus states, packets and control transfers from a
logic capture of the D+ and D- lines of a USB 1.x bus.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			o.teardown()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&o.logLevel, "log-level", "warn", "diagnostic log level (debug, info, warn, error)")
	pf.StringVar(&o.logFormat, "log-format", "text", "diagnostic log format (text, json)")
	pf.StringVar(&o.logFile, "log-file", "", "write diagnostics to a rotated file instead of stderr")
	pf.StringVar(&o.cpuProfile, "cpuprofile", "", "write a CPU profile (profile builds only)")
	pf.StringVar(&o.memProfile, "memprofile", "", "write a memory profile on exit (profile builds only)")
	pf.StringVar(&o.memKind, "memprofile-kind", "heap", "memory profile kind (heap, allocs)")
	pf.Uint64Var(&o.sampleRate, "sample-rate", 0, "sample rate in Hz of CSV captures")

	root.AddCommand(newDecodeCmd(o), newInspectCmd(o), newConvertCmd(o))
	return root
}

// setup configures diagnostics and profiling from the flags.
func (o *options) setup() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("--log-level %q: %w", o.logLevel, pkg.ErrInvalidParameter)
	}
	format, err := pkg.ParseLogFormat(o.logFormat)
	if err != nil {
		return fmt.Errorf("--log-format %q: %w", o.logFormat, err)
	}

	var w io.Writer = os.Stderr
	if o.logFile != "" {
		lj := &lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    logFileMaxSize,
			MaxBackups: logFileMaxBackups,
		}
		o.logCloser = lj
		w = lj
	}
	switch prof.Profile(o.memKind) {
	case prof.ProfileHeap, prof.ProfileAllocs:
	default:
		return fmt.Errorf("--memprofile-kind %q: %w", o.memKind, pkg.ErrInvalidParameter)
	}
	pkg.SetLogLevel(level)
	pkg.SetLogOutput(w, format)

	if o.cpuProfile != "" {
		if err := prof.StartCPU(o.cpuProfile); err != nil {
			return fmt.Errorf("cpu profile: %w", err)
		}
		pkg.LogDebug(pkg.ComponentCLI, "cpu profile started", "path", o.cpuProfile)
	}
	return nil
}

func (o *options) teardown() {
	prof.StopCPU()
	if o.memProfile != "" {
		if err := prof.Write(prof.Profile(o.memKind), o.memProfile); err != nil {
			pkg.LogWarn(pkg.ComponentCLI, "memory profile", "path", o.memProfile, "error", err)
		}
	}
	if o.logCloser != nil {
		o.logCloser.Close()
		o.logCloser = nil
	}
}
