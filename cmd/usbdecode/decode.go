package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ardnew/usbdecode/decoder"
	"github.com/ardnew/usbdecode/pkg"
	"github.com/ardnew/usbdecode/pkg/usbid"
	"github.com/ardnew/usbdecode/usb"
)

type decodeOptions struct {
	*options
	dp, dm          string
	speed           string
	level           string
	output          string
	keepAliveResets bool
	strings         bool
	usbIDs          string
	noNames         bool
}

func newDecodeCmd(o *options) *cobra.Command {
	d := &decodeOptions{options: o}
	cmd := &cobra.Command{
		Use:   "decode <capture>",
		Short: "Decode a capture and print its events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.run(cmd, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVar(&d.dp, "dp", "D+", "D+ channel name or index")
	f.StringVar(&d.dm, "dm", "D-", "D- channel name or index")
	f.StringVar(&d.speed, "speed", "full", "bus speed (low, full)")
	f.StringVar(&d.level, "level", "control", "decode level (signals, bytes, packets, control)")
	f.StringVar(&d.output, "output", "text", "event output format (text, json)")
	f.BoolVar(&d.keepAliveResets, "keep-alive-resets", true, "discard control pipes on low speed keep-alive")
	f.BoolVar(&d.strings, "strings", true, "print string descriptors seen during the decode")
	f.StringVar(&d.usbIDs, "usb-ids", "", "usb.ids database for vendor and class names (default: search usual locations)")
	f.BoolVar(&d.noNames, "no-names", false, "do not look up vendor and class names")
	return cmd
}

func (d *decodeOptions) config(sampleRate uint64) (decoder.Config, error) {
	cfg := decoder.DefaultConfig()
	cfg.SampleRate = sampleRate
	cfg.KeepAliveResetsPipes = d.keepAliveResets

	speed, err := usb.ParseSpeed(d.speed)
	if err != nil {
		return cfg, err
	}
	cfg.Speed = speed
	if cfg.Level, err = decoder.ParseLevel(d.level); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// loadNames returns the name database, or nil when none can be read.
func (d *decodeOptions) loadNames() *usbid.Database {
	db := usbid.New()
	path := d.usbIDs
	var err error
	if path != "" {
		err = db.LoadFile(path)
	} else {
		path, err = db.LoadDefault()
	}
	if err != nil {
		level := pkg.LogDebug
		if d.usbIDs != "" {
			level = pkg.LogWarn
		}
		level(pkg.ComponentCLI, "no usb.ids names", "path", path, "error", err)
		return nil
	}
	vendors, products, classes := db.Len()
	pkg.LogDebug(pkg.ComponentCLI, "loaded usb.ids",
		"path", path, "vendors", vendors, "products", products, "classes", classes)
	return db
}

func (d *decodeOptions) run(cmd *cobra.Command, path string) error {
	f, err := loadCapture(path, d.sampleRate)
	if err != nil {
		return err
	}
	dp, err := f.Channel(d.dp)
	if err != nil {
		return err
	}
	dm, err := f.Channel(d.dm)
	if err != nil {
		return err
	}
	cfg, err := d.config(f.SampleRate)
	if err != nil {
		return err
	}
	format, err := pkg.ParseLogFormat(d.output)
	if err != nil {
		return fmt.Errorf("--output %q: %w", d.output, err)
	}
	dec, err := decoder.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink := newLogSink(cmd.OutOrStdout(), format)
	sink.strings = dec.Strings()
	if !d.noNames {
		sink.names = d.loadNames()
	}
	pkg.LogInfo(pkg.ComponentCLI, "decoding",
		"path", path,
		"speed", cfg.Speed.String(),
		"level", cfg.Level.String(),
		"sample_rate", cfg.SampleRate)
	if err := dec.Run(ctx, dp, dm, sink); err != nil {
		return err
	}

	if d.strings {
		for _, k := range dec.Strings().Keys() {
			s, _ := dec.Strings().Lookup(k.Address, k.Index)
			sink.String(k.Address, k.Index, s)
		}
	}

	st := dec.Stats()
	pkg.LogInfo(pkg.ComponentCLI, "decode complete",
		"events", sink.Count(),
		"packets", st.Packets,
		"errors", st.Errors,
		"resets", st.Resets,
		"keep_alives", st.KeepAlives)
	return nil
}
