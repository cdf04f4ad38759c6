package main

import (
	"github.com/spf13/cobra"

	"github.com/ardnew/usbdecode/pkg"
)

func newConvertCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output.cbor>",
		Short: "Store a capture in the CBOR container format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadCapture(args[0], o.sampleRate)
			if err != nil {
				return err
			}
			if err := f.SaveFile(args[1]); err != nil {
				return err
			}
			pkg.LogInfo(pkg.ComponentCLI, "capture written",
				"path", args[1],
				"channels", len(f.Channels),
				"samples", f.Samples)
			return nil
		},
	}
}
