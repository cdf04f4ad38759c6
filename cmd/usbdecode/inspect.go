package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newInspectCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <capture>",
		Short: "Print the layout of a capture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadCapture(args[0], o.sampleRate)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "sample rate: %d Hz\n", f.SampleRate)
			fmt.Fprintf(w, "samples:     %d\n", f.Samples)
			fmt.Fprintf(w, "duration:    %v\n", time.Duration(f.Duration()))
			for i, t := range f.Channels {
				level := 0
				if t.Initial {
					level = 1
				}
				fmt.Fprintf(w, "channel %d: %q initial=%d edges=%d\n", i, t.Name, level, len(t.Edges))
			}
			return nil
		},
	}
}
