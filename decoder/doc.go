// Package decoder drives the USB 1.x decode pipeline over a D+/D- capture.
//
// A [Decoder] pulls filtered bus states from a [signal.Filter], assembles
// packets, recognizes bus resets and low speed keep-alives, and emits
// events at the configured [Level]:
//
//	d, err := decoder.New(decoder.Config{
//	    SampleRate: 48_000_000,
//	    Speed:      usb.SpeedFull,
//	    Level:      decoder.LevelControlTransfers,
//	})
//	if err != nil {
//	    return err
//	}
//	rec := &event.Recorder{}
//	if err := d.Run(ctx, dp, dm, rec); err != nil {
//	    return err
//	}
//
// At [LevelControlTransfers], packets addressed to endpoint 0 are handed to
// one [control.Handler] per pipe, created on first use and discarded on bus
// reset. Handshake and data packets belong to the pipe of the most recent
// token. Decode errors never stop a run; they are emitted as
// [event.Error] and decoding continues with the next bus state.
package decoder
