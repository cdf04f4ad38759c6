// Package capture provides edge-list logic captures for the decoder.
//
// A capture stores, for each digital channel, its level at sample zero and
// the sorted sample numbers at which it toggles. [Channel] walks one such
// list and satisfies [signal.Channel]. [File] groups channels with their
// sample rate and round-trips through CBOR:
//
//	f, err := capture.LoadFile("boot.cbor")
//	if err != nil {
//	    return err
//	}
//	dp, err := f.Channel("D+")
//
// Captures exported by logic analyzers as CSV transition tables can be
// converted with [ReadCSV].
package capture
