// Package synth generates D+/D- captures of USB 1.x bus traffic for tests.
//
// A Bus starts idle and is extended by appending line activity in bus
// order:
//
//	dp, dm := synth.New(48_000_000, usb.SpeedFull).
//	    Idle(8).
//	    Packet(packet.Token(packet.PIDSetup, 0, 0)).
//	    Idle(8).
//	    Channels()
//
// The J and K levels follow the pull-up chosen at construction. Changing
// the bit rate with SetSpeed keeps that polarity, as a hub repeating low
// speed traffic after a PRE token does.
package synth

import (
	"fmt"
	"math"

	"github.com/ardnew/usbdecode/capture"
	"github.com/ardnew/usbdecode/usb"
)

type line uint8

const (
	lineJ line = iota
	lineK
	lineSE0
)

func (l line) toggle() line {
	if l == lineJ {
		return lineK
	}
	return lineJ
}

// Bus accumulates line activity.
type Bus struct {
	sampleRate uint64
	pullup     usb.Speed
	speed      usb.Speed

	now            float64 // ns
	dp, dm         bool
	dpInit, dmInit bool
	dpEdges        []uint64
	dmEdges        []uint64
}

// New returns an idle bus sampled at sampleRate with a pull-up for speed.
func New(sampleRate uint64, speed usb.Speed) *Bus {
	b := &Bus{sampleRate: sampleRate, pullup: speed, speed: speed}
	b.dp, b.dm = b.levels(lineJ)
	b.dpInit, b.dmInit = b.dp, b.dm
	return b
}

// SetSpeed changes the bit rate of subsequent activity.
func (b *Bus) SetSpeed(speed usb.Speed) *Bus {
	b.speed = speed
	return b
}

// Sample returns the sample at which the next activity begins.
func (b *Bus) Sample() uint64 {
	return uint64(math.Round(b.now * float64(b.sampleRate) / 1e9))
}

// SamplesPerBit returns the bit length at the current speed in samples.
func (b *Bus) SamplesPerBit() float64 {
	return b.speed.BitTime() * float64(b.sampleRate) / 1e9
}

// Idle holds J for bits bit times.
func (b *Bus) Idle(bits float64) *Bus {
	b.drive(lineJ, bits*b.speed.BitTime())
	return b
}

// Packet transmits wire, SYNC included, followed by an EOP.
func (b *Bus) Packet(wire []byte) *Bus {
	b.bits(wire, len(wire)*8)
	return b.eop()
}

// Truncated transmits only the first n bits of wire followed by an EOP.
func (b *Bus) Truncated(wire []byte, n int) *Bus {
	b.bits(wire, n)
	return b.eop()
}

// Preamble transmits wire without an EOP and returns the bus to idle for
// gap full speed bit times. It is used for PRE tokens.
func (b *Bus) Preamble(wire []byte, gap float64) *Bus {
	b.bits(wire, len(wire)*8)
	b.drive(lineJ, gap*usb.BitTimeFull)
	return b
}

// SE0 drives both lines low for ns nanoseconds and then returns to idle
// for one bit time.
func (b *Bus) SE0(ns float64) *Bus {
	b.drive(lineSE0, ns)
	return b.Idle(1)
}

// Reset signals a bus reset.
func (b *Bus) Reset() *Bus {
	return b.SE0(usb.ResetDuration * 1.1)
}

// KeepAlive signals a low speed keep-alive.
func (b *Bus) KeepAlive() *Bus {
	b.drive(lineSE0, 2*usb.BitTimeLow)
	b.drive(lineJ, usb.BitTimeLow)
	return b
}

// File returns the activity so far as a two channel capture.
func (b *Bus) File() *capture.File {
	f := &capture.File{SampleRate: b.sampleRate, Samples: b.Sample() + 1}
	f.Add("D+", b.dpInit, b.dpEdges)
	f.Add("D-", b.dmInit, b.dmEdges)
	return f
}

// Channels returns cursors over D+ and D-.
func (b *Bus) Channels() (dp, dm *capture.Channel) {
	end := b.Sample()
	var err error
	if dp, err = capture.NewChannel("D+", b.dpInit, b.dpEdges, end); err != nil {
		panic(fmt.Sprintf("synth: %v", err))
	}
	if dm, err = capture.NewChannel("D-", b.dmInit, b.dmEdges, end); err != nil {
		panic(fmt.Sprintf("synth: %v", err))
	}
	return dp, dm
}

func (b *Bus) levels(l line) (dp, dm bool) {
	switch l {
	case lineSE0:
		return false, false
	case lineJ:
		return b.pullup == usb.SpeedFull, b.pullup == usb.SpeedLow
	default:
		return b.pullup == usb.SpeedLow, b.pullup == usb.SpeedFull
	}
}

func (b *Bus) drive(l line, ns float64) {
	dp, dm := b.levels(l)
	at := b.Sample()
	if dp != b.dp {
		b.dpEdges = append(b.dpEdges, at)
		b.dp = dp
	}
	if dm != b.dm {
		b.dmEdges = append(b.dmEdges, at)
		b.dm = dm
	}
	b.now += ns
}

// bits NRZI encodes the first n bits of wire, least significant bit first,
// inserting a stuff bit after every six consecutive ones.
func (b *Bus) bits(wire []byte, n int) {
	bit := b.speed.BitTime()
	cur, ones := lineJ, 0
	for i := 0; i < n; i++ {
		if wire[i/8]>>(i%8)&1 == 0 {
			cur, ones = cur.toggle(), 0
		} else {
			ones++
		}
		b.drive(cur, bit)
		if ones == 6 {
			cur, ones = cur.toggle(), 0
			b.drive(cur, bit)
		}
	}
}

func (b *Bus) eop() *Bus {
	b.drive(lineSE0, 2*b.speed.BitTime())
	b.drive(lineJ, b.speed.BitTime())
	return b
}
