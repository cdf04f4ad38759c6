package decoder

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardnew/usbdecode/control"
	"github.com/ardnew/usbdecode/descriptor"
	"github.com/ardnew/usbdecode/event"
	"github.com/ardnew/usbdecode/packet"
	"github.com/ardnew/usbdecode/pkg"
	"github.com/ardnew/usbdecode/signal"
	"github.com/ardnew/usbdecode/usb"
)

// keepAliveBits is the length of a low speed keep-alive SE0 in bit times.
const keepAliveBits = 2

// PipeKey identifies a pipe.
type PipeKey struct {
	Address  uint8
	Endpoint uint8
}

// String returns the key as "address:endpoint".
func (k PipeKey) String() string {
	return fmt.Sprintf("%d:%d", k.Address, k.Endpoint)
}

// Stats counts what a run decoded.
type Stats struct {
	States     uint64
	Packets    uint64
	Errors     uint64
	Resets     uint64
	KeepAlives uint64
}

// Decoder decodes captures. It is not safe for concurrent use; the string
// table it returns may be read while a run is in progress.
type Decoder struct {
	cfg      Config
	strings  *descriptor.StringTable
	pipes    map[PipeKey]*control.Handler
	lastPipe PipeKey
	lastEnd  uint64
	stats    Stats
}

// New returns a decoder for cfg.
func New(cfg Config) (*Decoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Decoder{
		cfg:     cfg,
		strings: descriptor.NewStringTable(),
		pipes:   make(map[PipeKey]*control.Handler),
	}, nil
}

// Config returns the decoder configuration.
func (d *Decoder) Config() Config {
	return d.cfg
}

// Strings returns the string descriptors recorded so far, across runs.
func (d *Decoder) Strings() *descriptor.StringTable {
	return d.strings
}

// Stats returns the counters of the last run.
func (d *Decoder) Stats() Stats {
	return d.stats
}

// PipeStage returns the control transfer stage of the pipe at key, and
// whether the pipe exists.
func (d *Decoder) PipeStage(key PipeKey) (control.Stage, bool) {
	h, ok := d.pipes[key]
	if !ok {
		return control.StatusEnd, false
	}
	return h.Stage(), true
}

// Pipes returns the number of live pipes.
func (d *Decoder) Pipes() int {
	return len(d.pipes)
}

// Run decodes the capture on dp and dm into sink. It returns nil when both
// channels are exhausted, or an error wrapping pkg.ErrCancelled when ctx
// is done first. Decode errors are emitted, not returned.
func (d *Decoder) Run(ctx context.Context, dp, dm signal.Channel, sink event.Sink) error {
	f := signal.NewFilter(dp, dm, d.cfg.SampleRate, d.cfg.Speed)
	a := packet.NewAssembler(f)

	d.resetPipes()
	d.stats = Stats{}
	started := false

	pkg.LogDebug(pkg.ComponentDecoder, "decode started",
		"sample_rate", d.cfg.SampleRate,
		"speed", d.cfg.Speed.String(),
		"level", d.cfg.Level.String())

	for f.More() {
		select {
		case <-ctx.Done():
			pkg.LogDebug(pkg.ComponentDecoder, "decode cancelled", "sample", d.lastEnd)
			return fmt.Errorf("%w: %w", pkg.ErrCancelled, ctx.Err())
		default:
		}

		s := f.Next()
		d.stats.States++
		if !started {
			d.lastEnd = s.Start
			started = true
		}

		end := s.End
		if d.cfg.Level == LevelSignals {
			event.EmitSignal(sink, s)
		} else {
			end = d.state(a, s, sink)
		}

		if d.cfg.Progress != nil {
			d.cfg.Progress(end)
		}
	}

	pkg.LogDebug(pkg.ComponentDecoder, "decode finished",
		"states", d.stats.States,
		"packets", d.stats.Packets,
		"errors", d.stats.Errors,
		"resets", d.stats.Resets)
	return nil
}

// state handles one bus state above the signal level and returns the last
// sample it consumed.
func (d *Decoder) state(a *packet.Assembler, s signal.BusState, sink event.Sink) uint64 {
	switch {
	case a.IsDataSignal(s):
		p, next, err := a.Assemble(s)
		if err != nil {
			end := next.End
			var me *packet.MalformedError
			if errors.As(err, &me) {
				end = me.End
			}
			d.stats.Errors++
			d.lastEnd = event.EmitError(sink, err, s.Start, end)
			return next.End
		}
		d.stats.Packets++
		d.lastEnd = d.packet(p, sink)
		return next.End

	case d.cfg.Speed == usb.SpeedLow && s.State == signal.SE0 && s.NumBits(usb.SpeedLow) == keepAliveBits:
		d.stats.KeepAlives++
		event.EmitMarker(sink, event.KindKeepAlive, d.lastEnd, s.End)
		d.lastEnd = s.End
		if d.cfg.KeepAliveResetsPipes {
			d.resetPipes()
		}

	case s.State == signal.SE0 && s.Duration > usb.ResetDuration:
		d.stats.Resets++
		pkg.LogDebug(pkg.ComponentDecoder, "bus reset",
			"start", s.Start, "end", s.End, "pipes", len(d.pipes))
		event.EmitMarker(sink, event.KindReset, d.lastEnd, s.End)
		d.lastEnd = s.End
		d.resetPipes()

	case s.State == signal.J:
		d.lastEnd = s.End
	}
	return s.End
}

// packet emits p at the configured level and returns its last sample.
func (d *Decoder) packet(p *packet.Packet, sink event.Sink) uint64 {
	switch d.cfg.Level {
	case LevelBytes:
		return event.EmitBytes(sink, p)
	case LevelPackets:
		return event.EmitPacket(sink, p, event.FlagNone)
	}
	return d.route(p, sink)
}

// route hands p to the control pipe of the last token when that pipe is
// endpoint 0. SOF and PRE packets never reach a pipe.
func (d *Decoder) route(p *packet.Packet, sink event.Sink) uint64 {
	pid := p.PID()
	if pid.IsToken() {
		d.lastPipe = PipeKey{Address: p.Address(), Endpoint: p.Endpoint()}
	}
	if d.lastPipe.Endpoint != 0 || pid == packet.PIDSOF || pid == packet.PIDPre {
		return event.EmitPacket(sink, p, event.FlagNone)
	}

	h, ok := d.pipes[d.lastPipe]
	if !ok {
		h = control.NewHandler(d.lastPipe.Address, d.strings)
		d.pipes[d.lastPipe] = h
		pkg.LogDebug(pkg.ComponentDecoder, "pipe created", "pipe", d.lastPipe.String())
	}
	return h.Handle(p, sink)
}

// resetPipes discards every control pipe.
func (d *Decoder) resetPipes() {
	clear(d.pipes)
	d.lastPipe = PipeKey{}
}
