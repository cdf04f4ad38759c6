package descriptor

import (
	"fmt"

	"github.com/ardnew/usbdecode/event"
	"github.com/ardnew/usbdecode/packet"
	"github.com/ardnew/usbdecode/pkg"
	"github.com/ardnew/usbdecode/usb"
)

// Offsets at which schemas begin within the byte stream they describe.
const (
	descriptorBase = 2 // after bLength and bDescriptorType
	dataStageBase  = 0
)

// Parser decodes the data stages of one device's control pipe.
type Parser struct {
	address uint8
	strings *StringTable

	req usb.SetupPacket

	// Descriptor stream state. descLen is bLength for descriptors and
	// wLength for class data stages; parsed counts bytes consumed from it.
	descLen  int
	parsed   int
	descType uint8
	subtype  uint8

	// leftover holds the low bytes of a field split across packets.
	leftover uint32

	// iface is the interface number of the latest interface descriptor.
	iface   uint8
	classes map[uint8]uint8

	text []byte // UTF-16LE units of the string being read

	// err is the latest malformed descriptor, kept across Reset.
	err error

	item      []byte
	items     int
	indent    int
	usagePage uint16
	pages     []uint16

	// Current packet.
	pkt  *packet.Packet
	data []byte
	off  int
	sink event.Sink
}

// New returns a parser for the device at address. Completed string
// descriptors are recorded in strings, which may be nil.
func New(address uint8, strings *StringTable) *Parser {
	return &Parser{
		address: address,
		strings: strings,
		classes: make(map[uint8]uint8),
		item:    make([]byte, 0, 5),
	}
}

// Address returns the device address the parser decodes for.
func (p *Parser) Address() uint8 {
	return p.address
}

// Reset discards the current request and any partially parsed data.
// Interface classes are kept.
func (p *Parser) Reset() {
	p.req = usb.SetupPacket{}
	p.descLen, p.parsed = 0, 0
	p.descType, p.subtype = 0, 0
	p.leftover = 0
	p.text = p.text[:0]
	p.item = p.item[:0]
	p.items, p.indent = 0, 0
	p.usagePage = 0
	p.pages = p.pages[:0]
}

// Err returns the latest malformed descriptor error, or nil. It wraps
// [pkg.ErrDescriptorTooShort].
func (p *Parser) Err() error {
	return p.err
}

// SetRequest selects how following data packets are decoded.
func (p *Parser) SetRequest(req usb.SetupPacket) {
	p.req = req
}

// Request returns the current request.
func (p *Parser) Request() usb.SetupPacket {
	return p.req
}

// ClassForInterface returns the class code recorded for interface iface,
// or [usb.ClassPerInterface] if none has been seen.
func (p *Parser) ClassForInterface(iface uint8) uint8 {
	if c, ok := p.classes[iface]; ok {
		return c
	}
	return usb.ClassPerInterface
}

// IsCDCRequest reports whether the current request is a class request to
// an interface of a CDC function.
func (p *Parser) IsCDCRequest() bool {
	return p.req.IsClass() && p.req.IsInterfaceRecipient() &&
		usb.IsCDCClass(p.ClassForInterface(p.req.InterfaceNumber()))
}

// Parse decodes the payload of a data stage packet into s. The caller owns
// framing and Commit.
func (p *Parser) Parse(pkt *packet.Packet, s event.Sink) {
	p.pkt, p.data, p.off, p.sink = pkt, pkt.Payload(), 0, s
	defer func() { p.pkt, p.data, p.sink = nil, nil, nil }()

	switch {
	case p.req.IsGetStandardDescriptor():
		p.parseDescriptors()
	case p.req.IsGetHIDReportDescriptor():
		p.parseReport()
	case p.IsCDCRequest():
		p.parseCDC()
	default:
		p.rawPacket()
	}
}

func (p *Parser) remaining() int {
	return len(p.data) - p.off
}

// value decodes width little-endian payload bytes at off.
func (p *Parser) value(off, width int) uint32 {
	var v uint32
	for i := width - 1; i >= 0; i-- {
		v = v<<8 | uint32(p.data[off+i])
	}
	return v
}

// emit emits a field over width bytes of the current packet at off.
func (p *Parser) emit(off, width int, name string, format event.Format, flag event.Flag, v uint32, fieldWidth int) {
	start, end := p.pkt.PayloadSpan(off, width)
	p.sink.Emit(event.Field{
		Span:    event.Span{Start: start, End: end},
		Address: p.address,
		Name:    name,
		Width:   fieldWidth,
		Value:   v,
		Format:  format,
		Flag:    flag,
	})
}

// consume emits the next width bytes as one field and advances.
func (p *Parser) consume(width int, name string, format event.Format, flag event.Flag) uint32 {
	v := p.value(p.off, width)
	p.emit(p.off, width, name, format, flag, v, width)
	p.off += width
	p.parsed += width
	return v
}

// rawPacket emits every remaining packet byte.
func (p *Parser) rawPacket() {
	for p.remaining() > 0 {
		p.consume(1, "byte", event.FormatNone, event.FlagNone)
	}
}

// rawDescriptor emits remaining bytes that belong to the current
// descriptor or data stage.
func (p *Parser) rawDescriptor() {
	for p.parsed < p.descLen && p.remaining() > 0 {
		p.consume(1, "byte", event.FormatNone, event.FlagNone)
	}
}

func (p *Parser) endDescriptor() {
	p.parsed = 0
	p.descLen = 0
	p.descType, p.subtype = 0, 0
	p.leftover = 0
}

// fieldHook observes each complete schema field before it is emitted and
// may replace its format.
type fieldHook func(i int, v uint32, format event.Format) event.Format

// parseStructure decodes fields of s starting at the current position. The
// schema begins at offset base of the stream. A field is decoded only if it
// fits within descLen; one that runs past the packet is emitted incomplete
// and finished from the next packet.
func (p *Parser) parseStructure(s schema, base int, hook fieldHook) {
	i, at := 0, base
	for i < len(s) && at+s[i].width <= p.parsed {
		at += s[i].width
		i++
	}
	if i == len(s) {
		return
	}

	// Finish a field whose low bytes arrived earlier.
	if at < p.parsed {
		f := s[i]
		have := p.parsed - at
		take := min(f.width-have, p.remaining())
		if take == 0 {
			return
		}
		v := p.leftover | p.value(p.off, take)<<(8*have)
		flag := event.FlagNone
		if have+take < f.width {
			flag = event.FlagFieldIncomplete
			p.leftover = v
		} else if hook != nil {
			f.format = hook(i, v, f.format)
		}
		p.emit(p.off, take, f.name, f.format, flag, v, f.width)
		p.off += take
		p.parsed += take
		if flag == event.FlagFieldIncomplete {
			return
		}
		i++
	}

	for ; i < len(s); i++ {
		f := s[i]
		if p.parsed >= p.descLen || p.remaining() == 0 || p.descLen < p.parsed+f.width {
			return
		}
		if f.width > p.remaining() {
			width := p.remaining()
			p.leftover = p.value(p.off, width)
			p.emit(p.off, width, f.name, f.format, event.FlagFieldIncomplete, p.leftover, width)
			p.off += width
			p.parsed += width
			return
		}
		if hook != nil {
			f.format = hook(i, p.value(p.off, f.width), f.format)
		}
		p.consume(f.width, f.name, f.format, event.FlagNone)
	}
}

// parseDescriptors decodes a GET_DESCRIPTOR response made of one or more
// concatenated descriptors.
func (p *Parser) parseDescriptors() {
	for p.remaining() > 0 {
		class := p.ClassForInterface(p.iface)

		switch {
		case p.parsed == 0:
			p.descLen = int(p.consume(1, "bLength", event.FormatNone, event.FlagDataDescriptor))
			if p.descLen < descriptorBase {
				p.err = fmt.Errorf("%w: bLength %d", pkg.ErrDescriptorTooShort, p.descLen)
				pkg.LogWarn(pkg.ComponentDescriptor, "descriptor length too short",
					"address", p.address, "error", p.err)
				p.rawPacket()
				p.endDescriptor()
				return
			}

		case p.parsed == 1:
			p.descType = p.data[p.off]
			format := event.FormatDescriptorTypeOther
			if usb.IsStandardDescriptor(p.descType) || class == usb.ClassHID || usb.IsCDCClass(class) {
				format = event.FormatDescriptorType
			}
			p.consume(1, "bDescriptorType", format, event.FlagNone)

		case p.parsed == descriptorBase && usb.IsCDCClass(class) &&
			(p.descType == usb.DescriptorTypeCSInterface || p.descType == usb.DescriptorTypeCSEndpoint):
			p.subtype = p.data[p.off]
			p.consume(1, cdcSubtype.name, cdcSubtype.format, event.FlagNone)

		case p.descType == usb.DescriptorTypeString:
			if p.parseString() && p.remaining() > 0 {
				pkg.LogWarn(pkg.ComponentDescriptor, "string descriptor shorter than packet",
					"address", p.address, "remaining", p.remaining())
				p.rawPacket()
				return
			}
			continue

		default:
			if s := p.schema(class); s != nil {
				p.parseStructure(s, descriptorBase, p.interfaceHook())
			}
			p.rawDescriptor()
		}

		if p.parsed >= p.descLen {
			p.endDescriptor()
		}
	}
}

// schema returns the layout of the current descriptor, nil if unknown.
func (p *Parser) schema(class uint8) schema {
	switch p.descType {
	case usb.DescriptorTypeDevice:
		return deviceSchema
	case usb.DescriptorTypeDeviceQualifier:
		return qualifierSchema
	case usb.DescriptorTypeConfiguration, usb.DescriptorTypeOtherSpeedConfig:
		return configSchema
	case usb.DescriptorTypeInterface:
		return interfaceSchema
	case usb.DescriptorTypeEndpoint:
		return endpointSchema
	case usb.DescriptorTypeHID:
		if class == usb.ClassHID {
			return hidSchema
		}
	case usb.DescriptorTypeCSInterface, usb.DescriptorTypeCSEndpoint:
		if usb.IsCDCClass(class) {
			return cdcSchemas[p.subtype]
		}
	}
	return nil
}

// interfaceHook records interface numbers and classes as interface
// descriptors pass, and selects HID formats for their subclass and
// protocol.
func (p *Parser) interfaceHook() fieldHook {
	if p.descType != usb.DescriptorTypeInterface {
		return nil
	}
	return func(i int, v uint32, format event.Format) event.Format {
		switch i {
		case interfaceNumberField:
			p.iface = uint8(v)
		case interfaceClassField:
			p.classes[p.iface] = uint8(v)
		case interfaceSubClassField:
			if p.ClassForInterface(p.iface) == usb.ClassHID {
				return event.FormatHIDSubClass
			}
		case interfaceProtocolField:
			if p.ClassForInterface(p.iface) == usb.ClassHID {
				return event.FormatHIDProtocol
			}
		}
		return format
	}
}

// parseString decodes the body of a string descriptor. It reports whether
// the descriptor is complete.
func (p *Parser) parseString() bool {
	index := p.req.DescriptorIndex()

	if index == 0 {
		p.parseStructure(langIDSchema, descriptorBase, nil)
	} else {
		if p.parsed == descriptorBase {
			p.text = p.text[:0]
		}
		p.parseStructure(wcharSchema, descriptorBase, func(_ int, v uint32, format event.Format) event.Format {
			p.text = append(p.text, byte(v), byte(v>>8))
			return format
		})
	}
	p.rawDescriptor()

	if p.parsed < p.descLen {
		return false
	}
	if index != 0 && p.strings != nil {
		s, err := p.strings.SetUTF16(p.address, index, p.text)
		if err != nil {
			pkg.LogWarn(pkg.ComponentDescriptor, "undecodable string", "error", err)
		} else {
			pkg.LogDebug(pkg.ComponentDescriptor, "string recorded",
				"address", p.address, "index", index, "value", s)
		}
	}
	p.endDescriptor()
	return true
}

// parseReport decodes HID report descriptor items. Items may span packets.
func (p *Parser) parseReport() {
	for p.remaining() > 0 {
		start := p.off
		if len(p.item) == 0 {
			p.item = append(p.item, p.data[p.off])
			p.off++
		}
		size := usb.HIDItemDataSize(p.item[0]) + 1

		if size-len(p.item) > p.remaining() {
			p.item = append(p.item, p.data[p.off:]...)
			p.off = len(p.data)
			p.emitItem(start, nil, event.FlagFieldIncomplete)
			return
		}

		n := size - len(p.item)
		p.item = append(p.item, p.data[p.off:p.off+n]...)
		p.off += n

		prefix := p.item[0] & usb.HIDItemPrefixMask
		switch prefix {
		case usb.HIDItemEndCollection:
			if p.indent > 0 {
				p.indent--
			}
		case usb.HIDItemUsagePage:
			p.usagePage = uint16(itemData(p.item))
		case usb.HIDItemPush:
			p.pages = append(p.pages, p.usagePage)
		case usb.HIDItemPop:
			if top := len(p.pages) - 1; top >= 0 {
				p.usagePage = p.pages[top]
				p.pages = p.pages[:top]
			}
		}

		flag := event.FlagNone
		if p.items == 0 {
			flag = event.FlagDataDescriptor
		}
		p.emitItem(start, append([]byte(nil), p.item...), flag)

		if prefix == usb.HIDItemCollection {
			p.indent++
		}
		p.item = p.item[:0]
		p.items++
	}
}

func (p *Parser) emitItem(start int, item []byte, flag event.Flag) {
	page := p.usagePage
	if len(item) == 5 && usb.IsHIDUsageItem(item[0]) {
		page = uint16(item[3]) | uint16(item[4])<<8
	}
	s, e := p.pkt.PayloadSpan(start, p.off-start)
	p.sink.Emit(event.HIDItem{
		Span:      event.Span{Start: s, End: e},
		Address:   p.address,
		Item:      item,
		Indent:    p.indent,
		UsagePage: page,
		Flag:      flag,
	})
}

// itemData returns the little-endian data of a short item.
func itemData(item []byte) uint32 {
	var v uint32
	for i := len(item) - 1; i >= 1; i-- {
		v = v<<8 | uint32(item[i])
	}
	return v
}

// parseCDC decodes the data stage of a CDC class request. The stage is
// bounded by wLength and may span packets.
func (p *Parser) parseCDC() {
	s := cdcDataSchema(&p.req)
	if s == nil {
		p.rawPacket()
		return
	}
	p.descLen = int(p.req.Length)
	p.parseStructure(s, dataStageBase, nil)
	p.rawDescriptor()
	p.rawPacket()
}
