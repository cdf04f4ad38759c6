package control

import (
	"github.com/ardnew/usbdecode/descriptor"
	"github.com/ardnew/usbdecode/event"
	"github.com/ardnew/usbdecode/packet"
	"github.com/ardnew/usbdecode/usb"
)

// setupField is one field of the 8-byte SETUP data.
type setupField struct {
	offset int
	width  int
	name   string
	format event.Format
	flag   event.Flag
}

// cdcValueFormats selects the wValue format of CDC class requests.
var cdcValueFormats = map[uint8]event.Format{
	usb.CDCRequestSetCommFeature:           event.FormatCDCValueCommFeatureSelector,
	usb.CDCRequestGetCommFeature:           event.FormatCDCValueCommFeatureSelector,
	usb.CDCRequestClearCommFeature:         event.FormatCDCValueCommFeatureSelector,
	usb.CDCRequestSetAuxLineState:          event.FormatCDCValueDisconnectConnect,
	usb.CDCRequestSetHookState:             event.FormatCDCValueRelayConfig,
	usb.CDCRequestPulseSetup:               event.FormatCDCValueEnableDisable,
	usb.CDCRequestSendPulse:                event.FormatCDCValueCycles,
	usb.CDCRequestSetPulseTime:             event.FormatCDCValueTiming,
	usb.CDCRequestRingAuxJack:              event.FormatCDCValueNumberOfRings,
	usb.CDCRequestSetControlLineState:      event.FormatCDCValueControlSignalBitmap,
	usb.CDCRequestSendBreak:                event.FormatCDCValueDurationOfBreak,
	usb.CDCRequestSetOperationParms:        event.FormatCDCValueOperationParms,
	usb.CDCRequestSetLineParms:             event.FormatCDCValueLineStateChange,
	usb.CDCRequestSetUnitParameter:         event.FormatCDCValueUnitParameterStructure,
	usb.CDCRequestGetUnitParameter:         event.FormatCDCValueUnitParameterStructure,
	usb.CDCRequestClearUnitParameter:       event.FormatCDCValueUnitParameterStructure,
	usb.CDCRequestSetEthernetMulticast:     event.FormatCDCValueNumberOfFilters,
	usb.CDCRequestSetEthernetPowerFilter:   event.FormatCDCValueFilterNumber,
	usb.CDCRequestGetEthernetPowerFilter:   event.FormatCDCValueFilterNumber,
	usb.CDCRequestSetEthernetPacketFilter:  event.FormatCDCValuePacketFilterBitmap,
	usb.CDCRequestGetEthernetStatistic:     event.FormatCDCValueEthFeatureSelector,
	usb.CDCRequestSetATMDataFormat:         event.FormatCDCValueATMDataFormat,
	usb.CDCRequestGetATMDeviceStatistics:   event.FormatCDCValueATMFeatureSelector,
	usb.CDCRequestGetATMVCStatistics:       event.FormatCDCValueATMVCFeatureSelector,
}

// setupFields lays out the fields of req. Class requests to an interface
// are formatted according to the class recorded by parser.
func setupFields(req *usb.SetupPacket, parser *descriptor.Parser) [5]setupField {
	fields := [5]setupField{
		{0, 1, "bmRequestType", event.FormatRequestType, event.FlagSetupBegin},
		{1, 1, "bRequest", event.FormatNone, event.FlagNone},
		{2, 2, "wValue", event.FormatNone, event.FlagNone},
		{4, 2, "wIndex", event.FormatNone, event.FlagNone},
		{6, 2, "wLength", event.FormatNone, event.FlagNone},
	}
	request, value, index := &fields[1], &fields[2], &fields[3]

	if req.Length == 0 {
		fields[0].format = event.FormatRequestTypeNoData
	}

	switch {
	case req.IsInterfaceRecipient():
		index.format = event.FormatIndexInterfaceNum
	case req.IsEndpointRecipient():
		index.format = event.FormatIndexEndpoint
	}

	switch {
	case req.IsStandard():
		request.format = event.FormatRequestStandard
		switch req.Request {
		case usb.RequestGetDescriptor, usb.RequestSetDescriptor:
			value.format = event.FormatValueDescriptor
		case usb.RequestSetAddress:
			value.format = event.FormatValueAddress
		}
		if index.format == event.FormatNone && req.Request == usb.RequestGetDescriptor &&
			req.DescriptorType() == usb.DescriptorTypeString && req.DescriptorIndex() != 0 {
			index.format = event.FormatLANGID
		}

	case req.IsClass():
		class := uint8(usb.ClassPerInterface)
		if req.IsInterfaceRecipient() {
			class = parser.ClassForInterface(req.InterfaceNumber())
		}
		switch {
		case class == usb.ClassHID:
			request.format = event.FormatRequestHID
			switch req.Request {
			case usb.HIDRequestSetIdle:
				value.format = event.FormatValueHIDSetIdle
			case usb.HIDRequestGetIdle:
				value.format = event.FormatValueHIDGetIdle
			case usb.HIDRequestSetProtocol:
				value.format = event.FormatValueHIDSetProtocol
			case usb.HIDRequestSetReport, usb.HIDRequestGetReport:
				value.format = event.FormatValueHIDGetSetReport
			}
		case usb.IsCDCClass(class):
			request.format = event.FormatRequestCDC
			value.format = cdcValueFormats[req.Request]
		default:
			request.format = event.FormatRequestClass
		}

	case req.IsVendor():
		request.format = event.FormatRequestVendor
	}

	return fields
}

// emitSetup emits the SETUP data packet of a transfer with its request
// fields and commits.
func emitSetup(s event.Sink, p *packet.Packet, req *usb.SetupPacket, parser *descriptor.Parser) uint64 {
	event.EmitHeader(s, p, event.FlagNone)
	for _, f := range setupFields(req, parser) {
		v, _ := p.Field(f.offset, f.width)
		start, end := p.PayloadSpan(f.offset, f.width)
		s.Emit(event.Field{
			Span:    event.Span{Start: start, End: end},
			Address: parser.Address(),
			Name:    f.name,
			Width:   f.width,
			Value:   v,
			Format:  f.format,
			Flag:    f.flag,
		})
	}
	event.EmitTrailer(s, p)
	s.Commit()
	return p.End
}
