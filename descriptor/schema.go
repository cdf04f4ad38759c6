package descriptor

import (
	"strconv"

	"github.com/ardnew/usbdecode/event"
	"github.com/ardnew/usbdecode/usb"
)

// field is one entry of a descriptor layout.
type field struct {
	name   string
	width  int // bytes
	format event.Format
}

// schema is the ordered field layout that follows a descriptor header, or
// the whole layout of a class data stage.
type schema []field

// indexed returns n fields named name0 through name{n-1}.
func indexed(name string, n, width int, format event.Format) schema {
	s := make(schema, n)
	for i := range s {
		s[i] = field{name + strconv.Itoa(i), width, format}
	}
	return s
}

// repeated returns n copies of the fields in group.
func repeated(n int, group ...field) schema {
	s := make(schema, 0, n*len(group))
	for range n {
		s = append(s, group...)
	}
	return s
}

func concat(parts ...schema) schema {
	var s schema
	for _, p := range parts {
		s = append(s, p...)
	}
	return s
}

// maxStringUnits is the most UTF-16 code units a 255-byte string
// descriptor can hold.
const maxStringUnits = (255 - 2) / 2

// Standard descriptors. bLength and bDescriptorType are handled by the
// parser and are not listed.
var (
	deviceSchema = schema{
		{"bcdUSB", 2, event.FormatBCD},
		{"bDeviceClass", 1, event.FormatClassCode},
		{"bDeviceSubClass", 1, event.FormatNone},
		{"bDeviceProtocol", 1, event.FormatNone},
		{"bMaxPacketSize0", 1, event.FormatNone},
		{"idVendor", 2, event.FormatVendorID},
		{"idProduct", 2, event.FormatNone},
		{"bcdDevice", 2, event.FormatBCD},
		{"iManufacturer", 1, event.FormatString},
		{"iProduct", 1, event.FormatString},
		{"iSerialNumber", 1, event.FormatString},
		{"bNumConfigurations", 1, event.FormatNone},
	}

	qualifierSchema = schema{
		{"bcdUSB", 2, event.FormatBCD},
		{"bDeviceClass", 1, event.FormatClassCode},
		{"bDeviceSubClass", 1, event.FormatNone},
		{"bDeviceProtocol", 1, event.FormatNone},
		{"bMaxPacketSize0", 1, event.FormatNone},
		{"bNumConfigurations", 1, event.FormatNone},
		{"bReserved", 1, event.FormatNone},
	}

	configSchema = schema{
		{"wTotalLength", 2, event.FormatNone},
		{"bNumInterfaces", 1, event.FormatNone},
		{"bConfigurationValue", 1, event.FormatNone},
		{"iConfiguration", 1, event.FormatString},
		{"bmAttributes", 1, event.FormatAttributesConfig},
		{"bMaxPower", 1, event.FormatMaxPower},
	}

	interfaceSchema = schema{
		{"bInterfaceNumber", 1, event.FormatNone},
		{"bAlternateSetting", 1, event.FormatNone},
		{"bNumEndpoints", 1, event.FormatNone},
		{"bInterfaceClass", 1, event.FormatClassCode},
		{"bInterfaceSubClass", 1, event.FormatNone},
		{"bInterfaceProtocol", 1, event.FormatNone},
		{"iInterface", 1, event.FormatString},
	}

	endpointSchema = schema{
		{"bEndpointAddress", 1, event.FormatEndpointAddress},
		{"bmAttributes", 1, event.FormatAttributesEndpoint},
		{"wMaxPacketSize", 2, event.FormatNone},
		{"bInterval", 1, event.FormatNone},
	}

	// The HID descriptor lists up to 16 class descriptors.
	hidSchema = concat(
		schema{
			{"bcdHID", 2, event.FormatBCD},
			{"bCountryCode", 1, event.FormatHIDCountryCode},
			{"bNumDescriptors", 1, event.FormatNone},
		},
		repeated(16,
			field{"bDescriptorType", 1, event.FormatDescriptorType},
			field{"wDescriptorLength", 2, event.FormatNone},
		),
	)

	langIDSchema = repeated(maxStringUnits, field{"wLANGID", 2, event.FormatLANGID})
	wcharSchema  = repeated(maxStringUnits, field{"wchar", 2, event.FormatWchar})
)

// Interface descriptor field positions the parser acts on.
const (
	interfaceNumberField   = 0
	interfaceClassField    = 3
	interfaceSubClassField = 4
	interfaceProtocolField = 5
)

// CDC functional descriptors, keyed by bDescriptorSubtype. Each starts with
// the subtype byte, which the parser has already emitted when the schema is
// applied.
var (
	cdcSubtype = field{"bDescriptorSubtype", 1, event.FormatCDCDescriptorSubtype}

	cdcSchemas = map[uint8]schema{
		usb.CDCSubtypeHeader: {
			cdcSubtype,
			{"bcdCDC", 2, event.FormatBCD},
		},
		usb.CDCSubtypeCallManagement: {
			cdcSubtype,
			{"bmCapabilities", 1, event.FormatCDCCapabilitiesCall},
			{"bDataInterface", 1, event.FormatNone},
		},
		usb.CDCSubtypeACM: {
			cdcSubtype,
			{"bmCapabilities", 1, event.FormatCDCCapabilitiesAbstractCtrl},
		},
		usb.CDCSubtypeDLM: {
			cdcSubtype,
			{"bmCapabilities", 1, event.FormatCDCCapabilitiesDataLine},
		},
		usb.CDCSubtypeTelephoneRinger: {
			cdcSubtype,
			{"bRingerVolSteps", 1, event.FormatCDCRingerVolSteps},
			{"bNumRingerPatterns", 1, event.FormatNone},
		},
		usb.CDCSubtypeTelephoneCall: {
			cdcSubtype,
			{"bmCapabilities", 1, event.FormatCDCCapabilitiesTelCallStateRep},
		},
		usb.CDCSubtypeUnion: concat(
			schema{cdcSubtype, {"bMasterInterface", 1, event.FormatNone}},
			indexed("bSlaveInterface", 18, 1, event.FormatNone),
		),
		usb.CDCSubtypeCountrySelect: concat(
			schema{cdcSubtype, {"iCountryCodeRelDate", 1, event.FormatString}},
			indexed("wCountryCode", 18, 2, event.FormatNone),
		),
		usb.CDCSubtypeTelephoneOpMode: {
			cdcSubtype,
			{"bmCapabilities", 1, event.FormatCDCCapabilitiesTelOpModes},
		},
		usb.CDCSubtypeUSBTerminal: concat(
			schema{
				cdcSubtype,
				{"bEntityId", 1, event.FormatNone},
				{"bInInterfaceNo", 1, event.FormatNone},
				{"bOutInterfaceNo", 1, event.FormatNone},
				{"bmOptions", 1, event.FormatCDCOptions},
			},
			indexed("bChildId", 18, 1, event.FormatNone),
		),
		usb.CDCSubtypeNetworkChannel: {
			cdcSubtype,
			{"bEntityId", 1, event.FormatNone},
			{"iName", 1, event.FormatString},
			{"bChannelIndex", 1, event.FormatNone},
			{"bPhysicalInterface", 1, event.FormatCDCPhysicalInterface},
		},
		usb.CDCSubtypeProtocolUnit: concat(
			schema{
				cdcSubtype,
				{"bEntityId", 1, event.FormatNone},
				{"bProtocol", 1, event.FormatCDCProtocol},
				{"bOutInterfaceNo", 1, event.FormatNone},
				{"bmOptions", 1, event.FormatCDCOptions},
			},
			indexed("bChildId", 18, 1, event.FormatNone),
		),
		usb.CDCSubtypeExtensionUnit: concat(
			schema{
				cdcSubtype,
				{"bEntityId", 1, event.FormatNone},
				{"bExtensionCode", 1, event.FormatNone},
				{"iName", 1, event.FormatString},
			},
			indexed("bChildId", 18, 1, event.FormatNone),
		),
		usb.CDCSubtypeMCM: {
			cdcSubtype,
			{"bmCapabilities", 1, event.FormatCDCCapabilitiesMultiChannel},
		},
		usb.CDCSubtypeCAPI: {
			cdcSubtype,
			{"bmCapabilities", 1, event.FormatCDCCapabilitiesCAPIControl},
		},
		usb.CDCSubtypeEthernet: {
			cdcSubtype,
			{"iMACAddress", 1, event.FormatString},
			{"bmEthernetStatistics", 4, event.FormatCDCEthernetStatistics},
			{"wMaxSegmentSize", 2, event.FormatNone},
			{"wNumberMCFilters", 2, event.FormatCDCNumberMCFilters},
			{"bNumberPowerFilters", 1, event.FormatNone},
		},
		usb.CDCSubtypeATMNetworking: {
			cdcSubtype,
			{"iEndSystemIdentifier", 1, event.FormatString},
			{"bmDataCapabilities", 1, event.FormatCDCDataCapabilities},
			{"bmATMDeviceStatistics", 1, event.FormatCDCATMDeviceStatistics},
			{"wType2MaxSegmentSize", 2, event.FormatNone},
			{"wType3MaxSegmentSize", 2, event.FormatNone},
			{"wMaxVC", 2, event.FormatNone},
		},
	}
)

// CDC class request data stages.
var (
	lineCodingSchema = schema{
		{"dwDTERate", 4, event.FormatCDCDTERate},
		{"bCharFormat", 1, event.FormatCDCCharFormat},
		{"bParityType", 1, event.FormatCDCParityType},
		{"bDataBits", 1, event.FormatCDCDataBits},
	}

	abstractStateSchema = schema{
		{"ABSTRACT_STATE", 2, event.FormatCDCDataAbstractState},
	}

	countrySettingSchema = schema{
		{"COUNTRY_SETTING", 2, event.FormatCDCDataCountrySetting},
	}

	ringerSchema = schema{
		{"dwRingerBitmap", 4, event.FormatCDCRingerBitmap},
	}

	operationModeSchema = schema{
		{"Operation mode", 4, event.FormatCDCOperationMode},
	}

	lineParmsSchema = concat(
		schema{
			{"wLength", 2, event.FormatNone},
			{"dwRingerBitmap", 4, event.FormatCDCRingerBitmap},
			{"dwLineState", 4, event.FormatCDCLineState},
		},
		indexed("dwCallState", 20, 4, event.FormatCDCCallState),
	)

	unitParameterSchema = schema{
		{"bEntityId", 1, event.FormatNone},
		{"bParameterIndex", 1, event.FormatNone},
	}

	statisticSchema = schema{
		{"uint32", 4, event.FormatNone},
	}

	atmDefaultVCSchema = schema{
		{"VPI", 1, event.FormatNone},
		{"VCI", 2, event.FormatNone},
	}
)

// cdcDataSchema returns the layout of the data stage of a CDC class
// request, or nil when the request carries no structured data.
func cdcDataSchema(req *usb.SetupPacket) schema {
	switch req.Request {
	case usb.CDCRequestSetCommFeature, usb.CDCRequestGetCommFeature:
		switch req.Value {
		case usb.CDCFeatureAbstractState:
			return abstractStateSchema
		case usb.CDCFeatureCountrySetting:
			return countrySettingSchema
		}
	case usb.CDCRequestSetLineCoding, usb.CDCRequestGetLineCoding:
		return lineCodingSchema
	case usb.CDCRequestSetRingerParms, usb.CDCRequestGetRingerParms:
		return ringerSchema
	case usb.CDCRequestGetOperationParms:
		return operationModeSchema
	case usb.CDCRequestSetLineParms, usb.CDCRequestGetLineParms:
		return lineParmsSchema
	case usb.CDCRequestSetUnitParameter, usb.CDCRequestGetUnitParameter:
		return unitParameterSchema
	case usb.CDCRequestGetEthernetStatistic,
		usb.CDCRequestGetATMDeviceStatistics,
		usb.CDCRequestGetATMVCStatistics:
		return statisticSchema
	case usb.CDCRequestSetATMDefaultVC:
		return atmDefaultVCSchema
	}
	return nil
}
