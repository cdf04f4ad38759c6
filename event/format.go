package event

import "fmt"

// Format tells a renderer how to present the value of a control transfer
// field. It carries no behavior of its own.
type Format uint8

// Field formats.
const (
	FormatNone Format = iota
	FormatRequestType
	FormatRequestTypeNoData
	FormatRequestStandard
	FormatRequestHID
	FormatRequestCDC
	FormatRequestClass
	FormatRequestVendor
	FormatValueDescriptor
	FormatValueAddress
	FormatValueHIDGetIdle
	FormatValueHIDSetIdle
	FormatValueHIDSetProtocol
	FormatValueHIDGetSetReport
	FormatHIDCountryCode
	FormatDescriptorType
	FormatDescriptorTypeOther
	FormatMaxPower
	FormatLANGID
	FormatIndexInterfaceNum
	FormatIndexEndpoint
	FormatVendorID
	FormatAttributesEndpoint
	FormatAttributesConfig
	FormatEndpointAddress
	FormatBCD
	FormatClassCode
	FormatWchar
	FormatString
	FormatHIDSubClass
	FormatHIDProtocol
	FormatCDCDescriptorSubtype
	FormatCDCCapabilitiesCall
	FormatCDCCapabilitiesAbstractCtrl
	FormatCDCCapabilitiesDataLine
	FormatCDCRingerVolSteps
	FormatCDCCapabilitiesTelOpModes
	FormatCDCCapabilitiesTelCallStateRep
	FormatCDCOptions
	FormatCDCPhysicalInterface
	FormatCDCProtocol
	FormatCDCCapabilitiesMultiChannel
	FormatCDCCapabilitiesCAPIControl
	FormatCDCEthernetStatistics
	FormatCDCNumberMCFilters
	FormatCDCDataCapabilities
	FormatCDCATMDeviceStatistics
	FormatCDCDataAbstractState
	FormatCDCDataCountrySetting
	FormatCDCDTERate
	FormatCDCCharFormat
	FormatCDCParityType
	FormatCDCDataBits
	FormatCDCRingerBitmap
	FormatCDCOperationMode
	FormatCDCLineState
	FormatCDCCallState
	FormatCDCValueCommFeatureSelector
	FormatCDCValueDisconnectConnect
	FormatCDCValueRelayConfig
	FormatCDCValueEnableDisable
	FormatCDCValueCycles
	FormatCDCValueTiming
	FormatCDCValueNumberOfRings
	FormatCDCValueControlSignalBitmap
	FormatCDCValueDurationOfBreak
	FormatCDCValueOperationParms
	FormatCDCValueLineStateChange
	FormatCDCValueUnitParameterStructure
	FormatCDCValueNumberOfFilters
	FormatCDCValueFilterNumber
	FormatCDCValuePacketFilterBitmap
	FormatCDCValueEthFeatureSelector
	FormatCDCValueATMDataFormat
	FormatCDCValueATMFeatureSelector
	FormatCDCValueATMVCFeatureSelector
)

var formatNames = [...]string{
	FormatNone:                           "None",
	FormatRequestType:                    "bmRequestType",
	FormatRequestTypeNoData:              "bmRequestType_NoData",
	FormatRequestStandard:                "bRequest_Standard",
	FormatRequestHID:                     "bRequest_HID",
	FormatRequestCDC:                     "bRequest_CDC",
	FormatRequestClass:                   "bRequest_Class",
	FormatRequestVendor:                  "bRequest_Vendor",
	FormatValueDescriptor:                "wValue_Descriptor",
	FormatValueAddress:                   "wValue_Address",
	FormatValueHIDGetIdle:                "wValue_HIDGetIdle",
	FormatValueHIDSetIdle:                "wValue_HIDSetIdle",
	FormatValueHIDSetProtocol:            "wValue_HIDSetProtocol",
	FormatValueHIDGetSetReport:           "wValue_HIDGetSetReport",
	FormatHIDCountryCode:                 "HID_bCountryCode",
	FormatDescriptorType:                 "bDescriptorType",
	FormatDescriptorTypeOther:            "bDescriptorType_Other",
	FormatMaxPower:                       "bMaxPower",
	FormatLANGID:                         "wLANGID",
	FormatIndexInterfaceNum:              "wIndex_InterfaceNum",
	FormatIndexEndpoint:                  "wIndex_Endpoint",
	FormatVendorID:                       "wVendorId",
	FormatAttributesEndpoint:             "bmAttributes_Endpoint",
	FormatAttributesConfig:               "bmAttributes_Config",
	FormatEndpointAddress:                "bEndpointAddress",
	FormatBCD:                            "BCD",
	FormatClassCode:                      "ClassCode",
	FormatWchar:                          "Wchar",
	FormatString:                         "String",
	FormatHIDSubClass:                    "HIDSubClass",
	FormatHIDProtocol:                    "HIDProtocol",
	FormatCDCDescriptorSubtype:           "CDC_DescriptorSubtype",
	FormatCDCCapabilitiesCall:            "CDC_bmCapabilities_Call",
	FormatCDCCapabilitiesAbstractCtrl:    "CDC_bmCapabilities_AbstractCtrl",
	FormatCDCCapabilitiesDataLine:        "CDC_bmCapabilities_DataLine",
	FormatCDCRingerVolSteps:              "CDC_bRingerVolSteps",
	FormatCDCCapabilitiesTelOpModes:      "CDC_bmCapabilities_TelOpModes",
	FormatCDCCapabilitiesTelCallStateRep: "CDC_bmCapabilities_TelCallStateRep",
	FormatCDCOptions:                     "CDC_bmOptions",
	FormatCDCPhysicalInterface:           "CDC_bPhysicalInterface",
	FormatCDCProtocol:                    "CDC_bProtocol",
	FormatCDCCapabilitiesMultiChannel:    "CDC_bmCapabilities_MultiChannel",
	FormatCDCCapabilitiesCAPIControl:     "CDC_bmCapabilities_CAPIControl",
	FormatCDCEthernetStatistics:          "CDC_bmEthernetStatistics",
	FormatCDCNumberMCFilters:             "CDC_wNumberMCFilters",
	FormatCDCDataCapabilities:            "CDC_bmDataCapabilities",
	FormatCDCATMDeviceStatistics:         "CDC_bmATMDeviceStatistics",
	FormatCDCDataAbstractState:           "CDC_Data_AbstractState",
	FormatCDCDataCountrySetting:          "CDC_Data_CountrySetting",
	FormatCDCDTERate:                     "CDC_dwDTERate",
	FormatCDCCharFormat:                  "CDC_bCharFormat",
	FormatCDCParityType:                  "CDC_bParityType",
	FormatCDCDataBits:                    "CDC_bDataBits",
	FormatCDCRingerBitmap:                "CDC_dwRingerBitmap",
	FormatCDCOperationMode:               "CDC_OperationMode",
	FormatCDCLineState:                   "CDC_dwLineState",
	FormatCDCCallState:                   "CDC_dwCallState",
	FormatCDCValueCommFeatureSelector:    "CDC_wValue_CommFeatureSelector",
	FormatCDCValueDisconnectConnect:      "CDC_wValue_DisconnectConnect",
	FormatCDCValueRelayConfig:            "CDC_wValue_RelayConfig",
	FormatCDCValueEnableDisable:          "CDC_wValue_EnableDisable",
	FormatCDCValueCycles:                 "CDC_wValue_Cycles",
	FormatCDCValueTiming:                 "CDC_wValue_Timing",
	FormatCDCValueNumberOfRings:          "CDC_wValue_NumberOfRings",
	FormatCDCValueControlSignalBitmap:    "CDC_wValue_ControlSignalBitmap",
	FormatCDCValueDurationOfBreak:        "CDC_wValue_DurationOfBreak",
	FormatCDCValueOperationParms:         "CDC_wValue_OperationParms",
	FormatCDCValueLineStateChange:        "CDC_wValue_LineStateChange",
	FormatCDCValueUnitParameterStructure: "CDC_wValue_UnitParameterStructure",
	FormatCDCValueNumberOfFilters:        "CDC_wValue_NumberOfFilters",
	FormatCDCValueFilterNumber:           "CDC_wValue_FilterNumber",
	FormatCDCValuePacketFilterBitmap:     "CDC_wValue_PacketFilterBitmap",
	FormatCDCValueEthFeatureSelector:     "CDC_wValue_EthFeatureSelector",
	FormatCDCValueATMDataFormat:          "CDC_wValue_ATMDataFormat",
	FormatCDCValueATMFeatureSelector:     "CDC_wValue_ATMFeatureSelector",
	FormatCDCValueATMVCFeatureSelector:   "CDC_wValue_ATMVCFeatureSelector",
}

// String returns the field type name the format was derived from.
func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", f)
}
