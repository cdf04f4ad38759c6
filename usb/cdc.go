package usb

// CDC Functional Descriptor subtypes.
const (
	CDCSubtypeHeader          = 0x00 // Header Functional Descriptor
	CDCSubtypeCallManagement  = 0x01 // Call Management Functional Descriptor
	CDCSubtypeACM             = 0x02 // Abstract Control Model Functional Descriptor
	CDCSubtypeDLM             = 0x03 // Direct Line Management Functional Descriptor
	CDCSubtypeTelephoneRinger = 0x04 // Telephone Ringer Functional Descriptor
	CDCSubtypeTelephoneCall   = 0x05 // Telephone Call and Line State Reporting
	CDCSubtypeUnion           = 0x06 // Union Functional Descriptor
	CDCSubtypeCountrySelect   = 0x07 // Country Selection Functional Descriptor
	CDCSubtypeTelephoneOpMode = 0x08 // Telephone Operational Modes Functional Descriptor
	CDCSubtypeUSBTerminal     = 0x09 // USB Terminal Functional Descriptor
	CDCSubtypeNetworkChannel  = 0x0A // Network Channel Terminal Functional Descriptor
	CDCSubtypeProtocolUnit    = 0x0B // Protocol Unit Functional Descriptor
	CDCSubtypeExtensionUnit   = 0x0C // Extension Unit Functional Descriptor
	CDCSubtypeMCM             = 0x0D // Multi-Channel Management Functional Descriptor
	CDCSubtypeCAPI            = 0x0E // CAPI Control Management Functional Descriptor
	CDCSubtypeEthernet        = 0x0F // Ethernet Networking Functional Descriptor
	CDCSubtypeATMNetworking   = 0x10 // ATM Networking Functional Descriptor
)

// CDC class request codes (CDC 1.2 Table 19).
const (
	CDCRequestSendEncapsulatedCommand  = 0x00
	CDCRequestGetEncapsulatedResponse  = 0x01
	CDCRequestSetCommFeature           = 0x02
	CDCRequestGetCommFeature           = 0x03
	CDCRequestClearCommFeature         = 0x04
	CDCRequestSetAuxLineState          = 0x10
	CDCRequestSetHookState             = 0x11
	CDCRequestPulseSetup               = 0x12
	CDCRequestSendPulse                = 0x13
	CDCRequestSetPulseTime             = 0x14
	CDCRequestRingAuxJack              = 0x15
	CDCRequestSetLineCoding            = 0x20
	CDCRequestGetLineCoding            = 0x21
	CDCRequestSetControlLineState      = 0x22
	CDCRequestSendBreak                = 0x23
	CDCRequestSetRingerParms           = 0x30
	CDCRequestGetRingerParms           = 0x31
	CDCRequestSetOperationParms        = 0x32
	CDCRequestGetOperationParms        = 0x33
	CDCRequestSetLineParms             = 0x34
	CDCRequestGetLineParms             = 0x35
	CDCRequestDialDigits               = 0x36
	CDCRequestSetUnitParameter         = 0x37
	CDCRequestGetUnitParameter         = 0x38
	CDCRequestClearUnitParameter       = 0x39
	CDCRequestGetProfile               = 0x3A
	CDCRequestSetEthernetMulticast     = 0x40
	CDCRequestSetEthernetPowerFilter   = 0x41
	CDCRequestGetEthernetPowerFilter   = 0x42
	CDCRequestSetEthernetPacketFilter  = 0x43
	CDCRequestGetEthernetStatistic     = 0x44
	CDCRequestSetATMDataFormat         = 0x50
	CDCRequestGetATMDeviceStatistics   = 0x51
	CDCRequestSetATMDefaultVC          = 0x52
	CDCRequestGetATMVCStatistics       = 0x53
)

// CDC communication feature selectors carried in wValue.
const (
	CDCFeatureAbstractState  = 0x01
	CDCFeatureCountrySetting = 0x02
)
