package usb

// USB Descriptor Types (USB 2.0 Spec Table 9-5).
const (
	DescriptorTypeDevice           = 0x01
	DescriptorTypeConfiguration    = 0x02
	DescriptorTypeString           = 0x03
	DescriptorTypeInterface        = 0x04
	DescriptorTypeEndpoint         = 0x05
	DescriptorTypeDeviceQualifier  = 0x06
	DescriptorTypeOtherSpeedConfig = 0x07
	DescriptorTypeInterfacePower   = 0x08
	DescriptorTypeHID              = 0x21
	DescriptorTypeHIDReport        = 0x22
	DescriptorTypeHIDPhysical      = 0x23
	DescriptorTypeCSInterface      = 0x24 // Class-specific interface
	DescriptorTypeCSEndpoint       = 0x25 // Class-specific endpoint
)

// IsStandardDescriptor reports whether t is one of the chapter 9
// descriptor types.
func IsStandardDescriptor(t uint8) bool {
	return t >= DescriptorTypeDevice && t <= DescriptorTypeInterfacePower
}

// USB Class Codes.
const (
	ClassPerInterface = 0x00 // Class defined at interface level
	ClassAudio        = 0x01 // Audio class
	ClassCDC          = 0x02 // Communications Device Class
	ClassHID          = 0x03 // Human Interface Device
	ClassPhysical     = 0x05 // Physical
	ClassImage        = 0x06 // Still Imaging
	ClassPrinter      = 0x07 // Printer
	ClassMassStorage  = 0x08 // Mass Storage
	ClassHub          = 0x09 // Hub
	ClassCDCData      = 0x0A // CDC-Data
	ClassSmartCard    = 0x0B // Smart Card
	ClassContentSec   = 0x0D // Content Security
	ClassVideo        = 0x0E // Video
	ClassHealthcare   = 0x0F // Personal Healthcare
	ClassAudioVideo   = 0x10 // Audio/Video Devices
	ClassDiagnostic   = 0xDC // Diagnostic Device
	ClassWireless     = 0xE0 // Wireless Controller
	ClassMisc         = 0xEF // Miscellaneous
	ClassAppSpecific  = 0xFE // Application Specific
	ClassVendor       = 0xFF // Vendor Specific
)

// IsCDCClass reports whether class is either half of a CDC function.
func IsCDCClass(class uint8) bool {
	return class == ClassCDC || class == ClassCDCData
}

// Configuration attribute bits.
const (
	ConfigAttrBusPowered   = 0x80 // Reserved, set to 1
	ConfigAttrSelfPowered  = 0x40 // Self-powered
	ConfigAttrRemoteWakeup = 0x20 // Supports remote wakeup
)

// Endpoint attribute transfer types.
const (
	EndpointTypeControl     = 0x00
	EndpointTypeIsochronous = 0x01
	EndpointTypeBulk        = 0x02
	EndpointTypeInterrupt   = 0x03
	EndpointTypeMask        = 0x03
)

// EndpointDirectionIn marks an IN endpoint in bEndpointAddress.
const EndpointDirectionIn = 0x80
