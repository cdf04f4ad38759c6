package usb

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// Descriptor sizes in bytes.
const (
	DeviceDescriptorSize        = 18
	ConfigurationDescriptorSize = 9
	InterfaceDescriptorSize     = 9
	EndpointDescriptorSize      = 7
	HIDDescriptorSize           = 9
)

// DeviceDescriptor is the standard device descriptor.
type DeviceDescriptor struct {
	USBVersion        uint16 // BCD
	DeviceClass       uint8
	DeviceSubClass    uint8
	DeviceProtocol    uint8
	MaxPacketSize0    uint8
	VendorID          uint16
	ProductID         uint16
	DeviceVersion     uint16 // BCD
	ManufacturerIndex uint8
	ProductIndex      uint8
	SerialNumberIndex uint8
	NumConfigurations uint8
}

// Append appends the wire form of d to b.
func (d *DeviceDescriptor) Append(b []byte) []byte {
	b = append(b, DeviceDescriptorSize, DescriptorTypeDevice)
	b = binary.LittleEndian.AppendUint16(b, d.USBVersion)
	b = append(b, d.DeviceClass, d.DeviceSubClass, d.DeviceProtocol, d.MaxPacketSize0)
	b = binary.LittleEndian.AppendUint16(b, d.VendorID)
	b = binary.LittleEndian.AppendUint16(b, d.ProductID)
	b = binary.LittleEndian.AppendUint16(b, d.DeviceVersion)
	return append(b, d.ManufacturerIndex, d.ProductIndex, d.SerialNumberIndex, d.NumConfigurations)
}

// ConfigurationDescriptor is the header of a configuration. TotalLength is
// filled in by Configuration.
type ConfigurationDescriptor struct {
	TotalLength        uint16
	NumInterfaces      uint8
	ConfigurationValue uint8
	ConfigurationIndex uint8
	Attributes         uint8
	MaxPower           uint8 // 2 mA units
}

// Append appends the wire form of c to b.
func (c *ConfigurationDescriptor) Append(b []byte) []byte {
	b = append(b, ConfigurationDescriptorSize, DescriptorTypeConfiguration)
	b = binary.LittleEndian.AppendUint16(b, c.TotalLength)
	return append(b, c.NumInterfaces, c.ConfigurationValue, c.ConfigurationIndex, c.Attributes, c.MaxPower)
}

// InterfaceDescriptor is the standard interface descriptor.
type InterfaceDescriptor struct {
	InterfaceNumber   uint8
	AlternateSetting  uint8
	NumEndpoints      uint8
	InterfaceClass    uint8
	InterfaceSubClass uint8
	InterfaceProtocol uint8
	InterfaceIndex    uint8
}

// Append appends the wire form of i to b.
func (i *InterfaceDescriptor) Append(b []byte) []byte {
	return append(b, InterfaceDescriptorSize, DescriptorTypeInterface,
		i.InterfaceNumber, i.AlternateSetting, i.NumEndpoints,
		i.InterfaceClass, i.InterfaceSubClass, i.InterfaceProtocol, i.InterfaceIndex)
}

// EndpointDescriptor is the standard endpoint descriptor.
type EndpointDescriptor struct {
	EndpointAddress uint8
	Attributes      uint8
	MaxPacketSize   uint16
	Interval        uint8
}

// Append appends the wire form of e to b.
func (e *EndpointDescriptor) Append(b []byte) []byte {
	b = append(b, EndpointDescriptorSize, DescriptorTypeEndpoint, e.EndpointAddress, e.Attributes)
	b = binary.LittleEndian.AppendUint16(b, e.MaxPacketSize)
	return append(b, e.Interval)
}

// HIDDescriptor is the HID class descriptor with a single report
// descriptor entry.
type HIDDescriptor struct {
	HIDVersion   uint16 // BCD
	CountryCode  uint8
	ReportLength uint16
}

// Append appends the wire form of h to b.
func (h *HIDDescriptor) Append(b []byte) []byte {
	b = append(b, HIDDescriptorSize, DescriptorTypeHID)
	b = binary.LittleEndian.AppendUint16(b, h.HIDVersion)
	b = append(b, h.CountryCode, 1, DescriptorTypeHIDReport)
	return binary.LittleEndian.AppendUint16(b, h.ReportLength)
}

// Appender is a descriptor that can append its wire form.
type Appender interface {
	Append(b []byte) []byte
}

// Configuration returns the full configuration descriptor set: c followed
// by parts, with c.TotalLength set to the combined length.
func Configuration(c ConfigurationDescriptor, parts ...Appender) []byte {
	var body []byte
	for _, p := range parts {
		body = p.Append(body)
	}
	c.TotalLength = uint16(ConfigurationDescriptorSize + len(body))
	return append(c.Append(nil), body...)
}

// utf16le encodes string descriptor text.
var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// StringDescriptor returns the string descriptor for s in UTF-16LE,
// truncated to the 255 byte descriptor limit. Invalid UTF-8 is replaced.
func StringDescriptor(s string) []byte {
	text, _ := utf16le.NewEncoder().Bytes([]byte(s))
	if limit := 254 - 2; len(text) > limit {
		text = text[:limit]
	}
	b := make([]byte, 0, 2+len(text))
	b = append(b, byte(2+len(text)), DescriptorTypeString)
	return append(b, text...)
}

// LanguageDescriptor returns string descriptor zero listing langIDs.
func LanguageDescriptor(langIDs ...uint16) []byte {
	b := []byte{byte(2 + 2*len(langIDs)), DescriptorTypeString}
	for _, id := range langIDs {
		b = binary.LittleEndian.AppendUint16(b, id)
	}
	return b
}

// LangIDUSEnglish is the language ID for US English.
const LangIDUSEnglish = 0x0409
