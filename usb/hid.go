package usb

// HID subclass codes.
const (
	HIDSubclassNone = 0x00 // No subclass
	HIDSubclassBoot = 0x01 // Boot Interface Subclass
)

// HID boot protocol codes.
const (
	HIDProtocolNone     = 0x00 // No protocol
	HIDProtocolKeyboard = 0x01 // Keyboard boot protocol
	HIDProtocolMouse    = 0x02 // Mouse boot protocol
)

// HID class request codes.
const (
	HIDRequestGetReport   = 0x01
	HIDRequestGetIdle     = 0x02
	HIDRequestGetProtocol = 0x03
	HIDRequestSetReport   = 0x09
	HIDRequestSetIdle     = 0x0A
	HIDRequestSetProtocol = 0x0B
)

// HID report descriptor item prefixes with the size bits cleared
// (HID 1.11 section 6.2.2).
const (
	HIDItemUsagePage     = 0x04 // Global
	HIDItemPush          = 0xA4 // Global
	HIDItemPop           = 0xB4 // Global
	HIDItemUsage         = 0x08 // Local
	HIDItemUsageMinimum  = 0x18 // Local
	HIDItemUsageMaximum  = 0x28 // Local
	HIDItemCollection    = 0xA0 // Main
	HIDItemEndCollection = 0xC0 // Main
)

// HIDItemPrefixMask clears the bSize bits of an item prefix.
const HIDItemPrefixMask = 0xFC

// HIDItemDataSize returns the number of data bytes that follow a short
// item prefix: 0, 1, 2 or 4.
func HIDItemDataSize(prefix uint8) int {
	if n := int(prefix & 0x03); n != 3 {
		return n
	}
	return 4
}

// IsHIDUsageItem reports whether prefix introduces a Usage, Usage Minimum
// or Usage Maximum local item, the items that may carry an extended
// 32-bit usage.
func IsHIDUsageItem(prefix uint8) bool {
	switch prefix & HIDItemPrefixMask {
	case HIDItemUsage, HIDItemUsageMinimum, HIDItemUsageMaximum:
		return true
	}
	return false
}
