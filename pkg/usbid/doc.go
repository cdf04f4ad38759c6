// Package usbid looks up vendor, product and class names in the usb.ids
// database distributed with usbutils.
//
// The decoder itself reports only numeric IDs. Tools that present decoded
// descriptors can annotate them:
//
//	db := usbid.New()
//	if _, err := db.LoadDefault(); err != nil {
//	    // names are optional
//	}
//	name, ok := db.Vendor(0x046D)
//
// Only the vendor/product section and the top level of the device class
// section are read. Interface, subclass and protocol lines are skipped.
//
// All methods are safe for concurrent use.
package usbid
