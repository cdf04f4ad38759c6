// Package usb defines the protocol vocabulary shared by every decoder stage:
// bus speeds and bit timing, the SETUP packet layout, standard request and
// descriptor codes, and the HID and CDC class constants the descriptor
// parser dispatches on.
//
// Only the low-speed (1.5 Mbps) and full-speed (12 Mbps) signaling rates
// are represented; high-speed chirp and packet formats are not decoded.
//
// # Setup Packets
//
// A SETUP stage carries an 8-byte request:
//
//	var req usb.SetupPacket
//	if err := usb.ParseSetupPacket(payload, &req); err != nil {
//	    return err
//	}
//	if req.IsDeviceToHost() && req.Request == usb.RequestGetDescriptor {
//	    // device will answer with req.Length bytes
//	}
package usb
