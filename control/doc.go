// Package control sequences the packets of a device's default control pipe
// into control transfers.
//
// A [Handler] tracks one pipe through the Setup, Data and Status stages:
//
//	StatusEnd → SetupToken → SetupData → SetupAck
//	         → DataInToken ⇄ DataInData → DataEnd  (device to host)
//	         → DataOutToken ⇄ DataOutData → DataEnd (host to device)
//	         → Status{In,Out}Token → … → StatusEnd
//
// Each packet is emitted with a flag describing its role in the transfer.
// SETUP data is broken into request fields and data stage payloads are
// handed to a [descriptor.Parser]. A packet that cannot occur in the
// current stage returns the pipe to StatusEnd and is flagged unexpected.
package control
