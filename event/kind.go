package event

import "fmt"

// Kind identifies the type of an event.
type Kind uint8

// Event kinds.
const (
	KindSignal Kind = iota
	KindSync
	KindPID
	KindFrameNum
	KindAddrEndp
	KindEOP
	KindReset
	KindCRC5
	KindCRC16
	KindKeepAlive
	KindByte
	KindError
	KindField
	KindHIDItem
)

var kindNames = [...]string{
	KindSignal:    "signal",
	KindSync:      "sync",
	KindPID:       "pid",
	KindFrameNum:  "frame",
	KindAddrEndp:  "addrendp",
	KindEOP:       "eop",
	KindReset:     "reset",
	KindCRC5:      "crc5",
	KindCRC16:     "crc16",
	KindKeepAlive: "keepalive",
	KindByte:      "byte",
	KindError:     "error",
	KindField:     "field",
	KindHIDItem:   "hiditem",
}

// String returns the short name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Flag annotates an event with its role in a control transfer. Flags are
// distinct codes, not bits.
type Flag uint8

// Event flags.
const (
	FlagNone Flag = iota
	FlagFieldIncomplete
	FlagSetupBegin
	FlagDataBegin
	FlagDataDescriptor
	FlagDataInNAKed
	FlagDataOutNAKed
	FlagDataEnd
	FlagStatusBegin
	FlagStatusOutNAKed
	FlagStatusInNAKed
	FlagStatusEnd
	FlagUnexpectedPacket
)

var flagNames = [...]string{
	FlagNone:             "",
	FlagFieldIncomplete:  "incomplete",
	FlagSetupBegin:       "setup",
	FlagDataBegin:        "data",
	FlagDataDescriptor:   "descriptor",
	FlagDataInNAKed:      "data-in-nak",
	FlagDataOutNAKed:     "data-out-nak",
	FlagDataEnd:          "data-end",
	FlagStatusBegin:      "status",
	FlagStatusOutNAKed:   "status-out-nak",
	FlagStatusInNAKed:    "status-in-nak",
	FlagStatusEnd:        "status-end",
	FlagUnexpectedPacket: "unexpected",
}

// String returns the short name of the flag, empty for FlagNone.
func (f Flag) String() string {
	if int(f) < len(flagNames) {
		return flagNames[f]
	}
	return fmt.Sprintf("Flag(%d)", f)
}
