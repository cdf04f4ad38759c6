package control

import "fmt"

// Stage is the last control transfer step seen on a pipe.
type Stage uint8

// Control transfer stages. StatusEnd is both the idle and the final stage.
const (
	StatusEnd Stage = iota
	SetupToken
	SetupData
	SetupAck
	DataInToken
	DataInData
	DataOutToken
	DataOutData
	DataEnd
	StatusInToken
	StatusInDataEmpty
	StatusInNAKed
	StatusOutToken
	StatusOutDataEmpty
	StatusOutDataNAKed
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StatusEnd:
		return "StatusEnd"
	case SetupToken:
		return "SetupToken"
	case SetupData:
		return "SetupData"
	case SetupAck:
		return "SetupAck"
	case DataInToken:
		return "DataInToken"
	case DataInData:
		return "DataInData"
	case DataOutToken:
		return "DataOutToken"
	case DataOutData:
		return "DataOutData"
	case DataEnd:
		return "DataEnd"
	case StatusInToken:
		return "StatusInToken"
	case StatusInDataEmpty:
		return "StatusInDataEmpty"
	case StatusInNAKed:
		return "StatusInNAKed"
	case StatusOutToken:
		return "StatusOutToken"
	case StatusOutDataEmpty:
		return "StatusOutDataEmpty"
	case StatusOutDataNAKed:
		return "StatusOutDataNAKed"
	default:
		return fmt.Sprintf("Unknown Stage (%d)", s)
	}
}

// IsIdle reports whether no transfer is in progress.
func (s Stage) IsIdle() bool {
	return s == StatusEnd
}
