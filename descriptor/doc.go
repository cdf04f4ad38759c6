// Package descriptor decodes the data stage of control transfers into
// fields.
//
// A [Parser] belongs to one device pipe. It is fed the data packets of each
// transfer in order and emits one [event.Field] per descriptor field, one
// [event.HIDItem] per report item, or raw "byte" fields when the request is
// not understood. Fields that straddle a packet boundary are emitted as
// incomplete in the first packet and complete, with the combined value, in
// the packet that finishes them.
//
// Interface classes learned from interface descriptors persist across
// transfers so later class requests and class-specific descriptors decode
// with the right schema. String descriptors are collected in a
// [StringTable] shared by all pipes.
package descriptor
