package gatt

import "encoding/binary"

// ReadBlob serves a read of value at the requested offset, copying as many
// bytes as fit into out and returning the count. Every read case, fixed
// blob or live serialization, goes through here so partial (offset) reads
// behave uniformly.
func ReadBlob(value []byte, offset int, out []byte) int {
	if offset < 0 || offset >= len(value) {
		return 0
	}
	return copy(out, value[offset:])
}

// AppendUint16 appends the 2-byte little-endian encoding of v to b.
func AppendUint16(b []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(b, v)
}

// EncodeUint16 returns the 2-byte little-endian encoding of v.
func EncodeUint16(v uint16) []byte {
	return AppendUint16(nil, v)
}
