package gatt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadBlob(t *testing.T) {
	value := []byte{1, 2, 3}

	cases := []struct {
		name   string
		offset int
		cap    int
		want   []byte
	}{
		{"full", 0, 8, []byte{1, 2, 3}},
		{"mid offset", 1, 8, []byte{2, 3}},
		{"last byte", 2, 8, []byte{3}},
		{"offset at end", 3, 8, nil},
		{"offset beyond end", 4, 8, nil},
		{"negative offset", -1, 8, nil},
		{"clamped to out capacity", 0, 2, []byte{1, 2}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			out := make([]byte, tt.cap)
			n := ReadBlob(value, tt.offset, out)
			assert.Equal(t, len(tt.want), n)
			assert.Equal(t, tt.want, append([]byte(nil), out[:n]...))
		})
	}
}

func TestEncodeUint16(t *testing.T) {
	assert.Equal(t, []byte{0x34, 0x12}, EncodeUint16(0x1234))
	assert.Equal(t, []byte{0xaa, 0x34, 0x12}, AppendUint16([]byte{0xaa}, 0x1234))
}
