package gatt

import "errors"

const (
	attEcodeSuccess           = 0x00
	attEcodeInvalidHandle     = 0x01
	attEcodeReadNotPerm       = 0x02
	attEcodeWriteNotPerm      = 0x03
	attEcodeInvalidPDU        = 0x04
	attEcodeAuthentication    = 0x05
	attEcodeReqNotSupp        = 0x06
	attEcodeInvalidOffset     = 0x07
	attEcodeAuthorization     = 0x08
	attEcodePrepQueueFull     = 0x09
	attEcodeAttrNotFound      = 0x0a
	attEcodeAttrNotLong       = 0x0b
	attEcodeInsuffEncrKeySize = 0x0c
	attEcodeInvalAttrValueLen = 0x0d
	attEcodeUnlikely          = 0x0e
	attEcodeInsuffEnc         = 0x0f
	attEcodeUnsuppGrpType     = 0x10
	attEcodeInsuffResources   = 0x11
)

// Supported statuses for GATT attribute read/write operations.
const (
	StatusSuccess         = attEcodeSuccess
	StatusInvalidOffset   = attEcodeInvalidOffset
	StatusAttrNotFound    = attEcodeAttrNotFound
	StatusInvalidLength   = attEcodeInvalAttrValueLen
	StatusUnexpectedError = attEcodeUnlikely
)

// WriteStatus converts a decode error into the ATT status the remote peer
// receives. A nil error maps to StatusSuccess.
func WriteStatus(err error) byte {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrInvalidLength), errors.Is(err, ErrInsufficientData):
		return StatusInvalidLength
	default:
		return StatusUnexpectedError
	}
}
