package ledger

import (
	"encoding/binary"
	"encoding/hex"
)

// Clarity wire-format type tags for the two value kinds this service sends.
const (
	clarityTagUint        = 0x01
	clarityTagStringASCII = 0x0d
)

// ClarityUint hex-encodes a non-negative integer as a Clarity uint
// (tag byte followed by a 16-byte big-endian value). Callers only ever pass
// parsed share counts and floored price bounds, both non-negative.
func ClarityUint(v int64) string {
	buf := make([]byte, 17)
	buf[0] = clarityTagUint
	binary.BigEndian.PutUint64(buf[9:], uint64(v))
	return "0x" + hex.EncodeToString(buf)
}

// ClarityASCII hex-encodes s as a Clarity string-ascii value
// (tag byte, 4-byte big-endian length, raw bytes).
func ClarityASCII(s string) string {
	buf := make([]byte, 5+len(s))
	buf[0] = clarityTagStringASCII
	binary.BigEndian.PutUint32(buf[1:5], uint32(len(s)))
	copy(buf[5:], s)
	return "0x" + hex.EncodeToString(buf)
}
