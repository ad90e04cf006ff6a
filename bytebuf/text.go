package bytebuf

import "errors"

// ErrLengthOutOfRange is returned when a declared text length does not fit
// the backing bytes.
var ErrLengthOutOfRange = errors.New("bytebuf: declared length out of range")

// AppendText appends the raw UTF-8 bytes of s to dst and returns the
// extended slice. No terminator or length prefix is written; the declared
// length travels out of band.
func AppendText(dst []byte, s string) []byte {
	return append(dst, s...)
}

// DecodeText interprets the first n bytes of b as UTF-8 text. A zero n
// yields the empty string, not absence. n must satisfy 0 <= n <= len(b);
// anything else is an over-read and returns ErrLengthOutOfRange. Bytes
// past n are never touched, and embedded zero bytes are preserved.
func DecodeText(b []byte, n int32) (string, error) {
	if n < 0 || int(n) > len(b) {
		return "", ErrLengthOutOfRange
	}
	return string(b[:n]), nil
}
