package toplevel

import (
	"encoding/binary"
	"fmt"
)

// wireUint32 reads the leading 32-bit word of an event body.
func wireUint32(data []byte) (uint32, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf("event body too short: %d bytes", len(data))
	}
	return binary.LittleEndian.Uint32(data[:4]), nil
}

// wireString decodes a Wayland wire string: uint32 length including the NUL
// terminator, the bytes, then padding to a 32-bit boundary.
func wireString(data []byte) (string, error) {
	n, err := wireUint32(data)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	if len(data) < 4+int(n) {
		return "", fmt.Errorf("string length %d exceeds body of %d bytes", n, len(data))
	}
	// Drop the trailing NUL.
	return string(data[4 : 4+n-1]), nil
}

// wireUint32Array decodes a wl_array of 32-bit words: uint32 byte length
// followed by the packed words.
func wireUint32Array(data []byte) ([]uint32, error) {
	n, err := wireUint32(data)
	if err != nil {
		return nil, err
	}
	if len(data) < 4+int(n) {
		return nil, fmt.Errorf("array length %d exceeds body of %d bytes", n, len(data))
	}
	words := make([]uint32, 0, n/4)
	for off := uint32(0); off+4 <= n; off += 4 {
		words = append(words, binary.LittleEndian.Uint32(data[4+off:8+off]))
	}
	return words, nil
}
