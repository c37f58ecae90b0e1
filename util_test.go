package xmlsec

import (
	"bytes"
	"testing"

	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

func TestRandomBytes(t *testing.T) {
	oldRandReader := RandReader
	defer func() { RandReader = oldRandReader }()
	RandReader = bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})

	assert.Check(t, is.DeepEqual([]byte{0x01, 0x02, 0x03, 0x04}, RandomBytes(4)))
	assert.Check(t, is.DeepEqual([]byte{0x05, 0x06, 0x07, 0x08}, RandomBytes(4)))
}

func TestRandomBytesPanicsWhenExhausted(t *testing.T) {
	oldRandReader := RandReader
	defer func() { RandReader = oldRandReader }()
	RandReader = bytes.NewReader(nil)

	defer func() {
		assert.Check(t, recover() != nil)
	}()
	RandomBytes(4)
}
