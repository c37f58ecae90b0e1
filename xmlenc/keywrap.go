package xmlenc

import (
	"crypto/aes"
	"crypto/subtle"
	"encoding/binary"
	"errors"
)

// AES Key Wrap, RFC 3394. Used to wrap a content encryption key under a
// key encryption key derived by key agreement.

var (
	// ErrWrapKeySize is returned when the KEK is not a valid AES key size.
	ErrWrapKeySize = errors.New("xmlenc: key wrap KEK must be 16, 24 or 32 bytes")
	// ErrWrapDataSize is returned when the key data is too short or not
	// 8-byte aligned.
	ErrWrapDataSize = errors.New("xmlenc: key wrap data must be at least 16 bytes and a multiple of 8")
	// ErrUnwrapIntegrity is returned when the integrity register does not
	// verify during unwrap.
	ErrUnwrapIntegrity = errors.New("xmlenc: key unwrap integrity check failed")
)

// The initial value from RFC 3394 section 2.2.3.1.
var keyWrapIV = [8]byte{0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6}

// KeyWrap wraps cek under kek. The output is eight bytes longer than cek.
func KeyWrap(kek, cek []byte) ([]byte, error) {
	block, err := newWrapCipher(kek)
	if err != nil {
		return nil, err
	}
	if len(cek) < 16 || len(cek)%8 != 0 {
		return nil, ErrWrapDataSize
	}

	n := len(cek) / 8
	a := keyWrapIV
	r := make([]byte, len(cek))
	copy(r, cek)

	var b [16]byte
	for j := 0; j <= 5; j++ {
		for i := 1; i <= n; i++ {
			copy(b[:8], a[:])
			copy(b[8:], r[(i-1)*8:i*8])
			block.Encrypt(b[:], b[:])
			t := uint64(n*j + i)
			binary.BigEndian.PutUint64(a[:], binary.BigEndian.Uint64(b[:8])^t)
			copy(r[(i-1)*8:i*8], b[8:])
		}
	}

	out := make([]byte, 8+len(cek))
	copy(out[:8], a[:])
	copy(out[8:], r)
	return out, nil
}

// KeyUnwrap unwraps wrapped under kek and verifies the integrity register.
func KeyUnwrap(kek, wrapped []byte) ([]byte, error) {
	block, err := newWrapCipher(kek)
	if err != nil {
		return nil, err
	}
	if len(wrapped) < 24 || len(wrapped)%8 != 0 {
		return nil, ErrWrapDataSize
	}

	n := len(wrapped)/8 - 1
	var a [8]byte
	copy(a[:], wrapped[:8])
	r := make([]byte, len(wrapped)-8)
	copy(r, wrapped[8:])

	var b [16]byte
	for j := 5; j >= 0; j-- {
		for i := n; i >= 1; i-- {
			t := uint64(n*j + i)
			binary.BigEndian.PutUint64(b[:8], binary.BigEndian.Uint64(a[:])^t)
			copy(b[8:], r[(i-1)*8:i*8])
			block.Decrypt(b[:], b[:])
			copy(a[:], b[:8])
			copy(r[(i-1)*8:i*8], b[8:])
		}
	}

	if subtle.ConstantTimeCompare(a[:], keyWrapIV[:]) != 1 {
		return nil, ErrUnwrapIntegrity
	}
	return r, nil
}

func newWrapCipher(kek []byte) (interface {
	Encrypt(dst, src []byte)
	Decrypt(dst, src []byte)
}, error) {
	switch len(kek) {
	case 16, 24, 32:
	default:
		return nil, ErrWrapKeySize
	}
	return aes.NewCipher(kek)
}
