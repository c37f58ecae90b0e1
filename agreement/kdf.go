package agreement

import (
	"crypto/sha1" // #nosec G505
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"

	xmlsec "github.com/liudonghua123/java-opensaml"
)

// KeyDerivation is the parameter that turns the agreed shared secret into
// the final key encryption key. Exactly one derivation parameter may be
// present in a parameter collection; its output length is fixed during
// InitializeAll.
type KeyDerivation interface {
	Parameter
	// Algorithm returns the key derivation algorithm URI.
	Algorithm() string
	// Derive produces the key encryption key from the shared secret.
	Derive(secret []byte) ([]byte, error)
}

// DeriveKey runs the collection's derivation parameter over the shared
// secret. The collection must have been initialized.
func DeriveKey(params *Parameters, secret []byte) ([]byte, error) {
	kdf, ok := Get[KeyDerivation](params)
	if !ok {
		return nil, &xmlsec.InconsistentParametersError{Reason: "no key derivation parameter"}
	}
	return kdf.Derive(secret)
}

func hashForDigest(uri string) (func() hash.Hash, error) {
	switch uri {
	case xmlsec.SHA1:
		return sha1.New, nil
	case "", xmlsec.SHA256:
		return sha256.New, nil
	case xmlsec.SHA384:
		return sha512.New384, nil
	case xmlsec.SHA512:
		return sha512.New, nil
	}
	return nil, fmt.Errorf("agreement: unsupported digest algorithm %q", uri)
}

// ConcatKDF is the NIST SP 800-56A single-step concatenation key derivation
// function, the default for ECDH-ES under XML Encryption 1.1. The OtherInfo
// fields hold unpadded octets; the wire form's padding octet is handled
// during parsing.
type ConcatKDF struct {
	Digest       string // digest algorithm URI, SHA-256 when empty
	AlgorithmID  []byte
	PartyUInfo   []byte
	PartyVInfo   []byte
	SuppPubInfo  []byte
	SuppPrivInfo []byte
	// KeyLength is the output length in bits. Zero means the length is
	// linked from the collection's KeySize parameter during InitializeAll.
	KeyLength int
}

func (*ConcatKDF) kind() string { return "KeyDerivationMethod" }

// Algorithm implements KeyDerivation.
func (c *ConcatKDF) Algorithm() string { return xmlsec.ConcatKDF }

func (c *ConcatKDF) initialize(set *Parameters) error {
	if c.Digest == "" {
		if dm, ok := Get[*DigestMethod](set); ok {
			c.Digest = dm.Algorithm
		}
	}
	if c.KeyLength == 0 {
		ks, ok := Get[*KeySize](set)
		if !ok {
			return &xmlsec.InconsistentParametersError{
				Reason: "ConcatKDF has no key length and no KeySize parameter is present",
			}
		}
		c.KeyLength = ks.Bits
	}
	return nil
}

// Derive implements KeyDerivation.
func (c *ConcatKDF) Derive(secret []byte) ([]byte, error) {
	if c.KeyLength <= 0 {
		return nil, &xmlsec.InconsistentParametersError{Reason: "ConcatKDF key length is unset"}
	}
	newHash, err := hashForDigest(c.Digest)
	if err != nil {
		return nil, err
	}

	h := newHash()
	hashLen := h.Size()
	outLen := (c.KeyLength + 7) / 8
	reps := (outLen + hashLen - 1) / hashLen

	var out []byte
	var counter [4]byte
	for i := 1; i <= reps; i++ {
		h.Reset()
		binary.BigEndian.PutUint32(counter[:], uint32(i))
		h.Write(counter[:])
		h.Write(secret)
		h.Write(c.AlgorithmID)
		h.Write(c.PartyUInfo)
		h.Write(c.PartyVInfo)
		h.Write(c.SuppPubInfo)
		h.Write(c.SuppPrivInfo)
		out = h.Sum(out)
	}
	return out[:outLen], nil
}

// HKDF is the RFC 5869 extract-and-expand key derivation function.
type HKDF struct {
	PRF  string // digest algorithm URI of the underlying HMAC, SHA-256 when empty
	Salt []byte
	Info []byte
	// KeyLength is the output length in bits; linked from KeySize when zero.
	KeyLength int
}

func (*HKDF) kind() string { return "KeyDerivationMethod" }

// Algorithm implements KeyDerivation.
func (h *HKDF) Algorithm() string { return xmlsec.HKDF }

func (h *HKDF) initialize(set *Parameters) error {
	if h.KeyLength == 0 {
		ks, ok := Get[*KeySize](set)
		if !ok {
			return &xmlsec.InconsistentParametersError{
				Reason: "HKDF has no key length and no KeySize parameter is present",
			}
		}
		h.KeyLength = ks.Bits
	}
	return nil
}

// Derive implements KeyDerivation.
func (h *HKDF) Derive(secret []byte) ([]byte, error) {
	if h.KeyLength <= 0 {
		return nil, &xmlsec.InconsistentParametersError{Reason: "HKDF key length is unset"}
	}
	newHash, err := hashForDigest(h.PRF)
	if err != nil {
		return nil, err
	}
	r := hkdf.New(newHash, secret, h.Salt, h.Info)
	key := make([]byte, (h.KeyLength+7)/8)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("agreement: HKDF expand failed: %w", err)
	}
	return key, nil
}

// PBKDF2 is the RFC 8018 password-based key derivation function. It
// appears in derivation chains where the "secret" is a shared password
// rather than an agreed point.
type PBKDF2 struct {
	PRF            string // digest algorithm URI, SHA-256 when empty
	Salt           []byte
	IterationCount int
	// KeyLength is the output length in bits; linked from KeySize when zero.
	KeyLength int
}

func (*PBKDF2) kind() string { return "KeyDerivationMethod" }

// Algorithm implements KeyDerivation.
func (p *PBKDF2) Algorithm() string { return xmlsec.PBKDF2 }

func (p *PBKDF2) initialize(set *Parameters) error {
	if p.IterationCount <= 0 {
		return &xmlsec.InconsistentParametersError{Reason: "PBKDF2 iteration count is unset"}
	}
	if p.KeyLength == 0 {
		ks, ok := Get[*KeySize](set)
		if !ok {
			return &xmlsec.InconsistentParametersError{
				Reason: "PBKDF2 has no key length and no KeySize parameter is present",
			}
		}
		p.KeyLength = ks.Bits
	}
	return nil
}

// Derive implements KeyDerivation.
func (p *PBKDF2) Derive(secret []byte) ([]byte, error) {
	if p.KeyLength <= 0 {
		return nil, &xmlsec.InconsistentParametersError{Reason: "PBKDF2 key length is unset"}
	}
	newHash, err := hashForDigest(p.PRF)
	if err != nil {
		return nil, err
	}
	return pbkdf2.Key(secret, p.Salt, p.IterationCount, (p.KeyLength+7)/8, newHash), nil
}
