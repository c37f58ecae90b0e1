package xmlsec

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
)

// Usage is the declared purpose of a credential.
type Usage string

const (
	UsageAny        Usage = ""
	UsageSigning    Usage = "signing"
	UsageEncryption Usage = "encryption"
)

// Credential is a key plus the identity and usage information attached to
// it. Exactly one of PublicKey and SymmetricKey is normally set; a
// credential carrying neither has no extractable key material.
type Credential struct {
	EntityID     string
	Usage        Usage
	KeyName      string
	Certificate  *x509.Certificate
	PublicKey    crypto.PublicKey
	SymmetricKey []byte
}

// EncryptionKey returns the raw key material usable for key transport or
// key wrap, or nil if none can be extracted.
func (c *Credential) EncryptionKey() interface{} {
	if c == nil {
		return nil
	}
	if c.PublicKey != nil {
		return c.PublicKey
	}
	if c.Certificate != nil && c.Certificate.PublicKey != nil {
		return c.Certificate.PublicKey
	}
	if len(c.SymmetricKey) > 0 {
		return c.SymmetricKey
	}
	return nil
}

// KeyLengthBits introspects the length of the credential's key in bits.
// The second return is false if no key material is extractable or the key
// type is not understood.
func (c *Credential) KeyLengthBits() (int, bool) {
	switch key := c.EncryptionKey().(type) {
	case *rsa.PublicKey:
		return key.N.BitLen(), true
	case *ecdsa.PublicKey:
		return key.Curve.Params().BitSize, true
	case ed25519.PublicKey:
		return 8 * len(key), true
	case []byte:
		return 8 * len(key), true
	}
	return 0, false
}

// MatchesUsage reports whether the credential may serve the given usage
// hint. A credential with unspecified usage matches everything.
func (c *Credential) MatchesUsage(usage Usage) bool {
	if usage == UsageAny || c.Usage == UsageAny {
		return true
	}
	return c.Usage == usage
}
