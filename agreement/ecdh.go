package agreement

import (
	"crypto/ecdh"
	"fmt"

	xmlsec "github.com/liudonghua123/java-opensaml"
)

// ECDHES performs ephemeral-static Diffie-Hellman and derives the key
// encryption key with the collection's derivation parameter. The
// originator holds the ephemeral private key; the recipient combines its
// static private key with the originator's ephemeral public key.
type ECDHES struct {
	// PrivateKey is this party's contribution: ephemeral on the
	// originator side, static on the recipient side.
	PrivateKey *ecdh.PrivateKey
	// PeerPublicKey is the other party's public key.
	PeerPublicKey *ecdh.PublicKey
}

// Algorithm returns the ECDH-ES key agreement algorithm URI.
func (ECDHES) Algorithm() string { return xmlsec.ECDHES }

// SharedSecret computes the raw ECDH shared secret. The secret must be
// passed through a key derivation function before use as key material.
func (e ECDHES) SharedSecret() ([]byte, error) {
	if e.PrivateKey == nil || e.PeerPublicKey == nil {
		return nil, fmt.Errorf("agreement: ECDH-ES requires both a private key and a peer public key")
	}
	secret, err := e.PrivateKey.ECDH(e.PeerPublicKey)
	if err != nil {
		return nil, fmt.Errorf("agreement: ECDH failed: %w", err)
	}
	return secret, nil
}

// AgreeKey computes the shared secret and derives the final key encryption
// key governed by the parameter collection.
func (e ECDHES) AgreeKey(params *Parameters) ([]byte, error) {
	secret, err := e.SharedSecret()
	if err != nil {
		return nil, err
	}
	return DeriveKey(params, secret)
}

// GenerateEphemeralKey generates a fresh key pair on the given curve for
// the originator side of an ECDH-ES exchange.
func GenerateEphemeralKey(curve ecdh.Curve) (*ecdh.PrivateKey, error) {
	return curve.GenerateKey(xmlsec.RandReader)
}
