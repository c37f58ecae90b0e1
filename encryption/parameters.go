// Package encryption resolves the parameters of an XML encryption
// operation: which credential and algorithm to use for key transport and
// which algorithm and key to use for the data itself.
package encryption

import (
	xmlsec "github.com/liudonghua123/java-opensaml"
)

// Parameters is one fully resolved set of encryption parameters. A
// resolver returns a fresh Parameters value per resolution; callers own
// the result and resolvers never mutate a returned value.
type Parameters struct {
	// KeyTransportCredential is the peer credential the content encryption
	// key will be encrypted to.
	KeyTransportCredential *xmlsec.Credential
	// KeyTransportAlgorithm is the key transport or key wrap algorithm URI.
	KeyTransportAlgorithm string
	// DataEncryptionAlgorithm is the block encryption algorithm URI.
	DataEncryptionAlgorithm string
	// DataEncryptionCredential holds the generated content encryption key,
	// when the resolver was asked to generate one.
	DataEncryptionCredential *xmlsec.Credential
}

// Resolver produces encryption parameters for a criteria set. A nil
// Parameters with a nil error means resolution completed but nothing
// satisfied the criteria.
type Resolver interface {
	Resolve(criteria xmlsec.CriteriaSet) (*Parameters, error)
}
