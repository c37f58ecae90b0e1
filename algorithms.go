// Package xmlsec implements the algorithm policy, credential and criteria
// primitives shared by the signature validation, key agreement and
// encryption parameter resolution packages in this repository.
package xmlsec

import (
	dsig "github.com/russellhaering/goxmldsig"
)

// Namespace URIs used throughout XML Signature and XML Encryption documents.
const (
	XMLEncNamespace      = "http://www.w3.org/2001/04/xmlenc#"
	XMLEnc11Namespace    = "http://www.w3.org/2009/xmlenc11#"
	XMLDSigNamespace     = "http://www.w3.org/2000/09/xmldsig#"
	XMLDSig11Namespace   = "http://www.w3.org/2009/xmldsig11#"
	XMLDSigMoreNamespace = "http://www.w3.org/2001/04/xmldsig-more#"
)

// Block encryption algorithms.
const (
	AES128CBC = "http://www.w3.org/2001/04/xmlenc#aes128-cbc"
	AES192CBC = "http://www.w3.org/2001/04/xmlenc#aes192-cbc"
	AES256CBC = "http://www.w3.org/2001/04/xmlenc#aes256-cbc"
	AES128GCM = "http://www.w3.org/2009/xmlenc11#aes128-gcm"
	AES192GCM = "http://www.w3.org/2009/xmlenc11#aes192-gcm"
	AES256GCM = "http://www.w3.org/2009/xmlenc11#aes256-gcm"
	TripleDES = "http://www.w3.org/2001/04/xmlenc#tripledes-cbc"
)

// Key transport algorithms.
const (
	RSAv15    = "http://www.w3.org/2001/04/xmlenc#rsa-1_5"
	RSAOAEP   = "http://www.w3.org/2001/04/xmlenc#rsa-oaep-mgf1p"
	RSAOAEP11 = "http://www.w3.org/2009/xmlenc11#rsa-oaep"
)

// Symmetric key wrap algorithms.
const (
	AES128KW    = "http://www.w3.org/2001/04/xmlenc#kw-aes128"
	AES192KW    = "http://www.w3.org/2001/04/xmlenc#kw-aes192"
	AES256KW    = "http://www.w3.org/2001/04/xmlenc#kw-aes256"
	TripleDESKW = "http://www.w3.org/2001/04/xmlenc#kw-tripledes"
)

// ECDSA signature algorithms, which goxmldsig does not name.
const (
	ECDSASHA256 = "http://www.w3.org/2001/04/xmldsig-more#ecdsa-sha256"
	ECDSASHA512 = "http://www.w3.org/2001/04/xmldsig-more#ecdsa-sha512"
)

// Key agreement algorithms.
const (
	DiffieHellman = "http://www.w3.org/2001/04/xmlenc#dh"
	DHES          = "http://www.w3.org/2009/xmlenc11#dh-es"
	ECDHES        = "http://www.w3.org/2009/xmlenc11#ECDH-ES"
)

// Key derivation algorithms.
const (
	ConcatKDF = "http://www.w3.org/2009/xmlenc11#ConcatKDF"
	PBKDF2    = "http://www.w3.org/2009/xmlenc11#pbkdf2"
	HKDF      = "http://www.w3.org/2021/04/xmldsig-more#hkdf"
)

// Digest algorithms.
const (
	SHA1   = "http://www.w3.org/2000/09/xmldsig#sha1"
	SHA256 = "http://www.w3.org/2001/04/xmlenc#sha256"
	SHA384 = "http://www.w3.org/2001/04/xmldsig-more#sha384"
	SHA512 = "http://www.w3.org/2001/04/xmlenc#sha512"
)

// AlgorithmType classifies an algorithm URI by the role it plays in a
// signing or encryption operation.
type AlgorithmType int

const (
	AlgorithmUnknown AlgorithmType = iota
	AlgorithmSignature
	AlgorithmDigest
	AlgorithmBlockEncryption
	AlgorithmKeyTransport
	AlgorithmSymmetricKeyWrap
	AlgorithmKeyAgreement
	AlgorithmKeyDerivation
)

// algorithmTypes maps each known algorithm URI to its classification.
// Signature method URIs come from goxmldsig so that callers composing
// signing contexts and this registry agree on spelling.
var algorithmTypes = map[string]AlgorithmType{
	dsig.RSASHA1SignatureMethod:   AlgorithmSignature,
	dsig.RSASHA256SignatureMethod: AlgorithmSignature,
	dsig.RSASHA512SignatureMethod: AlgorithmSignature,
	ECDSASHA256:                   AlgorithmSignature,
	ECDSASHA512:                   AlgorithmSignature,

	SHA1:   AlgorithmDigest,
	SHA256: AlgorithmDigest,
	SHA384: AlgorithmDigest,
	SHA512: AlgorithmDigest,

	AES128CBC: AlgorithmBlockEncryption,
	AES192CBC: AlgorithmBlockEncryption,
	AES256CBC: AlgorithmBlockEncryption,
	AES128GCM: AlgorithmBlockEncryption,
	AES192GCM: AlgorithmBlockEncryption,
	AES256GCM: AlgorithmBlockEncryption,
	TripleDES: AlgorithmBlockEncryption,

	RSAv15:    AlgorithmKeyTransport,
	RSAOAEP:   AlgorithmKeyTransport,
	RSAOAEP11: AlgorithmKeyTransport,

	AES128KW:    AlgorithmSymmetricKeyWrap,
	AES192KW:    AlgorithmSymmetricKeyWrap,
	AES256KW:    AlgorithmSymmetricKeyWrap,
	TripleDESKW: AlgorithmSymmetricKeyWrap,

	DiffieHellman: AlgorithmKeyAgreement,
	DHES:          AlgorithmKeyAgreement,
	ECDHES:        AlgorithmKeyAgreement,

	ConcatKDF: AlgorithmKeyDerivation,
	PBKDF2:    AlgorithmKeyDerivation,
	HKDF:      AlgorithmKeyDerivation,
}

// ClassifyAlgorithm returns the classification of the given algorithm URI,
// or AlgorithmUnknown if the URI is not registered.
func ClassifyAlgorithm(uri string) AlgorithmType {
	return algorithmTypes[uri]
}

// IsKeyTransportAlgorithm reports whether uri names an algorithm usable to
// encrypt a content encryption key for a recipient. Symmetric key wrap
// counts: a symmetric credential resolved from metadata is used for key
// wrap, not for direct data encryption.
func IsKeyTransportAlgorithm(uri string) bool {
	t := algorithmTypes[uri]
	return t == AlgorithmKeyTransport || t == AlgorithmSymmetricKeyWrap
}

// IsDataEncryptionAlgorithm reports whether uri names a block encryption
// algorithm usable to encrypt payload data.
func IsDataEncryptionAlgorithm(uri string) bool {
	return algorithmTypes[uri] == AlgorithmBlockEncryption
}

// KeyLengthBits returns the key length in bits implied by the given block
// encryption or key wrap algorithm URI. The second return is false for
// algorithms with no fixed key length.
func KeyLengthBits(uri string) (int, bool) {
	switch uri {
	case AES128CBC, AES128GCM, AES128KW:
		return 128, true
	case AES192CBC, AES192GCM, AES192KW:
		return 192, true
	case AES256CBC, AES256GCM, AES256KW:
		return 256, true
	case TripleDES, TripleDESKW:
		return 192, true
	}
	return 0, false
}
