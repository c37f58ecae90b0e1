// Package metadata models SAML entity metadata and resolves entity
// descriptors and encryption credentials from it.
package metadata

import (
	"encoding/xml"
	"time"
)

// EntitiesDescriptor is a collection of entity descriptors, typically the
// root of a federation aggregate.
type EntitiesDescriptor struct {
	XMLName          xml.Name `xml:"urn:oasis:names:tc:SAML:2.0:metadata EntitiesDescriptor"`
	Name             string   `xml:"Name,attr,omitempty"`
	EntityDescriptor []*EntityDescriptor
}

// EntityDescriptor is the metadata for a single SAML entity.
type EntityDescriptor struct {
	XMLName          xml.Name          `xml:"urn:oasis:names:tc:SAML:2.0:metadata EntityDescriptor"`
	ValidUntil       time.Time         `xml:"validUntil,attr,omitempty"`
	CacheDuration    time.Duration     `xml:"cacheDuration,attr,omitempty"`
	EntityID         string            `xml:"entityID,attr"`
	SPSSODescriptor  *SPSSODescriptor  `xml:"SPSSODescriptor"`
	IDPSSODescriptor *IDPSSODescriptor `xml:"IDPSSODescriptor"`
}

// KeyDescriptor advertises a key an entity uses, for what purpose, and
// which encryption algorithms the entity supports with it.
type KeyDescriptor struct {
	Use               string             `xml:"use,attr,omitempty"`
	KeyInfo           KeyInfo            `xml:"http://www.w3.org/2000/09/xmldsig# KeyInfo"`
	EncryptionMethods []EncryptionMethod `xml:"EncryptionMethod"`
}

// EncryptionMethod advertises one algorithm the entity supports for this
// key. KeySize and OAEPparams are optional child elements; a KeySize of
// zero means the algorithm's default.
type EncryptionMethod struct {
	Algorithm    string        `xml:"Algorithm,attr"`
	KeySize      int           `xml:"http://www.w3.org/2001/04/xmlenc# KeySize,omitempty"`
	OAEPparams   string        `xml:"http://www.w3.org/2001/04/xmlenc# OAEPparams,omitempty"`
	DigestMethod *DigestMethod `xml:"http://www.w3.org/2000/09/xmldsig# DigestMethod"`
}

// DigestMethod is the digest algorithm associated with an RSA-OAEP
// encryption method.
type DigestMethod struct {
	Algorithm string `xml:"Algorithm,attr"`
}

// KeyInfo carries the key material, normally a base64 X.509 certificate.
type KeyInfo struct {
	XMLName     xml.Name `xml:"http://www.w3.org/2000/09/xmldsig# KeyInfo"`
	KeyName     string   `xml:"KeyName,omitempty"`
	Certificate string   `xml:"X509Data>X509Certificate"`
}

// Endpoint is a protocol endpoint address.
type Endpoint struct {
	Binding          string `xml:"Binding,attr"`
	Location         string `xml:"Location,attr"`
	ResponseLocation string `xml:"ResponseLocation,attr,omitempty"`
}

// IndexedEndpoint is an endpoint with a selection index.
type IndexedEndpoint struct {
	Binding  string `xml:"Binding,attr"`
	Location string `xml:"Location,attr"`
	Index    int    `xml:"index,attr"`
}

// SPSSODescriptor describes a service provider role.
type SPSSODescriptor struct {
	XMLName                    xml.Name          `xml:"urn:oasis:names:tc:SAML:2.0:metadata SPSSODescriptor"`
	AuthnRequestsSigned        bool              `xml:",attr"`
	WantAssertionsSigned       bool              `xml:",attr"`
	ProtocolSupportEnumeration string            `xml:"protocolSupportEnumeration,attr"`
	KeyDescriptor              []KeyDescriptor   `xml:"KeyDescriptor"`
	SingleLogoutService        []Endpoint        `xml:"SingleLogoutService"`
	NameIDFormat               []string          `xml:"NameIDFormat"`
	AssertionConsumerService   []IndexedEndpoint `xml:"AssertionConsumerService"`
}

// IDPSSODescriptor describes an identity provider role.
type IDPSSODescriptor struct {
	XMLName                    xml.Name        `xml:"urn:oasis:names:tc:SAML:2.0:metadata IDPSSODescriptor"`
	ProtocolSupportEnumeration string          `xml:"protocolSupportEnumeration,attr"`
	KeyDescriptor              []KeyDescriptor `xml:"KeyDescriptor"`
	NameIDFormat               []string        `xml:"NameIDFormat"`
	SingleSignOnService        []Endpoint      `xml:"SingleSignOnService"`
}
