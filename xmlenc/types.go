// Package xmlenc provides read-only views over the XML Encryption elements
// consumed by the key agreement and encryption parameter resolution
// packages, together with the symmetric key wrap primitive and the
// encrypted key resolvers.
package xmlenc

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	xrv "github.com/mattermost/xml-roundtrip-validator"
)

// Type URIs from XML Encryption.
const (
	TypeEncryptedKey = "http://www.w3.org/2001/04/xmlenc#EncryptedKey"
	TypeElement      = "http://www.w3.org/2001/04/xmlenc#Element"
	TypeContent      = "http://www.w3.org/2001/04/xmlenc#Content"
)

// Parse reads an XML document from untrusted bytes. The document is
// round-trip validated before parsing to reject markup that Go XML
// tokenizers and re-serializers disagree about.
func Parse(data []byte) (*etree.Document, error) {
	if err := xrv.Validate(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("xmlenc: document failed round-trip validation: %w", err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	return doc, nil
}

// EncryptedData is a view over an xenc:EncryptedData element.
type EncryptedData struct {
	el *etree.Element
}

// NewEncryptedData wraps el, which must be an EncryptedData element.
func NewEncryptedData(el *etree.Element) (*EncryptedData, error) {
	if el == nil || el.Tag != "EncryptedData" {
		return nil, fmt.Errorf("xmlenc: element is not an EncryptedData")
	}
	return &EncryptedData{el: el}, nil
}

// Element returns the underlying DOM element.
func (ed *EncryptedData) Element() *etree.Element { return ed.el }

// KeyInfo returns the ds:KeyInfo child, or nil.
func (ed *EncryptedData) KeyInfo() *etree.Element { return firstChild(ed.el, "KeyInfo") }

// EncryptionMethod returns the EncryptionMethod child view, or nil.
func (ed *EncryptedData) EncryptionMethod() *EncryptionMethod {
	if el := firstChild(ed.el, "EncryptionMethod"); el != nil {
		return &EncryptionMethod{el: el}
	}
	return nil
}

// EncryptedKey is a view over an xenc:EncryptedKey element.
type EncryptedKey struct {
	el *etree.Element
}

// NewEncryptedKey wraps el, which must be an EncryptedKey element.
func NewEncryptedKey(el *etree.Element) (*EncryptedKey, error) {
	if el == nil || el.Tag != "EncryptedKey" {
		return nil, fmt.Errorf("xmlenc: element is not an EncryptedKey")
	}
	return &EncryptedKey{el: el}, nil
}

// Element returns the underlying DOM element.
func (ek *EncryptedKey) Element() *etree.Element { return ek.el }

// ID returns the Id attribute, or "".
func (ek *EncryptedKey) ID() string {
	if id := ek.el.SelectAttrValue("Id", ""); id != "" {
		return id
	}
	return ek.el.SelectAttrValue("ID", "")
}

// Recipient returns the Recipient attribute hint, or "".
func (ek *EncryptedKey) Recipient() string {
	return ek.el.SelectAttrValue("Recipient", "")
}

// EncryptionMethod returns the EncryptionMethod child view, or nil.
func (ek *EncryptedKey) EncryptionMethod() *EncryptionMethod {
	if el := firstChild(ek.el, "EncryptionMethod"); el != nil {
		return &EncryptionMethod{el: el}
	}
	return nil
}

// EncryptionMethod is a view over an xenc:EncryptionMethod element.
type EncryptionMethod struct {
	el *etree.Element
}

// Algorithm returns the Algorithm attribute.
func (em *EncryptionMethod) Algorithm() string {
	return em.el.SelectAttrValue("Algorithm", "")
}

// KeySize returns the value of the KeySize child element, if present.
func (em *EncryptionMethod) KeySize() (int, bool) {
	ks := firstChild(em.el, "KeySize")
	if ks == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(ks.Text()))
	if err != nil {
		return 0, false
	}
	return n, true
}

// AgreementMethod is a view over an xenc:AgreementMethod element. Its
// children other than the named KA-Nonce, OriginatorKeyInfo and
// RecipientKeyInfo slots are exposed as extension children for the key
// agreement parameter parsers.
type AgreementMethod struct {
	el *etree.Element
}

// NewAgreementMethod wraps el, which must be an AgreementMethod element.
func NewAgreementMethod(el *etree.Element) (*AgreementMethod, error) {
	if el == nil || el.Tag != "AgreementMethod" {
		return nil, fmt.Errorf("xmlenc: element is not an AgreementMethod")
	}
	return &AgreementMethod{el: el}, nil
}

// Element returns the underlying DOM element.
func (am *AgreementMethod) Element() *etree.Element { return am.el }

// Algorithm returns the key agreement algorithm URI.
func (am *AgreementMethod) Algorithm() string {
	return am.el.SelectAttrValue("Algorithm", "")
}

// KANonce returns the KA-Nonce child element, or nil. The nonce has a
// dedicated slot in the schema and is deliberately not part of
// ExtensionChildren.
func (am *AgreementMethod) KANonce() *etree.Element {
	return firstChild(am.el, "KA-Nonce")
}

// OriginatorKeyInfo returns the OriginatorKeyInfo child element, or nil.
func (am *AgreementMethod) OriginatorKeyInfo() *etree.Element {
	return firstChild(am.el, "OriginatorKeyInfo")
}

// RecipientKeyInfo returns the RecipientKeyInfo child element, or nil.
func (am *AgreementMethod) RecipientKeyInfo() *etree.Element {
	return firstChild(am.el, "RecipientKeyInfo")
}

// ExtensionChildren returns, in document order, the child elements that do
// not occupy one of the schema's named slots.
func (am *AgreementMethod) ExtensionChildren() []*etree.Element {
	var rv []*etree.Element
	for _, child := range am.el.ChildElements() {
		switch child.Tag {
		case "KA-Nonce", "OriginatorKeyInfo", "RecipientKeyInfo":
		default:
			rv = append(rv, child)
		}
	}
	return rv
}

// ExplicitKeySize returns the key size declared by the EncryptionMethod of
// the enclosing EncryptedKey or EncryptedData, if any. The grandparent's
// declared size implicitly constrains the agreement operation.
func (am *AgreementMethod) ExplicitKeySize() (int, bool) {
	keyInfo := am.el.Parent()
	if keyInfo == nil {
		return 0, false
	}
	encrypted := keyInfo.Parent()
	if encrypted == nil {
		return 0, false
	}
	method := firstChild(encrypted, "EncryptionMethod")
	if method == nil {
		return 0, false
	}
	return (&EncryptionMethod{el: method}).KeySize()
}

// QualifiedName renders el's name with its namespace prefix for use in
// diagnostics.
func QualifiedName(el *etree.Element) string {
	if el.Space == "" {
		return el.Tag
	}
	return el.Space + ":" + el.Tag
}

func firstChild(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}
