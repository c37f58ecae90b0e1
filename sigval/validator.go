// Package sigval validates the structure and algorithm choices of XML
// signatures before any cryptographic verification is attempted.
package sigval

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	xmlsec "github.com/liudonghua123/java-opensaml"
)

// SignatureAlgorithmValidator validates a signature's SignatureMethod and
// Reference DigestMethod algorithm URIs against an algorithm
// include/exclude policy.
//
// The evaluation is based on the signature's realized DOM: Validate must be
// handed the ds:Signature element of a parsed document. On success every
// algorithm URI appearing in the signature is policy-permitted.
type SignatureAlgorithmValidator struct {
	Policy xmlsec.Policy
}

// Validate checks all algorithm URIs present in sig. It fails fast on the
// first offending URI, in document order, with the signature method checked
// before any reference digest.
func (v *SignatureAlgorithmValidator) Validate(sig *etree.Element) error {
	if sig == nil {
		return xmlsec.ErrMissingStructure
	}

	signedInfo := firstChild(sig, "SignedInfo")
	if signedInfo == nil {
		return &xmlsec.MalformedSignatureError{Reason: "no SignedInfo element"}
	}

	sigAlg := algorithmOf(firstChild(signedInfo, "SignatureMethod"))
	if sigAlg == "" {
		return &xmlsec.MalformedSignatureError{Reason: "SignatureMethod Algorithm was absent or blank"}
	}
	if !v.Policy.Permitted(sigAlg) {
		return &xmlsec.PolicyViolationError{Algorithm: sigAlg}
	}

	for _, ref := range childElements(signedInfo, "Reference") {
		digestAlg := algorithmOf(firstChild(ref, "DigestMethod"))
		if digestAlg == "" {
			return &xmlsec.MalformedSignatureError{
				Reason: fmt.Sprintf("Reference %q has an absent or blank DigestMethod Algorithm",
					ref.SelectAttrValue("URI", "")),
			}
		}
		if !v.Policy.Permitted(digestAlg) {
			return &xmlsec.PolicyViolationError{Algorithm: digestAlg}
		}
	}

	return nil
}

// algorithmOf returns the trimmed Algorithm attribute of el, or "" when el
// is nil or the attribute is missing.
func algorithmOf(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.SelectAttrValue("Algorithm", ""))
}

// firstChild returns the first child element of el with the given local
// name, ignoring namespace prefixes.
func firstChild(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// childElements returns all child elements of el with the given local name,
// in document order.
func childElements(el *etree.Element, tag string) []*etree.Element {
	var rv []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			rv = append(rv, child)
		}
	}
	return rv
}
