package sigval

import (
	"fmt"

	"github.com/beevik/etree"
	dsig "github.com/russellhaering/goxmldsig"

	xmlsec "github.com/liudonghua123/java-opensaml"
)

// exclusiveC14NWithComments is the with-comments variant of exclusive
// canonicalization, permitted by the SAML signature profile alongside the
// plain variant.
const exclusiveC14NWithComments = "http://www.w3.org/2001/10/xml-exc-c14n#WithComments"

// SAMLProfilePrevalidator checks that an enveloped signature conforms to
// the SAML 2.0 signature profile: exactly one Reference, referring to the
// enclosing element by its ID, with only the enveloped-signature and
// exclusive canonicalization transforms.
type SAMLProfilePrevalidator struct{}

// Validate implements Prevalidator.
func (SAMLProfilePrevalidator) Validate(sig *etree.Element) error {
	if sig == nil {
		return xmlsec.ErrMissingStructure
	}
	signedInfo := firstChild(sig, "SignedInfo")
	if signedInfo == nil {
		return &xmlsec.MalformedSignatureError{Reason: "no SignedInfo element"}
	}

	refs := childElements(signedInfo, "Reference")
	if len(refs) != 1 {
		return &xmlsec.MalformedSignatureError{
			Reason: fmt.Sprintf("signature profile requires exactly one Reference, saw %d", len(refs)),
		}
	}
	ref := refs[0]

	if uri := ref.SelectAttrValue("URI", ""); uri != "" {
		parent := sig.Parent()
		if parent == nil {
			return &xmlsec.MalformedSignatureError{Reason: "signature is not enveloped in a parent element"}
		}
		id := parent.SelectAttrValue("ID", "")
		if id == "" {
			id = parent.SelectAttrValue("Id", "")
		}
		if uri != "#"+id {
			return &xmlsec.MalformedSignatureError{
				Reason: fmt.Sprintf("Reference URI %q does not match enclosing element ID %q", uri, id),
			}
		}
	}

	transforms := firstChild(ref, "Transforms")
	if transforms == nil {
		return &xmlsec.MalformedSignatureError{Reason: "Reference has no Transforms"}
	}
	sawEnveloped := false
	for _, transform := range childElements(transforms, "Transform") {
		switch alg := transform.SelectAttrValue("Algorithm", ""); alg {
		case dsig.EnvelopedSignatureAltorithmId.String():
			sawEnveloped = true
		case dsig.CanonicalXML10ExclusiveAlgorithmId.String(), exclusiveC14NWithComments:
			// permitted
		default:
			return &xmlsec.MalformedSignatureError{
				Reason: fmt.Sprintf("transform %q is not permitted by the signature profile", alg),
			}
		}
	}
	if !sawEnveloped {
		return &xmlsec.MalformedSignatureError{Reason: "Reference lacks the enveloped-signature transform"}
	}

	return nil
}
