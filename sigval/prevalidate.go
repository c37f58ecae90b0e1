package sigval

import (
	"fmt"

	"github.com/beevik/etree"

	xmlsec "github.com/liudonghua123/java-opensaml"
)

// Prevalidator checks structural or policy preconditions on a signature's
// DOM before full cryptographic verification is attempted.
type Prevalidator interface {
	Validate(sig *etree.Element) error
}

// ChainingPrevalidator runs an ordered list of independent prevalidators
// over a signature, stopping at the first failure. It carries no validation
// logic of its own.
type ChainingPrevalidator struct {
	validators []Prevalidator
}

// NewChainingPrevalidator builds a chain from the given list. The list may
// be empty, in which case validation trivially succeeds, but it must not be
// nil: a nil list indicates mis-wiring.
func NewChainingPrevalidator(validators []Prevalidator) (*ChainingPrevalidator, error) {
	if validators == nil {
		return nil, &xmlsec.ConfigurationError{Reason: "prevalidator list must not be nil"}
	}
	rv := &ChainingPrevalidator{validators: make([]Prevalidator, len(validators))}
	copy(rv.validators, validators)
	return rv, nil
}

// Validate invokes each prevalidator in list order and propagates the first
// failure.
func (c *ChainingPrevalidator) Validate(sig *etree.Element) error {
	for _, v := range c.validators {
		if err := v.Validate(sig); err != nil {
			return err
		}
	}
	return nil
}

// ReferenceLimitPrevalidator rejects signatures whose SignedInfo carries
// more than Max Reference elements. Oversized reference lists are a
// processing amplification vector.
type ReferenceLimitPrevalidator struct {
	Max int
}

// Validate implements Prevalidator.
func (p *ReferenceLimitPrevalidator) Validate(sig *etree.Element) error {
	if sig == nil {
		return xmlsec.ErrMissingStructure
	}
	signedInfo := firstChild(sig, "SignedInfo")
	if signedInfo == nil {
		return &xmlsec.MalformedSignatureError{Reason: "no SignedInfo element"}
	}
	if n := len(childElements(signedInfo, "Reference")); n > p.Max {
		return &xmlsec.MalformedSignatureError{
			Reason: fmt.Sprintf("%d References exceed the configured limit of %d", n, p.Max),
		}
	}
	return nil
}
