package agreement

import (
	xmlsec "github.com/liudonghua123/java-opensaml"
	"github.com/liudonghua123/java-opensaml/logger"
	"github.com/liudonghua123/java-opensaml/xmlenc"
)

// ParametersParser turns an AgreementMethod structure into a Parameters
// collection using a fixed registration list of per-kind parsers.
//
// The parser is immutable after construction and safe for concurrent use.
type ParametersParser struct {
	// Parsers is the explicit registration list. Nil means DefaultParsers;
	// an explicitly empty list accepts only an AgreementMethod without
	// parameter children.
	Parsers []ParameterParser

	Logger logger.Interface
}

// Parse processes every parameter child of the agreement method. Each
// candidate child is offered to the registered parsers in registration
// order and the first parser that handles it wins. A child no parser
// handles fails the parse.
//
// The returned collection has been cross-validated via InitializeAll and
// is ready to hand to the key derivation step.
func (pp *ParametersParser) Parse(am *xmlenc.AgreementMethod) (*Parameters, error) {
	if am == nil {
		return nil, xmlsec.ErrMissingStructure
	}
	parsers := pp.Parsers
	if parsers == nil {
		parsers = DefaultParsers()
	}

	params := &Parameters{}

	candidates := am.ExtensionChildren()
	// KA-Nonce is the only parameter with a dedicated slot on
	// AgreementMethod, so it is not discoverable through the extension
	// children and must be appended explicitly.
	if nonce := am.KANonce(); nonce != nil {
		candidates = append(candidates, nonce)
	}

	for _, child := range candidates {
		handled := false
		for _, parser := range parsers {
			if !parser.Handles(child) {
				continue
			}
			if pp.Logger != nil {
				pp.Logger.Printf("AgreementMethod child %s handled by %T",
					xmlenc.QualifiedName(child), parser)
			}
			param, err := parser.Parse(child)
			if err != nil {
				return nil, err
			}
			params.Add(param)
			handled = true
			break
		}
		if !handled {
			return nil, &xmlsec.UnsupportedParameterError{Element: xmlenc.QualifiedName(child)}
		}
	}

	// The enclosing EncryptionMethod's explicit key size is an implicit
	// parameter of the agreement operation.
	if bits, ok := am.ExplicitKeySize(); ok {
		params.Add(&KeySize{Bits: bits})
	}

	if err := params.InitializeAll(); err != nil {
		return nil, err
	}
	return params, nil
}
