package xmlsec

import (
	"errors"
	"fmt"
)

// ErrMissingStructure is returned when an operation requires a realized DOM
// structure that is absent. It signals a caller error, not a policy
// violation: the structure must be parsed or marshalled before validation.
var ErrMissingStructure = errors.New("xmlsec: structure has no realized DOM")

// MalformedSignatureError is returned when a signature lacks an algorithm
// URI in a position where one is mandatory.
type MalformedSignatureError struct {
	Reason string
}

func (e *MalformedSignatureError) Error() string {
	return fmt.Sprintf("xmlsec: malformed signature: %s", e.Reason)
}

// PolicyViolationError is returned when an algorithm URI present in a
// processed structure is not permitted by the algorithm policy.
type PolicyViolationError struct {
	Algorithm string
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("xmlsec: algorithm failed include/exclude validation: %s", e.Algorithm)
}

// UnsupportedParameterError is returned when an AgreementMethod child
// element matches no registered parameter parser.
type UnsupportedParameterError struct {
	Element string
}

func (e *UnsupportedParameterError) Error() string {
	return fmt.Sprintf("xmlsec: unsupported key agreement parameter type: %s", e.Element)
}

// InconsistentParametersError is returned when cross-validation of a parsed
// key agreement parameter set fails.
type InconsistentParametersError struct {
	Reason string
}

func (e *InconsistentParametersError) Error() string {
	return fmt.Sprintf("xmlsec: inconsistent key agreement parameters: %s", e.Reason)
}

// ResolverError is the typed failure channel of metadata and credential
// collaborators. Callers on the encryption resolution path catch it, log
// the cause and fall back to local configuration rather than propagating.
type ResolverError struct {
	Op  string
	Err error
}

func (e *ResolverError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("xmlsec: %s failed", e.Op)
	}
	return fmt.Sprintf("xmlsec: %s failed: %v", e.Op, e.Err)
}

func (e *ResolverError) Unwrap() error {
	return e.Err
}

// ConfigurationError indicates mis-wiring detected at construction or first
// use, e.g. an empty resolver chain in a resolve-all aggregation. It must
// never be treated as an ordinary "no results" outcome.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("xmlsec: configuration error: %s", e.Reason)
}
