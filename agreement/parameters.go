// Package agreement parses XML AgreementMethod structures into typed key
// agreement parameter sets and derives key encryption keys from the shared
// secrets produced by a key agreement.
package agreement

import (
	"fmt"

	xmlsec "github.com/liudonghua123/java-opensaml"
)

// Parameter is a single typed key agreement parameter. Parameters are
// created during parsing, owned exclusively by the Parameters collection,
// and consumed by the key derivation step.
type Parameter interface {
	// kind names the parameter slot. At most one parameter of each kind
	// may appear in a collection.
	kind() string
}

// initializable is implemented by parameters whose final state depends on
// other parameters in the collection.
type initializable interface {
	initialize(set *Parameters) error
}

// Parameters is the collection of parameters governing one key agreement
// operation.
type Parameters struct {
	items []Parameter
}

// Add appends a parameter to the collection.
func (p *Parameters) Add(param Parameter) {
	p.items = append(p.items, param)
}

// Len returns the number of parameters in the collection.
func (p *Parameters) Len() int {
	return len(p.items)
}

// Items returns the parameters in insertion order.
func (p *Parameters) Items() []Parameter {
	return p.items
}

// InitializeAll validates per-kind uniqueness and then runs the linking
// pass that lets parameters resolve dependencies on one another, e.g. a
// derivation output length taken from the KeySize parameter.
func (p *Parameters) InitializeAll() error {
	kinds := map[string]bool{}
	for _, param := range p.items {
		if kinds[param.kind()] {
			return &xmlsec.InconsistentParametersError{
				Reason: fmt.Sprintf("duplicate %s parameter", param.kind()),
			}
		}
		kinds[param.kind()] = true
	}
	for _, param := range p.items {
		if init, ok := param.(initializable); ok {
			if err := init.initialize(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// Get returns the parameter of type T, if present.
func Get[T Parameter](p *Parameters) (T, bool) {
	for _, param := range p.items {
		if t, ok := param.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// KANonce is the key agreement nonce from the AgreementMethod's dedicated
// KA-Nonce slot.
type KANonce struct {
	Value []byte
}

func (*KANonce) kind() string { return "KA-Nonce" }

// NewKANonce generates a fresh random nonce of the given byte length.
func NewKANonce(n int) *KANonce {
	return &KANonce{Value: xmlsec.RandomBytes(n)}
}

// KeySize is the key size, in bits, the agreement operation must produce a
// key for. It is usually synthesized from the enclosing EncryptionMethod's
// explicit key size rather than parsed from the AgreementMethod itself.
type KeySize struct {
	Bits int
}

func (*KeySize) kind() string { return "KeySize" }

// UserKeyingMaterial is opaque keying material contributed by the user to
// the derivation step.
type UserKeyingMaterial struct {
	Value []byte
}

func (*UserKeyingMaterial) kind() string { return "UserKeyingMaterial" }

// DigestMethod names the digest algorithm a derivation function should use
// when its own parameters do not specify one.
type DigestMethod struct {
	Algorithm string
}

func (*DigestMethod) kind() string { return "DigestMethod" }
