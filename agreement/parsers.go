package agreement

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	xmlsec "github.com/liudonghua123/java-opensaml"
)

// ParameterParser parses one kind of AgreementMethod child element into a
// typed parameter. Implementations declare which elements they handle via
// Handles; dispatch is first-match-wins in registration order.
type ParameterParser interface {
	Handles(el *etree.Element) bool
	Parse(el *etree.Element) (Parameter, error)
}

// DefaultParsers returns the standard parser registration list. The order
// is part of the contract: it is the dispatch order of the parameters
// parser.
func DefaultParsers() []ParameterParser {
	return []ParameterParser{
		KANonceParser{},
		KeyDerivationMethodParser{},
		DigestMethodParser{},
		UserKeyingMaterialParser{},
	}
}

// KANonceParser parses the KA-Nonce element.
type KANonceParser struct{}

// Handles implements ParameterParser.
func (KANonceParser) Handles(el *etree.Element) bool { return el.Tag == "KA-Nonce" }

// Parse implements ParameterParser.
func (KANonceParser) Parse(el *etree.Element) (Parameter, error) {
	value, err := base64.StdEncoding.DecodeString(strings.TrimSpace(el.Text()))
	if err != nil {
		return nil, fmt.Errorf("agreement: cannot decode KA-Nonce value: %w", err)
	}
	return &KANonce{Value: value}, nil
}

// DigestMethodParser parses a DigestMethod element into the digest hint
// parameter.
type DigestMethodParser struct{}

// Handles implements ParameterParser.
func (DigestMethodParser) Handles(el *etree.Element) bool { return el.Tag == "DigestMethod" }

// Parse implements ParameterParser.
func (DigestMethodParser) Parse(el *etree.Element) (Parameter, error) {
	alg := strings.TrimSpace(el.SelectAttrValue("Algorithm", ""))
	if alg == "" {
		return nil, fmt.Errorf("agreement: DigestMethod has no Algorithm")
	}
	return &DigestMethod{Algorithm: alg}, nil
}

// UserKeyingMaterialParser parses a UserKeyingMaterial element.
type UserKeyingMaterialParser struct{}

// Handles implements ParameterParser.
func (UserKeyingMaterialParser) Handles(el *etree.Element) bool {
	return el.Tag == "UserKeyingMaterial"
}

// Parse implements ParameterParser.
func (UserKeyingMaterialParser) Parse(el *etree.Element) (Parameter, error) {
	value, err := base64.StdEncoding.DecodeString(strings.TrimSpace(el.Text()))
	if err != nil {
		return nil, fmt.Errorf("agreement: cannot decode UserKeyingMaterial value: %w", err)
	}
	return &UserKeyingMaterial{Value: value}, nil
}

// KeyDerivationMethodParser parses a xenc11:KeyDerivationMethod element
// into the matching KeyDerivation parameter.
type KeyDerivationMethodParser struct{}

// Handles implements ParameterParser.
func (KeyDerivationMethodParser) Handles(el *etree.Element) bool {
	return el.Tag == "KeyDerivationMethod"
}

// Parse implements ParameterParser.
func (KeyDerivationMethodParser) Parse(el *etree.Element) (Parameter, error) {
	switch alg := el.SelectAttrValue("Algorithm", ""); alg {
	case xmlsec.ConcatKDF:
		return parseConcatKDF(el)
	case xmlsec.HKDF:
		return parseHKDF(el)
	case xmlsec.PBKDF2:
		return parsePBKDF2(el)
	default:
		return nil, fmt.Errorf("agreement: unsupported key derivation algorithm %q", alg)
	}
}

func parseConcatKDF(el *etree.Element) (Parameter, error) {
	kdf := &ConcatKDF{}
	params := firstChild(el, "ConcatKDFParams")
	if params == nil {
		return kdf, nil
	}
	for _, attr := range []struct {
		name string
		dst  *[]byte
	}{
		{"AlgorithmID", &kdf.AlgorithmID},
		{"PartyUInfo", &kdf.PartyUInfo},
		{"PartyVInfo", &kdf.PartyVInfo},
		{"SuppPubInfo", &kdf.SuppPubInfo},
		{"SuppPrivInfo", &kdf.SuppPrivInfo},
	} {
		raw := strings.TrimSpace(params.SelectAttrValue(attr.name, ""))
		if raw == "" {
			continue
		}
		value, err := decodePaddedBitstring(raw)
		if err != nil {
			return nil, fmt.Errorf("agreement: cannot decode ConcatKDFParams %s: %w", attr.name, err)
		}
		*attr.dst = value
	}
	if dm := firstChild(params, "DigestMethod"); dm != nil {
		kdf.Digest = strings.TrimSpace(dm.SelectAttrValue("Algorithm", ""))
	}
	return kdf, nil
}

// decodePaddedBitstring decodes a ConcatKDFParams attribute: hex whose
// first octet is the count of padding bits. Only whole-octet values are
// supported, so a nonzero pad count is rejected; the pad octet itself is
// stripped before the value enters the OtherInfo concatenation.
func decodePaddedBitstring(raw string) ([]byte, error) {
	value, err := hex.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, fmt.Errorf("missing padding octet")
	}
	if value[0] != 0 {
		return nil, fmt.Errorf("unsupported padding bit count %d", value[0])
	}
	return value[1:], nil
}

func parseHKDF(el *etree.Element) (Parameter, error) {
	kdf := &HKDF{}
	params := firstChild(el, "HKDFParams")
	if params == nil {
		return kdf, nil
	}
	if prf := firstChild(params, "PRF"); prf != nil {
		kdf.PRF = strings.TrimSpace(prf.SelectAttrValue("Algorithm", ""))
	}
	if salt := firstChild(params, "Salt"); salt != nil {
		if specified := firstChild(salt, "Specified"); specified != nil {
			value, err := base64.StdEncoding.DecodeString(strings.TrimSpace(specified.Text()))
			if err != nil {
				return nil, fmt.Errorf("agreement: cannot decode HKDF salt: %w", err)
			}
			kdf.Salt = value
		}
	}
	if info := firstChild(params, "Info"); info != nil {
		value, err := base64.StdEncoding.DecodeString(strings.TrimSpace(info.Text()))
		if err != nil {
			return nil, fmt.Errorf("agreement: cannot decode HKDF info: %w", err)
		}
		kdf.Info = value
	}
	if kl := firstChild(params, "KeyLength"); kl != nil {
		bits, err := strconv.Atoi(strings.TrimSpace(kl.Text()))
		if err != nil {
			return nil, fmt.Errorf("agreement: cannot parse HKDF key length: %w", err)
		}
		kdf.KeyLength = bits
	}
	return kdf, nil
}

func parsePBKDF2(el *etree.Element) (Parameter, error) {
	kdf := &PBKDF2{}
	params := firstChild(el, "PBKDF2-params")
	if params == nil {
		return kdf, nil
	}
	if salt := firstChild(params, "Salt"); salt != nil {
		if specified := firstChild(salt, "Specified"); specified != nil {
			value, err := base64.StdEncoding.DecodeString(strings.TrimSpace(specified.Text()))
			if err != nil {
				return nil, fmt.Errorf("agreement: cannot decode PBKDF2 salt: %w", err)
			}
			kdf.Salt = value
		}
	}
	if ic := firstChild(params, "IterationCount"); ic != nil {
		count, err := strconv.Atoi(strings.TrimSpace(ic.Text()))
		if err != nil {
			return nil, fmt.Errorf("agreement: cannot parse PBKDF2 iteration count: %w", err)
		}
		kdf.IterationCount = count
	}
	// The schema's KeyLength is in octets; the parameter carries bits.
	if kl := firstChild(params, "KeyLength"); kl != nil {
		octets, err := strconv.Atoi(strings.TrimSpace(kl.Text()))
		if err != nil {
			return nil, fmt.Errorf("agreement: cannot parse PBKDF2 key length: %w", err)
		}
		kdf.KeyLength = 8 * octets
	}
	if prf := firstChild(params, "PRF"); prf != nil {
		kdf.PRF = strings.TrimSpace(prf.SelectAttrValue("Algorithm", ""))
	}
	return kdf, nil
}

func firstChild(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}
