package encryption

import (
	"crypto/rsa"

	"github.com/dchest/uniuri"

	xmlsec "github.com/liudonghua123/java-opensaml"
	"github.com/liudonghua123/java-opensaml/logger"
)

// DefaultKeyTransportAlgorithms is the preference-ordered key transport
// list used when a resolver is configured without one.
var DefaultKeyTransportAlgorithms = []string{
	xmlsec.RSAOAEP11,
	xmlsec.RSAOAEP,
	xmlsec.AES256KW,
	xmlsec.AES128KW,
}

// DefaultDataEncryptionAlgorithms is the preference-ordered block
// encryption list used when a resolver is configured without one.
var DefaultDataEncryptionAlgorithms = []string{
	xmlsec.AES256GCM,
	xmlsec.AES128GCM,
	xmlsec.AES256CBC,
	xmlsec.AES128CBC,
}

// BasicResolver resolves encryption parameters from locally configured
// credentials and algorithm preference lists. Credentials are tried in
// configuration order and the first credential for which a permitted,
// compatible key transport algorithm exists wins.
type BasicResolver struct {
	// Credentials are the candidate peer credentials, most preferred first.
	Credentials []*xmlsec.Credential
	// KeyTransportAlgorithms is the ranked key transport preference list.
	// Nil means DefaultKeyTransportAlgorithms.
	KeyTransportAlgorithms []string
	// DataEncryptionAlgorithms is the ranked block encryption preference
	// list. Nil means DefaultDataEncryptionAlgorithms.
	DataEncryptionAlgorithms []string
	// AutoGenerateDataCredential makes Resolve generate a fresh random
	// content encryption key sized for the resolved data algorithm.
	AutoGenerateDataCredential bool

	Logger logger.Interface
}

// Resolve implements Resolver. It returns (nil, nil) when no credential
// admits a permitted key transport algorithm or no permitted data
// encryption algorithm exists.
func (r *BasicResolver) Resolve(criteria xmlsec.CriteriaSet) (*Parameters, error) {
	policy := xmlsec.PolicyFrom(criteria)

	usage := xmlsec.UsageEncryption
	if c, ok := xmlsec.Find[xmlsec.UsageCriterion](criteria); ok {
		usage = c.Usage
	}

	dataAlgorithm := r.dataEncryptionAlgorithm(policy)
	if dataAlgorithm == "" {
		r.logf("no data encryption algorithm satisfies the policy")
		return nil, nil
	}

	for _, cred := range r.Credentials {
		if !cred.MatchesUsage(usage) {
			continue
		}
		alg := r.keyTransportAlgorithmForCredential(cred, policy)
		if alg == "" {
			continue
		}
		params := &Parameters{
			KeyTransportCredential:  cred,
			KeyTransportAlgorithm:   alg,
			DataEncryptionAlgorithm: dataAlgorithm,
		}
		if r.AutoGenerateDataCredential {
			params.DataEncryptionCredential = GenerateDataCredential(dataAlgorithm)
		}
		return params, nil
	}
	return nil, nil
}

// keyTransportAlgorithmForCredential returns the highest ranked permitted
// algorithm the credential's key type supports, or "".
func (r *BasicResolver) keyTransportAlgorithmForCredential(cred *xmlsec.Credential, policy xmlsec.Policy) string {
	algorithms := r.KeyTransportAlgorithms
	if algorithms == nil {
		algorithms = DefaultKeyTransportAlgorithms
	}
	for _, alg := range algorithms {
		if !policy.Permitted(alg) {
			continue
		}
		if credentialSupportsAlgorithm(cred, alg) {
			return alg
		}
	}
	return ""
}

// dataEncryptionAlgorithm returns the highest ranked permitted block
// encryption algorithm, or "".
func (r *BasicResolver) dataEncryptionAlgorithm(policy xmlsec.Policy) string {
	algorithms := r.DataEncryptionAlgorithms
	if algorithms == nil {
		algorithms = DefaultDataEncryptionAlgorithms
	}
	for _, alg := range algorithms {
		if !xmlsec.IsDataEncryptionAlgorithm(alg) {
			continue
		}
		if policy.Permitted(alg) {
			return alg
		}
	}
	return ""
}

// credentialSupportsAlgorithm reports whether the credential's key type
// can perform the given key transport or key wrap algorithm.
func credentialSupportsAlgorithm(cred *xmlsec.Credential, alg string) bool {
	switch key := cred.EncryptionKey().(type) {
	case *rsa.PublicKey:
		switch alg {
		case xmlsec.RSAOAEP, xmlsec.RSAOAEP11, xmlsec.RSAv15:
			return true
		}
	case []byte:
		if bits, ok := xmlsec.KeyLengthBits(alg); ok {
			return 8*len(key) == bits
		}
	}
	return false
}

// GenerateDataCredential makes a fresh random symmetric credential sized
// for the given block encryption algorithm, or nil if the algorithm has no
// fixed key length.
func GenerateDataCredential(algorithm string) *xmlsec.Credential {
	bits, ok := xmlsec.KeyLengthBits(algorithm)
	if !ok {
		return nil
	}
	return &xmlsec.Credential{
		Usage:        xmlsec.UsageEncryption,
		KeyName:      "data-" + uniuri.New(),
		SymmetricKey: xmlsec.RandomBytes(bits / 8),
	}
}

func (r *BasicResolver) logf(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
		return
	}
	logger.DefaultLogger.Printf(format, args...)
}
