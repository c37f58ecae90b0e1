package encryption

import (
	"github.com/kr/pretty"

	xmlsec "github.com/liudonghua123/java-opensaml"
	"github.com/liudonghua123/java-opensaml/logger"
	"github.com/liudonghua123/java-opensaml/metadata"
)

// MetadataResolver resolves encryption parameters from the peer entity's
// published metadata, preferring the algorithms the peer advertises over
// the locally configured preference lists. The locally configured Local
// resolver is the fallback at every level: per algorithm slot when the
// peer's metadata is silent, and wholesale when metadata resolution fails
// or yields nothing usable.
type MetadataResolver struct {
	// Credentials resolves the peer's encryption credentials and their
	// advertised encryption methods from metadata.
	Credentials *metadata.CredentialResolver
	// Local supplies algorithm preference lists and the local fallback
	// behavior.
	Local *BasicResolver

	Logger logger.Interface
}

// Resolve implements Resolver. Metadata credentials are consulted in
// document order and the first credential that yields a key transport
// algorithm wins; later credentials are never considered once one
// succeeds.
func (r *MetadataResolver) Resolve(criteria xmlsec.CriteriaSet) (*Parameters, error) {
	if r.Credentials == nil || r.Local == nil {
		return nil, &xmlsec.ConfigurationError{
			Reason: "metadata encryption resolver requires both a credential resolver and a local resolver",
		}
	}
	policy := xmlsec.PolicyFrom(criteria)

	credentials, advertised, err := r.Credentials.Resolve(criteria)
	if err != nil {
		r.logf("metadata credential resolution failed, falling back to local configuration: %v", err)
		return r.Local.Resolve(criteria)
	}

	for _, cred := range credentials {
		alg := r.keyTransportAlgorithm(cred, advertised[cred], policy)
		if alg == "" {
			continue
		}

		dataAlgorithm := r.dataEncryptionAlgorithm(advertised[cred], policy)
		if dataAlgorithm == "" {
			dataAlgorithm = r.Local.dataEncryptionAlgorithm(policy)
		}
		if dataAlgorithm == "" {
			r.logf("credential %q admits key transport %s but no data encryption algorithm is permitted", cred.KeyName, alg)
			continue
		}

		params := &Parameters{
			KeyTransportCredential:  cred,
			KeyTransportAlgorithm:   alg,
			DataEncryptionAlgorithm: dataAlgorithm,
		}
		if r.Local.AutoGenerateDataCredential {
			params.DataEncryptionCredential = GenerateDataCredential(dataAlgorithm)
		}
		r.logf("resolved encryption parameters from metadata: %s", pretty.Sprint(params))
		return params, nil
	}

	r.logf("no metadata credential yielded encryption parameters, falling back to local configuration")
	return r.Local.Resolve(criteria)
}

// keyTransportAlgorithm selects the key transport algorithm for one
// credential: the peer's advertised methods are scanned first, in document
// order, and only when the peer advertises none does the local preference
// list apply.
func (r *MetadataResolver) keyTransportAlgorithm(cred *xmlsec.Credential, methods []metadata.EncryptionMethod, policy xmlsec.Policy) string {
	for _, method := range methods {
		if !xmlsec.IsKeyTransportAlgorithm(method.Algorithm) {
			continue
		}
		if !policy.Permitted(method.Algorithm) {
			continue
		}
		if !r.credentialSupportsMethod(cred, method) {
			continue
		}
		return method.Algorithm
	}
	if len(methods) > 0 {
		// The peer stated its supported algorithms and none were usable;
		// overriding that with local preferences would produce messages
		// the peer cannot decrypt.
		return ""
	}
	return r.Local.keyTransportAlgorithmForCredential(cred, policy)
}

// dataEncryptionAlgorithm returns the first advertised block encryption
// algorithm the policy permits, or "".
func (r *MetadataResolver) dataEncryptionAlgorithm(methods []metadata.EncryptionMethod, policy xmlsec.Policy) string {
	for _, method := range methods {
		if !xmlsec.IsDataEncryptionAlgorithm(method.Algorithm) {
			continue
		}
		if policy.Permitted(method.Algorithm) {
			return method.Algorithm
		}
	}
	return ""
}

// credentialSupportsMethod checks key type compatibility plus any key size
// the advertised method declares. A declared key size the credential's key
// length cannot be determined against counts as incompatible.
func (r *MetadataResolver) credentialSupportsMethod(cred *xmlsec.Credential, method metadata.EncryptionMethod) bool {
	if !credentialSupportsAlgorithm(cred, method.Algorithm) {
		return false
	}
	if method.KeySize == 0 {
		return true
	}
	bits, ok := cred.KeyLengthBits()
	if !ok {
		r.logf("cannot determine key length of credential %q, treating advertised key size %d as incompatible", cred.KeyName, method.KeySize)
		return false
	}
	return bits == method.KeySize
}

func (r *MetadataResolver) logf(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
		return
	}
	logger.DefaultLogger.Printf(format, args...)
}
