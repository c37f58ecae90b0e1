package xmlsec

import (
	"testing"

	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

func TestEmptyPolicyPermitsEverything(t *testing.T) {
	p := Policy{}
	assert.Check(t, p.Permitted(RSAOAEP))
	assert.Check(t, p.Permitted(SHA256))
	assert.Check(t, p.Permitted("urn:example:not-a-real-algorithm"))
}

func TestEmptyURINeverPermitted(t *testing.T) {
	assert.Check(t, is.Equal(false, Policy{}.Permitted("")))
	assert.Check(t, is.Equal(false, Policy{Included: []string{""}}.Permitted("")))
}

func TestExclusionWinsOverInclusion(t *testing.T) {
	p := Policy{
		Included: []string{SHA1},
		Excluded: []string{SHA1},
	}
	assert.Check(t, is.Equal(false, p.Permitted(SHA1)))
}

func TestIncludeListConstrains(t *testing.T) {
	p := Policy{Included: []string{SHA256, SHA512}}
	assert.Check(t, p.Permitted(SHA256))
	assert.Check(t, p.Permitted(SHA512))
	assert.Check(t, is.Equal(false, p.Permitted(SHA1)))
}

func TestExcludeListAlone(t *testing.T) {
	p := Policy{Excluded: []string{SHA1, RSAv15}}
	assert.Check(t, is.Equal(false, p.Permitted(SHA1)))
	assert.Check(t, is.Equal(false, p.Permitted(RSAv15)))
	assert.Check(t, p.Permitted(SHA256))
	assert.Check(t, p.Permitted(RSAOAEP))
}

func TestMatchingIsExactIdentity(t *testing.T) {
	p := Policy{Excluded: []string{SHA1}}
	// No prefix, suffix or case-insensitive matching.
	assert.Check(t, p.Permitted(SHA1+"x"))
	assert.Check(t, p.Permitted("HTTP://WWW.W3.ORG/2000/09/XMLDSIG#SHA1"))
}

func TestPermittedAlgorithmNilLists(t *testing.T) {
	assert.Check(t, PermittedAlgorithm(SHA256, nil, nil))
	assert.Check(t, is.Equal(false, PermittedAlgorithm("", nil, nil)))
}
