package agreement

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"

	xmlsec "github.com/liudonghua123/java-opensaml"
)

func parseElement(t *testing.T, body string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	assert.NilError(t, doc.ReadFromString(body))
	return doc.Root()
}

func TestParseConcatKDFParams(t *testing.T) {
	el := parseElement(t, `<xenc11:KeyDerivationMethod
	    xmlns:xenc11="http://www.w3.org/2009/xmlenc11#"
	    Algorithm="http://www.w3.org/2009/xmlenc11#ConcatKDF">
	  <xenc11:ConcatKDFParams AlgorithmID="00" PartyUInfo="00a1b2" PartyVInfo="00c3d4">
	    <ds:DigestMethod xmlns:ds="http://www.w3.org/2000/09/xmldsig#"
	        Algorithm="http://www.w3.org/2001/04/xmlenc#sha256"/>
	  </xenc11:ConcatKDFParams>
	</xenc11:KeyDerivationMethod>`)

	param, err := KeyDerivationMethodParser{}.Parse(el)
	assert.NilError(t, err)

	kdf, ok := param.(*ConcatKDF)
	assert.Assert(t, ok)
	// The attributes are padded bitstrings: the leading octet carries the
	// padding bit count and is not part of the value.
	want := &ConcatKDF{
		Digest:      xmlsec.SHA256,
		AlgorithmID: []byte{},
		PartyUInfo:  []byte{0xa1, 0xb2},
		PartyVInfo:  []byte{0xc3, 0xd4},
	}
	assert.Check(t, is.Equal("", cmp.Diff(want, kdf)))
}

func TestParseConcatKDFRejectsNonzeroPadCount(t *testing.T) {
	el := parseElement(t, `<xenc11:KeyDerivationMethod
	    xmlns:xenc11="http://www.w3.org/2009/xmlenc11#"
	    Algorithm="http://www.w3.org/2009/xmlenc11#ConcatKDF">
	  <xenc11:ConcatKDFParams AlgorithmID="04a1b2"/>
	</xenc11:KeyDerivationMethod>`)

	_, err := KeyDerivationMethodParser{}.Parse(el)
	assert.ErrorContains(t, err, "padding bit count")
}

func TestParseConcatKDFRejectsEmptyBitstring(t *testing.T) {
	el := parseElement(t, `<xenc11:KeyDerivationMethod
	    xmlns:xenc11="http://www.w3.org/2009/xmlenc11#"
	    Algorithm="http://www.w3.org/2009/xmlenc11#ConcatKDF">
	  <xenc11:ConcatKDFParams PartyUInfo=""/>
	</xenc11:KeyDerivationMethod>`)

	// An empty attribute means the field is absent, not an empty bitstring.
	param, err := KeyDerivationMethodParser{}.Parse(el)
	assert.NilError(t, err)
	assert.Check(t, is.Nil(param.(*ConcatKDF).PartyUInfo))
}

func TestParseHKDFParams(t *testing.T) {
	el := parseElement(t, `<xenc11:KeyDerivationMethod
	    xmlns:xenc11="http://www.w3.org/2009/xmlenc11#"
	    Algorithm="http://www.w3.org/2021/04/xmldsig-more#hkdf">
	  <HKDFParams>
	    <PRF Algorithm="http://www.w3.org/2001/04/xmlenc#sha256"/>
	    <Salt><Specified>c2FsdA==</Specified></Salt>
	    <Info>aW5mbw==</Info>
	    <KeyLength>256</KeyLength>
	  </HKDFParams>
	</xenc11:KeyDerivationMethod>`)

	param, err := KeyDerivationMethodParser{}.Parse(el)
	assert.NilError(t, err)

	kdf, ok := param.(*HKDF)
	assert.Assert(t, ok)
	want := &HKDF{
		PRF:       xmlsec.SHA256,
		Salt:      []byte("salt"),
		Info:      []byte("info"),
		KeyLength: 256,
	}
	assert.Check(t, is.Equal("", cmp.Diff(want, kdf)))
}

func TestParsePBKDF2Params(t *testing.T) {
	el := parseElement(t, `<xenc11:KeyDerivationMethod
	    xmlns:xenc11="http://www.w3.org/2009/xmlenc11#"
	    Algorithm="http://www.w3.org/2009/xmlenc11#pbkdf2">
	  <PBKDF2-params>
	    <Salt><Specified>c2FsdA==</Specified></Salt>
	    <IterationCount>4096</IterationCount>
	    <KeyLength>32</KeyLength>
	  </PBKDF2-params>
	</xenc11:KeyDerivationMethod>`)

	param, err := KeyDerivationMethodParser{}.Parse(el)
	assert.NilError(t, err)

	kdf, ok := param.(*PBKDF2)
	assert.Assert(t, ok)
	assert.Check(t, is.Equal(4096, kdf.IterationCount))
	// The schema carries octets, the parameter carries bits.
	assert.Check(t, is.Equal(256, kdf.KeyLength))
	assert.Check(t, is.DeepEqual([]byte("salt"), kdf.Salt))
}

func TestParseUnknownDerivationAlgorithm(t *testing.T) {
	el := parseElement(t, `<KeyDerivationMethod Algorithm="urn:example:kdf"/>`)
	_, err := KeyDerivationMethodParser{}.Parse(el)
	assert.ErrorContains(t, err, "unsupported key derivation algorithm")
}

func TestParseDigestMethodRequiresAlgorithm(t *testing.T) {
	el := parseElement(t, `<DigestMethod/>`)
	_, err := DigestMethodParser{}.Parse(el)
	assert.ErrorContains(t, err, "no Algorithm")
}

func TestParseKANonceRejectsBadBase64(t *testing.T) {
	el := parseElement(t, `<KA-Nonce>not!base64</KA-Nonce>`)
	_, err := KANonceParser{}.Parse(el)
	assert.ErrorContains(t, err, "cannot decode KA-Nonce")
}
