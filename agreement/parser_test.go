package agreement

import (
	"errors"
	"testing"

	"github.com/beevik/etree"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"

	xmlsec "github.com/liudonghua123/java-opensaml"
	"github.com/liudonghua123/java-opensaml/xmlenc"
)

func parseAgreementMethod(t *testing.T, body string) *xmlenc.AgreementMethod {
	t.Helper()
	doc := etree.NewDocument()
	assert.NilError(t, doc.ReadFromString(body))
	el := doc.Root().FindElement("//AgreementMethod")
	assert.Assert(t, el != nil)
	am, err := xmlenc.NewAgreementMethod(el)
	assert.NilError(t, err)
	return am
}

const agreementInsideEncryptedKey = `<xenc:EncryptedKey xmlns:xenc="http://www.w3.org/2001/04/xmlenc#">
  <xenc:EncryptionMethod Algorithm="http://www.w3.org/2001/04/xmlenc#kw-aes256">
    <xenc:KeySize>256</xenc:KeySize>
  </xenc:EncryptionMethod>
  <ds:KeyInfo xmlns:ds="http://www.w3.org/2000/09/xmldsig#">
    <xenc:AgreementMethod Algorithm="http://www.w3.org/2009/xmlenc11#ECDH-ES">
      <xenc:KA-Nonce>YWJjZGVmZ2g=</xenc:KA-Nonce>
      <xenc:OriginatorKeyInfo/>
      <xenc11:KeyDerivationMethod xmlns:xenc11="http://www.w3.org/2009/xmlenc11#"
          Algorithm="http://www.w3.org/2021/04/xmldsig-more#hkdf"/>
    </xenc:AgreementMethod>
  </ds:KeyInfo>
</xenc:EncryptedKey>`

func TestParseAgreementParameters(t *testing.T) {
	am := parseAgreementMethod(t, agreementInsideEncryptedKey)

	params, err := (&ParametersParser{}).Parse(am)
	assert.NilError(t, err)

	// One extension child, the dedicated nonce slot, and the key size
	// synthesized from the enclosing EncryptionMethod.
	assert.Check(t, is.Equal(3, params.Len()))

	nonce, ok := Get[*KANonce](params)
	assert.Check(t, ok)
	assert.Check(t, is.DeepEqual([]byte("abcdefgh"), nonce.Value))

	size, ok := Get[*KeySize](params)
	assert.Check(t, ok)
	assert.Check(t, is.Equal(256, size.Bits))

	kdf, ok := Get[KeyDerivation](params)
	assert.Check(t, ok)
	assert.Check(t, is.Equal(xmlsec.HKDF, kdf.Algorithm()))

	// InitializeAll linked the derivation length from the key size.
	assert.Check(t, is.Equal(256, kdf.(*HKDF).KeyLength))
}

func TestParseNilAgreementMethod(t *testing.T) {
	_, err := (&ParametersParser{}).Parse(nil)
	assert.Check(t, errors.Is(err, xmlsec.ErrMissingStructure))
}

func TestParseUnsupportedParameter(t *testing.T) {
	am := parseAgreementMethod(t, `<xenc:AgreementMethod
	    xmlns:xenc="http://www.w3.org/2001/04/xmlenc#"
	    Algorithm="http://www.w3.org/2009/xmlenc11#ECDH-ES">
	  <xenc:Mystery/>
	</xenc:AgreementMethod>`)

	_, err := (&ParametersParser{}).Parse(am)
	var unsupported *xmlsec.UnsupportedParameterError
	assert.Check(t, errors.As(err, &unsupported))
	assert.ErrorContains(t, err, "xenc:Mystery")
}

func TestParseExplicitEmptyRegistry(t *testing.T) {
	am := parseAgreementMethod(t, agreementInsideEncryptedKey)

	// An explicitly empty registry handles nothing, so the first candidate
	// fails the parse.
	_, err := (&ParametersParser{Parsers: []ParameterParser{}}).Parse(am)
	var unsupported *xmlsec.UnsupportedParameterError
	assert.Check(t, errors.As(err, &unsupported))
}

func TestParseFirstMatchingParserWins(t *testing.T) {
	am := parseAgreementMethod(t, `<xenc:AgreementMethod
	    xmlns:xenc="http://www.w3.org/2001/04/xmlenc#"
	    Algorithm="http://www.w3.org/2009/xmlenc11#ECDH-ES">
	  <xenc:KA-Nonce>YWJjZGVmZ2g=</xenc:KA-Nonce>
	</xenc:AgreementMethod>`)

	first := &countingParser{tag: "KA-Nonce", param: &KANonce{Value: []byte("first")}}
	second := &countingParser{tag: "KA-Nonce", param: &KANonce{Value: []byte("second")}}

	params, err := (&ParametersParser{Parsers: []ParameterParser{first, second}}).Parse(am)
	assert.NilError(t, err)

	nonce, ok := Get[*KANonce](params)
	assert.Check(t, ok)
	assert.Check(t, is.DeepEqual([]byte("first"), nonce.Value))
	assert.Check(t, is.Equal(1, first.calls))
	assert.Check(t, is.Equal(0, second.calls))
}

type countingParser struct {
	tag   string
	param Parameter
	calls int
}

func (p *countingParser) Handles(el *etree.Element) bool { return el.Tag == p.tag }

func (p *countingParser) Parse(el *etree.Element) (Parameter, error) {
	p.calls++
	return p.param, nil
}

func TestInitializeAllRejectsDuplicateKinds(t *testing.T) {
	params := &Parameters{}
	params.Add(&KANonce{Value: []byte("one")})
	params.Add(&KANonce{Value: []byte("two")})

	err := params.InitializeAll()
	var inconsistent *xmlsec.InconsistentParametersError
	assert.Check(t, errors.As(err, &inconsistent))
}

func TestInitializeAllRejectsDuplicateDerivations(t *testing.T) {
	params := &Parameters{}
	params.Add(&ConcatKDF{KeyLength: 256})
	params.Add(&HKDF{KeyLength: 256})

	err := params.InitializeAll()
	var inconsistent *xmlsec.InconsistentParametersError
	assert.Check(t, errors.As(err, &inconsistent))
}

func TestInitializeAllRequiresKeySizeForUnsizedDerivation(t *testing.T) {
	params := &Parameters{}
	params.Add(&HKDF{})

	err := params.InitializeAll()
	var inconsistent *xmlsec.InconsistentParametersError
	assert.Check(t, errors.As(err, &inconsistent))
}
