package metadata

import (
	"encoding/xml"
	"testing"

	. "gopkg.in/check.v1"

	xmlsec "github.com/liudonghua123/java-opensaml"
)

func Test(t *testing.T) { TestingT(t) }

type MetadataTest struct{}

var _ = Suite(&MetadataTest{})

const entityDescriptorDoc = `<EntityDescriptor xmlns="urn:oasis:names:tc:SAML:2.0:metadata" entityID="https://sp.example.com/saml2/metadata">
  <SPSSODescriptor protocolSupportEnumeration="urn:oasis:names:tc:SAML:2.0:protocol">
    <KeyDescriptor use="encryption">
      <KeyInfo xmlns="http://www.w3.org/2000/09/xmldsig#">
        <KeyName>sp-enc-key</KeyName>
        <X509Data><X509Certificate>AAAA</X509Certificate></X509Data>
      </KeyInfo>
      <EncryptionMethod Algorithm="http://www.w3.org/2009/xmlenc11#rsa-oaep"/>
      <EncryptionMethod Algorithm="http://www.w3.org/2009/xmlenc11#aes128-gcm">
        <KeySize xmlns="http://www.w3.org/2001/04/xmlenc#">128</KeySize>
      </EncryptionMethod>
    </KeyDescriptor>
    <KeyDescriptor use="signing">
      <KeyInfo xmlns="http://www.w3.org/2000/09/xmldsig#">
        <X509Data><X509Certificate>BBBB</X509Certificate></X509Data>
      </KeyInfo>
    </KeyDescriptor>
    <AssertionConsumerService
        Binding="urn:oasis:names:tc:SAML:2.0:bindings:HTTP-POST"
        Location="https://sp.example.com/saml2/acs" index="1"/>
  </SPSSODescriptor>
</EntityDescriptor>`

func (MetadataTest) TestCanParseEntityDescriptor(c *C) {
	var entity EntityDescriptor
	err := xml.Unmarshal([]byte(entityDescriptorDoc), &entity)
	c.Assert(err, IsNil)

	c.Assert(entity.EntityID, Equals, "https://sp.example.com/saml2/metadata")
	c.Assert(entity.SPSSODescriptor, NotNil)
	c.Assert(entity.SPSSODescriptor.KeyDescriptor, HasLen, 2)

	kd := entity.SPSSODescriptor.KeyDescriptor[0]
	c.Assert(kd.Use, Equals, "encryption")
	c.Assert(kd.KeyInfo.KeyName, Equals, "sp-enc-key")
	c.Assert(kd.KeyInfo.Certificate, Equals, "AAAA")
	c.Assert(kd.EncryptionMethods, HasLen, 2)
	c.Assert(kd.EncryptionMethods[0].Algorithm, Equals, xmlsec.RSAOAEP11)
	c.Assert(kd.EncryptionMethods[0].KeySize, Equals, 0)
	c.Assert(kd.EncryptionMethods[1].Algorithm, Equals, xmlsec.AES128GCM)
	c.Assert(kd.EncryptionMethods[1].KeySize, Equals, 128)

	c.Assert(entity.SPSSODescriptor.AssertionConsumerService, HasLen, 1)
	c.Assert(entity.SPSSODescriptor.AssertionConsumerService[0].Location,
		Equals, "https://sp.example.com/saml2/acs")
}

func (MetadataTest) TestCanParseEntitiesDescriptor(c *C) {
	doc := `<EntitiesDescriptor xmlns="urn:oasis:names:tc:SAML:2.0:metadata" Name="example-federation">
	  <EntityDescriptor entityID="https://one.example.com"/>
	  <EntityDescriptor entityID="https://two.example.com"/>
	</EntitiesDescriptor>`

	var entities EntitiesDescriptor
	err := xml.Unmarshal([]byte(doc), &entities)
	c.Assert(err, IsNil)
	c.Assert(entities.Name, Equals, "example-federation")
	c.Assert(entities.EntityDescriptor, HasLen, 2)
	c.Assert(entities.EntityDescriptor[1].EntityID, Equals, "https://two.example.com")
}

func (MetadataTest) TestCanParseIDPDescriptor(c *C) {
	doc := `<EntityDescriptor xmlns="urn:oasis:names:tc:SAML:2.0:metadata" entityID="https://idp.example.com">
	  <IDPSSODescriptor protocolSupportEnumeration="urn:oasis:names:tc:SAML:2.0:protocol">
	    <SingleSignOnService
	        Binding="urn:oasis:names:tc:SAML:2.0:bindings:HTTP-Redirect"
	        Location="https://idp.example.com/sso"/>
	  </IDPSSODescriptor>
	</EntityDescriptor>`

	var entity EntityDescriptor
	err := xml.Unmarshal([]byte(doc), &entity)
	c.Assert(err, IsNil)
	c.Assert(entity.IDPSSODescriptor, NotNil)
	c.Assert(entity.IDPSSODescriptor.SingleSignOnService, HasLen, 1)
	c.Assert(entity.IDPSSODescriptor.SingleSignOnService[0].Binding,
		Equals, "urn:oasis:names:tc:SAML:2.0:bindings:HTTP-Redirect")
}
