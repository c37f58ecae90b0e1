package metadata

import (
	"crypto/x509"
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"

	xmlsec "github.com/liudonghua123/java-opensaml"
)

// CredentialResolver extracts encryption credentials from resolved entity
// metadata. Alongside the credentials it returns a side table mapping each
// credential to the encryption methods the entity advertised for that key,
// in document order, so that downstream algorithm selection can consult
// the entity's stated preferences.
type CredentialResolver struct {
	Metadata Resolver
}

// Resolve returns the entity's encryption credentials in document order
// together with the advertised-algorithm side table. The criteria set must
// carry an EntityIDCriterion; an EntityRoleCriterion selects which role
// descriptor to consult, defaulting to the SP role.
func (r *CredentialResolver) Resolve(criteria xmlsec.CriteriaSet) ([]*xmlsec.Credential, map[*xmlsec.Credential][]EncryptionMethod, error) {
	entityID, ok := xmlsec.Find[xmlsec.EntityIDCriterion](criteria)
	if !ok {
		return nil, nil, &xmlsec.ConfigurationError{Reason: "credential resolution requires an entity ID criterion"}
	}

	entities, err := r.Metadata.Resolve(criteria)
	if err != nil {
		return nil, nil, &xmlsec.ResolverError{Op: "metadata", Err: err}
	}

	role := xmlsec.RoleSPSSODescriptor
	if c, ok := xmlsec.Find[xmlsec.EntityRoleCriterion](criteria); ok {
		role = c.Role
	}

	var credentials []*xmlsec.Credential
	advertised := map[*xmlsec.Credential][]EncryptionMethod{}

	for _, entity := range entities {
		for _, kd := range roleKeyDescriptors(entity, role) {
			usage := xmlsec.Usage(kd.Use)
			if usage != xmlsec.UsageAny && usage != xmlsec.UsageEncryption {
				continue
			}
			cred := &xmlsec.Credential{
				EntityID: entityID.EntityID,
				Usage:    usage,
				KeyName:  kd.KeyInfo.KeyName,
			}
			if raw := strings.TrimSpace(kd.KeyInfo.Certificate); raw != "" {
				der, err := base64.StdEncoding.DecodeString(collapseWhitespace(raw))
				if err != nil {
					return nil, nil, &xmlsec.ResolverError{
						Op:  "metadata",
						Err: errors.Wrapf(err, "cannot decode certificate for entity %q", entity.EntityID),
					}
				}
				cert, err := x509.ParseCertificate(der)
				if err != nil {
					return nil, nil, &xmlsec.ResolverError{
						Op:  "metadata",
						Err: errors.Wrapf(err, "cannot parse certificate for entity %q", entity.EntityID),
					}
				}
				cred.Certificate = cert
			}
			credentials = append(credentials, cred)
			if len(kd.EncryptionMethods) > 0 {
				advertised[cred] = kd.EncryptionMethods
			}
		}
	}
	return credentials, advertised, nil
}

func roleKeyDescriptors(entity *EntityDescriptor, role xmlsec.EntityRole) []KeyDescriptor {
	switch role {
	case xmlsec.RoleIDPSSODescriptor:
		if entity.IDPSSODescriptor != nil {
			return entity.IDPSSODescriptor.KeyDescriptor
		}
	case xmlsec.RoleSPSSODescriptor:
		if entity.SPSSODescriptor != nil {
			return entity.SPSSODescriptor.KeyDescriptor
		}
	}
	return nil
}

// collapseWhitespace strips the line folding metadata publishers put inside
// base64 certificate text.
func collapseWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
