package xmlenc

import (
	"strings"

	"github.com/beevik/etree"

	xmlsec "github.com/liudonghua123/java-opensaml"
)

// EncryptedKeyResolver locates EncryptedKey elements carrying the content
// encryption key of an EncryptedData, scoped to a single recipient
// identity. An empty recipient matches EncryptedKeys with no Recipient
// hint as well as any hinted one.
type EncryptedKeyResolver interface {
	Resolve(data *EncryptedData, recipient string) ([]*EncryptedKey, error)
}

// InlineEncryptedKeyResolver finds EncryptedKey elements placed directly
// inside the EncryptedData's KeyInfo.
type InlineEncryptedKeyResolver struct{}

// Resolve implements EncryptedKeyResolver.
func (InlineEncryptedKeyResolver) Resolve(data *EncryptedData, recipient string) ([]*EncryptedKey, error) {
	keyInfo := data.KeyInfo()
	if keyInfo == nil {
		return nil, nil
	}
	var rv []*EncryptedKey
	for _, child := range keyInfo.ChildElements() {
		if child.Tag != "EncryptedKey" {
			continue
		}
		ek := &EncryptedKey{el: child}
		if recipientMatches(ek, recipient) {
			rv = append(rv, ek)
		}
	}
	return rv, nil
}

// RetrievalMethodEncryptedKeyResolver dereferences same-document
// ds:RetrievalMethod references of type EncryptedKey.
type RetrievalMethodEncryptedKeyResolver struct{}

// Resolve implements EncryptedKeyResolver.
func (RetrievalMethodEncryptedKeyResolver) Resolve(data *EncryptedData, recipient string) ([]*EncryptedKey, error) {
	keyInfo := data.KeyInfo()
	if keyInfo == nil {
		return nil, nil
	}
	var rv []*EncryptedKey
	for _, rm := range keyInfo.ChildElements() {
		if rm.Tag != "RetrievalMethod" {
			continue
		}
		if rm.SelectAttrValue("Type", "") != TypeEncryptedKey {
			continue
		}
		uri := rm.SelectAttrValue("URI", "")
		if !strings.HasPrefix(uri, "#") {
			// Only same-document references are supported.
			continue
		}
		ek := findEncryptedKeyByID(data.Element(), uri[1:])
		if ek != nil && recipientMatches(ek, recipient) {
			rv = append(rv, ek)
		}
	}
	return rv, nil
}

// ChainingEncryptedKeyResolver aggregates the results of an ordered list of
// delegate resolvers, resolving each configured recipient across the whole
// chain. The delegate list must not be empty: an empty chain in an
// aggregating resolve indicates mis-wiring, not "no results".
type ChainingEncryptedKeyResolver struct {
	resolvers  []EncryptedKeyResolver
	recipients []string
}

// NewChainingEncryptedKeyResolver builds a chain over the given delegates.
// If no recipients are given, a single unconstrained pass is made.
func NewChainingEncryptedKeyResolver(resolvers []EncryptedKeyResolver, recipients ...string) (*ChainingEncryptedKeyResolver, error) {
	if len(resolvers) == 0 {
		return nil, &xmlsec.ConfigurationError{Reason: "encrypted key resolver chain is empty"}
	}
	rv := &ChainingEncryptedKeyResolver{
		resolvers:  make([]EncryptedKeyResolver, len(resolvers)),
		recipients: recipients,
	}
	copy(rv.resolvers, resolvers)
	return rv, nil
}

// ResolveAll concatenates every delegate's results, in delegate order per
// recipient, dropping duplicate elements found through multiple paths.
func (c *ChainingEncryptedKeyResolver) ResolveAll(data *EncryptedData) ([]*EncryptedKey, error) {
	if len(c.resolvers) == 0 {
		return nil, &xmlsec.ConfigurationError{Reason: "encrypted key resolver chain is empty"}
	}

	recipients := c.recipients
	if len(recipients) == 0 {
		recipients = []string{""}
	}

	var rv []*EncryptedKey
	seen := map[*etree.Element]bool{}
	for _, recipient := range recipients {
		for _, resolver := range c.resolvers {
			keys, err := resolver.Resolve(data, recipient)
			if err != nil {
				return nil, err
			}
			for _, ek := range keys {
				if seen[ek.el] {
					continue
				}
				seen[ek.el] = true
				rv = append(rv, ek)
			}
		}
	}
	return rv, nil
}

func recipientMatches(ek *EncryptedKey, recipient string) bool {
	hint := ek.Recipient()
	return hint == "" || recipient == "" || hint == recipient
}

// findEncryptedKeyByID searches the whole document containing el for an
// EncryptedKey with the given Id.
func findEncryptedKeyByID(el *etree.Element, id string) *EncryptedKey {
	root := el
	for root.Parent() != nil {
		root = root.Parent()
	}
	for _, candidate := range root.FindElements("//EncryptedKey") {
		ek := &EncryptedKey{el: candidate}
		if ek.ID() == id {
			return ek
		}
	}
	return nil
}
