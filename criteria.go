package xmlsec

// Criterion is a typed input to a resolver. A CriteriaSet is an unordered
// bag of criteria looked up by concrete type; resolvers document which
// criteria they require and which they treat as optional.
type Criterion interface {
	criterion()
}

// CriteriaSet carries the inputs of a single resolution attempt.
type CriteriaSet []Criterion

// Find returns the first criterion of type T in the set.
func Find[T Criterion](cs CriteriaSet) (T, bool) {
	for _, c := range cs {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// EntityIDCriterion identifies the entity whose metadata or credentials are
// being resolved.
type EntityIDCriterion struct {
	EntityID string
}

// EntityRole names a SAML metadata role descriptor.
type EntityRole string

const (
	RoleIDPSSODescriptor EntityRole = "IDPSSODescriptor"
	RoleSPSSODescriptor  EntityRole = "SPSSODescriptor"
)

// EntityRoleCriterion selects which role descriptor of the entity's
// metadata to consult.
type EntityRoleCriterion struct {
	Role EntityRole
}

// ProtocolCriterion restricts resolution to role descriptors supporting the
// named protocol, e.g. "urn:oasis:names:tc:SAML:2.0:protocol".
type ProtocolCriterion struct {
	Protocol string
}

// UsageCriterion restricts resolution to credentials with a matching usage
// hint. Credentials with unspecified usage match any hint.
type UsageCriterion struct {
	Usage Usage
}

// PolicyCriterion supplies the algorithm include/exclude policy that every
// resolved algorithm URI must satisfy.
type PolicyCriterion struct {
	Policy Policy
}

func (EntityIDCriterion) criterion()   {}
func (EntityRoleCriterion) criterion() {}
func (ProtocolCriterion) criterion()   {}
func (UsageCriterion) criterion()      {}
func (PolicyCriterion) criterion()     {}

// PolicyFrom extracts the algorithm policy from the criteria set, returning
// the zero (permit-everything) policy when none is present.
func PolicyFrom(cs CriteriaSet) Policy {
	if c, ok := Find[PolicyCriterion](cs); ok {
		return c.Policy
	}
	return Policy{}
}
