package xmlsec

// Policy is an algorithm include/exclude rule set. An algorithm URI is
// permitted iff the include list is empty or contains the URI, and the
// exclude list does not contain it. Exclusion always wins over inclusion.
//
// A Policy is built once per resolution context and must not be modified
// afterwards; Permitted is safe for concurrent use.
type Policy struct {
	Included []string
	Excluded []string
}

// Permitted evaluates the algorithm URI against the policy. An empty URI is
// never permitted; callers are expected to report it as a validation
// failure rather than silently skip it.
func (p Policy) Permitted(uri string) bool {
	return PermittedAlgorithm(uri, p.Included, p.Excluded)
}

// PermittedAlgorithm reports whether uri satisfies the include/exclude rule
// set. Either list may be nil or empty, meaning "no constraint" and
// "exclude nothing" respectively. Membership is exact string identity; no
// wildcard or pattern matching is performed.
func PermittedAlgorithm(uri string, included, excluded []string) bool {
	if uri == "" {
		return false
	}
	for _, e := range excluded {
		if e == uri {
			return false
		}
	}
	if len(included) == 0 {
		return true
	}
	for _, i := range included {
		if i == uri {
			return true
		}
	}
	return false
}
