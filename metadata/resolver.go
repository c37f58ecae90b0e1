package metadata

import (
	xmlsec "github.com/liudonghua123/java-opensaml"
	"github.com/liudonghua123/java-opensaml/logger"
)

// Resolver resolves entity descriptors matching a criteria set.
type Resolver interface {
	Resolve(criteria xmlsec.CriteriaSet) ([]*EntityDescriptor, error)
}

// Refreshable is implemented by resolvers that can reload their backing
// source on demand.
type Refreshable interface {
	Refresh() error
}

// Clearable is implemented by resolvers that can drop their loaded state.
type Clearable interface {
	Clear() error
}

// StaticResolver serves a fixed list of entity descriptors. A criteria set
// with an EntityIDCriterion selects by entity ID; without one every
// descriptor is returned.
type StaticResolver struct {
	Entities []*EntityDescriptor
}

// Resolve implements Resolver.
func (r *StaticResolver) Resolve(criteria xmlsec.CriteriaSet) ([]*EntityDescriptor, error) {
	entityID, hasID := xmlsec.Find[xmlsec.EntityIDCriterion](criteria)
	if !hasID {
		return r.Entities, nil
	}
	var matched []*EntityDescriptor
	for _, entity := range r.Entities {
		if entity.EntityID == entityID.EntityID {
			matched = append(matched, entity)
		}
	}
	return matched, nil
}

// ChainingResolver queries an ordered list of delegate resolvers and
// returns the first non-empty result. A delegate that fails is logged and
// skipped so that a broken source does not mask the ones behind it.
type ChainingResolver struct {
	Resolvers []Resolver
	Logger    logger.Interface
}

// Resolve implements Resolver.
func (c *ChainingResolver) Resolve(criteria xmlsec.CriteriaSet) ([]*EntityDescriptor, error) {
	if len(c.Resolvers) == 0 {
		return nil, &xmlsec.ConfigurationError{Reason: "metadata resolver chain is empty"}
	}
	for _, delegate := range c.Resolvers {
		entities, err := delegate.Resolve(criteria)
		if err != nil {
			c.logf("metadata resolver %T failed, skipping: %v", delegate, err)
			continue
		}
		if len(entities) > 0 {
			return entities, nil
		}
	}
	return nil, nil
}

// Refresh refreshes every delegate that supports it. The first refresh
// failure is returned after all delegates have been attempted.
func (c *ChainingResolver) Refresh() error {
	var firstErr error
	for _, delegate := range c.Resolvers {
		refreshable, ok := delegate.(Refreshable)
		if !ok {
			continue
		}
		if err := refreshable.Refresh(); err != nil {
			c.logf("metadata resolver %T refresh failed: %v", delegate, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Clear clears every delegate that supports it.
func (c *ChainingResolver) Clear() error {
	var firstErr error
	for _, delegate := range c.Resolvers {
		clearable, ok := delegate.(Clearable)
		if !ok {
			continue
		}
		if err := clearable.Clear(); err != nil {
			c.logf("metadata resolver %T clear failed: %v", delegate, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (c *ChainingResolver) logf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
		return
	}
	logger.DefaultLogger.Printf(format, args...)
}
