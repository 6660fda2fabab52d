package content

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/atelier-sites/backoffice/internal/cache"
	"github.com/atelier-sites/backoffice/storage/model"
)

var sectionCachePeriod = 5 * time.Second

// SetCachePeriod overrides how long resolved section documents stay in the
// response cache.
func SetCachePeriod(d time.Duration) {
	if d > 0 {
		sectionCachePeriod = d
	}
}

// Chain composes the section stores into the read fallback order
// remote -> database -> snapshot, and writes through all of them.
// Any tier may be nil. It implements model.SectionStore.
//
// Read-path failures of a tier are logged and recovered by falling through;
// only the write path surfaces errors.
type Chain struct {
	Remote   *RemoteStore
	Local    model.SectionStore
	Snapshot *SnapshotStore
}

// CacheKey returns the cache key under which a section document is cached.
func CacheKey(section string) string {
	return cache.Key("content", section)
}

// Get resolves a section document through the chain. Returns (nil, nil) when
// no tier has the document; callers scaffold a default in that case.
func (c *Chain) Get(section string) (datatypes.JSON, error) {
	var cached []byte
	key := CacheKey(section)
	if set, err := cache.Get(key, &cached); err == nil && set {
		return cached, nil
	}

	if c.Remote != nil {
		doc, err := c.Remote.Get(section)
		if err != nil {
			log.WithError(err).WithField("section", section).Debug("remote content fetch failed, falling back")
		} else if doc != nil {
			c.remember(section, doc)
			return doc, nil
		}
	}

	if c.Local != nil {
		doc, err := c.Local.Get(section)
		if err != nil {
			log.WithError(err).WithField("section", section).Debug("local content read failed, falling back")
		} else if doc != nil {
			return doc, nil
		}
	}

	if c.Snapshot != nil {
		doc, err := c.Snapshot.Get(section)
		if err != nil {
			log.WithError(err).WithField("section", section).Debug("snapshot content read failed")
		} else if doc != nil {
			return doc, nil
		}
	}

	return nil, nil
}

// GetOrDefault resolves a section document and scaffolds a default when the
// chain has nothing stored.
func (c *Chain) GetOrDefault(section string) (datatypes.JSON, error) {
	doc, err := c.Get(section)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = DefaultSection(section)
	}
	return doc, nil
}

// Put writes a section document through the chain. When a remote store is
// configured it is authoritative: its failure fails the write. The database
// and snapshot tiers are mirrors.
func (c *Chain) Put(section string, doc datatypes.JSON) error {
	if c.Remote != nil {
		if err := c.Remote.Put(section, doc); err != nil {
			return err
		}
	} else if c.Local != nil {
		if err := c.Local.Put(section, doc); err != nil {
			return err
		}
	}
	c.remember(section, doc)
	return nil
}

// remember mirrors a known-good document into the local tiers.
func (c *Chain) remember(section string, doc datatypes.JSON) {
	if c.Local != nil && c.Remote != nil {
		if err := c.Local.Put(section, doc); err != nil {
			log.WithError(err).WithField("section", section).Warn("could not mirror content to database")
		}
	}
	if c.Snapshot != nil {
		if err := c.Snapshot.Put(section, doc); err != nil {
			log.WithError(err).WithField("section", section).Warn("could not snapshot content")
		}
	}
	if err := cache.Set(CacheKey(section), doc, sectionCachePeriod); err != nil {
		log.WithError(err).Debug("could not cache content")
	}
}
