package config

import (
	"net/url"

	"github.com/pkg/errors"
	"github.com/zachmann/go-utils/duration"
)

// siteConf configures the connection to the public site whose content the
// dashboard edits. With an empty origin the dashboard runs standalone and
// serves content from its own database only.
type siteConf struct {
	Origin  string                  `yaml:"origin"`
	Timeout duration.DurationOption `yaml:"timeout"`
	// SnapshotDir is where remote content snapshots are kept so the
	// dashboard still renders when the site is down. Empty disables
	// snapshots.
	SnapshotDir string `yaml:"snapshot_dir"`
}

var defaultSiteConf = siteConf{}

func (c *siteConf) validate() error {
	if c.Origin == "" {
		return nil
	}
	u, err := url.Parse(c.Origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Errorf("error in site conf: origin '%s' is not a valid url", c.Origin)
	}
	return nil
}

// mediaConf configures the public blob store used for media uploads.
type mediaConf struct {
	BlobBaseURL string `yaml:"blob_base_url"`
	BlobToken   string `yaml:"blob_token"`
}
