// Package config loads the yaml configuration for the backoffice server.
package config

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/zachmann/go-utils/fileutils"
	"gopkg.in/yaml.v3"

	"github.com/atelier-sites/backoffice"
	"github.com/atelier-sites/backoffice/internal/logger"
)

// Config holds the whole server configuration.
type Config struct {
	Server  backoffice.ServerConf `yaml:"server"`
	Session sessionConf           `yaml:"session"`
	Logging loggingConf           `yaml:"logging"`
	Storage storageConf           `yaml:"storage"`
	Caching cachingConf           `yaml:"caching"`
	Site    siteConf              `yaml:"site"`
	Media   mediaConf             `yaml:"media"`
}

// sessionConf configures session tokens.
type sessionConf struct {
	// Secret is the shared secret baked into session tokens. Changing it
	// invalidates all existing sessions.
	Secret string `yaml:"secret"`
}

type loggingConf struct {
	Internal logger.Conf `yaml:"internal"`
}

var conf *Config

func defaultConfig() *Config {
	return &Config{
		Server: backoffice.ServerConf{
			Port: 8765,
		},
		Logging: loggingConf{
			Internal: logger.Conf{
				Level:  "INFO",
				StdErr: true,
			},
		},
		Storage: defaultStorageConf,
		Site:    defaultSiteConf,
	}
}

// Get returns the loaded Config.
func Get() *Config {
	return conf
}

var possibleConfigLocations = []string{
	"config.yaml",
	"/etc/backoffice/config.yaml",
}

// Load loads the configuration from the passed file. An empty file name
// searches the default locations.
func Load(file string) {
	if file == "" {
		for _, loc := range possibleConfigLocations {
			if fileutils.FileExists(loc) {
				file = loc
				break
			}
		}
	}
	if file == "" {
		log.Fatal("no config file found")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		log.WithError(err).Fatal("could not read config file")
	}
	conf = defaultConfig()
	if err = yaml.Unmarshal(data, conf); err != nil {
		log.WithError(err).Fatal("could not parse config file")
	}
	if err = conf.validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
}

func (c *Config) validate() error {
	if err := c.Storage.validate(); err != nil {
		return err
	}
	return c.Site.validate()
}
