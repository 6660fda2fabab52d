package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/atelier-sites/backoffice"
	"github.com/atelier-sites/backoffice/api/adminapi"
	"github.com/atelier-sites/backoffice/cmd/backoffice/config"
	"github.com/atelier-sites/backoffice/content"
	"github.com/atelier-sites/backoffice/internal/cache"
	"github.com/atelier-sites/backoffice/internal/logger"
	"github.com/atelier-sites/backoffice/media"
)

func main() {
	var configFile string
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}
	config.Load(configFile)
	c := config.Get()
	logger.Init(c.Logging.Internal)
	log.Info("Loaded Config")

	if redisAddr := c.Caching.RedisAddr; redisAddr != "" && !c.Caching.Disabled {
		if err := cache.UseRedisCache(
			&redis.Options{
				Addr:     redisAddr,
				Username: c.Caching.Username,
				Password: c.Caching.Password,
				DB:       c.Caching.RedisDB,
			},
		); err != nil {
			log.WithError(err).Fatal("could not init redis cache")
		}
		log.Info("Loaded Redis Cache")
	}
	content.SetCachePeriod(c.Caching.MaxLifetime.Duration())

	backs, err := config.LoadStorageBackends(c.Storage)
	if err != nil {
		log.Fatal(err)
	}

	chain := &content.Chain{Local: backs.Sections}
	if origin := c.Site.Origin; origin != "" {
		timeout := c.Site.Timeout.Duration()
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		chain.Remote = content.NewRemoteStore(origin+"/api/content", timeout)
	}
	if dir := snapshotDir(c); dir != "" {
		snap, err := content.NewSnapshotStore(dir)
		if err != nil {
			log.WithError(err).Fatal("could not open content snapshot store")
		}
		defer snap.Close()
		chain.Snapshot = snap
	}

	bo, err := backoffice.NewBackoffice(
		c.Server, c.Session.Secret, adminapi.Deps{
			Bookings:   backs.Bookings,
			Sections:   chain,
			Settings:   &content.SettingsStore{Sections: chain},
			Media:      media.NewBlobStore(c.Media.BlobBaseURL, c.Media.BlobToken),
			SiteOrigin: c.Site.Origin,
		},
	)
	if err != nil {
		log.Fatal(err)
	}
	log.Info("Initialized Server")
	bo.Start()
}

func snapshotDir(c *config.Config) string {
	if c.Site.SnapshotDir != "" {
		return c.Site.SnapshotDir
	}
	if c.Storage.DataDir != "" {
		return filepath.Join(c.Storage.DataDir, "content-snapshots")
	}
	return ""
}
