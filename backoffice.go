// Package backoffice implements the admin dashboard backend: session
// authentication, booking management, site content and settings editing, and
// media uploads.
package backoffice

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"

	"github.com/atelier-sites/backoffice/api/adminapi"
	"github.com/atelier-sites/backoffice/storage/model"
)

// FiberServerConfig is the fiber.Config that is used to init the http fiber.App
var FiberServerConfig = fiber.Config{
	ReadTimeout:    3 * time.Second,
	WriteTimeout:   20 * time.Second,
	IdleTimeout:    150 * time.Second,
	ReadBufferSize: 8192,
	ErrorHandler:   handleError,
	Network:        "tcp",
}

func handleError(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	var notFoundErr model.NotFoundError
	var badRequestErr model.BadRequestError
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	case errors.As(err, &notFoundErr):
		code = fiber.StatusNotFound
	case errors.As(err, &badRequestErr):
		code = fiber.StatusBadRequest
	}
	if code >= fiber.StatusInternalServerError {
		log.WithError(err).Error("unhandled error")
	}
	return ctx.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// Backoffice is the admin dashboard server. It serves the login endpoints
// publicly and everything under /api behind a session cookie.
type Backoffice struct {
	server     *fiber.App
	serverConf ServerConf
	Session    *SessionAuthenticator
	Identity   *IdentityResolver
}

// NewBackoffice creates a new Backoffice server from the passed server
// configuration, session secret, and api dependencies.
func NewBackoffice(serverConf ServerConf, sessionSecret string, deps adminapi.Deps) (*Backoffice, error) {
	if tps := serverConf.TrustedProxies; len(tps) > 0 {
		FiberServerConfig.TrustedProxies = tps
		FiberServerConfig.EnableTrustedProxyCheck = true
	}
	FiberServerConfig.ProxyHeader = serverConf.ForwardedIPHeader
	server := fiber.New(FiberServerConfig)
	server.Use(recover.New())
	server.Use(compress.New())
	server.Use(logger.New())
	server.Use(requestid.New())

	session := NewSessionAuthenticator(sessionSecret, serverConf.CookiesSecure())
	identity := NewIdentityResolver(deps.Settings)
	bo := &Backoffice{
		server:     server,
		serverConf: serverConf,
		Session:    session,
		Identity:   identity,
	}

	registerAuthEndpoints(server, session, identity)
	// Browser navigations to the dashboard pages get a redirect instead of a
	// json error. The pages themselves are served elsewhere.
	for _, path := range []string{"/dashboard", "/content", "/images", "/settings"} {
		server.Use(path, session.RedirectMiddleware())
	}
	deps.Auth = session.APIMiddleware()
	if err := adminapi.Register(server.Group("/api"), deps); err != nil {
		return nil, err
	}
	return bo, nil
}

// registerAuthEndpoints mounts the login endpoints. These sit outside the
// session middleware; POST establishes a session and GET probes an existing
// one.
func registerAuthEndpoints(r fiber.Router, session *SessionAuthenticator, identity *IdentityResolver) {
	r.Get(
		"/api/auth/login", func(ctx *fiber.Ctx) error {
			if session.Authed(ctx) {
				return ctx.JSON(fiber.Map{"ok": true})
			}
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		},
	)
	r.Post(
		"/api/auth/login", func(ctx *fiber.Ctx) error {
			var req struct {
				Username string `json:"username"`
				Password string `json:"password"`
			}
			if err := ctx.BodyParser(&req); err != nil {
				return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
			}
			username, err := identity.Authenticate(req.Username, req.Password)
			if err != nil {
				return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
			}
			session.SetCookie(ctx, username)
			return ctx.JSON(fiber.Map{"ok": true})
		},
	)
	r.Post(
		"/api/auth/logout", func(ctx *fiber.Ctx) error {
			session.ClearCookie(ctx)
			return ctx.JSON(fiber.Map{"ok": true})
		},
	)
}

// HttpHandlerFunc returns an http.HandlerFunc for serving all endpoints
func (bo Backoffice) HttpHandlerFunc() http.HandlerFunc {
	return adaptor.FiberApp(bo.server)
}

// Listen starts an http server at the specific address
func (bo Backoffice) Listen(addr string) error {
	return bo.server.Listen(addr)
}

func (bo Backoffice) Start() {
	conf := bo.serverConf
	if !conf.TLS.Enabled {
		log.WithField("port", conf.Port).Info("TLS is disabled starting http server")
		log.WithError(bo.server.Listen(fmt.Sprintf(":%d", conf.Port))).Fatal()
	}
	// TLS enabled
	if conf.TLS.RedirectHTTP {
		httpServer := fiber.New(FiberServerConfig)
		httpServer.All(
			"*", func(ctx *fiber.Ctx) error {
				return ctx.Redirect(
					strings.Replace(ctx.Request().URI().String(), "http://", "https://", 1),
					fiber.StatusPermanentRedirect,
				)
			},
		)
		log.Info("TLS and http redirect enabled, starting redirect server on port 80")
		go func() {
			log.WithError(httpServer.Listen(":80")).Fatal()
		}()
	}
	time.Sleep(time.Millisecond)
	log.Info("TLS enabled, starting https server on port 443")
	log.WithError(bo.server.ListenTLS(":443", conf.TLS.Cert, conf.TLS.Key)).Fatal()
}
