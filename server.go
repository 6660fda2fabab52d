package backoffice

// ServerConf holds the http server related configuration
type ServerConf struct {
	Port              int      `yaml:"port"`
	TLS               tlsConf  `yaml:"tls"`
	TrustedProxies    []string `yaml:"trusted_proxies"`
	ForwardedIPHeader string   `yaml:"forwarded_ip_header"`
	// SecureCookies marks session cookies Secure even when the server itself
	// terminates plain http, e.g. behind a TLS proxy.
	SecureCookies bool `yaml:"secure_cookies"`
}

type tlsConf struct {
	Enabled      bool   `yaml:"enabled"`
	RedirectHTTP bool   `yaml:"redirect_http"`
	Cert         string `yaml:"cert"`
	Key          string `yaml:"key"`
}

// CookiesSecure reports whether session cookies should carry the Secure flag.
func (c ServerConf) CookiesSecure() bool {
	return c.TLS.Enabled || c.SecureCookies
}
