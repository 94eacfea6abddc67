package config

import (
	"strings"

	"github.com/target/invoice-dashboard/internal/domain/guard"
)

// GuardConfig controls which routes require a session and where users land.
type GuardConfig struct {
	// ProtectedPrefix is matched as a plain string prefix against the request path.
	ProtectedPrefix string `env:"PROTECTED_PREFIX" envDefault:"/dashboard"`
	// Home is where authenticated visitors of public pages are sent.
	Home string `env:"HOME_PATH" envDefault:"/dashboard"`
	// SignInPath is where anonymous visitors of protected pages are sent.
	SignInPath string `env:"SIGN_IN_PATH" envDefault:"/login"`
}

// Sanitize forces absolute paths and drops trailing slashes.
func (g *GuardConfig) Sanitize() {
	g.ProtectedPrefix = cleanPath(g.ProtectedPrefix, guard.DefaultProtectedPrefix)
	g.Home = cleanPath(g.Home, guard.DefaultHome)
	g.SignInPath = cleanPath(g.SignInPath, "/login")
}

// Policy returns the guard policy for these settings.
func (g GuardConfig) Policy() guard.Policy {
	return guard.Policy{ProtectedPrefix: g.ProtectedPrefix, Home: g.Home}
}

func cleanPath(p, fallback string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return fallback
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}
