// Package guard decides whether a request may reach a route based on session presence.
// It is pure and free of framework/adapter concerns; the HTTP layer acts on the Decision.
package guard

import "strings"

const (
	// DefaultProtectedPrefix is the route prefix that requires an authenticated session.
	DefaultProtectedPrefix = "/dashboard"
	// DefaultHome is where authenticated users are sent when they land on a public page.
	DefaultHome = "/dashboard"
)

// Kind enumerates the possible guard outcomes.
type Kind int

const (
	// Allow lets the request through.
	Allow Kind = iota
	// Deny blocks an anonymous request to a protected route; the host serves the sign-in page.
	Deny
	// Redirect sends the request to Decision.Target.
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the tagged result of a guard evaluation.
// Target is only set when Kind is Redirect.
type Decision struct {
	Kind   Kind
	Target string
}

// Allowed returns the Allow decision.
func Allowed() Decision { return Decision{Kind: Allow} }

// Denied returns the Deny decision.
func Denied() Decision { return Decision{Kind: Deny} }

// RedirectTo returns a Redirect decision for target.
func RedirectTo(target string) Decision { return Decision{Kind: Redirect, Target: target} }

func (d Decision) String() string {
	if d.Kind == Redirect {
		return "redirect:" + d.Target
	}
	return d.Kind.String()
}

// Policy configures the protected prefix and the post-login landing page.
// Zero values fall back to DefaultProtectedPrefix and DefaultHome.
type Policy struct {
	ProtectedPrefix string
	Home            string
}

// DefaultPolicy returns the policy guarding the /dashboard tree.
func DefaultPolicy() Policy {
	return Policy{ProtectedPrefix: DefaultProtectedPrefix, Home: DefaultHome}
}

func (p Policy) prefix() string {
	if p.ProtectedPrefix == "" {
		return DefaultProtectedPrefix
	}
	return p.ProtectedPrefix
}

// HomePath returns the landing page for authenticated users.
func (p Policy) HomePath() string {
	if p.Home == "" {
		return DefaultHome
	}
	return p.Home
}

// IsProtected reports whether path starts with the protected prefix.
// This is a plain string prefix test, so "/dashboards" is protected as well.
func (p Policy) IsProtected(path string) bool {
	return strings.HasPrefix(path, p.prefix())
}

// Decide classifies a request. Rules are evaluated in order:
//  1. protected path without a session: Deny
//  2. public path with a session: Redirect to the home page
//  3. anything else: Allow
func (p Policy) Decide(isLoggedIn bool, path string) Decision {
	protected := p.IsProtected(path)
	if protected && !isLoggedIn {
		return Denied()
	}
	if !protected && isLoggedIn {
		return RedirectTo(p.HomePath())
	}
	return Allowed()
}

// Decide evaluates the default policy.
func Decide(isLoggedIn bool, path string) Decision {
	return DefaultPolicy().Decide(isLoggedIn, path)
}
