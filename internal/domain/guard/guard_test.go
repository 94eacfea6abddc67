package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide_Scenarios(t *testing.T) {
	assert.Equal(t, Denied(), Decide(false, "/dashboard/invoices"))
	assert.Equal(t, RedirectTo("/dashboard"), Decide(true, "/login"))
	assert.Equal(t, Allowed(), Decide(false, "/login"))
}

func TestDecide_Table(t *testing.T) {
	tests := []struct {
		name     string
		loggedIn bool
		path     string
		want     Decision
	}{
		{"anonymous dashboard root", false, "/dashboard", Denied()},
		{"anonymous nested", false, "/dashboard/invoices/create", Denied()},
		{"anonymous prefix sibling", false, "/dashboards", Denied()},
		{"anonymous home", false, "/", Allowed()},
		{"anonymous empty path", false, "", Allowed()},
		{"anonymous login", false, "/login", Allowed()},
		{"user dashboard root", true, "/dashboard", Allowed()},
		{"user nested", true, "/dashboard/customers", Allowed()},
		{"user home", true, "/", RedirectTo("/dashboard")},
		{"user login", true, "/login", RedirectTo("/dashboard")},
		{"user case differs", true, "/Dashboard", RedirectTo("/dashboard")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.loggedIn, tt.path))
		})
	}
}

func TestDecide_Properties(t *testing.T) {
	protected := []string{"/dashboard", "/dashboard/", "/dashboard/invoices", "/dashboard?x=1"}
	public := []string{"/", "/login", "/about", "/auth/callback", "/dash"}

	for _, p := range protected {
		assert.Equal(t, Deny, Decide(false, p).Kind, p)
		assert.Equal(t, Allow, Decide(true, p).Kind, p)
	}
	for _, p := range public {
		d := Decide(true, p)
		assert.Equal(t, Redirect, d.Kind, p)
		assert.Equal(t, DefaultHome, d.Target, p)
		assert.Equal(t, Allow, Decide(false, p).Kind, p)
	}
}

func TestPolicy_CustomValues(t *testing.T) {
	p := Policy{ProtectedPrefix: "/app", Home: "/app/home"}
	assert.Equal(t, Denied(), p.Decide(false, "/app/settings"))
	assert.Equal(t, RedirectTo("/app/home"), p.Decide(true, "/dashboard"))
	assert.Equal(t, Allowed(), p.Decide(true, "/app"))
}

func TestPolicy_ZeroValueUsesDefaults(t *testing.T) {
	var p Policy
	assert.True(t, p.IsProtected("/dashboard/x"))
	assert.Equal(t, DefaultHome, p.HomePath())
	assert.Equal(t, RedirectTo(DefaultHome), p.Decide(true, "/"))
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "allow", Allowed().String())
	assert.Equal(t, "deny", Denied().String())
	assert.Equal(t, "redirect:/dashboard", RedirectTo("/dashboard").String())
	assert.Equal(t, "unknown", Kind(42).String())
}
