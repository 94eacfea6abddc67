package authroles

import (
	"testing"

	domainauth "github.com/target/invoice-dashboard/internal/domain/auth"
	"github.com/stretchr/testify/assert"
)

func TestStaticRoleMapper(t *testing.T) {
	m := StaticRoleMapper{AdminGroup: "admins", UserGroup: "staff"}

	assert.Equal(t, domainauth.RoleAdmin, m.Map([]string{"staff", "admins"}))
	assert.Equal(t, domainauth.RoleUser, m.Map([]string{"staff"}))
	assert.Equal(t, domainauth.RoleGuest, m.Map([]string{"visitors"}))
	assert.Equal(t, domainauth.RoleGuest, m.Map(nil))
}

func TestStaticRoleMapper_OpenUserGroup(t *testing.T) {
	m := StaticRoleMapper{AdminGroup: "admins"}

	assert.Equal(t, domainauth.RoleUser, m.Map(nil))
	assert.Equal(t, domainauth.RoleAdmin, m.Map([]string{"admins"}))
}
