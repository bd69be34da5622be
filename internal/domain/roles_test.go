package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradecore/internal/domain"
)

func TestHasPermissionIsTotalOrder(t *testing.T) {
	ranked := []domain.Role{
		domain.RoleViewer,
		domain.RoleCashier,
		domain.RoleContentManager,
		domain.RoleManager,
		domain.RoleAdmin,
	}
	for i, required := range ranked {
		for j, role := range ranked {
			assert.Equal(t, j >= i, domain.HasPermission(role, required),
				"role=%s required=%s", role, required)
		}
	}
}

func TestHasPermissionUnknownRole(t *testing.T) {
	assert.False(t, domain.HasPermission("superuser", domain.RoleViewer))
	assert.False(t, domain.HasPermission("", domain.RoleViewer))
}

func TestValidRole(t *testing.T) {
	for _, r := range []domain.Role{
		domain.RoleAdmin, domain.RoleManager, domain.RoleContentManager,
		domain.RoleCashier, domain.RoleViewer,
	} {
		assert.True(t, domain.ValidRole(r), r)
	}
	assert.False(t, domain.ValidRole("root"))
}

func TestPermissionsByRole(t *testing.T) {
	admin := domain.Permissions(domain.RoleAdmin)
	assert.True(t, admin.ManageUsers)
	assert.True(t, admin.ViewAudit)
	assert.True(t, admin.Delete)

	manager := domain.Permissions(domain.RoleManager)
	assert.True(t, manager.Delete)
	assert.True(t, manager.ManageContent)
	assert.False(t, manager.ManageUsers)
	assert.False(t, manager.ViewAudit)

	content := domain.Permissions(domain.RoleContentManager)
	assert.True(t, content.ManageContent)
	assert.False(t, content.Delete)

	cashier := domain.Permissions(domain.RoleCashier)
	assert.True(t, cashier.Create)
	assert.False(t, cashier.ManageContent)

	viewer := domain.Permissions(domain.RoleViewer)
	assert.True(t, viewer.View)
	assert.False(t, viewer.Create)
}
