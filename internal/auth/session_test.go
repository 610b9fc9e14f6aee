package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/bednights/internal/common"
)

func TestNew_RoleFallback(t *testing.T) {
	tests := []struct {
		name        string
		role        string
		defaultRole string
		want        string
	}{
		{name: "explicit role", role: "Admin", defaultRole: "viewer", want: RoleAdmin},
		{name: "configured default", role: "", defaultRole: "admin", want: RoleAdmin},
		{name: "never implicit admin", role: " ", defaultRole: "", want: RoleViewer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("tok", tt.role, "a@b.c", tt.defaultRole)
			assert.Equal(t, tt.want, s.Role)
		})
	}
}

func TestSession_RequireAdmin(t *testing.T) {
	assert.NoError(t, New("t", "admin", "", "").RequireAdmin())

	err := New("t", "editor", "", "").RequireAdmin()
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.False(t, New("t", "", "", "").CanMutate())
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, RequireAdminContext(context.Background()), common.ErrForbidden)

	ctx := WithSession(context.Background(), New("t", "admin", "ops@example.com", ""))
	s, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "ops@example.com (admin)", s.String())
	assert.NoError(t, RequireAdminContext(ctx))
}
