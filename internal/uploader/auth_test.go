package uploader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"texsync/internal/uploader"
	"texsync/testutils"
)

func TestClassifyAuthState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		visible  map[string]bool
		expected uploader.AuthState
	}{
		{
			name:     "no login fields means session still valid",
			visible:  map[string]bool{},
			expected: uploader.AuthNotRequired,
		},
		{
			name:     "password field present",
			visible:  map[string]bool{passwordSelector: true},
			expected: uploader.AuthRequired,
		},
		{
			name:     "email field present",
			visible:  map[string]bool{emailSelector: true},
			expected: uploader.AuthRequired,
		},
		{
			name: "both login fields present",
			visible: map[string]bool{
				emailSelector:    true,
				passwordSelector: true,
			},
			expected: uploader.AuthRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page := &testutils.FakePage{VisibleSelectors: tt.visible}

			state, err := uploader.ClassifyAuthState(page)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, state)
		})
	}
}

func TestAuthState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "auth_required", uploader.AuthRequired.String())
	assert.Equal(t, "auth_not_required", uploader.AuthNotRequired.String())
	assert.Equal(t, "unknown", uploader.AuthUnknown.String())
}
