package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamhub/project-management-api/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       7,
		Username: "alice",
		Role:     models.Role{ID: 2, Name: models.RoleManager},
	}
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager("", time.Minute)
	assert.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	mgr, err := NewManager("test-secret", 30*time.Minute)
	require.NoError(t, err)

	signed, err := mgr.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	actor, err := mgr.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), actor.UserID)
	assert.Equal(t, "alice", actor.Username)
	assert.Equal(t, models.RoleManager, actor.Role)
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	mgr, err := NewManager("test-secret", 30*time.Minute)
	require.NoError(t, err)
	other, err := NewManager("another-secret", 30*time.Minute)
	require.NoError(t, err)

	signed, err := mgr.Issue(testUser())
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsGarbage(t *testing.T) {
	mgr, err := NewManager("test-secret", 30*time.Minute)
	require.NoError(t, err)

	_, err = mgr.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsExpired(t *testing.T) {
	mgr, err := NewManager("test-secret", 30*time.Minute)
	require.NoError(t, err)
	mgr.expiry = -time.Hour

	signed, err := mgr.Issue(testUser())
	require.NoError(t, err)

	_, err = mgr.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "case insensitive scheme", header: "bearer abc", want: "abc"},
		{name: "empty header", header: "", wantErr: ErrEmptyHeader},
		{name: "missing token", header: "Bearer ", wantErr: ErrBadHeader},
		{name: "wrong scheme", header: "Basic abc", wantErr: ErrBadHeader},
		{name: "no scheme", header: "abc", wantErr: ErrBadHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
