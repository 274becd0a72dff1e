package twitterreverse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwitterAuth_Valid(t *testing.T) {
	assert.True(t, NewTwitterAuth("token", "csrf").Valid())
	assert.False(t, NewTwitterAuth("", "csrf").Valid())
	assert.False(t, NewTwitterAuth("token", "").Valid())

	var nilAuth *TwitterAuth
	assert.False(t, nilAuth.Valid())
}

func TestLoadAuth(t *testing.T) {
	t.Run("FromEnvJSON", func(t *testing.T) {
		auth := LoadAuth(`{"auth_token": "tok", "ct0": "csrf"}`, "")
		require.NotNil(t, auth)
		assert.Equal(t, "tok", auth.AuthToken)
		assert.Equal(t, "csrf", auth.CSRFToken)
	})

	t.Run("FromCookieFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cookies.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"auth_token": "filetok", "ct0": "filecsrf"}`), 0600))

		auth := LoadAuth("", path)
		require.NotNil(t, auth)
		assert.Equal(t, "filetok", auth.AuthToken)
	})

	t.Run("EnvBeatsFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cookies.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"auth_token": "filetok", "ct0": "filecsrf"}`), 0600))

		auth := LoadAuth(`{"auth_token": "envtok", "ct0": "envcsrf"}`, path)
		require.NotNil(t, auth)
		assert.Equal(t, "envtok", auth.AuthToken)
	})

	t.Run("InvalidEnvFallsBackToFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cookies.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"auth_token": "filetok", "ct0": "filecsrf"}`), 0600))

		auth := LoadAuth("not json at all", path)
		require.NotNil(t, auth)
		assert.Equal(t, "filetok", auth.AuthToken)
	})

	t.Run("NothingUsable", func(t *testing.T) {
		assert.Nil(t, LoadAuth("", filepath.Join(t.TempDir(), "missing.json")))
		assert.Nil(t, LoadAuth(`{"auth_token": "", "ct0": ""}`, ""))
		assert.Nil(t, LoadAuth("", ""))
	})
}
