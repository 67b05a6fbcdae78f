package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	assert.Equal(t, "javpy", Name)
	assert.Equal(t, ".jvp", Extension)
	assert.NotEmpty(t, Description)
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	require.NoError(t, err)

	assert.Equal(t, strings.TrimSpace(string(buf)), Version)
	assert.NotContains(t, Version, "\n")
}

func TestErrorChain(t *testing.T) {
	err := ErrInvalidExtension.Wrapf("%q", "hello.txt")

	assert.Equal(t, `invalid file extension: "hello.txt"`, err.Error())
	assert.ErrorIs(t, err, ErrInvalidExtension)
	assert.NotErrorIs(t, err, ErrFileNotFound)

	// Wrapping never mutates the sentinel.
	assert.Len(t, ErrInvalidExtension, 1)
	assert.Equal(t, "invalid file extension", ErrInvalidExtension.Error())
}

func TestErrorWrapKeepsCause(t *testing.T) {
	cause := os.ErrNotExist
	err := ErrReadSource.Wrap(cause)

	assert.ErrorIs(t, err, ErrReadSource)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUnwrapErrors(t *testing.T) {
	inner := errors.New("inner")
	outer := errors.Join(inner, errors.New("sibling"))

	chain := UnwrapErrors(outer)
	require.Len(t, chain, 3)
	assert.Equal(t, inner, chain[0])
	assert.Nil(t, UnwrapErrors(nil))
	assert.Nil(t, MakeError())
}

func TestDirectories(t *testing.T) {
	assert.Equal(t, Name, filepath.Base(ConfigDir()))
	assert.Equal(t, Name, filepath.Base(CacheDir()))
}

func TestUserDir(t *testing.T) {
	base := t.TempDir()
	fail := func() (string, error) { return "", errors.New("unknown base") }
	found := func() (string, error) { return base, nil }

	t.Run("env_override", func(t *testing.T) {
		t.Setenv(ConfigDirEnv, base+"/custom/")
		assert.Equal(t, filepath.Join(base, "custom"), userDir(ConfigDirEnv, found, ".config"))
	})

	t.Run("platform_base", func(t *testing.T) {
		t.Setenv(CacheDirEnv, "")
		assert.Equal(t, filepath.Join(base, Name), userDir(CacheDirEnv, found, ".cache"))
	})

	t.Run("home_fallback", func(t *testing.T) {
		t.Setenv(CacheDirEnv, "")
		t.Setenv("HOME", base)
		assert.Equal(t, filepath.Join(base, ".cache", Name), userDir(CacheDirEnv, fail, ".cache"))
	})

	t.Run("working_directory_fallback", func(t *testing.T) {
		t.Setenv(CacheDirEnv, "")
		t.Setenv("HOME", "")
		t.Chdir(base)

		wd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(wd, Name), userDir(CacheDirEnv, fail, ".cache"))
	})
}
