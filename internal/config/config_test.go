package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at an empty temp dir
func isolate(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestInitDefaults(t *testing.T) {
	isolate(t)
	require.NoError(t, Init())

	assert.Equal(t, "", GetDir())
	assert.Equal(t, 1000, GetMaxIncludeFiles())
	assert.Equal(t, "", GetOutput())
	assert.Equal(t, "warn", GetLogLevel())
	assert.Equal(t, "32", GetRoleColor("user"))
	assert.Equal(t, "36", GetRoleColor("assistant"))
	assert.Equal(t, "33", GetRoleColor("system"))
	assert.Equal(t, "35", GetRoleColor("critic"))
	assert.Equal(t, 1000, C.MaxIncludeFiles)
}

func TestInitFromFile(t *testing.T) {
	dir := isolate(t)
	content := "max_include_files: 5\noutput: yaml\ncolor_user: \"99\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chatmd.yaml"), []byte(content), 0o644))

	require.NoError(t, Init())

	assert.Equal(t, 5, GetMaxIncludeFiles())
	assert.Equal(t, "yaml", GetOutput())
	assert.Equal(t, "99", GetRoleColor("user"))
	assert.Equal(t, "yaml", C.Output)
}

func TestInitFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("CHATMD_MAX_INCLUDE_FILES", "7")
	t.Setenv("CHATMD_LOG_LEVEL", "debug")

	require.NoError(t, Init())

	assert.Equal(t, 7, GetMaxIncludeFiles())
	assert.Equal(t, "debug", GetLogLevel())
}

func TestSetters(t *testing.T) {
	isolate(t)
	require.NoError(t, Init())

	SetOutput("json")
	SetMaxIncludeFiles(3)
	SetLogLevel("info")
	SetDir("/tmp/chats")

	assert.Equal(t, "json", GetOutput())
	assert.Equal(t, 3, GetMaxIncludeFiles())
	assert.Equal(t, "info", GetLogLevel())
	assert.Equal(t, "/tmp/chats", GetDir())
	assert.Equal(t, "json", C.Output)
}

func TestExpandTilde(t *testing.T) {
	home := isolate(t)

	assert.Equal(t, filepath.Join(home, "chats"), expandTilde("~/chats"))
	assert.Equal(t, "/abs", expandTilde("/abs"))
	assert.Equal(t, "", expandTilde(""))
}
