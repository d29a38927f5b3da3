package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	vars := []string{
		"SKINSHORTCUTS_ROOT", "SKINSHORTCUTS_MODE", "SKINSHORTCUTS_DIR",
		"SKINSHORTCUTS_USERDATA", "SKINSHORTCUTS_OUTPUT", "SKINSHORTCUTS_FINGERPRINT",
		"SKINSHORTCUTS_SCRIPT_VERSION", "SKINSHORTCUTS_SKIN_DIR", "SKINSHORTCUTS_HOST_VERSION",
		"SKINSHORTCUTS_LOG", "SKINSHORTCUTS_LOG_LEVEL", "SKINSHORTCUTS_LOG_MODE",
	}
	for _, v := range vars {
		original, had := os.LookupEnv(v)
		os.Unsetenv(v)
		t.Cleanup(func() {
			if had {
				os.Setenv(v, original)
			}
		})
	}
}

func TestLoadWithRootResolvesRelativePaths(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()

	cfg := LoadWithRoot(root)

	absRoot, _ := filepath.Abs(root)
	assert.Equal(t, absRoot, cfg.Root)
	assert.Equal(t, filepath.Join(absRoot, "shortcuts"), cfg.ShortcutsDir)
	assert.Equal(t, filepath.Join(absRoot, "userdata.json"), cfg.UserDataFile)
	assert.Equal(t, filepath.Join(absRoot, ".skinshortcuts.hash"), cfg.FingerprintFile)
	assert.Equal(t, []string{filepath.Join(absRoot, "includes.xml")}, cfg.OutputPaths)
}

func TestLoadWithRootHonorsAbsoluteOverrides(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	os.Setenv("SKINSHORTCUTS_DIR", "/absolute/shortcuts")

	cfg := LoadWithRoot(root)
	assert.Equal(t, "/absolute/shortcuts", cfg.ShortcutsDir)
}

func TestLoadWithRootParsesMultipleOutputPaths(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	os.Setenv("SKINSHORTCUTS_OUTPUT", "a.xml,b.xml")

	cfg := LoadWithRoot(root)
	absRoot, _ := filepath.Abs(root)
	assert.Equal(t, []string{
		filepath.Join(absRoot, "a.xml"),
		filepath.Join(absRoot, "b.xml"),
	}, cfg.OutputPaths)
}

func TestLoadDefaultsScriptVersion(t *testing.T) {
	clearEnv(t)
	cfg := LoadWithRoot(t.TempDir())
	assert.Equal(t, "1.0.0", cfg.ScriptVersion)
}

func TestLoadFromOverridesEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	contents := "SKINSHORTCUTS_SCRIPT_VERSION=9.9.9\nSKINSHORTCUTS_SKIN_DIR=/skins/confluence\n"
	if err := os.WriteFile(envFile, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadFromWithRoot(envFile, dir)

	assert.Equal(t, "9.9.9", cfg.ScriptVersion)
	assert.Equal(t, "/skins/confluence", cfg.SkinDir)
}

func TestIsDevelopmentReflectsMode(t *testing.T) {
	clearEnv(t)
	Conf.Mode = "development"
	assert.True(t, IsDevelopment())
	Conf.Mode = "production"
	assert.False(t, IsDevelopment())
}
