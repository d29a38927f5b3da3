package shortcuts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yaoapp/gou/application"
)

func prepareApp(t *testing.T, dir string) {
	app, err := application.OpenFromDisk(dir)
	if err != nil {
		t.Fatalf("open app: %v", err)
	}
	application.Load(app)
}

func writeFixtures(t *testing.T, dir string) {
	menus := `<shortcuts>
  <menu name="mainmenu">
    <item name="movies"><label>Movies</label></item>
  </menu>
</shortcuts>`
	if err := os.WriteFile(filepath.Join(dir, "menus.xml"), []byte(menus), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "userdata.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)
	prepareApp(t, dir)

	cfg := Config{
		ShortcutsDir:    dir,
		UserDataPath:    filepath.Join(dir, "userdata.json"),
		OutputPaths:     []string{filepath.Join(dir, "out.xml")},
		FingerprintPath: filepath.Join(dir, "fingerprint.json"),
		ScriptVersion:   "1",
	}

	ok, err := Build(cfg, true)
	assert.NoError(t, err)
	assert.True(t, ok)

	data, err := os.ReadFile(filepath.Join(dir, "out.xml"))
	assert.NoError(t, err)
	assert.Contains(t, string(data), "skinshortcuts-mainmenu")
}

func TestBuildSkipsWhenFingerprintUnchanged(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)
	prepareApp(t, dir)

	cfg := Config{
		ShortcutsDir:    dir,
		UserDataPath:    filepath.Join(dir, "userdata.json"),
		OutputPaths:     []string{filepath.Join(dir, "out.xml")},
		FingerprintPath: filepath.Join(dir, "fingerprint.json"),
		ScriptVersion:   "1",
	}

	_, err := Build(cfg, true)
	assert.NoError(t, err)

	sentinel := "<!-- untouched -->"
	if err := os.WriteFile(filepath.Join(dir, "out.xml"), []byte(sentinel), 0o644); err != nil {
		t.Fatal(err)
	}

	ok, err := Build(cfg, false)
	assert.NoError(t, err)
	assert.True(t, ok)

	data, err := os.ReadFile(filepath.Join(dir, "out.xml"))
	assert.NoError(t, err)
	assert.Equal(t, sentinel, string(data))
}

func TestResetMenusClearsOverridesOnly(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)
	prepareApp(t, dir)

	overrideJSON := `{"menus":{"mainmenu":{"items":[{"name":"movies","label":"Films"}]}},"views":{"library":{"movies":"50"}}}`
	userDataPath := filepath.Join(dir, "userdata.json")
	if err := os.WriteFile(userDataPath, []byte(overrideJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Config{
		ShortcutsDir:    dir,
		UserDataPath:    userDataPath,
		OutputPaths:     []string{filepath.Join(dir, "out.xml")},
		FingerprintPath: filepath.Join(dir, "fingerprint.json"),
	}

	ok, err := ResetMenus(cfg)
	assert.NoError(t, err)
	assert.True(t, ok)

	data, err := os.ReadFile(userDataPath)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "library")
	assert.NotContains(t, string(data), "Films")
}
