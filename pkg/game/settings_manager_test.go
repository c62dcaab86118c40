package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时目录中打开 gdata
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings.Fullscreen || settings.ShowHitboxes {
		t.Errorf("unexpected defaults: %+v", settings)
	}
}

func TestSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	if !sm.ToggleHitboxes() {
		t.Error("ToggleHitboxes() should enable the overlay")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode error: %v", err)
	}
}

func TestSettingsPersistence(t *testing.T) {
	m := openTestGdata(t, "crazyroad_test_settings")

	sm, err := NewSettingsManager(m)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	sm.SetFullscreen(true)
	sm.ToggleHitboxes()
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded, err := NewSettingsManager(m)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	got := reloaded.GetSettings()
	if !got.Fullscreen || !got.ShowHitboxes {
		t.Errorf("settings not persisted: %+v", got)
	}
}

func TestSettingsCorruptDataFallsBack(t *testing.T) {
	m := openTestGdata(t, "crazyroad_test_settings_corrupt")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("fullscreen: [")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, _ := NewSettingsManager(m)
	if err := sm.Load(); err == nil {
		t.Error("Load() should report corrupt data")
	}
	if sm.GetSettings().Fullscreen {
		t.Error("corrupt data should fall back to defaults")
	}
}
