package notify

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTargetFile(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

func TestConfigCache_Run(t *testing.T) {
	dir := t.TempDir()

	writeTargetFile(t, dir, "canteen.yml", `
url: https://example.com/webhook/1
persona:
  name: Chef Stan-dwich
  avatar_url: https://example.com/avatar.png
settings:
  enabled: true
  mention: "@everyone"
`)
	writeTargetFile(t, dir, "staging.yml", `
url: https://example.com/webhook/2
settings:
  enabled: false
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cache.GetTargetCount() != 2 {
		t.Errorf("Expected 2 targets, got: %d", cache.GetTargetCount())
	}

	enabled := cache.GetEnabledTargets()
	if len(enabled) != 1 {
		t.Fatalf("Expected 1 enabled target, got: %d", len(enabled))
	}
	if _, ok := enabled["canteen"]; !ok {
		t.Error("Expected 'canteen' to be enabled")
	}
}

func TestConfigCache_Defaults(t *testing.T) {
	dir := t.TempDir()

	writeTargetFile(t, dir, "minimal.yml", `
url: https://example.com/webhook
settings:
  enabled: true
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	target, err := cache.GetTarget("minimal")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if target.Persona.Name != "Chef Stan-dwich" {
		t.Errorf("Expected default persona name, got: %s", target.Persona.Name)
	}
	if target.Settings.Greeting != "This is today's menu:" {
		t.Errorf("Expected default greeting, got: %s", target.Settings.Greeting)
	}
}

func TestConfigCache_MissingURL(t *testing.T) {
	dir := t.TempDir()

	writeTargetFile(t, dir, "broken.yml", `
settings:
  enabled: true
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err == nil {
		t.Error("Expected error for target without webhook URL")
	}
}

func TestConfigCache_MissingDirectory(t *testing.T) {
	cache := NewConfigCache("/nonexistent/targets")
	if err := cache.Run(); err != nil {
		t.Errorf("Expected missing directory to be tolerated, got: %v", err)
	}
	if cache.GetTargetCount() != 0 {
		t.Errorf("Expected no targets, got: %d", cache.GetTargetCount())
	}
}

func TestConfigCache_GetUnknownTarget(t *testing.T) {
	cache := NewConfigCache(t.TempDir())

	if _, err := cache.GetTarget("nope"); err == nil {
		t.Error("Expected error for unknown target")
	}
}
