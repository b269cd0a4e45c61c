package notify

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type ConfigCache struct {
	targetsDir string
	cache      map[string]*Target
	mu         sync.RWMutex
}

func NewConfigCache(targetsDir string) *ConfigCache {
	return &ConfigCache{
		targetsDir: targetsDir,
		cache:      make(map[string]*Target),
	}
}

func (cc *ConfigCache) Run() error {
	if _, err := os.Stat(cc.targetsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.targetsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		targetName := strings.TrimSuffix(filepath.Base(file), ".yml")

		target, err := cc.LoadTarget(targetName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Target configuration loaded", "target", targetName, "enabled", target.Settings.Enabled)
	}

	return nil
}

func (cc *ConfigCache) LoadTarget(targetName string) (*Target, error) {
	configFile := filepath.Join(cc.targetsDir, targetName+".yml")

	target, err := cc.parseTarget(configFile)
	if err != nil {
		return nil, err
	}

	// Set target name from parameter
	target.Name = targetName

	if err := cc.validateTarget(target); err != nil {
		return nil, fmt.Errorf("invalid target config %s: %w", configFile, err)
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[target.Name] = target

	return target, nil
}

func (cc *ConfigCache) GetTarget(targetName string) (*Target, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	target, ok := cc.cache[targetName]
	if !ok {
		return nil, fmt.Errorf("target config with name '%s' not found", targetName)
	}
	return target, nil
}

func (cc *ConfigCache) GetTargets() map[string]*Target {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	targetsCopy := make(map[string]*Target, len(cc.cache))
	for k, v := range cc.cache {
		targetsCopy[k] = v
	}
	return targetsCopy
}

func (cc *ConfigCache) GetEnabledTargets() map[string]*Target {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	enabledTargets := make(map[string]*Target)
	for k, v := range cc.cache {
		if v.Settings.Enabled {
			enabledTargets[k] = v
		}
	}
	return enabledTargets
}

func (cc *ConfigCache) GetTargetCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func (cc *ConfigCache) parseTarget(configFile string) (*Target, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var target Target
	if err := yaml.Unmarshal(data, &target); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if target.Persona.Name == "" {
		target.Persona.Name = "Chef Stan-dwich"
	}
	if target.Settings.Greeting == "" {
		target.Settings.Greeting = "This is today's menu:"
	}

	return &target, nil
}

func (cc *ConfigCache) validateTarget(target *Target) error {
	if target == nil {
		return fmt.Errorf("target is nil")
	}

	if target.Name == "" {
		return fmt.Errorf("target name is required")
	}
	if target.URL == "" {
		return fmt.Errorf("target webhook URL is required")
	}

	return nil
}
