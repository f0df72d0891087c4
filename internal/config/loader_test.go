package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, filename string, content FixrunConfig) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	tempFilePath := filepath.Join(dir, filename)
	data, err := yaml.Marshal(&content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(tempFilePath, data, 0644))
	return tempFilePath
}

// mockConfigPaths points both config layers into dir and restores them afterwards.
func mockConfigPaths(t *testing.T, dir string) {
	t.Helper()
	originalGetUserConfigPath := getUserConfigPath
	originalGetProjectConfigPath := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalGetUserConfigPath
		getProjectConfigPath = originalGetProjectConfigPath
	})

	getUserConfigPath = func() (string, error) {
		return filepath.Join(dir, userConfigDir, configFileName), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(dir, projectConfigDir, configFileName), nil
	}
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	mockConfigPaths(t, t.TempDir())

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), loadedConfig)
}

func TestLoadConfig_UserOverride(t *testing.T) {
	tempDir := t.TempDir()
	mockConfigPaths(t, tempDir)

	createTempConfigFile(t, filepath.Join(tempDir, userConfigDir), configFileName, FixrunConfig{
		Program: "./build/interpreter",
		Color:   true,
	})

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "./build/interpreter", loadedConfig.Program)
	assert.True(t, loadedConfig.Color)
	// Untouched fields keep their defaults
	assert.Equal(t, "./testcases", loadedConfig.FixtureDir)
	assert.Equal(t, "valgrind", loadedConfig.Wrapper)
}

func TestLoadConfig_ProjectOverridesUser(t *testing.T) {
	tempDir := t.TempDir()
	mockConfigPaths(t, tempDir)

	createTempConfigFile(t, filepath.Join(tempDir, userConfigDir), configFileName, FixrunConfig{
		Program:       "./user-interpreter",
		VerbosityMode: VerbosityModeLevel,
	})
	createTempConfigFile(t, filepath.Join(tempDir, projectConfigDir), configFileName, FixrunConfig{
		Program: "./project-interpreter",
		Wrapper: "memcheck",
	})

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "./project-interpreter", loadedConfig.Program)
	assert.Equal(t, "memcheck", loadedConfig.Wrapper)
	assert.Equal(t, VerbosityModeLevel, loadedConfig.VerbosityMode)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	mockConfigPaths(t, tempDir)

	dir := filepath.Join(tempDir, projectConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("program: [unterminated"), 0644))

	_, err := LoadConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error loading project config")
}

func TestLoadConfig_InvalidVerbosityMode(t *testing.T) {
	tempDir := t.TempDir()
	mockConfigPaths(t, tempDir)

	createTempConfigFile(t, filepath.Join(tempDir, projectConfigDir), configFileName, FixrunConfig{
		VerbosityMode: "chatty",
	})

	_, err := LoadConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "verbosityMode")
}

func TestLoadConfigFromFile_ExpandsEnv(t *testing.T) {
	t.Setenv("FIXRUN_TEST_BIN", "/opt/bin/interpreter")

	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	content := "program: ${FIXRUN_TEST_BIN}\nfixtureDir: ${FIXRUN_TEST_UNSET:-./fixtures}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := loadConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/bin/interpreter", cfg.Program)
	assert.Equal(t, "./fixtures", cfg.FixtureDir)
}

func TestGetUserConfigDir(t *testing.T) {
	originalOsUserHomeDir := osUserHomeDir
	defer func() { osUserHomeDir = originalOsUserHomeDir }()
	osUserHomeDir = func() (string, error) { return "/home/dev", nil }

	dir, err := GetUserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/dev", ".config", "fixrun"), dir)
}
