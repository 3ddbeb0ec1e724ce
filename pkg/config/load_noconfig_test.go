//go:build noconfig

package config

// Run with: go test -tags noconfig ./pkg/config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFlags_NoConfig(t *testing.T) {
	assert.False(t, DefaultFlags().EnableConfig)
}

// With the configuration subsystem compiled out, Load must return
// pure defaults without ever reading the file.
func TestLoad_ConfigSubsystemDisabled(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
flags:
  print_info: false
  print_data: false

serial:
  port: "/dev/ttyUSB0"
  baud_rate: 57600
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Every override in the file is ignored
	assert.Equal(t, Default(), cfg)
	assert.Nil(t, cfg.Flags.PrintInfo)
	assert.Nil(t, cfg.Flags.PrintData)
	assert.Equal(t, Default().Serial.Port, cfg.Serial.Port)

	assert.False(t, cfg.ResolvedFlags().EnableConfig)
}

// Even an unreadable path is irrelevant when the file is never opened.
func TestLoad_ConfigSubsystemDisabled_BadPath(t *testing.T) {
	cfg, err := Load(string([]byte{0}))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
