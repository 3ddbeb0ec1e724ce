package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the host application configuration.
type Config struct {
	Flags     FlagsConfig     `yaml:"flags"`
	Serial    SerialConfig    `yaml:"serial"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Mock      MockConfig      `yaml:"mock"`
}

// FlagsConfig contains optional overrides for the build-time output
// switches. Fields are pointers so that an absent key keeps the
// build-time default while an explicit `false` in the file sticks.
// The config switch itself is not listed here: the file is only read
// because that switch is on.
type FlagsConfig struct {
	PrintInfo *bool `yaml:"print_info"`
	PrintData *bool `yaml:"print_data"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// TelemetryConfig contains telemetry display parameters.
type TelemetryConfig struct {
	Period      time.Duration `yaml:"period"`       // Telemetry period pushed to the robot on connect (0 = leave firmware default)
	StatsWindow int           `yaml:"stats_window"` // Data samples per stats summary line (0 = no summaries)
}

// MockConfig contains mock robot configuration.
type MockConfig struct {
	SampleRate   time.Duration `yaml:"sample_rate"`   // Time between telemetry lines
	InfoPeriod   time.Duration `yaml:"info_period"`   // Time between heartbeat info lines
	BatteryVolts float32       `yaml:"battery_volts"` // Simulated pack voltage (V)
	NoiseLevel   float32       `yaml:"noise_level"`   // Noise level on telemetry values (V)
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "/dev/ttyACM0", // "COM3" on Windows
			BaudRate: 115200,
		},
		Telemetry: TelemetryConfig{
			Period:      100 * time.Millisecond,
			StatsWindow: 50,
		},
		Mock: MockConfig{
			SampleRate:   100 * time.Millisecond,
			InfoPeriod:   5 * time.Second,
			BatteryVolts: 7.4, // 2S pack
			NoiseLevel:   0.01,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist
// or fields are missing, it uses default values. In builds where the
// configuration subsystem is disabled the file is never read and pure
// defaults are returned.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if !DefaultEnableConfig {
		return cfg, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values
// if missing. Flag pointers are deliberately left alone: nil means
// "use the build-time default" and is resolved by ResolvedFlags.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Telemetry.Period == 0 {
		c.Telemetry.Period = def.Telemetry.Period
	}
	if c.Telemetry.StatsWindow == 0 {
		c.Telemetry.StatsWindow = def.Telemetry.StatsWindow
	}

	if c.Mock.SampleRate == 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
	if c.Mock.InfoPeriod == 0 {
		c.Mock.InfoPeriod = def.Mock.InfoPeriod
	}
	if c.Mock.BatteryVolts == 0 {
		c.Mock.BatteryVolts = def.Mock.BatteryVolts
	}
	if c.Mock.NoiseLevel == 0 {
		c.Mock.NoiseLevel = def.Mock.NoiseLevel
	}
}
