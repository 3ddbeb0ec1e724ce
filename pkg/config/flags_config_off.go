//go:build noconfig

package config

// In noconfig builds the configuration subsystem is inert: Load never
// touches the file and no configuration commands are sent to the
// robot. Everything runs on baked-in defaults.
const DefaultEnableConfig = false
