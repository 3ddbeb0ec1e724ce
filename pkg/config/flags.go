package config

// Flags is the resolved set of output switches handed to the rest of
// the application. It is a plain struct so tests can construct any
// combination without touching build tags or config files.
type Flags struct {
	PrintInfo    bool // Emit the robot's "I ..." status lines
	PrintData    bool // Emit the robot's "D,..." telemetry lines
	EnableConfig bool // Configuration subsystem (file + runtime commands) active
}

// DefaultFlags returns the build-time flag defaults.
func DefaultFlags() Flags {
	return Flags{
		PrintInfo:    DefaultPrintInfo,
		PrintData:    DefaultPrintData,
		EnableConfig: DefaultEnableConfig,
	}
}

// ResolvedFlags resolves the effective flags for this process: the
// build-time defaults with any file overrides applied on top.
func (c *Config) ResolvedFlags() Flags {
	f := DefaultFlags()

	if c.Flags.PrintInfo != nil {
		f.PrintInfo = *c.Flags.PrintInfo
	}
	if c.Flags.PrintData != nil {
		f.PrintData = *c.Flags.PrintData
	}

	return f
}
