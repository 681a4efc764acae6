package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (TAGDUMP_*).
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", os.Getenv("TAGDUMP_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("output", os.Getenv("TAGDUMP_OUTPUT"), &cfg.Output)
	s.setBoolFromString("strict", os.Getenv("TAGDUMP_STRICT"), &cfg.Strict)
	s.setBoolFromString("ignore-warnings", os.Getenv("TAGDUMP_IGNORE_WARNINGS"), &cfg.IgnoreWarnings)

	if err := s.setIntFromString("concurrency", os.Getenv("TAGDUMP_CONCURRENCY"), &cfg.Concurrency); err != nil {
		return err
	}
	return s.setDuration("debounce", os.Getenv("TAGDUMP_DEBOUNCE"), &cfg.Debounce)
}
