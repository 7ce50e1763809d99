package config

import (
	"fmt"
	"strconv"
	"time"
)

// EnvPrefix is the prefix of environment variables read by ApplyEnv.
const EnvPrefix = "TEXTMAGIC_"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envSetting binds one environment variable to a setting.
type envSetting struct {
	name  string
	apply func(c *Config, value string) error
}

var envSettings = []envSetting{
	{"TAB_STOP", func(c *Config, v string) error { return setInt(&c.Editor.TabStop, v) }},
	{"WORD_WRAP", func(c *Config, v string) error { return setBool(&c.Editor.WordWrap, v) }},
	{"WIDE_THRESHOLD", func(c *Config, v string) error { return setInt(&c.Editor.WideThreshold, v) }},
	{"MESSAGE_TIMEOUT", func(c *Config, v string) error { return setDuration(&c.UI.MessageTimeout, v) }},
	{"IDLE_INTERVAL", func(c *Config, v string) error { return setDuration(&c.UI.IdleInterval, v) }},
	{"QUIT_ATTEMPTS", func(c *Config, v string) error { return setInt(&c.UI.QuitAttempts, v) }},
	{"BACKEND", func(c *Config, v string) error { c.UI.Backend = v; return nil }},
	{"CRASH_NAME", func(c *Config, v string) error { c.Files.CrashName = v; return nil }},
	{"WATCH", func(c *Config, v string) error { return setBool(&c.Files.Watch, v) }},
	{"LOG_LEVEL", func(c *Config, v string) error { c.Log.Level = v; return nil }},
	{"LOG_PATH", func(c *Config, v string) error { c.Log.Path = v; return nil }},
}

// ApplyEnv overrides settings from TEXTMAGIC_* variables found by lookup.
// Empty string values are treated as valid values, not as unset.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	for _, s := range envSettings {
		name := EnvPrefix + s.name
		value, ok := lookup(name)
		if !ok {
			continue
		}
		if err := s.apply(c, value); err != nil {
			return fmt.Errorf("%s=%q: %w", name, value, err)
		}
	}
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return ErrInvalidValue
	}
	*dst = n
	return nil
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return ErrInvalidValue
	}
	*dst = b
	return nil
}

func setDuration(dst *Duration, v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return ErrInvalidValue
	}
	*dst = Duration(d)
	return nil
}
