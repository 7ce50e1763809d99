// Package config provides configuration for the Text Magic editor.
//
// Settings are resolved in three layers, later layers overriding earlier
// ones:
//
//  1. Built-in defaults (Default)
//  2. A configuration file in TOML (.toml) or YAML (.yaml, .yml) format
//  3. TEXTMAGIC_* environment variables
//
// Command-line flags are applied on top by the caller, which then calls
// Validate.
//
// Example TOML file:
//
//	[editor]
//	tab_stop = 8
//	word_wrap = false
//
//	[ui]
//	message_timeout = "3s"
//	backend = "ansi"
//
//	[log]
//	level = "debug"
package config
