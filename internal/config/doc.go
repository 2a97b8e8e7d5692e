// Package config loads the daemon configuration.
//
// Configuration lives in one TOML file, by default
// $XDG_CONFIG_HOME/glidekbd/config.toml, with a section per subsystem:
//
//	[gesture]
//	hold_term_ms = 500
//	swipe_min_distance = 5.0
//	swipe_angle_tolerance = 15.0
//	swipe_min_increment = 5.0
//
//	[pointer]
//	base_scale = 2.0
//	scroll_step = 10
//
//	[backend]
//	kind = "wayland"
//
//	[layout]
//	path = ""
//
//	[tui]
//	px_per_cell = 10.0
//
//	[control]
//	socket = ""
//	dbus = true
//
//	[log]
//	level = "info"
//	format = "text"
//	output = "stderr"
//
// A missing file is not an error; every setting has a default. A file
// that exists but does not validate is fatal.
package config
