// Package config loads and validates the drizzle configuration file.
package config

// Backend names.
const (
	BackendTcell = "tcell"
	BackendANSI  = "ansi"
)

// Scene configures the weather animation.
type Scene struct {
	Kind       string  `yaml:"kind"`
	Density    float64 `yaml:"density"`
	Seed       uint64  `yaml:"seed"`
	WindPeriod int     `yaml:"wind_period"`
}

// Display configures what is drawn around the scene.
type Display struct {
	ShowStatus bool `yaml:"show_status"`
}

// Queue configures the event queue between producers and the scheduler.
type Queue struct {
	Capacity int `yaml:"capacity"`
}

// Log configures diagnostics. With no file, logging is discarded while the
// terminal is captured.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// Config represents the drizzle config.yaml file.
type Config struct {
	FPS     float64 `yaml:"fps"`
	TPS     float64 `yaml:"tps"`
	Backend string  `yaml:"backend"`
	Scene   Scene   `yaml:"scene"`
	Display Display `yaml:"display"`
	Queue   Queue   `yaml:"queue"`
	Log     Log     `yaml:"log"`
}
