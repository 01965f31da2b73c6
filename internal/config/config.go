// Package config defines the santa command's configuration and how it is
// layered from defaults, an optional YAML file and the environment.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// OutputDir is where result files are written.
	OutputDir string `koanf:"output_dir"`

	// OutputPrefix starts every result file name, before the timestamp.
	OutputPrefix string `koanf:"output_prefix"`

	// FoldCase compares participant identifiers case-insensitively.
	FoldCase bool `koanf:"fold_case"`

	// StrictPrevious makes an unreadable or invalid prior-period file an
	// error instead of being ignored.
	StrictPrevious bool `koanf:"strict_previous"`

	// MetricsFile, when set, receives run metrics in Prometheus text format.
	MetricsFile string `koanf:"metrics_file"`

	// Aliases maps identifiers used in earlier periods to current ones.
	Aliases []Alias `koanf:"aliases"`
}

// Alias renames an identifier. Kept as a list rather than a map because
// koanf splits map keys on "." and identifiers are email addresses.
type Alias struct {
	From string `koanf:"from"`
	To   string `koanf:"to"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		OutputDir:    ".",
		OutputPrefix: "secret_santa_result",
		FoldCase:     true,
	}
}
