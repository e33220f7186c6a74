package log

// Config controls the slog JSON handler set up in cmd/run.go.
type Config struct {
	Level     int  `mapstructure:"level"`
	AddSource bool `mapstructure:"add_source"`
}
