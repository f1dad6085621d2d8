package logger

// Recognized values for ZAP_LOGGER_LEVEL. Anything else falls back to info,
// which is what the worker runs at in production.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

type Config struct {
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`
}
