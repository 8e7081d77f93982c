package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm"     validate:"required"`
	Task    TaskConfig    `mapstructure:"task"    validate:"required"`
	Speech  SpeechConfig  `mapstructure:"speech"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig contains the durable storage settings. The engine owns a
// single local database file.
type StorageConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LLMConfig contains the content provider settings.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName         string `mapstructure:"model_name"     validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries"        validate:"gte=0,lte=10"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0,lte=60"`

	// TimeoutSeconds bounds every provider call. A stalled call is
	// treated as a generation failure once the bound expires.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gt=0,lte=300"`
}

// TaskConfig contains the background ingestion worker settings.
type TaskConfig struct {
	QueueSize   int `mapstructure:"queue_size"   validate:"gt=0,lte=1000"`
	WorkerCount int `mapstructure:"worker_count" validate:"gt=0,lte=32"`
}

// SpeechConfig contains the text-to-speech settings. Speech is optional;
// an empty command disables it.
type SpeechConfig struct {
	Command string `mapstructure:"command"`
}
