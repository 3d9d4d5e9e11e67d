package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	LLM      LLMConfig      `yaml:"llm"`
	Practice PracticeConfig `yaml:"practice"`
	Exercise ExerciseConfig `yaml:"exercise"`
	Parser   ParserConfig   `yaml:"parser"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// An empty DSN runs the service on in-memory stores.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// LLMConfig holds language-model provider settings.
type LLMConfig struct {
	Provider  string        `yaml:"provider"   env:"LLM_PROVIDER"   env-default:"anthropic"`
	APIKey    string        `yaml:"api_key"    env:"LLM_API_KEY"`
	ModelsRaw string        `yaml:"models"     env:"LLM_MODELS"     env-default:"claude-sonnet-4-5"`
	MaxTokens int64         `yaml:"max_tokens" env:"LLM_MAX_TOKENS" env-default:"2048"`
	Timeout   time.Duration `yaml:"timeout"    env:"LLM_TIMEOUT"    env-default:"60s"`

	// Models is parsed from ModelsRaw during validation, in fallback order.
	Models []string `yaml:"-" env:"-"`
}

// Enabled reports whether a provider can be called.
func (c LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

// PracticeConfig holds orchestration settings.
type PracticeConfig struct {
	MaxDialogueAttempts int           `yaml:"max_dialogue_attempts" env:"PRACTICE_MAX_DIALOGUE_ATTEMPTS" env-default:"3"`
	DefaultDeckSize     int           `yaml:"default_deck_size"     env:"PRACTICE_DEFAULT_DECK_SIZE"     env-default:"10"`
	SessionTTL          time.Duration `yaml:"session_ttl"           env:"PRACTICE_SESSION_TTL"           env-default:"24h"`
}

// ExerciseConfig holds deck generation parameters.
type ExerciseConfig struct {
	MaxExercises          int    `yaml:"max_exercises"       env:"EXERCISE_MAX"                 env-default:"10"`
	MinSentenceLength     int    `yaml:"min_sentence_length" env:"EXERCISE_MIN_SENTENCE_LENGTH" env-default:"10"`
	AttemptMultiplier     int    `yaml:"attempt_multiplier"  env:"EXERCISE_ATTEMPT_MULTIPLIER"  env-default:"20"`
	BlankMarker           string `yaml:"blank_marker"        env:"EXERCISE_BLANK_MARKER"        env-default:"_____"`
	FillerWordsRaw        string `yaml:"filler_words"        env:"EXERCISE_FILLER_WORDS"`
	FillerTranslationsRaw string `yaml:"filler_translations" env:"EXERCISE_FILLER_TRANSLATIONS"`

	// FillerWords and FillerTranslations are parsed from their raw forms during validation.
	FillerWords        []string `yaml:"-" env:"-"`
	FillerTranslations []string `yaml:"-" env:"-"`
}

// ParserConfig holds the localized labels recognized in dialogue output.
type ParserConfig struct {
	TranslationLabelsRaw string `yaml:"translation_labels" env:"PARSER_TRANSLATION_LABELS"`
	GlossLabelsRaw       string `yaml:"gloss_labels"       env:"PARSER_GLOSS_LABELS"`

	TranslationLabels []string `yaml:"-" env:"-"`
	GlossLabels       []string `yaml:"-" env:"-"`
}
