package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int         `yaml:"port"`
	Env            string      `yaml:"env"` // "development" | "production"
	Mongo          MongoConfig `yaml:"mongo"`
	RedisURL       string      `yaml:"redis_url"`
	JWTSecret      string      `yaml:"jwt_secret"`
	TokenTTLHours  int         `yaml:"token_ttl_hours"`
	AllowedOrigins []string    `yaml:"allowed_origins"`
	S3             S3Config    `yaml:"s3"`
	Chat           ChatConfig  `yaml:"chat"`
}

// MongoConfig points at the document store. An empty URI selects the
// in-memory fallback store (development only).
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// S3Config configures profile photo storage. Photo upload is disabled
// when bucket or credentials are missing.
type S3Config struct {
	Endpoint        string `yaml:"endpoint"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

// ChatConfig tunes the chat module.
type ChatConfig struct {
	HistoryPageSize int `yaml:"history_page_size"`
	MaxMessageLen   int `yaml:"max_message_len"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }
