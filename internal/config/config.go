package config

import "time"

// Config is the root application configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Auth      AuthConfig      `yaml:"auth"`
	Listing   ListingConfig   `yaml:"listing"`
	Cache     CacheConfig     `yaml:"cache"`
	Server    ServerConfig    `yaml:"server"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

// APIConfig holds the PokeNihongo REST backend settings.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"POKE_API_BASE_URL" env-required:"true"`
	Token   string        `yaml:"token"    env:"POKE_API_TOKEN"`
	Locale  string        `yaml:"locale"   env:"POKE_API_LOCALE"   env-default:"vi"`
	Timeout time.Duration `yaml:"timeout"  env:"POKE_API_TIMEOUT"  env-default:"10s"`
}

// AuthConfig controls how bearer tokens are decoded. Without a secret the
// console decodes tokens unverified and relies on the backend to reject
// forged ones.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER"`
}

// ListingConfig holds list screen defaults.
type ListingConfig struct {
	DefaultPageSize    int    `yaml:"default_page_size"  env:"LISTING_DEFAULT_PAGE_SIZE"  env-default:"15"`
	PageSizeOptionsRaw string `yaml:"page_size_options"  env:"LISTING_PAGE_SIZE_OPTIONS"  env-default:"15,30,45,60"`
	MaxVisiblePages    int    `yaml:"max_visible_pages"  env:"LISTING_MAX_VISIBLE_PAGES"  env-default:"5"`

	// PageSizeOptions is parsed from PageSizeOptionsRaw during validation.
	PageSizeOptions []int `yaml:"-" env:"-"`
}

// CacheConfig holds query cache settings.
type CacheConfig struct {
	TTL            time.Duration `yaml:"ttl"             env:"CACHE_TTL"             env-default:"30s"`
	Size           int           `yaml:"size"            env:"CACHE_SIZE"            env-default:"256"`
	MaxConcurrency int           `yaml:"max_concurrency" env:"CACHE_MAX_CONCURRENCY" env-default:"4"`
	BatchWait      time.Duration `yaml:"batch_wait"      env:"CACHE_BATCH_WAIT"      env-default:"2ms"`
	LoadTimeout    time.Duration `yaml:"load_timeout"    env:"CACHE_LOAD_TIMEOUT"    env-default:"30s"`
}

// ServerConfig holds HTTP gateway settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,Accept-Language"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig limits mutation requests per client.
type RateLimitConfig struct {
	MutationsPerMinute int `yaml:"mutations_per_minute" env:"RATE_LIMIT_MUTATIONS_PER_MINUTE" env-default:"60"`
	Burst              int `yaml:"burst"                env:"RATE_LIMIT_BURST"                env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
