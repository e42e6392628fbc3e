package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Cache     *CacheConfig
	RateLimit *RateLimitConfig
	Auth      *AuthConfig
	Storage   *StorageConfig
}

type ServerConfig struct {
	AppName        string        // Storefront
	Environment    string        // development, production
	Port           string        // :8082
	ReadTimeout    time.Duration // e.g. 15s
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int   // in bytes
	MaxBodyBytes   int64 // request body cap, multipart included
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int // in seconds
}

type DatabaseConfig struct {
	Driver       string // postgres, memory
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration
	MaxIdleTime  time.Duration
	AutoMigrate  bool
	Seed         bool
	SlowQueryLog time.Duration
}

type CacheConfig struct {
	Address      string
	Username     string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RateLimitConfig struct {
	Enabled         bool
	DashboardLimit  int
	DashboardWindow time.Duration
	GeneralLimit    int
	GeneralWindow   time.Duration
}

type AuthConfig struct {
	AccessTokenSecret string
	AccessCookieName  string
}

type StorageConfig struct {
	Root          string // directory of the public disk
	PublicURL     string // base URL clients prefix stored paths with
	MaxImageBytes int64  // per uploaded image
	MaxMemory     int64  // multipart parsing memory before spilling to disk
}
