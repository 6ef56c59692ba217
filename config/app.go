package config

type App struct {
	Port             string `env:"APP_PORT" default:"8080"`
	DatabaseURL      string `env:"DATABASE_URL,required"`
	JWTSecret        string `env:"JWT_SECRET,required"`
	JWTRefreshSecret string `env:"JWT_REFRESH_SECRET"`
	AccessTTLHours   int    `env:"ACCESS_TOKEN_TTL_HOURS" default:"24"`
	RefreshTTLHours  int    `env:"REFRESH_TOKEN_TTL_HOURS" default:"720"`
	RedisURL         string `env:"REDIS_URL" default:"localhost:6379"`
	UploadDir        string `env:"UPLOAD_DIR" default:"./uploads"`
	UploadMaxBytes   int64  `env:"UPLOAD_MAX_BYTES" default:"5242880"`
	CatalogCacheTTL  int    `env:"CATALOG_CACHE_TTL_SECONDS" default:"300"`
	Env              string `env:"APP_ENV" default:"dev"`
}
