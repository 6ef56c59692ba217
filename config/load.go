package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Load() App {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "err", err)
	}

	secret := getenv("JWT_SECRET", "local_dev_secret")
	cfg := App{
		Port:             getenv("APP_PORT", "8080"),
		DatabaseURL:      must("DATABASE_URL"),
		JWTSecret:        secret,
		JWTRefreshSecret: getenv("JWT_REFRESH_SECRET", secret+"_refresh"),
		AccessTTLHours:   getint("ACCESS_TOKEN_TTL_HOURS", 24),
		RefreshTTLHours:  getint("REFRESH_TOKEN_TTL_HOURS", 720),
		RedisURL:         getenv("REDIS_URL", "localhost:6379"),
		UploadDir:        getenv("UPLOAD_DIR", "./uploads"),
		UploadMaxBytes:   int64(getint("UPLOAD_MAX_BYTES", 5<<20)),
		CatalogCacheTTL:  getint("CATALOG_CACHE_TTL_SECONDS", 300),
		Env:              getenv("APP_ENV", "dev"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer env, using default", "key", k, "value", v, "default", def)
		return def
	}
	return n
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
