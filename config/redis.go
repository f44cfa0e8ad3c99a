package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

// ConnectRedis abre la conexión a Redis (cache de sesión y candados de los
// trabajos cron). Es opcional: sin REDIS_ADDR el portal funciona igual, sólo
// que sin cache.
func ConnectRedis() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		slog.Warn("REDIS_ADDR no está configurada, el cache queda deshabilitado")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("no se pudo conectar a Redis", "error", err)
		RDB = nil
		return
	}

	slog.Info("conexión a Redis establecida")
}
