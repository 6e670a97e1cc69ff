package database

import (
	"context"

	"receiptsplit-backend/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var Redis *redis.Client

func ConnectRedis() {
	opts, err := redis.ParseURL(config.AppConfig.RedisURL)
	if err != nil {
		logrus.Warn("⚠️  Invalid Redis URL, running without cache: ", err)
		return
	}

	Redis = redis.NewClient(opts)

	_, err = Redis.Ping(context.Background()).Result()
	if err != nil {
		logrus.Warn("⚠️  Redis not available, running without cache: ", err)
		Redis = nil
		return
	}

	logrus.Info("✅ Redis connected successfully")
}
