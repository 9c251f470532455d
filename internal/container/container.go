package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-catalog/config"
	"github.com/oksasatya/go-ddd-catalog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-catalog/pkg/helpers"
)

// app-level container to share constructed components across packages.
// The router builds its modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	rabbitPub   *helpers.RabbitPublisher

	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return logger
}
func SetPGPool(p *pgxpool.Pool) { pgPool = p }
func GetPGPool() *pgxpool.Pool  { return pgPool }
func SetRedis(r *redis.Client)  { redisClient = r }
func GetRedis() *redis.Client   { return redisClient }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }

func SetProductRepo(r repository.ProductRepository) { productRepo = r }
func GetProductRepo() repository.ProductRepository  { return productRepo }
func SetUserRepo(r repository.UserRepository)       { userRepo = r }
func GetUserRepo() repository.UserRepository        { return userRepo }

// Reset clears every singleton.
func Reset() {
	cfg, logger, pgPool, redisClient, rabbitPub = nil, nil, nil, nil, nil
	productRepo, userRepo = nil, nil
}
