package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-catalog/config"
	"github.com/oksasatya/go-ddd-catalog/internal/application"
	"github.com/oksasatya/go-ddd-catalog/internal/application/dto"
	"github.com/oksasatya/go-ddd-catalog/internal/domain/entity"
	pginfra "github.com/oksasatya/go-ddd-catalog/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-catalog/pkg/helpers"
)

var products = []dto.CreateProductRequest{
	{Name: "Oak Desk", Description: "Solid oak, 140x70 cm", Price: 349.00, Stock: 12},
	{Name: "Desk Lamp", Description: "LED, adjustable arm", Price: 39.90, Stock: 40},
	{Name: "Notebook", Description: "A5 dotted, 120 pages", Price: 6.50, Stock: 300},
}

var users = []dto.CreateUserRequest{
	{Name: "Demo User", Email: "demo@example.com", Password: "password123"},
}

// Seeding goes through the services so every rule applies. Existing rows are skipped.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	productSvc := application.NewProductService(pginfra.NewProductRepository(pool), nil, 0, nil, logger)
	userSvc := application.NewUserService(pginfra.NewUserRepository(pool), nil, 0, nil, logger)

	for _, in := range products {
		p, err := productSvc.Create(ctx, in)
		switch {
		case entity.IsKind(err, entity.KindConflict):
			logger.WithField("name", in.Name).Info("product already seeded")
		case err != nil:
			log.Fatalf("failed to seed product %q: %v", in.Name, err)
		default:
			logger.WithField("product_id", p.ID).Infof("seeded product %s", p.Name)
		}
	}

	for _, in := range users {
		u, err := userSvc.Create(ctx, in)
		switch {
		case entity.IsKind(err, entity.KindConflict):
			logger.WithField("email", in.Email).Info("user already seeded")
		case err != nil:
			log.Fatalf("failed to seed user %q: %v", in.Email, err)
		default:
			logger.WithField("user_id", u.ID).Infof("seeded user %s password=%s", u.Email, in.Password)
		}
	}
}
