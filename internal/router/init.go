package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-catalog/config"
	"github.com/oksasatya/go-ddd-catalog/internal/application"
	"github.com/oksasatya/go-ddd-catalog/internal/container"
	"github.com/oksasatya/go-ddd-catalog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-catalog/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-ddd-catalog/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-ddd-catalog/internal/interface/http"
	"github.com/oksasatya/go-ddd-catalog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-catalog/internal/router/modules"
)

type ProductModuleDeps struct {
	Repo    repository.ProductRepository
	Service *application.ProductService
	Handler *handlers.ProductHandler
}

type UserModuleDeps struct {
	Repo    repository.UserRepository
	Service *application.UserService
	Handler *handlers.UserHandler
}

// productRepository prefers an injected repository, then Postgres, then memory.
func productRepository() repository.ProductRepository {
	if r := container.GetProductRepo(); r != nil {
		return r
	}
	var r repository.ProductRepository
	if pool := container.GetPGPool(); pool != nil && !container.GetConfig().UseMemoryStorage() {
		r = pginfra.NewProductRepository(pool)
	} else {
		r = memory.NewProductRepository()
	}
	container.SetProductRepo(r)
	return r
}

func userRepository() repository.UserRepository {
	if r := container.GetUserRepo(); r != nil {
		return r
	}
	var r repository.UserRepository
	if pool := container.GetPGPool(); pool != nil && !container.GetConfig().UseMemoryStorage() {
		r = pginfra.NewUserRepository(pool)
	} else {
		r = memory.NewUserRepository()
	}
	container.SetUserRepo(r)
	return r
}

// eventPublisher keeps a nil *RabbitPublisher from becoming a non-nil interface.
func eventPublisher() application.EventPublisher {
	if pub := container.GetRabbitPub(); pub != nil {
		return pub
	}
	return nil
}

func buildProductDeps() ProductModuleDeps {
	repo := productRepository()
	service := application.NewProductService(
		repo,
		container.GetRedis(),
		container.GetConfig().CacheTTL,
		eventPublisher(),
		container.GetLogger(),
	)
	return ProductModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handlers.NewProductHandler(service, container.GetLogger()),
	}
}

func buildUserDeps() UserModuleDeps {
	repo := userRepository()
	service := application.NewUserService(
		repo,
		container.GetRedis(),
		container.GetConfig().CacheTTL,
		eventPublisher(),
		container.GetLogger(),
	)
	return UserModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handlers.NewUserHandler(service, container.GetLogger()),
	}
}

func writeLimiter(scope string) gin.HandlerFunc {
	cfg := container.GetConfig()
	return middleware.RateLimit(
		container.GetRedis(),
		cfg.RateLimitWritesPerMin,
		time.Minute,
		middleware.KeyByIPAndMethod(scope),
		rateLimitBypass(cfg),
	)
}

func rateLimitBypass(cfg *config.Config) middleware.AllowFunc {
	var private, listed middleware.AllowFunc
	if cfg.RateLimitBypassPrivate {
		private = middleware.AllowPrivateIP()
	}
	if ips := cfg.RateLimitAllowIPs(); len(ips) > 0 {
		listed = middleware.AllowIPs(ips...)
	}
	return middleware.AllowAny(private, listed)
}

// InitModules wires every feature module into the registry. Call once at startup.
func InitModules(r *Registry) {
	productDeps := buildProductDeps()
	userDeps := buildUserDeps()

	r.Add(modules.NewProductModule(productDeps.Handler, writeLimiter("products")))
	r.Add(modules.NewUserModule(userDeps.Handler, writeLimiter("users")))

	if container.GetConfig().DebugMetricsEnabled {
		rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIPAndPath(), nil)
		r.Add(modules.NewDebugModule(rl))
	}
}
