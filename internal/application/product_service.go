package application

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-catalog/internal/application/dto"
	"github.com/oksasatya/go-ddd-catalog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-catalog/internal/domain/repository"
)

var ErrProductNotFound = entity.NewNotFoundError("product not found")

// ProductService sequences the product use cases over the repository.
// Redis and Events are optional.
//
// Create checks name uniqueness and inserts in two steps; two concurrent creates
// with the same name can both pass the check. The Postgres schema's unique index
// turns the loser into ErrConflict.
type ProductService struct {
	Repo     repo.ProductRepository
	Redis    *redis.Client
	CacheTTL time.Duration
	Events   EventPublisher
	Logger   *logrus.Logger
}

func NewProductService(r repo.ProductRepository, rdb *redis.Client, cacheTTL time.Duration, events EventPublisher, logger *logrus.Logger) *ProductService {
	return &ProductService{
		Repo:     r,
		Redis:    rdb,
		CacheTTL: cacheTTL,
		Events:   events,
		Logger:   orDiscard(logger),
	}
}

// List returns every product in storage order.
func (s *ProductService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	recs, err := s.Repo.FindAll(ctx)
	if err != nil {
		s.Logger.WithError(err).Error("list products failed")
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(recs))
	for _, rec := range recs {
		p, err := entity.ProductFromRecord(rec)
		if err != nil {
			s.Logger.WithError(err).WithField("product_id", rec.ID).Error("stored product is invalid")
			return nil, err
		}
		out = append(out, dto.NewProductResponse(p))
	}
	return out, nil
}

func (s *ProductService) GetOne(ctx context.Context, id int64) (dto.ProductResponse, error) {
	var cached dto.ProductResponse
	if cacheGet(ctx, s.Redis, s.Logger, productKey(id), &cached) {
		return cached, nil
	}
	gen, fill := cacheGeneration(ctx, s.Redis, s.Logger, productKey(id))

	p, _, err := s.load(ctx, id)
	if err != nil {
		return dto.ProductResponse{}, err
	}
	resp := dto.NewProductResponse(p)
	if fill {
		cacheFill(ctx, s.Redis, s.Logger, productKey(id), resp, s.CacheTTL, gen)
	}
	return resp, nil
}

func (s *ProductService) Create(ctx context.Context, in dto.CreateProductRequest) (dto.ProductResponse, error) {
	if err := in.Validate(); err != nil {
		return dto.ProductResponse{}, err
	}

	existing, err := s.Repo.FindByName(ctx, in.Name)
	if err != nil {
		s.Logger.WithError(err).WithField("name", in.Name).Error("find product by name failed")
		return dto.ProductResponse{}, err
	}
	if existing != nil {
		s.Logger.WithField("name", in.Name).Warn("product name already taken")
		return dto.ProductResponse{}, entity.NewConflictError(fmt.Sprintf("product with name %q already exists", in.Name))
	}

	p, err := in.ToEntity()
	if err != nil {
		return dto.ProductResponse{}, err
	}
	resp, err := s.save(ctx, p)
	if err != nil {
		return dto.ProductResponse{}, err
	}
	publish(ctx, s.Events, s.Logger, EventProductCreated, resp.ID, resp)
	return resp, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (dto.ProductResponse, error) {
	p, _, err := s.load(ctx, id)
	if err != nil {
		return dto.ProductResponse{}, err
	}
	if err := in.Validate(); err != nil {
		return dto.ProductResponse{}, err
	}
	if err := p.FullUpdate(in.Name, in.Description, in.Price, in.Stock); err != nil {
		return dto.ProductResponse{}, err
	}
	return s.commitUpdate(ctx, p)
}

func (s *ProductService) PartialUpdate(ctx context.Context, id int64, in dto.PatchProductRequest) (dto.ProductResponse, error) {
	p, _, err := s.load(ctx, id)
	if err != nil {
		return dto.ProductResponse{}, err
	}
	if err := in.Validate(); err != nil {
		return dto.ProductResponse{}, err
	}
	if err := p.PartialUpdate(in.ToPatch()); err != nil {
		return dto.ProductResponse{}, err
	}
	return s.commitUpdate(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	_, rec, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, rec); err != nil {
		s.Logger.WithError(err).WithField("product_id", id).Error("delete product failed")
		return err
	}
	cacheInvalidate(ctx, s.Redis, s.Logger, productKey(id))
	publish(ctx, s.Events, s.Logger, EventProductDeleted, id, nil)
	return nil
}

// load fetches and rehydrates a product, returning ErrProductNotFound when absent.
func (s *ProductService) load(ctx context.Context, id int64) (*entity.Product, repo.ProductRecord, error) {
	rec, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		s.Logger.WithError(err).WithField("product_id", id).Error("find product failed")
		return nil, repo.ProductRecord{}, err
	}
	if rec == nil {
		s.Logger.WithField("product_id", id).Warn("product not found")
		return nil, repo.ProductRecord{}, ErrProductNotFound
	}
	p, err := entity.ProductFromRecord(*rec)
	if err != nil {
		s.Logger.WithError(err).WithField("product_id", id).Error("stored product is invalid")
		return nil, repo.ProductRecord{}, err
	}
	return p, *rec, nil
}

func (s *ProductService) save(ctx context.Context, p *entity.Product) (dto.ProductResponse, error) {
	saved, err := s.Repo.Save(ctx, p.ToRecord())
	if err != nil {
		if entity.IsKind(err, entity.KindConflict) {
			s.Logger.WithField("name", p.Name()).Warn("product name already taken")
		} else {
			s.Logger.WithError(err).WithField("product_id", p.ID()).Error("save product failed")
		}
		return dto.ProductResponse{}, err
	}
	stored, err := entity.ProductFromRecord(saved)
	if err != nil {
		return dto.ProductResponse{}, err
	}
	return dto.NewProductResponse(stored), nil
}

func (s *ProductService) commitUpdate(ctx context.Context, p *entity.Product) (dto.ProductResponse, error) {
	resp, err := s.save(ctx, p)
	if err != nil {
		return dto.ProductResponse{}, err
	}
	cacheInvalidate(ctx, s.Redis, s.Logger, productKey(resp.ID))
	publish(ctx, s.Events, s.Logger, EventProductUpdated, resp.ID, resp)
	return resp, nil
}
