package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-catalog/internal/application/dto"
	"github.com/oksasatya/go-ddd-catalog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-catalog/internal/domain/repository"
)

var ErrUserNotFound = entity.NewNotFoundError("user not found")

// UserService sequences the user use cases. Email uniqueness is left to the
// repository, which reports entity.ErrConflict.
type UserService struct {
	Repo     repo.UserRepository
	Redis    *redis.Client
	CacheTTL time.Duration
	Events   EventPublisher
	Logger   *logrus.Logger
}

func NewUserService(r repo.UserRepository, rdb *redis.Client, cacheTTL time.Duration, events EventPublisher, logger *logrus.Logger) *UserService {
	return &UserService{
		Repo:     r,
		Redis:    rdb,
		CacheTTL: cacheTTL,
		Events:   events,
		Logger:   orDiscard(logger),
	}
}

func (s *UserService) List(ctx context.Context) ([]dto.UserResponse, error) {
	recs, err := s.Repo.FindAll(ctx)
	if err != nil {
		s.Logger.WithError(err).Error("list users failed")
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(recs))
	for _, rec := range recs {
		u, err := entity.UserFromRecord(rec)
		if err != nil {
			s.Logger.WithError(err).WithField("user_id", rec.ID).Error("stored user is invalid")
			return nil, err
		}
		out = append(out, dto.NewUserResponse(u))
	}
	return out, nil
}

func (s *UserService) GetOne(ctx context.Context, id int64) (dto.UserResponse, error) {
	var cached dto.UserResponse
	if cacheGet(ctx, s.Redis, s.Logger, userKey(id), &cached) {
		return cached, nil
	}
	gen, fill := cacheGeneration(ctx, s.Redis, s.Logger, userKey(id))

	u, _, err := s.load(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}
	resp := dto.NewUserResponse(u)
	if fill {
		cacheFill(ctx, s.Redis, s.Logger, userKey(id), resp, s.CacheTTL, gen)
	}
	return resp, nil
}

func (s *UserService) Create(ctx context.Context, in dto.CreateUserRequest) (dto.UserResponse, error) {
	u, err := in.ToEntity()
	if err != nil {
		return dto.UserResponse{}, err
	}
	resp, err := s.save(ctx, u)
	if err != nil {
		return dto.UserResponse{}, err
	}
	publish(ctx, s.Events, s.Logger, EventUserCreated, resp.ID, resp)
	return resp, nil
}

func (s *UserService) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (dto.UserResponse, error) {
	u, _, err := s.load(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}
	if err := in.Validate(); err != nil {
		return dto.UserResponse{}, err
	}
	if err := u.FullUpdate(in.Name, in.Email, in.Password); err != nil {
		return dto.UserResponse{}, err
	}
	return s.commitUpdate(ctx, u)
}

func (s *UserService) PartialUpdate(ctx context.Context, id int64, in dto.PatchUserRequest) (dto.UserResponse, error) {
	u, _, err := s.load(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}
	if err := in.Validate(); err != nil {
		return dto.UserResponse{}, err
	}
	if err := u.PartialUpdate(in.ToPatch()); err != nil {
		return dto.UserResponse{}, err
	}
	return s.commitUpdate(ctx, u)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	_, rec, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, rec); err != nil {
		s.Logger.WithError(err).WithField("user_id", id).Error("delete user failed")
		return err
	}
	cacheInvalidate(ctx, s.Redis, s.Logger, userKey(id))
	publish(ctx, s.Events, s.Logger, EventUserDeleted, id, nil)
	return nil
}

func (s *UserService) load(ctx context.Context, id int64) (*entity.User, repo.UserRecord, error) {
	rec, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", id).Error("find user failed")
		return nil, repo.UserRecord{}, err
	}
	if rec == nil {
		s.Logger.WithField("user_id", id).Warn("user not found")
		return nil, repo.UserRecord{}, ErrUserNotFound
	}
	u, err := entity.UserFromRecord(*rec)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", id).Error("stored user is invalid")
		return nil, repo.UserRecord{}, err
	}
	return u, *rec, nil
}

func (s *UserService) save(ctx context.Context, u *entity.User) (dto.UserResponse, error) {
	saved, err := s.Repo.Save(ctx, u.ToRecord())
	if err != nil {
		if entity.IsKind(err, entity.KindConflict) {
			s.Logger.WithField("email", u.Email()).Warn("email already registered")
		} else {
			s.Logger.WithError(err).WithField("user_id", u.ID()).Error("save user failed")
		}
		return dto.UserResponse{}, err
	}
	stored, err := entity.UserFromRecord(saved)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(stored), nil
}

func (s *UserService) commitUpdate(ctx context.Context, u *entity.User) (dto.UserResponse, error) {
	resp, err := s.save(ctx, u)
	if err != nil {
		return dto.UserResponse{}, err
	}
	cacheInvalidate(ctx, s.Redis, s.Logger, userKey(resp.ID))
	publish(ctx, s.Events, s.Logger, EventUserUpdated, resp.ID, resp)
	return resp, nil
}
