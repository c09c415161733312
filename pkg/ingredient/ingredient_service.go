package ingredient

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/entities"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const searchCachePrefix = "ingredients:search:"

type (
	IngredientService interface {
		SearchIngredients(ctx context.Context, query string, limit int) ([]domain.IngredientResponse, error)
		CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (domain.IngredientResponse, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
		redis                *redis.Client
		cacheTTL             time.Duration
		logger               *zap.Logger
	}
)

// NewIngredientService caches search results in Redis for cacheTTL. A nil
// client turns caching off.
func NewIngredientService(ingredientRepository IngredientRepository, rdb *redis.Client, cacheTTL time.Duration, logger *zap.Logger) IngredientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ingredientService{
		ingredientRepository: ingredientRepository,
		redis:                rdb,
		cacheTTL:             cacheTTL,
		logger:               logger,
	}
}

func (s *ingredientService) SearchIngredients(ctx context.Context, query string, limit int) ([]domain.IngredientResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidQueryString
	}
	if limit <= 0 || limit > domain.SearchLimit {
		limit = domain.SearchLimit
	}

	key := searchCachePrefix + strings.ToLower(query)
	if cached, ok := s.getCache(ctx, key); ok && len(cached) <= limit {
		return cached, nil
	}

	ingredients, err := s.ingredientRepository.SearchIngredients(ctx, query, limit)
	if err != nil {
		return nil, domain.DependencyFailure(domain.MessageFailedSearch, err)
	}

	out := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, ToIngredientResponse(ing))
	}
	if limit == domain.SearchLimit {
		s.setCache(ctx, key, out)
	}
	return out, nil
}

func (s *ingredientService) CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (domain.IngredientResponse, error) {
	aliases := make([]string, 0, len(req.Aliases))
	for _, a := range req.Aliases {
		if a = strings.TrimSpace(a); a != "" {
			aliases = append(aliases, a)
		}
	}

	ingredient := &entities.Ingredient{
		Name:     strings.TrimSpace(req.Name),
		Category: req.Category,
		Unit:     req.Unit,
		Aliases:  strings.Join(aliases, ","),
	}
	if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
		if errors.Is(err, entities.ErrDuplicateKey) {
			return domain.IngredientResponse{}, domain.ErrIngredientExists
		}
		return domain.IngredientResponse{}, domain.DependencyFailure(domain.MessageFailedCreateIngredient, err)
	}

	s.invalidateCache(ctx)
	return ToIngredientResponse(ingredient), nil
}

func (s *ingredientService) getCache(ctx context.Context, key string) ([]domain.IngredientResponse, bool) {
	if s.redis == nil {
		return nil, false
	}
	raw, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("ingredient cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var out []domain.IngredientResponse
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, false
	}
	return out, true
}

func (s *ingredientService) setCache(ctx context.Context, key string, value []domain.IngredientResponse) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("ingredient cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *ingredientService) invalidateCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	iter := s.redis.Scan(ctx, 0, searchCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		s.redis.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("ingredient cache invalidation failed", zap.Error(err))
	}
}

func ToIngredientResponse(i *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:       i.ID.String(),
		Name:     i.Name,
		Category: i.Category,
		Unit:     i.Unit,
		Aliases:  i.AliasList(),
	}
}
