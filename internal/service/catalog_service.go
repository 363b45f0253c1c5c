package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/dto"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/repository"
)

const (
	priceCacheKey = "price:"
	priceCacheTTL = 5 * time.Minute
)

type CatalogService interface {
	// SearchItems feeds the POS search box: products and grooming services
	// matched by name (products also by SKU) in a single round trip.
	SearchItems(ctx context.Context, query string, limit int) (*dto.SearchItemsResponse, error)
	// PriceCheck resolves a SKU to its current price, cached in redis.
	PriceCheck(ctx context.Context, sku string) (*dto.PriceCheckResponse, error)
	// QuickCreateProduct registers a product mid-sale, from the POS itself.
	QuickCreateProduct(ctx context.Context, req dto.QuickProductRequest) (*dto.ProductResult, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResult, error)
}

type catalogService struct {
	products repository.ProductRepository
	services repository.GroomingServiceRepository
	rdb      *redis.Client // nil disables the price cache
}

func NewCatalogService(products repository.ProductRepository, services repository.GroomingServiceRepository, rdb *redis.Client) CatalogService {
	return &catalogService{products: products, services: services, rdb: rdb}
}

func (s *catalogService) SearchItems(ctx context.Context, query string, limit int) (*dto.SearchItemsResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	query = strings.TrimSpace(query)

	products, err := s.products.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	services, err := s.services.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.SearchItemsResponse{
		Products: make([]dto.ProductResult, 0, len(products)),
		Services: make([]dto.ServiceResult, 0, len(services)),
	}
	for i := range products {
		resp.Products = append(resp.Products, productToResult(&products[i]))
	}
	for _, svc := range services {
		resp.Services = append(resp.Services, dto.ServiceResult{
			ID:          svc.ID.String(),
			Name:        svc.Name,
			Category:    svc.Category,
			BasePrice:   svc.BasePrice,
			DurationMin: svc.DurationMin,
		})
	}
	return resp, nil
}

func (s *catalogService) PriceCheck(ctx context.Context, sku string) (*dto.PriceCheckResponse, error) {
	sku = strings.TrimSpace(sku)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, priceCacheKey+sku).Result(); err == nil {
			var resp dto.PriceCheckResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	product, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		if notFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	resp := &dto.PriceCheckResponse{
		Name:     product.Name,
		Price:    product.Price,
		Stock:    product.Stock,
		Category: product.Category,
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, priceCacheKey+sku, payload, priceCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("sku", sku).Msg("falha ao gravar cache de preço")
			}
		}
	}
	return resp, nil
}

func (s *catalogService) QuickCreateProduct(ctx context.Context, req dto.QuickProductRequest) (*dto.ProductResult, error) {
	product := &model.Product{
		SKU:      strings.TrimSpace(req.SKU),
		Name:     strings.TrimSpace(req.Name),
		Price:    req.Price,
		Stock:    req.Stock,
		Category: "geral",
		Active:   true,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	result := productToResult(product)
	return &result, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResult, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	result := productToResult(product)
	return &result, nil
}

func productToResult(p *model.Product) dto.ProductResult {
	return dto.ProductResult{
		ID:       p.ID.String(),
		SKU:      p.SKU,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Stock:    p.Stock,
	}
}
