package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/product"
	"github.com/fieldline/fieldline/pkg/composables"
	"github.com/fieldline/fieldline/pkg/eventbus"
)

type ProductService struct {
	repo      product.Repository
	publisher eventbus.EventBus
}

func NewProductService(repo product.Repository, publisher eventbus.EventBus) *ProductService {
	return &ProductService{repo: repo, publisher: publisher}
}

func (s *ProductService) GetPaginated(ctx context.Context, params *product.FindParams) ([]product.Product, int64, error) {
	if params != nil {
		params.Q = strings.TrimSpace(params.Q)
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (product.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, dto *product.CreateDTO) (product.Product, error) {
	if dto == nil {
		return product.Product{}, errors.New("missing dto")
	}
	dto.Normalize()
	entity, err := dto.ToEntity(uuid.Nil)
	if err != nil {
		return product.Product{}, err
	}
	var created product.Product
	err = composables.InTenantTx(ctx, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.repo.Create(txCtx, entity)
		return txErr
	})
	if err != nil {
		return product.Product{}, err
	}
	s.publisher.Publish(product.CreatedEvent{Result: created})
	return created, nil
}
