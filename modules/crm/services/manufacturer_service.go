package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/manufacturer"
	"github.com/fieldline/fieldline/pkg/composables"
	"github.com/fieldline/fieldline/pkg/eventbus"
)

type ManufacturerService struct {
	repo      manufacturer.Repository
	publisher eventbus.EventBus
}

func NewManufacturerService(repo manufacturer.Repository, publisher eventbus.EventBus) *ManufacturerService {
	return &ManufacturerService{repo: repo, publisher: publisher}
}

func (s *ManufacturerService) GetPaginated(ctx context.Context, params *manufacturer.FindParams) ([]manufacturer.Manufacturer, int64, error) {
	if params != nil {
		params.Q = strings.TrimSpace(params.Q)
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *ManufacturerService) GetByID(ctx context.Context, id uuid.UUID) (manufacturer.Manufacturer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ManufacturerService) ListForSelect(ctx context.Context) ([]manufacturer.Ref, error) {
	return s.repo.ListForSelect(ctx)
}

func (s *ManufacturerService) Create(ctx context.Context, dto *manufacturer.CreateDTO) (manufacturer.Manufacturer, error) {
	if dto == nil {
		return manufacturer.Manufacturer{}, errors.New("missing dto")
	}
	dto.Normalize()
	var created manufacturer.Manufacturer
	err := composables.InTenantTx(ctx, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.repo.Create(txCtx, dto.ToEntity(uuid.Nil))
		return txErr
	})
	if err != nil {
		return manufacturer.Manufacturer{}, err
	}
	s.publisher.Publish(manufacturer.CreatedEvent{Result: created})
	return created, nil
}
