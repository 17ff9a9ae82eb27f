package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/commission"
	"github.com/fieldline/fieldline/pkg/composables"
	"github.com/fieldline/fieldline/pkg/eventbus"
)

type CommissionService struct {
	repo      commission.Repository
	publisher eventbus.EventBus
}

func NewCommissionService(repo commission.Repository, publisher eventbus.EventBus) *CommissionService {
	return &CommissionService{repo: repo, publisher: publisher}
}

func (s *CommissionService) GetPaginated(ctx context.Context, params *commission.FindParams) ([]commission.Commission, int64, error) {
	if params != nil {
		params.Period = strings.TrimSpace(params.Period)
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *CommissionService) GetByID(ctx context.Context, id uuid.UUID) (commission.Commission, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CommissionService) Create(ctx context.Context, dto *commission.CreateDTO) (commission.Commission, error) {
	if dto == nil {
		return commission.Commission{}, errors.New("missing dto")
	}
	dto.Normalize()
	entity, err := dto.ToEntity(uuid.Nil)
	if err != nil {
		return commission.Commission{}, err
	}
	var created commission.Commission
	err = composables.InTenantTx(ctx, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.repo.Create(txCtx, entity)
		return txErr
	})
	if err != nil {
		return commission.Commission{}, err
	}
	s.publisher.Publish(commission.CreatedEvent{Result: created})
	return created, nil
}
