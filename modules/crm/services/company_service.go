package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/company"
	"github.com/fieldline/fieldline/pkg/composables"
	"github.com/fieldline/fieldline/pkg/eventbus"
)

type CompanyService struct {
	repo      company.Repository
	publisher eventbus.EventBus
}

func NewCompanyService(repo company.Repository, publisher eventbus.EventBus) *CompanyService {
	return &CompanyService{repo: repo, publisher: publisher}
}

func (s *CompanyService) GetPaginated(ctx context.Context, params *company.FindParams) ([]company.Company, int64, error) {
	if params != nil {
		params.Q = strings.TrimSpace(params.Q)
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CompanyService) ListForSelect(ctx context.Context) ([]company.Ref, error) {
	return s.repo.ListForSelect(ctx)
}

func (s *CompanyService) Create(ctx context.Context, dto *company.CreateDTO) (company.Company, error) {
	if dto == nil {
		return company.Company{}, errors.New("missing dto")
	}
	dto.Normalize()
	var created company.Company
	err := composables.InTenantTx(ctx, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.repo.Create(txCtx, dto.ToEntity(uuid.Nil))
		return txErr
	})
	if err != nil {
		return company.Company{}, err
	}
	s.publisher.Publish(company.CreatedEvent{Result: created})
	return created, nil
}
