package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/contact"
	"github.com/fieldline/fieldline/pkg/composables"
	"github.com/fieldline/fieldline/pkg/eventbus"
)

type ContactService struct {
	repo      contact.Repository
	publisher eventbus.EventBus
}

func NewContactService(repo contact.Repository, publisher eventbus.EventBus) *ContactService {
	return &ContactService{repo: repo, publisher: publisher}
}

func (s *ContactService) GetPaginated(ctx context.Context, params *contact.FindParams) ([]contact.Contact, int64, error) {
	if params != nil {
		params.Q = strings.TrimSpace(params.Q)
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *ContactService) GetByID(ctx context.Context, id uuid.UUID) (contact.Contact, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ContactService) Create(ctx context.Context, dto *contact.CreateDTO) (contact.Contact, error) {
	if dto == nil {
		return contact.Contact{}, errors.New("missing dto")
	}
	dto.Normalize()
	var created contact.Contact
	err := composables.InTenantTx(ctx, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.repo.Create(txCtx, dto.ToEntity(uuid.Nil))
		return txErr
	})
	if err != nil {
		return contact.Contact{}, err
	}
	s.publisher.Publish(contact.CreatedEvent{Result: created})
	return created, nil
}
