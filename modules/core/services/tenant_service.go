package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldline/fieldline/modules/core/domain/entities/tenant"
)

type TenantService struct {
	repo tenant.Repository
}

func NewTenantService(repo tenant.Repository) *TenantService {
	return &TenantService{repo: repo}
}

func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TenantService) GetByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	return s.repo.GetByDomain(ctx, strings.ToLower(strings.TrimSpace(domain)))
}

func (s *TenantService) Create(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	return s.repo.Create(ctx, t)
}
