package contact

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fieldline/fieldline/pkg/constants"
	"github.com/fieldline/fieldline/pkg/serrors"
)

type CreateDTO struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Title     string `json:"title"`
	CompanyID string `json:"company_id" validate:"omitempty,uuid4"`
}

func (d *CreateDTO) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Title = strings.TrimSpace(d.Title)
	d.CompanyID = strings.TrimSpace(d.CompanyID)
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *CreateDTO) ToEntity(tenantID uuid.UUID) Contact {
	entity := New(tenantID, d.FirstName, d.LastName).
		WithEmail(d.Email).
		WithPhone(d.Phone).
		WithTitle(d.Title)
	if d.CompanyID != "" {
		if companyID, err := uuid.Parse(d.CompanyID); err == nil {
			entity = entity.WithCompanyID(companyID)
		}
	}
	return entity
}
