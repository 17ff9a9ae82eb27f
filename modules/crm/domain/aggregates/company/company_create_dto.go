package company

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fieldline/fieldline/pkg/constants"
	"github.com/fieldline/fieldline/pkg/serrors"
)

type CreateDTO struct {
	Name     string `json:"name" validate:"required"`
	Website  string `json:"website"`
	Industry string `json:"industry"`
	City     string `json:"city"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Website = strings.TrimSpace(d.Website)
	d.Industry = strings.TrimSpace(d.Industry)
	d.City = strings.TrimSpace(d.City)
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *CreateDTO) ToEntity(tenantID uuid.UUID) Company {
	return New(tenantID, d.Name).
		WithWebsite(d.Website).
		WithIndustry(d.Industry).
		WithCity(d.City)
}
