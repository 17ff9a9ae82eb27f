package manufacturer

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fieldline/fieldline/pkg/constants"
	"github.com/fieldline/fieldline/pkg/serrors"
)

type CreateDTO struct {
	Name string `json:"name" validate:"required"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *CreateDTO) ToEntity(tenantID uuid.UUID) Manufacturer {
	return New(tenantID, d.Name)
}
