package product

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fieldline/fieldline/pkg/constants"
	"github.com/fieldline/fieldline/pkg/serrors"
)

type CreateDTO struct {
	Name           string `json:"name" validate:"required"`
	SKU            string `json:"sku"`
	Price          string `json:"price" validate:"omitempty,numeric"`
	ManufacturerID string `json:"manufacturer_id" validate:"required,uuid4"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.SKU = strings.TrimSpace(d.SKU)
	d.Price = strings.TrimSpace(d.Price)
	d.ManufacturerID = strings.TrimSpace(d.ManufacturerID)
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *CreateDTO) ToEntity(tenantID uuid.UUID) (Product, error) {
	manufacturerID, err := uuid.Parse(d.ManufacturerID)
	if err != nil {
		return Product{}, err
	}
	entity := New(tenantID, d.Name, manufacturerID).WithSKU(d.SKU)
	if d.Price != "" {
		price, err := decimal.NewFromString(d.Price)
		if err != nil {
			return Product{}, err
		}
		entity = entity.WithPrice(price)
	}
	return entity, nil
}
