package commission

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fieldline/fieldline/pkg/constants"
	"github.com/fieldline/fieldline/pkg/serrors"
)

type CreateDTO struct {
	CompanyID string `json:"company_id" validate:"required,uuid4"`
	Amount    string `json:"amount" validate:"required,numeric"`
	Rate      string `json:"rate" validate:"omitempty,numeric"`
	Period    string `json:"period" validate:"omitempty,datetime=2006-01"`
	Notes     string `json:"notes"`
}

func (d *CreateDTO) Normalize() {
	d.CompanyID = strings.TrimSpace(d.CompanyID)
	d.Amount = strings.TrimSpace(d.Amount)
	d.Rate = strings.TrimSpace(d.Rate)
	d.Period = strings.TrimSpace(d.Period)
	d.Notes = strings.TrimSpace(d.Notes)
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *CreateDTO) ToEntity(tenantID uuid.UUID) (Commission, error) {
	companyID, err := uuid.Parse(d.CompanyID)
	if err != nil {
		return Commission{}, err
	}
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return Commission{}, err
	}
	entity := New(tenantID, companyID, amount).
		WithPeriod(d.Period).
		WithNotes(d.Notes)
	if d.Rate != "" {
		rate, err := decimal.NewFromString(d.Rate)
		if err != nil {
			return Commission{}, err
		}
		entity = entity.WithRate(rate)
	}
	return entity, nil
}
