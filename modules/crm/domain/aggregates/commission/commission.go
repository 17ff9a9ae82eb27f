package commission

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Commission is a commission statement line for a customer company:
// the amount earned, the rate applied, and the accounting period it
// belongs to (YYYY-MM).
type Commission struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	companyID uuid.UUID
	amount    decimal.Decimal
	rate      decimal.Decimal
	period    string
	notes     string
	createdAt time.Time
	updatedAt time.Time
}

func New(tenantID uuid.UUID, companyID uuid.UUID, amount decimal.Decimal) Commission {
	return Commission{
		tenantID:  tenantID,
		companyID: companyID,
		amount:    amount,
	}
}

func (c Commission) WithRate(rate decimal.Decimal) Commission {
	c.rate = rate
	return c
}

func (c Commission) WithPeriod(period string) Commission {
	c.period = strings.TrimSpace(period)
	return c
}

func (c Commission) WithNotes(notes string) Commission {
	c.notes = strings.TrimSpace(notes)
	return c
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	companyID uuid.UUID,
	amount decimal.Decimal,
	rate decimal.Decimal,
	period string,
	notes string,
	createdAt time.Time,
	updatedAt time.Time,
) Commission {
	return Commission{
		id:        id,
		tenantID:  tenantID,
		companyID: companyID,
		amount:    amount,
		rate:      rate,
		period:    period,
		notes:     notes,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c Commission) ID() uuid.UUID           { return c.id }
func (c Commission) TenantID() uuid.UUID     { return c.tenantID }
func (c Commission) CompanyID() uuid.UUID    { return c.companyID }
func (c Commission) Amount() decimal.Decimal { return c.amount }
func (c Commission) Rate() decimal.Decimal   { return c.rate }
func (c Commission) Period() string          { return c.period }
func (c Commission) Notes() string           { return c.notes }
func (c Commission) CreatedAt() time.Time    { return c.createdAt }
func (c Commission) UpdatedAt() time.Time    { return c.updatedAt }

type CreatedEvent struct {
	Result Commission
}
