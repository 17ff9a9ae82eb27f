package product

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a line item sold on behalf of a manufacturer. Every
// product belongs to exactly one manufacturer of the same tenant.
type Product struct {
	id             uuid.UUID
	tenantID       uuid.UUID
	name           string
	sku            string
	price          decimal.Decimal
	manufacturerID uuid.UUID
	createdAt      time.Time
	updatedAt      time.Time
}

func New(tenantID uuid.UUID, name string, manufacturerID uuid.UUID) Product {
	return Product{
		tenantID:       tenantID,
		name:           strings.TrimSpace(name),
		manufacturerID: manufacturerID,
	}
}

func (p Product) WithSKU(sku string) Product {
	p.sku = strings.TrimSpace(sku)
	return p
}

func (p Product) WithPrice(price decimal.Decimal) Product {
	p.price = price
	return p
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	name string,
	sku string,
	price decimal.Decimal,
	manufacturerID uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Product {
	return Product{
		id:             id,
		tenantID:       tenantID,
		name:           strings.TrimSpace(name),
		sku:            sku,
		price:          price,
		manufacturerID: manufacturerID,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (p Product) ID() uuid.UUID             { return p.id }
func (p Product) TenantID() uuid.UUID       { return p.tenantID }
func (p Product) Name() string              { return p.name }
func (p Product) SKU() string               { return p.sku }
func (p Product) Price() decimal.Decimal    { return p.price }
func (p Product) ManufacturerID() uuid.UUID { return p.manufacturerID }
func (p Product) CreatedAt() time.Time      { return p.createdAt }
func (p Product) UpdatedAt() time.Time      { return p.updatedAt }

type CreatedEvent struct {
	Result Product
}
