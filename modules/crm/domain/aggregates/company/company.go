package company

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Company struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	name      string
	website   string
	industry  string
	city      string
	createdAt time.Time
	updatedAt time.Time
}

func New(tenantID uuid.UUID, name string) Company {
	return Company{
		tenantID: tenantID,
		name:     strings.TrimSpace(name),
	}
}

func (c Company) WithWebsite(website string) Company {
	c.website = strings.TrimSpace(website)
	return c
}

func (c Company) WithIndustry(industry string) Company {
	c.industry = strings.TrimSpace(industry)
	return c
}

func (c Company) WithCity(city string) Company {
	c.city = strings.TrimSpace(city)
	return c
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	name string,
	website string,
	industry string,
	city string,
	createdAt time.Time,
	updatedAt time.Time,
) Company {
	return Company{
		id:        id,
		tenantID:  tenantID,
		name:      strings.TrimSpace(name),
		website:   website,
		industry:  industry,
		city:      city,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c Company) ID() uuid.UUID        { return c.id }
func (c Company) TenantID() uuid.UUID  { return c.tenantID }
func (c Company) Name() string         { return c.name }
func (c Company) Website() string      { return c.website }
func (c Company) Industry() string     { return c.industry }
func (c Company) City() string         { return c.city }
func (c Company) CreatedAt() time.Time { return c.createdAt }
func (c Company) UpdatedAt() time.Time { return c.updatedAt }
func (c Company) IsZero() bool         { return c.id == uuid.Nil && c.name == "" }

type CreatedEvent struct {
	Result Company
}
