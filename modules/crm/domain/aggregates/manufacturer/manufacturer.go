package manufacturer

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Manufacturer struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	name      string
	createdAt time.Time
	updatedAt time.Time
}

func New(tenantID uuid.UUID, name string) Manufacturer {
	return Manufacturer{
		tenantID: tenantID,
		name:     strings.TrimSpace(name),
	}
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	name string,
	createdAt time.Time,
	updatedAt time.Time,
) Manufacturer {
	return Manufacturer{
		id:        id,
		tenantID:  tenantID,
		name:      strings.TrimSpace(name),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (m Manufacturer) ID() uuid.UUID        { return m.id }
func (m Manufacturer) TenantID() uuid.UUID  { return m.tenantID }
func (m Manufacturer) Name() string         { return m.name }
func (m Manufacturer) CreatedAt() time.Time { return m.createdAt }
func (m Manufacturer) UpdatedAt() time.Time { return m.updatedAt }
func (m Manufacturer) IsZero() bool         { return m.id == uuid.Nil && m.name == "" }

type CreatedEvent struct {
	Result Manufacturer
}
