package contact

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact is a person working at (or independent of) a customer company.
// The company reference is optional and always tenant-scoped.
type Contact struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	firstName string
	lastName  string
	email     string
	phone     string
	title     string
	companyID *uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func New(tenantID uuid.UUID, firstName, lastName string) Contact {
	return Contact{
		tenantID:  tenantID,
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
	}
}

func (c Contact) WithEmail(email string) Contact {
	c.email = strings.ToLower(strings.TrimSpace(email))
	return c
}

func (c Contact) WithPhone(phone string) Contact {
	c.phone = strings.TrimSpace(phone)
	return c
}

func (c Contact) WithTitle(title string) Contact {
	c.title = strings.TrimSpace(title)
	return c
}

func (c Contact) WithCompanyID(companyID uuid.UUID) Contact {
	c.companyID = &companyID
	return c
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	firstName string,
	lastName string,
	email string,
	phone string,
	title string,
	companyID *uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Contact {
	return Contact{
		id:        id,
		tenantID:  tenantID,
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		email:     email,
		phone:     phone,
		title:     title,
		companyID: companyID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c Contact) ID() uuid.UUID         { return c.id }
func (c Contact) TenantID() uuid.UUID   { return c.tenantID }
func (c Contact) FirstName() string     { return c.firstName }
func (c Contact) LastName() string      { return c.lastName }
func (c Contact) Email() string         { return c.email }
func (c Contact) Phone() string         { return c.phone }
func (c Contact) Title() string         { return c.title }
func (c Contact) CompanyID() *uuid.UUID { return c.companyID }
func (c Contact) CreatedAt() time.Time  { return c.createdAt }
func (c Contact) UpdatedAt() time.Time  { return c.updatedAt }

type CreatedEvent struct {
	Result Contact
}
