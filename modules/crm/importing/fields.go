package importing

import (
	"errors"
	"fmt"
	"strings"
)

// EntityType selects which record kind an import run creates.
type EntityType string

const (
	EntityContacts      EntityType = "contacts"
	EntityCompanies     EntityType = "companies"
	EntityProducts      EntityType = "products"
	EntityManufacturers EntityType = "manufacturers"
	EntityCommissions   EntityType = "commissions"
)

// ErrInvalidImportType is returned for entity types outside the fixed
// enumeration.
var ErrInvalidImportType = errors.New("invalid import type")

func ParseEntityType(raw string) (EntityType, error) {
	normalized := EntityType(strings.ToLower(strings.TrimSpace(raw)))
	switch normalized {
	case EntityContacts, EntityCompanies, EntityProducts, EntityManufacturers, EntityCommissions:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidImportType, raw)
	}
}

// TargetField is one entry of an entity type's closed field vocabulary.
// Key is the stable identifier a mapping points at; Label is the human
// name the auto-mapper matches source headers against.
type TargetField struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// Field keys per entity type. Declaration order matters: the partial
// match pass of AutoMap picks the first field whose label matches.
var targetFieldsByType = map[EntityType][]TargetField{
	EntityContacts: {
		{Key: "firstName", Label: "First Name", Required: true},
		{Key: "lastName", Label: "Last Name", Required: true},
		{Key: "email", Label: "Email"},
		{Key: "phone", Label: "Phone"},
		{Key: "title", Label: "Title"},
		{Key: "companyName", Label: "Company Name"},
	},
	EntityCompanies: {
		{Key: "name", Label: "Name", Required: true},
		{Key: "website", Label: "Website"},
		{Key: "industry", Label: "Industry"},
		{Key: "city", Label: "City"},
	},
	EntityProducts: {
		{Key: "name", Label: "Name", Required: true},
		{Key: "sku", Label: "SKU"},
		{Key: "price", Label: "Price"},
		{Key: "manufacturerName", Label: "Manufacturer Name", Required: true},
	},
	EntityManufacturers: {
		{Key: "name", Label: "Name", Required: true},
	},
	EntityCommissions: {
		{Key: "companyName", Label: "Company Name", Required: true},
		{Key: "amount", Label: "Amount", Required: true},
		{Key: "rate", Label: "Rate"},
		{Key: "period", Label: "Period"},
		{Key: "notes", Label: "Notes"},
	},
}

// TargetFields returns the field vocabulary for an entity type, in
// declaration order.
func TargetFields(t EntityType) []TargetField {
	fields := targetFieldsByType[t]
	out := make([]TargetField, len(fields))
	copy(out, fields)
	return out
}

func fieldKeySet(t EntityType) map[string]bool {
	fields := targetFieldsByType[t]
	out := make(map[string]bool, len(fields))
	for _, f := range fields {
		out[f.Key] = true
	}
	return out
}
