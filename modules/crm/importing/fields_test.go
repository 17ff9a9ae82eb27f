package importing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEntityType(t *testing.T) {
	for _, raw := range []string{"contacts", " Contacts ", "COMPANIES", "products", "manufacturers", "commissions"} {
		_, err := ParseEntityType(raw)
		require.NoError(t, err, raw)
	}

	_, err := ParseEntityType("invoices")
	require.ErrorIs(t, err, ErrInvalidImportType)
}

func TestTargetFields_ReturnsACopy(t *testing.T) {
	fields := TargetFields(EntityCompanies)
	fields[0].Key = "mutated"

	require.Equal(t, "name", TargetFields(EntityCompanies)[0].Key)
}
