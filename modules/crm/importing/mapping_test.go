package importing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAutoMap_ExactLabelMatchWinsOverSubstring(t *testing.T) {
	fields := TargetFields(EntityContacts)
	headers := []string{"First Name", "Last Name", "Email", "Company Name"}

	mapping := AutoMap(headers, fields)

	require.Equal(t, FieldMapping{
		"First Name":   "firstName",
		"Last Name":    "lastName",
		"Email":        "email",
		"Company Name": "companyName",
	}, mapping)
}

func TestAutoMap_SubstringContainmentEitherDirection(t *testing.T) {
	fields := TargetFields(EntityContacts)

	// "First" is contained in the label "First Name"; "Company Name (Main)"
	// contains the label "Company Name".
	mapping := AutoMap([]string{"First", "Company Name (Main)"}, fields)

	require.Equal(t, "firstName", mapping["First"])
	require.Equal(t, "companyName", mapping["Company Name (Main)"])
}

func TestAutoMap_DeclarationOrderBreaksTies(t *testing.T) {
	fields := TargetFields(EntityContacts)

	// "Name" is a substring of several labels; First Name is declared
	// first so it wins.
	mapping := AutoMap([]string{"Name"}, fields)

	require.Equal(t, "firstName", mapping["Name"])
}

func TestAutoMap_ClaimedFieldIsNotAssignedTwice(t *testing.T) {
	fields := TargetFields(EntityContacts)

	// "Phone" claims the phone field exactly; "Telephone" contains the
	// label but the field is taken, so it stays unmapped.
	mapping := AutoMap([]string{"Phone", "Telephone"}, fields)

	require.Equal(t, "phone", mapping["Phone"])
	_, ok := mapping["Telephone"]
	require.False(t, ok)
	require.NoError(t, mapping.Validate(EntityContacts))
}

func TestAutoMap_SuggestionAlwaysPassesValidate(t *testing.T) {
	headers := []string{"Name", "Full Name", "Company Name", "Company", "Phone", "Telephone"}

	for _, entity := range []EntityType{EntityContacts, EntityCompanies, EntityProducts, EntityCommissions} {
		mapping := AutoMap(headers, TargetFields(entity))
		require.NoError(t, mapping.Validate(entity))
	}
}

func TestAutoMap_UnmatchedHeaderStaysUnmapped(t *testing.T) {
	mapping := AutoMap([]string{"Shoe Size"}, TargetFields(EntityContacts))

	_, ok := mapping["Shoe Size"]
	require.False(t, ok)
}

func TestAutoMap_Deterministic(t *testing.T) {
	fields := TargetFields(EntityProducts)
	headers := []string{"Product Name", "SKU", "Price", "Manufacturer"}

	first := AutoMap(headers, fields)
	for i := 0; i < 20; i++ {
		require.Equal(t, first, AutoMap(headers, fields))
	}
}

func TestFieldMappingValidate_RejectsUnknownTarget(t *testing.T) {
	mapping := FieldMapping{"Some Column": "nope"}

	err := mapping.Validate(EntityCompanies)
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown target field "nope"`)
}

func TestFieldMappingValidate_RejectsDuplicateTargets(t *testing.T) {
	mapping := FieldMapping{
		"Company":      "name",
		"Organization": "name",
	}

	err := mapping.Validate(EntityCompanies)
	require.Error(t, err)
	require.Contains(t, err.Error(), `both map to field "name"`)
}

func TestFieldMappingValidate_EmptyTargetIsSkip(t *testing.T) {
	mapping := FieldMapping{
		"Internal Notes": "",
		"Company":        "name",
	}

	require.NoError(t, mapping.Validate(EntityCompanies))
}
