package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusInput struct {
	Label string `validate:"required"`
	Color string `validate:"hexcolor_or_empty"`
}

type dateInput struct {
	Date string `validate:"required,date_only"`
}

func TestValidateStruct_CustomRules(t *testing.T) {
	assert.Empty(t, ValidateStruct(statusInput{Label: "Screening"}))
	assert.Empty(t, ValidateStruct(statusInput{Label: "Screening", Color: "#fff"}))

	errs := ValidateStruct(statusInput{Color: "blue"})
	require.Len(t, errs, 2)
	assert.Equal(t, "Label failed required; Color failed hexcolor_or_empty", Summary(errs))

	assert.Empty(t, ValidateStruct(dateInput{Date: "2025-02-28"}))
	assert.Len(t, ValidateStruct(dateInput{Date: "2025-02-30"}), 1)
	assert.Len(t, ValidateStruct(dateInput{Date: "28/02/2025"}), 1)
}
