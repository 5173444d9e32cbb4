package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staffForm struct {
	StaffID string  `json:"staff_id" validate:"required,staff_id"`
	Date    *string `json:"date,omitempty" validate:"omitempty,date"`
	Month   *string `json:"month" validate:"omitempty,month"`
}

func strPtr(s string) *string { return &s }

func TestStruct(t *testing.T) {
	cases := []struct {
		name string
		form staffForm
		want map[string]string
	}{
		{"valid", staffForm{StaffID: "E1"}, nil},
		{"valid with dates", staffForm{StaffID: "staff-0042", Date: strPtr("2024-02-29"), Month: strPtr("2024-02")}, nil},
		{"missing staff", staffForm{}, map[string]string{"staff_id": "staff_id is required"}},
		{"staff with inner space", staffForm{StaffID: "John Smith"}, nil},
		{"staff non-ascii", staffForm{StaffID: "李雷"}, nil},
		{"staff with tab", staffForm{StaffID: "John\tSmith"}, map[string]string{"staff_id": "staff_id must not contain control characters"}},
		{
			"bad date and month",
			staffForm{StaffID: "E1", Date: strPtr("2024/01/01"), Month: strPtr("2024-13")},
			map[string]string{
				"date":  "date must be in YYYY-MM-DD format",
				"month": "month must be in YYYY-MM format",
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Struct(c.form)
			if c.want == nil {
				assert.NoError(t, err)
				return
			}
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, c.want, verrs.ToMap())
		})
	}
}

func TestStruct_NotAStruct(t *testing.T) {
	err := Struct("E1")
	require.Error(t, err)
	var verrs ValidationErrors
	assert.False(t, errors.As(err, &verrs))
}

func TestIsPrintable(t *testing.T) {
	valid := []string{"E1", "staff-0042", "A.B_C", "John Smith", "José", "李雷", strings.Repeat("x", 200)}
	invalid := []string{"E1\n", "\tE1", "a\x00b", "E\u200b1"}
	for _, id := range valid {
		assert.True(t, isPrintable(id), id)
	}
	for _, id := range invalid {
		assert.False(t, isPrintable(id), id)
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "staff_id", Message: "required"},
		{Field: "start_date", Message: "invalid"},
	}
	assert.Equal(t, "staff_id: required; start_date: invalid", errs.Error())
	assert.Equal(t, map[string]string{"staff_id": "required", "start_date": "invalid"}, errs.ToMap())
}
