package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr error
	}{
		{name: "simple", input: "1.2.2024", want: Date{Day: 1, Month: 2, Year: 2024}},
		{name: "padded", input: "01.02.2024", want: Date{Day: 1, Month: 2, Year: 2024}},
		{name: "trailing newline", input: "31.12.1999\n", want: Date{Day: 31, Month: 12, Year: 1999}},
		{name: "leap day in leap year", input: "29.2.2024", want: Date{Day: 29, Month: 2, Year: 2024}},
		{name: "leap day in 2000", input: "29.2.2000", want: Date{Day: 29, Month: 2, Year: 2000}},
		{name: "leap day in 1900", input: "29.2.1900", wantErr: ErrInvalidDate},
		{name: "leap day in common year", input: "29.2.2023", wantErr: ErrInvalidDate},
		{name: "day 31 in april", input: "31.4.2024", wantErr: ErrInvalidDate},
		{name: "day zero", input: "0.1.2024", wantErr: ErrInvalidDate},
		{name: "month 13", input: "1.13.2024", wantErr: ErrInvalidDate},
		{name: "year zero", input: "1.1.0", wantErr: ErrInvalidDate},
		{name: "two parts", input: "1.2", wantErr: ErrInvalidDate},
		{name: "trailing text", input: "1.2.2024x", wantErr: ErrInvalidDate},
		{name: "four parts", input: "1.2.20.24", wantErr: ErrInvalidDate},
		{name: "empty", input: "", wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, IsLeapYear(2024))
	assert.True(t, IsLeapYear(2000))
	assert.False(t, IsLeapYear(1900))
	assert.False(t, IsLeapYear(2023))
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "1.2.2024", Date{Day: 1, Month: 2, Year: 2024}.String())
}

func TestDateCompare(t *testing.T) {
	a := Date{Day: 1, Month: 2, Year: 2024}
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.Compare(Date{Day: 2, Month: 2, Year: 2024}))
	assert.Equal(t, 1, a.Compare(Date{Day: 31, Month: 1, Year: 2024}))
	assert.Equal(t, -1, a.Compare(Date{Day: 1, Month: 1, Year: 2025}))
}
