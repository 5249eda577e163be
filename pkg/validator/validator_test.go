package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	assert.Nil(t, Name("John Doe"))
	assert.Nil(t, Name("Joe"))

	assert.Nil(t, Name("李小龙"))

	assert.NotNil(t, Name(""))
	assert.NotNil(t, Name("Jo"))
	// Whitespace does not count toward the minimum.
	assert.NotNil(t, Name("  a  "))
	// The minimum counts characters, not bytes.
	assert.NotNil(t, Name("李"))
	assert.NotNil(t, Name("李龙"))
}

func TestMobile(t *testing.T) {
	assert.Nil(t, Mobile("9876543210"))

	assert.NotNil(t, Mobile(""))
	assert.NotNil(t, Mobile("12345"))
	assert.NotNil(t, Mobile("98765432100"))
	assert.NotNil(t, Mobile("98765abcde"))
	assert.NotNil(t, Mobile("+919876543210"))
}

func TestDOB(t *testing.T) {
	assert.Nil(t, DOB(""))
	assert.Nil(t, DOB("15/08/1990"))
	assert.Nil(t, DOB("29/02/2024"))

	assert.NotNil(t, DOB("1990-08-15"))
	assert.NotNil(t, DOB("32/01/1990"))
	assert.NotNil(t, DOB("29/02/2023"))
	assert.NotNil(t, DOB("15/13/1990"))
}

func TestEmail(t *testing.T) {
	assert.Nil(t, Email(""))
	assert.Nil(t, Email("john@example.com"))
	assert.Nil(t, Email("j.doe+tag@sub.example.co"))

	assert.NotNil(t, Email("not-an-email"))
	assert.NotNil(t, Email("missing@tld"))
	assert.NotNil(t, Email("@example.com"))
}

func TestIdentity(t *testing.T) {
	assert.Nil(t, Identity("John Doe", "9876543210", "", ""))
	assert.Nil(t, Identity("John Doe", "9876543210", "15/08/1990", "john@example.com"))

	err := Identity("Jo", "12345", "bad-date", "bad-email")
	require.NotNil(t, err)
	assert.Equal(t, 422, err.Code)
	// All field problems reported at once.
	assert.Len(t, err.Errors, 4)

	fields := make([]string, 0, len(err.Errors))
	for _, fe := range err.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"name", "mobile", "dob", "email"}, fields)
}

func TestParseReportDate(t *testing.T) {
	d, err := ParseReportDate("15/08/2026")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, 8, int(d.Month()))
	assert.Equal(t, 15, d.Day())

	_, err = ParseReportDate("2026-08-15")
	assert.Error(t, err)
}
