package isbn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shelfwise/internal/pkg/isbn"
)

func Test_Normalize_StripsSeparatorsAndUppercases(t *testing.T) {
	assert.Equal(t, "0306406152", isbn.Normalize("0-306-40615-2"))
	assert.Equal(t, "020161622X", isbn.Normalize("0 201 61622 x"))
}

func Test_IsValid_ISBN10(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		valid bool
	}{
		{"plain valid", "0306406152", true},
		{"hyphenated valid", "0-306-40615-2", true},
		{"check digit X", "020161622X", true},
		{"lowercase x", "020161622x", true},
		{"wrong check digit", "0306406153", false},
		{"X in wrong position", "02016X622X", false},
		{"non-digit character", "030640615A", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, isbn.IsValid(tc.input))
		})
	}
}

func Test_IsValid_ISBN13(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		valid bool
	}{
		{"plain valid", "9780306406157", true},
		{"hyphenated valid", "978-0-306-40615-7", true},
		{"wrong check digit", "9780306406158", false},
		{"X not allowed", "978030640615X", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, isbn.IsValid(tc.input))
		})
	}
}

func Test_IsValid_RejectsWrongLengths(t *testing.T) {
	assert.False(t, isbn.IsValid(""))
	assert.False(t, isbn.IsValid("123456789"))
	assert.False(t, isbn.IsValid("12345678901"))
	assert.False(t, isbn.IsValid("12345678901234"))
}
