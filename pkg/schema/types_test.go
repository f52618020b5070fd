package schema

import (
	"testing"

	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestValid_BuiltinKinds(t *testing.T) {
	tests := []struct {
		kind  domain.FieldKind
		raw   string
		valid bool
	}{
		{domain.KindSRN, "PES1UG20CS001", true},
		{domain.KindSRN, "pes1ug20cs001", true},
		{domain.KindSRN, "PES2UG21EC123", true},
		{domain.KindSRN, "PES3UG20CS001", false},
		{domain.KindSRN, "PES1UG20ME001", false},
		{domain.KindSRN, "PES1UG20CS01", false},
		{domain.KindSRN, "", false},

		{domain.KindEmail, "student@pes.edu", true},
		{domain.KindEmail, "a@b.c", true},
		{domain.KindEmail, "student@pes", false},
		{domain.KindEmail, "@pes.edu", false},
		{domain.KindEmail, "two words@pes.edu", false},
		{domain.KindEmail, "", false},

		{domain.KindCGPA, "8.5", true},
		{domain.KindCGPA, "1", true},
		{domain.KindCGPA, "10", true},
		{domain.KindCGPA, "0.9", false},
		{domain.KindCGPA, "10.01", false},
		{domain.KindCGPA, "abc", false},
		{domain.KindCGPA, "NaN", false},
		{domain.KindCGPA, "", false},

		{domain.KindSemester, "8", true},
		{domain.KindSemester, "1", true},
		{domain.KindSemester, "9", false},
		{domain.KindSemester, "0", false},
		{domain.KindSemester, "4.5", false},
		{domain.KindSemester, "", false},

		{domain.KindPhone, "9876543210", true},
		{domain.KindPhone, "987654321", false},
		{domain.KindPhone, "98765432101", false},
		{domain.KindPhone, "98765x3210", false},
		{domain.KindPhone, "", false},

		{domain.KindAge, "21", true},
		{domain.KindAge, "0", false},
		{domain.KindAge, "-3", false},
		{domain.KindAge, "twenty", false},
		{domain.KindAge, "", false},

		{domain.KindDate, "2024-03-15", true},
		{domain.KindDate, "2024-02-30", false},
		{domain.KindDate, "15/03/2024", false},
		{domain.KindDate, "", false},

		{domain.KindText, "Ada", true},
		{domain.KindText, "   ", false},
		{domain.KindText, "", false},
		{domain.KindURL, "https://github.com/ada", true},
		{domain.KindURL, " ", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.valid, Valid(tt.kind, tt.raw))
		})
	}
}

func TestValid_UnknownKind(t *testing.T) {
	assert.False(t, Valid("colour", "red"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "PES1UG20CS001", Normalize(domain.KindSRN, " pes1ug20cs001 "))
	assert.Equal(t, "Ada Lovelace", Normalize(domain.KindText, "  Ada Lovelace "))
	assert.Equal(t, "8.5", Normalize(domain.KindCGPA, "8.5 "))
}

func TestLookup(t *testing.T) {
	typ, err := Lookup("")
	assert.NoError(t, err)
	assert.Equal(t, "text", typ.Name())

	_, err = Lookup("colour")
	assert.Error(t, err)

	assert.Contains(t, Kinds(), domain.KindSemester)
}

func TestCustom(t *testing.T) {
	even := Custom("even", func(raw string) error {
		if len(raw)%2 != 0 {
			return assert.AnError
		}
		return nil
	})
	assert.NoError(t, even.Validate("ab"))
	assert.Error(t, even.Validate("abc"))
	assert.Error(t, even.Validate(""))
}
