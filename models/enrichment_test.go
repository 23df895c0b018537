package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestGroupConditionMitigations(t *testing.T) {
	conditions := []Condition{
		{ID: 1, Name: "Heavy rain", Type: ConditionTypeWeather},
		{ID: 2, Name: "Strong wind", Type: ConditionTypeWeather},
	}
	links := []ConditionMitigationRow{
		{ConditionID: 1, MitigationID: 10, Name: "Postpone work", Type: ConditionTypeWeather},
		{ConditionID: 1, MitigationID: 11, Name: "Use rain gear", Type: ConditionTypeWeather},
		{ConditionID: 3, MitigationID: 12, Name: "Orphan link", Type: ConditionTypeWeather},
		{ConditionID: 2, MitigationID: 0, Name: "", Type: ""},
	}

	details := GroupConditionMitigations(conditions, links)

	require.Len(t, details, 2)
	assert.Equal(t, "Heavy rain", details[0].Name)
	require.Len(t, details[0].Mitigations, 2)
	assert.Equal(t, uint(10), details[0].Mitigations[0].ID)

	// condition without real links still serializes as [] not null
	assert.NotNil(t, details[1].Mitigations)
	assert.Empty(t, details[1].Mitigations)
}

func TestGroupConditionMitigationsNoConditions(t *testing.T) {
	details := GroupConditionMitigations(nil, []ConditionMitigationRow{
		{ConditionID: 1, MitigationID: 5, Name: "x", Type: ConditionTypeTree},
	})
	assert.Empty(t, details)
}

func TestDecodeStringList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"plain list", `["a","b"]`, []string{"a", "b"}},
		{"empty list", `[]`, []string{}},
		{"mixed entries keep strings only", `["a", 3, null, "b"]`, []string{"a", "b"}},
		{"garbage decodes to empty", `{"x":1}`, []string{}},
		{"not json at all", `oops`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeStringList(datatypes.JSON(tt.raw)))
		})
	}

	assert.Equal(t, []string{}, DecodeStringList(nil))
}

func TestDecodeIDList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"numbers normalize to strings", `[3, 12]`, []string{"3", "12"}},
		{"strings pass through trimmed", `[" 7", "8 "]`, []string{"7", "8"}},
		{"mixed numbers and strings", `[3, "12"]`, []string{"3", "12"}},
		{"blank strings dropped", `["", "  ", "5"]`, []string{"5"}},
		{"garbage decodes to empty", `"nope"`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeIDList(datatypes.JSON(tt.raw)))
		})
	}
}

func TestResolveCrewNames(t *testing.T) {
	names := map[string]string{"3": "Anna", "12": "Björn"}

	resolved := ResolveCrewNames(datatypes.JSON(`[3, "12", 99]`), names)

	require.Len(t, resolved, 3)
	assert.Equal(t, "Anna", resolved[0])
	assert.Equal(t, "Björn", resolved[1])
	assert.Equal(t, "Unknown User (ID: 99)", resolved[2])
}

func TestUserNameMap(t *testing.T) {
	users := []User{
		{ID: 1, Name: "Viktor"},
		{ID: 2, Name: "Rudolf"},
	}
	m := UserNameMap(users)
	assert.Equal(t, "Viktor", m["1"])
	assert.Equal(t, "Rudolf", m["2"])
	assert.Len(t, m, 2)
}

func TestFormatID(t *testing.T) {
	assert.Equal(t, "0", FormatID(0))
	assert.Equal(t, "42", FormatID(42))
}
