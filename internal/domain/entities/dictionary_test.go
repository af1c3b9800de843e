package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeDictionary(t *testing.T) {
	assert.Equal(t, CategoryAttribute, AttributeDictionary.Category())
	assert.Equal(t, 9, AttributeDictionary.Len())

	entry, ok := AttributeDictionary.Lookup("wits")
	require.True(t, ok)
	assert.Equal(t, "Wits", entry.Name)
	assert.Equal(t, []string{TagMental, TagFinesse}, entry.Tags)

	_, ok = AttributeDictionary.Lookup("wit")
	assert.False(t, ok, "lookup requires the full name")

	assert.Nil(t, AttributeDictionary.Tags("Luck"))
	assert.Empty(t, AttributeDictionary.WithTag("Nonexistent"))
	assert.Equal(t, []string{"Charisma", "Composure", "Manipulation"}, AttributeDictionary.WithTag("social"))
}

func TestSkillDictionary(t *testing.T) {
	assert.Equal(t, 24, SkillDictionary.Len())
	assert.Len(t, SkillDictionary.WithTag(TagMental), 8)
	assert.Len(t, SkillDictionary.WithTag(TagPhysical), 8)
	assert.Len(t, SkillDictionary.WithTag(TagSocial), 8)

	name, err := SkillDictionary.Canonicalize("ken")
	require.NoError(t, err)
	assert.Equal(t, "Animal Ken", name)
}

func TestDictionary_TagsAreCopies(t *testing.T) {
	tags := AttributeDictionary.Tags("Strength")
	tags[0] = "Changed"
	assert.Equal(t, []string{TagPhysical, TagForce}, AttributeDictionary.Tags("Strength"))
}

func TestNewDictionary_Errors(t *testing.T) {
	_, err := NewDictionary("merit", []DictionaryEntry{
		{Category: "merit", Name: "Resources"},
		{Category: "merit", Name: "resources"},
	})
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewDictionary("merit", []DictionaryEntry{{Category: "skill", Name: "Brawl"}})
	assert.Error(t, err)
}

func TestDictionaryEntry_Validate(t *testing.T) {
	lo, hi := 3, 1
	tests := []struct {
		name    string
		entry   DictionaryEntry
		wantErr string
	}{
		{name: "valid", entry: DictionaryEntry{Category: "merit", Name: "Resources", Values: AllowedValues{Discrete: []int{1, 2, 3}}}},
		{name: "missing category", entry: DictionaryEntry{Name: "Resources"}, wantErr: "category is required"},
		{name: "missing name", entry: DictionaryEntry{Category: "merit", Name: " "}, wantErr: "name is required"},
		{name: "dotted name", entry: DictionaryEntry{Category: "merit", Name: "A.B"}, wantErr: "must not contain"},
		{name: "empty tag", entry: DictionaryEntry{Category: "merit", Name: "A", Tags: []string{""}}, wantErr: "tags"},
		{name: "inverted range", entry: DictionaryEntry{Category: "merit", Name: "A", Values: AllowedValues{Min: &lo, Max: &hi}}, wantErr: "exceeds"},
		{name: "half range", entry: DictionaryEntry{Category: "merit", Name: "A", Values: AllowedValues{Min: &lo}}, wantErr: "both min and max"},
		{name: "set and range", entry: DictionaryEntry{Category: "merit", Name: "A", Values: AllowedValues{Discrete: []int{1}, Min: &hi, Max: &lo}}, wantErr: "not both"},
		{name: "built-in attribute", entry: DictionaryEntry{Category: "attribute", Name: "strength"}},
		{name: "new attribute", entry: DictionaryEntry{Category: "Attribute", Name: "Power"}, wantErr: "not a built-in attribute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestAllowedValues(t *testing.T) {
	var zero AllowedValues
	assert.True(t, zero.IsZero())
	assert.True(t, zero.Contains(99))
	_, _, ok := zero.Bounds()
	assert.False(t, ok)

	set := AllowedValues{Discrete: []int{4, 1, 2}}
	assert.True(t, set.Contains(2))
	assert.False(t, set.Contains(3))
	lo, hi, ok := set.Bounds()
	require.True(t, ok)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 4, hi)
	assert.Equal(t, "4,1,2", set.String())

	r := Range(1, 5)
	assert.True(t, r.Contains(5))
	assert.False(t, r.Contains(6))
	assert.Equal(t, "1-5", r.String())
}

func TestIsProtectedEntry(t *testing.T) {
	assert.True(t, IsProtectedEntry("attribute", "strength"))
	assert.False(t, IsProtectedEntry("skill", "Brawl"))
	assert.False(t, IsProtectedEntry("attribute", "Luck"))
}

func TestDefaultEntries(t *testing.T) {
	all := DefaultEntries()
	assert.Len(t, all, 33)
	for _, e := range all {
		assert.NoError(t, e.Validate(), e.Name)
	}
}
