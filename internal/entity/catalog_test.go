package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGender(t *testing.T) {
	tests := []struct {
		answer string
		want   Gender
		ok     bool
	}{
		{"👩 Женский", GenderFemale, true},
		{"Женский", GenderFemale, true},
		{"👨 Мужской", GenderMale, true},
		{"Мужской", GenderMale, true},
		{"женский", "", false},
		{"привет", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			got, ok := ParseGender(tt.answer)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsService(t *testing.T) {
	for _, s := range ServiceChoices {
		assert.True(t, IsService(s), s)
	}
	assert.False(t, IsService("Массаж"))
	assert.False(t, IsService(""))
	assert.False(t, IsService("покупка квартиры"))
}

func TestIsLikeTag(t *testing.T) {
	for _, l := range LikeChoices {
		assert.True(t, IsLikeTag(l), l)
	}
	assert.False(t, IsLikeTag(LikesDone), "finish sentinel is not a tag")
	assert.False(t, IsLikeTag("Погода"))
}

func TestLikesKeyboardChoices(t *testing.T) {
	choices := LikesKeyboardChoices()

	require.Len(t, choices, len(LikeChoices)+1)
	assert.Equal(t, LikeChoices, choices[:len(LikeChoices)])
	assert.Equal(t, LikesDone, choices[len(choices)-1])

	// Mutating the returned slice must not leak into the catalog.
	choices[0] = "changed"
	assert.NotEqual(t, "changed", LikeChoices[0])
}
