package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionToggleLike(t *testing.T) {
	s := &Session{State: StateLikes, Likes: []string{}}

	assert.True(t, s.ToggleLike("Скорость"))
	assert.Equal(t, []string{"Скорость"}, s.Likes)

	assert.True(t, s.ToggleLike("Цена"))
	assert.Equal(t, []string{"Скорость", "Цена"}, s.Likes)

	// Second toggle of the same tag removes it.
	assert.False(t, s.ToggleLike("Скорость"))
	assert.Equal(t, []string{"Цена"}, s.Likes)

	// Toggling it back re-appends at the end.
	assert.True(t, s.ToggleLike("Скорость"))
	assert.Equal(t, []string{"Цена", "Скорость"}, s.Likes)
}

func TestSessionToggleLikeRemoveLast(t *testing.T) {
	s := &Session{Likes: []string{"Цена"}}

	assert.False(t, s.ToggleLike("Цена"))
	assert.Empty(t, s.Likes)
}
