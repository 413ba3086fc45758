package keyboard

import (
	"testing"

	"github.com/futig/realtor-bot/internal/telegram/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactKeyboard(t *testing.T) {
	kb := NewBuilder().ContactKeyboard()

	require.Len(t, kb.Keyboard, 1)
	require.Len(t, kb.Keyboard[0], 1)
	assert.Equal(t, render.BtnShareContact, kb.Keyboard[0][0].Text)
	assert.True(t, kb.Keyboard[0][0].RequestContact)
	assert.True(t, kb.OneTimeKeyboard)
	assert.True(t, kb.ResizeKeyboard)
}

func TestRemoveKeyboard(t *testing.T) {
	kb := NewBuilder().RemoveKeyboard()
	assert.True(t, kb.RemoveKeyboard)
}
