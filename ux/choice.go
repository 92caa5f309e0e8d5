package ux

import (
	"github.com/drake/syncux/glyph"
	"github.com/drake/syncux/toolkit"
)

// Choice is a yes/no question.
type Choice struct {
	b    *Bridge
	icon *glyph.Glyph
}

// Choice starts a yes/no question.
func (b *Bridge) Choice() *Choice {
	return &Choice{b: b}
}

// Glyph sets the icon above the message.
func (c *Choice) Glyph(g *glyph.Glyph) *Choice {
	c.icon = g
	return c
}

// Show asks the question and reports whether the user picked the confirm
// button. Commands do not interrupt it.
func (c *Choice) Show(message, subMessage, confirmText, cancelText string) bool {
	return c.b.run(toolkit.ChoiceScreen{
		Icon:        glyph.IconPtr(c.icon),
		Message:     message,
		SubMessage:  subMessage,
		ConfirmText: confirmText,
		CancelText:  cancelText,
		OnChoice:    c.b.onChoice,
	}, false) == Approved
}
