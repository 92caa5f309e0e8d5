package ux

import (
	"github.com/drake/syncux/glyph"
	"github.com/drake/syncux/toolkit"
)

// AddressReview asks the user to compare an address with the one shown
// by the host.
type AddressReview struct {
	b          *Bridge
	icon       *glyph.Glyph
	verifyText string
}

// AddressReview starts an address verification.
func (b *Bridge) AddressReview() *AddressReview {
	return &AddressReview{b: b, verifyText: "Verify address"}
}

// Glyph sets the icon on the verify page.
func (a *AddressReview) Glyph(g *glyph.Glyph) *AddressReview {
	a.icon = g
	return a
}

// VerifyText sets the title of the first page.
func (a *AddressReview) VerifyText(text string) *AddressReview {
	a.verifyText = text
	return a
}

// Show displays address and reports whether the user confirmed it.
func (a *AddressReview) Show(address string) bool {
	return a.b.run(toolkit.AddressReviewScreen{
		Address:  address,
		Icon:     glyph.IconPtr(a.icon),
		Title:    a.verifyText,
		OnChoice: a.b.onChoice,
	}, false) == Approved
}
