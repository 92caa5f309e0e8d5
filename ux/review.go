package ux

import (
	"github.com/drake/syncux/glyph"
	"github.com/drake/syncux/toolkit"
)

// Review asks the user to approve an operation given as a list of fields.
type Review struct {
	b             *Bridge
	kind          OperationKind
	blind         bool
	skippable     bool
	icon          *glyph.Glyph
	title         string
	subtitle      string
	finishTitle   string
	interruptible bool
}

// Review starts a transaction review. Reviews are interruptible by a
// command unless told otherwise.
func (b *Bridge) Review() *Review {
	return &Review{b: b, kind: Transaction, interruptible: true}
}

// Kind selects the operation being reviewed. Transaction is the default.
func (r *Review) Kind(k OperationKind) *Review {
	r.kind = k
	return r
}

// Blind puts the two-step risk warning in front of the review.
func (r *Review) Blind() *Review {
	r.blind = true
	return r
}

// Skippable lets the user jump straight to the sign page.
func (r *Review) Skippable() *Review {
	r.skippable = true
	return r
}

// Glyph sets the icon shown on the first page.
func (r *Review) Glyph(g *glyph.Glyph) *Review {
	r.icon = g
	return r
}

// Titles sets the first page title and subtitle and the title of the
// final sign page. Empty values fall back to defaults built from the
// operation kind.
func (r *Review) Titles(title, subtitle, finish string) *Review {
	r.title = title
	r.subtitle = subtitle
	r.finishTitle = finish
	return r
}

// Interruptible sets whether an arriving command ends the review.
func (r *Review) Interruptible(on bool) *Review {
	r.interruptible = on
	return r
}

// ReviewTransaction shows fields and reports whether the user approved.
func (r *Review) ReviewTransaction(fields []Field) bool {
	return r.Show(fields) == Approved
}

// Show shows fields and returns the raw outcome, which lets callers tell
// an interrupting command apart from a rejection.
//
// A blind review runs the risk warning instead. Its verdict is the
// review's verdict and the field list is never displayed.
func (r *Review) Show(fields []Field) Outcome {
	if r.blind {
		if r.b.BlindWarning() {
			return Approved
		}
		return Rejected
	}

	code := OperationCode(r.kind, false, r.skippable)
	return r.b.run(toolkit.ReviewScreen{
		Operation:   code,
		Fields:      tagValues(fields),
		Icon:        glyph.IconPtr(r.icon),
		Title:       orDefault(r.title, "Review "+code.Noun()),
		Subtitle:    r.subtitle,
		FinishTitle: orDefault(r.finishTitle, "Sign "+code.Noun()),
		OnChoice:    r.b.onChoice,
	}, r.interruptible)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
