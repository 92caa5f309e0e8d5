package ux

import (
	"github.com/drake/syncux/glyph"
	"github.com/drake/syncux/toolkit"
)

// StreamingReview reviews an operation whose fields arrive in batches:
// Start, then Continue once per batch, then Finish. Each step returns
// false as soon as the user rejects.
type StreamingReview struct {
	b             *Bridge
	kind          OperationKind
	blind         bool
	skippable     bool
	icon          *glyph.Glyph
	interruptible bool
}

// StreamingReview starts a review whose fields arrive in batches.
func (b *Bridge) StreamingReview(kind OperationKind) *StreamingReview {
	return &StreamingReview{b: b, kind: kind}
}

// Blind runs the risk warning at Start.
func (s *StreamingReview) Blind() *StreamingReview {
	s.blind = true
	return s
}

// Skippable lets the user jump to the sign page.
func (s *StreamingReview) Skippable() *StreamingReview {
	s.skippable = true
	return s
}

// Glyph sets the icon on the start page.
func (s *StreamingReview) Glyph(g *glyph.Glyph) *StreamingReview {
	s.icon = g
	return s
}

// Interruptible lets a command end any step with false. Use Resume to
// pick the step up again.
func (s *StreamingReview) Interruptible(on bool) *StreamingReview {
	s.interruptible = on
	return s
}

// Start shows the first page. A blind stream passes the risk warning
// first and, once the risk is accepted, carries on into the stream.
func (s *StreamingReview) Start(title, subtitle string) bool {
	if s.blind && !s.b.BlindWarning() {
		return false
	}
	return s.step(toolkit.StreamStart, title, subtitle, nil)
}

// Continue shows the next batch of fields.
func (s *StreamingReview) Continue(fields []Field) bool {
	return s.step(toolkit.StreamContinue, "", "", tagValues(fields))
}

// Finish shows the sign page.
func (s *StreamingReview) Finish(title string) bool {
	return s.step(toolkit.StreamFinish, title, "", nil)
}

func (s *StreamingReview) step(stage toolkit.StreamStage, title, subtitle string, fields []toolkit.TagValue) bool {
	return s.b.run(toolkit.StreamingScreen{
		Stage:     stage,
		Operation: OperationCode(s.kind, s.blind, s.skippable),
		Icon:      glyph.IconPtr(s.icon),
		Title:     title,
		Subtitle:  subtitle,
		Fields:    fields,
		OnChoice:  s.b.onChoice,
	}, s.interruptible) == Approved
}
