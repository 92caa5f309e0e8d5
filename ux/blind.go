package ux

import (
	"github.com/drake/syncux/glyph"
	"github.com/drake/syncux/toolkit"
)

const (
	riskTitle   = "Security risk detected"
	riskBody    = "It may not be safe to sign this transaction. To continue, you'll need to review the risk."
	riskBack    = "Back to safety"
	riskReview  = "Review risk"
	trustTitle  = "The transaction cannot be trusted"
	trustBody   = "Your Ledger cannot decode this transaction. If you sign it, you could be authorizing malicious actions that can drain your wallet.\n\nLearn more: ledger.com/e8"
	trustAccept = "I accept the risk"
	trustReject = "Reject transaction"
)

// 8x8 exclamation mark in a frame, 1 bpp.
var warningBitmap = []byte{0xFF, 0x99, 0x99, 0x99, 0x99, 0xFF, 0x99, 0xFF}

var warningGlyph = glyph.New(warningBitmap, 8, 8, 1, false)

// BlindWarning runs the two-step risk gate shown before a review the
// device cannot decode. Step one offers a way back; choosing it ends the
// gate with false. Step two asks the user to accept the risk, and its
// answer is the gate's answer. Only step one carries the warning icon.
// Both steps ignore incoming commands.
func (b *Bridge) BlindWarning() bool {
	icon := warningGlyph.Icon()

	backToSafety := b.run(toolkit.ChoiceScreen{
		Icon:        &icon,
		Message:     riskTitle,
		SubMessage:  riskBody,
		ConfirmText: riskBack,
		CancelText:  riskReview,
		OnChoice:    b.onChoice,
	}, false) == Approved
	if backToSafety {
		return false
	}

	return b.run(toolkit.ChoiceScreen{
		Message:     trustTitle,
		SubMessage:  trustBody,
		ConfirmText: trustAccept,
		CancelText:  trustReject,
		OnChoice:    b.onChoice,
	}, false) == Approved
}
