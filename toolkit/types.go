package toolkit

// BPP is the toolkit's bit-depth symbol for an icon bitmap.
type BPP uint8

const (
	BPP1 BPP = 0
	BPP2 BPP = 1
	BPP4 BPP = 2
)

// Bits returns the number of bits per pixel the symbol stands for.
func (b BPP) Bits() int {
	switch b {
	case BPP1:
		return 1
	case BPP2:
		return 2
	case BPP4:
		return 4
	default:
		return 0
	}
}

// IconDetails is the toolkit's icon descriptor. Bitmap is borrowed from the
// glyph that produced it and must not outlive it.
type IconDetails struct {
	Width  uint16
	Height uint16
	BPP    BPP
	IsFile bool
	Bitmap []byte
}

// OperationType is the composite review operation code: a base type in the
// low bits plus flag bits.
type OperationType uint32

const (
	TypeTransaction OperationType = 0
	TypeMessage     OperationType = 1
	TypeOperation   OperationType = 2

	SkippableOperation OperationType = 1 << 4
	BlindOperation     OperationType = 1 << 5

	typeMask OperationType = 0x0F
)

// Base returns the operation type without flag bits.
func (o OperationType) Base() OperationType { return o & typeMask }

// Blind reports whether the blind flag is set.
func (o OperationType) Blind() bool { return o&BlindOperation != 0 }

// Skippable reports whether the skippable flag is set.
func (o OperationType) Skippable() bool { return o&SkippableOperation != 0 }

// Noun returns the lower-case name of the base operation, used in titles.
func (o OperationType) Noun() string {
	switch o.Base() {
	case TypeMessage:
		return "message"
	case TypeOperation:
		return "operation"
	default:
		return "transaction"
	}
}

// ReviewStatus is the status banner code shown after a review.
type ReviewStatus uint8

const (
	StatusTransactionSigned ReviewStatus = iota
	StatusTransactionRejected
	StatusMessageSigned
	StatusMessageRejected
	StatusOperationSigned
	StatusOperationRejected
	StatusAddressVerified
	StatusAddressRejected
)

// Message returns the banner text for the status.
func (s ReviewStatus) Message() string {
	switch s {
	case StatusTransactionSigned:
		return "Transaction signed"
	case StatusTransactionRejected:
		return "Transaction rejected"
	case StatusMessageSigned:
		return "Message signed"
	case StatusMessageRejected:
		return "Message rejected"
	case StatusOperationSigned:
		return "Operation signed"
	case StatusOperationRejected:
		return "Operation rejected"
	case StatusAddressVerified:
		return "Address verified"
	case StatusAddressRejected:
		return "Address verification cancelled"
	default:
		return "Unknown status"
	}
}

// Success reports whether the status is a positive conclusion.
func (s ReviewStatus) Success() bool {
	switch s {
	case StatusTransactionSigned, StatusMessageSigned, StatusOperationSigned, StatusAddressVerified:
		return true
	default:
		return false
	}
}

// Tune is a raw sound-cue code.
type Tune uint8

const (
	TuneReserved Tune = iota
	TuneBoot
	TuneCharging
	TuneLedgerMoment
	TuneError
	TuneNeutral
	TuneLock
	TuneSuccess
	TuneLookAtMe
	TuneTapCasual
	TuneTapNext
)

// TagValue is one labelled line of a review.
type TagValue struct {
	Item  string
	Value string
}

// InfoPair is one entry of the home screen's "about" list.
type InfoPair struct {
	Name  string
	Value string
}

// Switch is one settings toggle on the home screen.
type Switch struct {
	Text    string
	SubText string
	On      bool
}
