package toolkit

// ScreenKind identifies a screen description.
type ScreenKind int

const (
	KindHome ScreenKind = iota
	KindReview
	KindChoice
	KindReviewStatus
	KindStatus
	KindAddressReview
	KindStreaming
	KindSpinner
)

// String returns the snake_case name of the kind.
func (k ScreenKind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindReview:
		return "review"
	case KindChoice:
		return "choice"
	case KindReviewStatus:
		return "review_status"
	case KindStatus:
		return "status"
	case KindAddressReview:
		return "address_review"
	case KindStreaming:
		return "streaming"
	case KindSpinner:
		return "spinner"
	default:
		return "unknown"
	}
}

// Screen is a structural description handed to Toolkit.Show together with
// the callbacks that conclude it.
type Screen interface {
	Kind() ScreenKind
}

// HomeScreen is the idle screen of an application.
type HomeScreen struct {
	AppName  string
	Icon     *IconDetails
	Tagline  string
	Info     []InfoPair
	Switches []Switch

	// OnSwitch persists a toggled switch. On error the switch is flipped
	// back and the toggle is reported as failed.
	OnSwitch func(index int, on bool) error
	OnQuit   func()
}

// ReviewScreen shows an ordered list of fields for approval.
type ReviewScreen struct {
	Operation   OperationType
	Fields      []TagValue
	Icon        *IconDetails
	Title       string
	Subtitle    string
	FinishTitle string

	OnChoice func(confirm bool)
}

// ChoiceScreen is a binary question with two labelled buttons.
type ChoiceScreen struct {
	Icon        *IconDetails
	Message     string
	SubMessage  string
	ConfirmText string
	CancelText  string

	OnChoice func(confirm bool)
}

// ReviewStatusScreen is the auto-dismissing banner shown after a review.
type ReviewStatusScreen struct {
	Status ReviewStatus

	OnQuit func()
}

// StatusScreen is an auto-dismissing banner with free text.
type StatusScreen struct {
	Message string
	Success bool

	OnQuit func()
}

// AddressReviewScreen asks the user to verify an address.
type AddressReviewScreen struct {
	Address  string
	Icon     *IconDetails
	Title    string
	Subtitle string

	OnChoice func(confirm bool)
}

// StreamStage is the step of a streaming review.
type StreamStage uint8

const (
	StreamStart StreamStage = iota
	StreamContinue
	StreamFinish
)

// StreamingScreen is one step of a review whose fields arrive in batches.
type StreamingScreen struct {
	Stage     StreamStage
	Operation OperationType
	Icon      *IconDetails
	Title     string
	Subtitle  string
	Fields    []TagValue

	OnChoice func(confirm bool)
}

// SpinnerScreen is a progress screen with no user decision.
type SpinnerScreen struct {
	Text string
}

func (HomeScreen) Kind() ScreenKind          { return KindHome }
func (ReviewScreen) Kind() ScreenKind        { return KindReview }
func (ChoiceScreen) Kind() ScreenKind        { return KindChoice }
func (ReviewStatusScreen) Kind() ScreenKind  { return KindReviewStatus }
func (StatusScreen) Kind() ScreenKind        { return KindStatus }
func (AddressReviewScreen) Kind() ScreenKind { return KindAddressReview }
func (StreamingScreen) Kind() ScreenKind     { return KindStreaming }
func (SpinnerScreen) Kind() ScreenKind       { return KindSpinner }
