package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/drake/syncux/text"
	"github.com/drake/syncux/toolkit"
	"github.com/drake/syncux/ui/style"
)

// viewKind groups screens by the gestures they accept.
type viewKind int

const (
	viewNone viewKind = iota
	viewHome
	viewDecision
	viewAddress
	viewBanner
	viewSpinner
)

// screenView is the render-only copy of a screen handed to the Bubble Tea
// goroutine. It carries no callbacks.
type screenView struct {
	Gen      int
	Kind     viewKind
	Screen   toolkit.ScreenKind
	Header   string
	Title    string
	Subtitle string
	Body     string
	Fields   []toolkit.TagValue
	Confirm  string
	Cancel   string
	Switches []toolkit.Switch
	Info     []toolkit.InfoPair
	Address  string
	Success  bool
	Blind    bool
}

func viewOf(s toolkit.Screen, gen int) screenView {
	v := screenView{Gen: gen, Screen: s.Kind()}
	switch sc := s.(type) {
	case toolkit.HomeScreen:
		v.Kind = viewHome
		v.Header = sc.AppName
		v.Title = sc.AppName
		v.Subtitle = sc.Tagline
		v.Info = sc.Info
		v.Switches = append([]toolkit.Switch(nil), sc.Switches...)
	case toolkit.ReviewScreen:
		v.Kind = viewDecision
		v.Header = "Review"
		v.Title = sc.Title
		v.Subtitle = sc.Subtitle
		v.Fields = sc.Fields
		v.Confirm = orDefault(sc.FinishTitle, "Sign")
		v.Cancel = "Reject"
		v.Blind = sc.Operation.Blind()
	case toolkit.ChoiceScreen:
		v.Kind = viewDecision
		v.Header = "Choice"
		v.Title = sc.Message
		v.Body = sc.SubMessage
		v.Confirm = orDefault(sc.ConfirmText, "Yes")
		v.Cancel = orDefault(sc.CancelText, "No")
	case toolkit.StreamingScreen:
		v.Kind = viewDecision
		v.Header = "Review"
		v.Title = sc.Title
		v.Subtitle = sc.Subtitle
		v.Fields = sc.Fields
		v.Blind = sc.Operation.Blind()
		v.Cancel = "Reject"
		switch sc.Stage {
		case toolkit.StreamFinish:
			v.Confirm = orDefault(sc.Title, "Sign")
		default:
			v.Confirm = "Continue"
		}
	case toolkit.AddressReviewScreen:
		v.Kind = viewAddress
		v.Header = "Address"
		v.Title = sc.Title
		v.Subtitle = sc.Subtitle
		v.Address = sc.Address
		v.Confirm = "Confirm"
		v.Cancel = "Cancel"
	case toolkit.ReviewStatusScreen:
		v.Kind = viewBanner
		v.Title = sc.Status.Message()
		v.Success = sc.Status.Success()
	case toolkit.StatusScreen:
		v.Kind = viewBanner
		v.Title = sc.Message
		v.Success = sc.Success
	case toolkit.SpinnerScreen:
		v.Kind = viewSpinner
		v.Title = sc.Text
	}
	return clean(v)
}

// clean strips terminal control sequences from everything the host can
// put on screen.
func clean(v screenView) screenView {
	v.Header = text.Sanitize(v.Header, false)
	v.Title = text.Sanitize(v.Title, false)
	v.Subtitle = text.Sanitize(v.Subtitle, false)
	v.Body = text.Sanitize(v.Body, true)
	v.Address = text.Sanitize(v.Address, false)
	if len(v.Fields) > 0 {
		fields := make([]toolkit.TagValue, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = toolkit.TagValue{Item: text.Sanitize(f.Item, false), Value: text.Sanitize(f.Value, false)}
		}
		v.Fields = fields
	}
	return v
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// renderBody renders everything that scrolls. width is the usable width.
func renderBody(v screenView, s style.Styles, width int) string {
	var b strings.Builder
	line := func(text string) {
		b.WriteString(text)
		b.WriteByte('\n')
	}

	if v.Blind {
		line(s.Warning.Render("Blind signing"))
	}
	switch v.Kind {
	case viewBanner:
		mark, st := "✗", s.Failure
		if v.Success {
			mark, st = "✓", s.Success
		}
		line(st.Render(mark + " " + v.Title))
		return b.String()
	}

	if v.Title != "" {
		line(s.Title.Render(v.Title))
	}
	if v.Subtitle != "" {
		line(s.Subtitle.Render(v.Subtitle))
	}
	if v.Body != "" {
		line("")
		for _, l := range strings.Split(v.Body, "\n") {
			line(s.Body.Render(l))
		}
	}
	if len(v.Fields) > 0 {
		line("")
		for _, f := range v.Fields {
			line(s.FieldName.Render(f.Item))
			line(s.FieldValue.Render(truncate(f.Value, width)))
		}
	}
	if v.Address != "" {
		line("")
		line(s.FieldValue.Render(v.Address))
	}
	if len(v.Switches) > 0 {
		line("")
		for i, sw := range v.Switches {
			state, st := "off", s.SwitchOff
			if sw.On {
				state, st = "on ", s.SwitchOn
			}
			label := fmt.Sprintf("%d %s", (i+1)%10, sw.Text)
			line(st.Render("["+state+"] ") + label)
			if sw.SubText != "" {
				line(s.Muted.Render("      " + sw.SubText))
			}
		}
	}
	if len(v.Info) > 0 {
		line("")
		for _, p := range v.Info {
			line(s.Muted.Render(p.Name+": ") + p.Value)
		}
	}
	return b.String()
}

// renderButtons renders the confirm/cancel row of decision screens.
func renderButtons(v screenView, s style.Styles) string {
	if v.Confirm == "" && v.Cancel == "" {
		return ""
	}
	return s.Cancel.Render("n  "+v.Cancel) + "  " + s.Confirm.Render("y  "+v.Confirm)
}

// truncate cuts s to width display cells, marking the cut.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
