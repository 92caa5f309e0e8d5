package lua

import (
	glua "github.com/yuin/gopher-lua"

	"github.com/drake/syncux/toolkit"
)

// screenTable exposes a screen description to scripts. Callbacks stay on
// the Go side.
func screenTable(L *glua.LState, s toolkit.Screen) *glua.LTable {
	t := L.NewTable()
	t.RawSetString("kind", glua.LString(s.Kind().String()))

	str := func(k, v string) {
		if v != "" {
			t.RawSetString(k, glua.LString(v))
		}
	}

	switch sc := s.(type) {
	case toolkit.HomeScreen:
		str("app_name", sc.AppName)
		str("tagline", sc.Tagline)
		sw := L.NewTable()
		for _, s := range sc.Switches {
			e := L.NewTable()
			e.RawSetString("text", glua.LString(s.Text))
			e.RawSetString("sub_text", glua.LString(s.SubText))
			e.RawSetString("on", glua.LBool(s.On))
			sw.Append(e)
		}
		t.RawSetString("switches", sw)
	case toolkit.ReviewScreen:
		str("title", sc.Title)
		str("subtitle", sc.Subtitle)
		str("finish_title", sc.FinishTitle)
		operation(t, sc.Operation)
		t.RawSetString("fields", fieldsTable(L, sc.Fields))
	case toolkit.ChoiceScreen:
		str("message", sc.Message)
		str("sub_message", sc.SubMessage)
		str("confirm", sc.ConfirmText)
		str("cancel", sc.CancelText)
	case toolkit.ReviewStatusScreen:
		str("message", sc.Status.Message())
		t.RawSetString("success", glua.LBool(sc.Status.Success()))
	case toolkit.StatusScreen:
		str("message", sc.Message)
		t.RawSetString("success", glua.LBool(sc.Success))
	case toolkit.AddressReviewScreen:
		str("address", sc.Address)
		str("title", sc.Title)
	case toolkit.StreamingScreen:
		str("title", sc.Title)
		str("subtitle", sc.Subtitle)
		operation(t, sc.Operation)
		t.RawSetString("stage", glua.LString(stageName(sc.Stage)))
		t.RawSetString("fields", fieldsTable(L, sc.Fields))
	case toolkit.SpinnerScreen:
		str("text", sc.Text)
	}
	return t
}

func operation(t *glua.LTable, op toolkit.OperationType) {
	t.RawSetString("operation", glua.LString(op.Noun()))
	t.RawSetString("blind", glua.LBool(op.Blind()))
	t.RawSetString("skippable", glua.LBool(op.Skippable()))
}

func fieldsTable(L *glua.LState, fields []toolkit.TagValue) *glua.LTable {
	ft := L.NewTable()
	for _, f := range fields {
		e := L.NewTable()
		e.RawSetString("name", glua.LString(f.Item))
		e.RawSetString("value", glua.LString(f.Value))
		ft.Append(e)
	}
	return ft
}

func stageName(s toolkit.StreamStage) string {
	switch s {
	case toolkit.StreamStart:
		return "start"
	case toolkit.StreamContinue:
		return "continue"
	default:
		return "finish"
	}
}
