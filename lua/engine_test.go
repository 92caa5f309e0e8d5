package lua

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drake/syncux/internal/logger"
	"github.com/drake/syncux/toolkit"
)

func setupEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(logger.Discard())
	require.NoError(t, e.Init())
	t.Cleanup(e.Close)
	return e
}

func review(amount string) toolkit.ReviewScreen {
	return toolkit.ReviewScreen{
		Operation: toolkit.TypeTransaction,
		Title:     "Review transaction",
		Fields:    []toolkit.TagValue{{Item: "To", Value: "crab1"}, {Item: "Amount", Value: amount}},
	}
}

func TestDefaultPolicy(t *testing.T) {
	e := setupEngine(t)

	r, err := e.OnScreen(review("5"), 1)
	require.NoError(t, err)
	assert.Equal(t, toolkit.Confirm, r)

	r, err = e.OnScreen(toolkit.HomeScreen{AppName: "Crab"}, 1)
	require.NoError(t, err)
	assert.Equal(t, toolkit.Idle, r, "home waits for commands")
}

func TestPolicyOverrides(t *testing.T) {
	e := setupEngine(t)
	require.NoError(t, e.DoString("test", `
		syncux.policy.default = "reject"
		syncux.policy.home = "quit"
		syncux.policy.review = function(s, turn)
			if s.blind then return "reject" end
			return s.title == "Review transaction" and "confirm" or "reject"
		end
	`))

	r, _ := e.OnScreen(review("5"), 1)
	assert.Equal(t, toolkit.Confirm, r)

	blind := review("5")
	blind.Operation |= toolkit.BlindOperation
	r, _ = e.OnScreen(blind, 1)
	assert.Equal(t, toolkit.Reject, r)

	r, _ = e.OnScreen(toolkit.ChoiceScreen{Message: "Proceed?"}, 1)
	assert.Equal(t, toolkit.Reject, r)

	r, _ = e.OnScreen(toolkit.HomeScreen{}, 1)
	assert.Equal(t, toolkit.Quit, r)
}

func TestScreenTableFields(t *testing.T) {
	e := setupEngine(t)
	require.NoError(t, e.DoString("test", `
		seen = {}
		function on_screen(s)
			seen.kind = s.kind
			seen.amount = syncux.field(s, "Amount")
			seen.count = #s.fields
			seen.stage = s.stage
			return "confirm"
		end
	`))

	_, err := e.OnScreen(toolkit.StreamingScreen{
		Stage:  toolkit.StreamContinue,
		Fields: []toolkit.TagValue{{Item: "Amount", Value: "7 CRAB"}},
	}, 1)
	require.NoError(t, err)

	seen := e.L.GetGlobal("seen")
	assert.Equal(t, "streaming", e.L.GetField(seen, "kind").String())
	assert.Equal(t, "7 CRAB", e.L.GetField(seen, "amount").String())
	assert.Equal(t, "1", e.L.GetField(seen, "count").String())
	assert.Equal(t, "continue", e.L.GetField(seen, "stage").String())
}

func TestToggleIndexIsOneBased(t *testing.T) {
	e := setupEngine(t)
	require.NoError(t, e.DoString("test", `syncux.policy.home = function() return "toggle", 2 end`))

	r, err := e.OnScreen(toolkit.HomeScreen{Switches: []toolkit.Switch{{Text: "a"}, {Text: "b"}}}, 1)
	require.NoError(t, err)
	assert.Equal(t, toolkit.Toggle(1), r)
}

func TestScriptErrors(t *testing.T) {
	e := setupEngine(t)

	require.NoError(t, e.DoString("test", `function on_screen() error("boom") end`))
	_, err := e.OnScreen(review("1"), 1)
	assert.ErrorContains(t, err, "boom")

	require.NoError(t, e.DoString("test2", `function on_screen() return "swipe" end`))
	_, err = e.OnScreen(review("1"), 1)
	assert.ErrorIs(t, err, toolkit.ErrUnknownAction)

	assert.Error(t, e.DoString("bad", "function ("))
}

func TestSequenceHelper(t *testing.T) {
	e := setupEngine(t)
	require.NoError(t, e.DoString("test", `syncux.policy.choice = syncux.sequence({"reject", "confirm"})`))

	choice := toolkit.ChoiceScreen{}
	r, _ := e.OnScreen(choice, 1)
	assert.Equal(t, toolkit.Reject, r)
	r, _ = e.OnScreen(choice, 2)
	assert.Equal(t, toolkit.Reject, r, "same screen, same answer")
	r, _ = e.OnScreen(choice, 1)
	assert.Equal(t, toolkit.Confirm, r)
	r, _ = e.OnScreen(choice, 1)
	assert.Equal(t, toolkit.Confirm, r)
}

func TestReloadReusesCompiledChunks(t *testing.T) {
	e := setupEngine(t)
	path := filepath.Join(t.TempDir(), "policy.lua")
	require.NoError(t, os.WriteFile(path, []byte(`syncux.policy.default = "reject"`), 0o644))
	require.NoError(t, e.DoFile(path))

	cached := e.CachedChunks()
	require.NoError(t, e.Reload())
	assert.Equal(t, cached, e.CachedChunks())

	r, _ := e.OnScreen(review("1"), 1)
	assert.Equal(t, toolkit.Reject, r, "user script replayed after reload")

	require.NoError(t, os.WriteFile(path, []byte(`syncux.policy.default = "confirm"`), 0o644))
	require.NoError(t, e.Reload())
	assert.Equal(t, cached+1, e.CachedChunks())
	r, _ = e.OnScreen(review("1"), 1)
	assert.Equal(t, toolkit.Confirm, r)
}
