package toolkit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	for a := ActionConfirm; a <= ActionIdle; a++ {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := ParseAction("swipe")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestRespondChoice(t *testing.T) {
	var got []bool
	s := ChoiceScreen{OnChoice: func(ok bool) { got = append(got, ok) }}

	done, err := Respond(s, Confirm)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = Respond(s, Reject)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, []bool{true, false}, got)

	_, err = Respond(s, Quit)
	assert.ErrorIs(t, err, ErrUnsupportedResponse)
}

func TestRespondBanner(t *testing.T) {
	quits := 0
	s := ReviewStatusScreen{Status: StatusMessageSigned, OnQuit: func() { quits++ }}
	for _, r := range []Response{Dismiss, Quit, Confirm} {
		done, err := Respond(s, r)
		require.NoError(t, err)
		assert.True(t, done)
	}
	assert.Equal(t, 3, quits)

	_, err := Respond(s, Reject)
	assert.ErrorIs(t, err, ErrUnsupportedResponse)
}

func TestRespondHome(t *testing.T) {
	var toggled []int
	quit := false
	s := HomeScreen{
		Switches: []Switch{{Text: "A"}, {Text: "B", On: true}},
		OnSwitch: func(i int, on bool) error {
			toggled = append(toggled, i)
			assert.Equal(t, i == 0, on)
			return nil
		},
		OnQuit: func() { quit = true },
	}

	done, err := Respond(s, Toggle(0))
	require.NoError(t, err)
	assert.False(t, done, "toggling stays on the home screen")

	done, err = Respond(s, Toggle(1))
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, []int{0, 1}, toggled)
	assert.True(t, s.Switches[0].On)
	assert.False(t, s.Switches[1].On)

	_, err = Respond(s, Toggle(5))
	assert.ErrorIs(t, err, ErrSwitchIndex)

	done, err = Respond(s, Quit)
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, quit)
}

func TestRespondHomeRevertsUnsavedSwitch(t *testing.T) {
	diskFull := errors.New("disk full")
	s := HomeScreen{
		Switches: []Switch{{Text: "A"}},
		OnSwitch: func(int, bool) error { return diskFull },
	}

	done, err := Respond(s, Toggle(0))
	assert.False(t, done)
	assert.ErrorIs(t, err, ErrSwitchNotSaved)
	assert.ErrorIs(t, err, diskFull)
	assert.False(t, s.Switches[0].On, "screen matches the stored value")
}

func TestRespondIdleAndSpinner(t *testing.T) {
	done, err := Respond(SpinnerScreen{Text: "wait"}, Idle)
	require.NoError(t, err)
	assert.False(t, done)

	_, err = Respond(SpinnerScreen{Text: "wait"}, Confirm)
	assert.ErrorIs(t, err, ErrUnsupportedResponse)

	_, err = Respond(nil, Confirm)
	assert.ErrorIs(t, err, ErrUnsupportedResponse)
}

func TestScreenClassification(t *testing.T) {
	assert.False(t, Interactive(SpinnerScreen{}))
	assert.True(t, Interactive(ReviewScreen{}))
	assert.False(t, Interactive(nil))

	assert.True(t, AutoDismiss(StatusScreen{}))
	assert.True(t, AutoDismiss(ReviewStatusScreen{}))
	assert.False(t, AutoDismiss(ChoiceScreen{}))
}

func TestOperationTypeFlags(t *testing.T) {
	op := TypeMessage | BlindOperation
	assert.Equal(t, TypeMessage, op.Base())
	assert.True(t, op.Blind())
	assert.False(t, op.Skippable())
	assert.Equal(t, "message", op.Noun())
	assert.Equal(t, OperationType(0x21), op)
}

func TestReviewStatusMessages(t *testing.T) {
	for s := StatusTransactionSigned; s <= StatusAddressRejected; s++ {
		assert.NotEqual(t, "Unknown status", s.Message())
		assert.Equal(t, s%2 == 0, s.Success(), s.Message())
	}
}
