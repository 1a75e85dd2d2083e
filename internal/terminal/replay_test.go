package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReplayLoginFailureThenDecline(t *testing.T) {
	res, err := Replay(context.Background(), []string{"y", "alice", "secret", "n", "extra"}, Options{})
	require.NoError(t, err)
	require.True(t, res.Exited)
	require.Equal(t, StepDone, res.Step)
	require.Equal(t, OutcomeFailure, res.Outcome)
	require.Equal(t, []string{"extra"}, res.Unused)
	require.NotEqual(t, -1, indexOf(res.Lines, msgInvalid))
	// 3000 boot + 400 ack + 600 echo + 2000 verify
	require.Equal(t, 6*time.Second, res.Elapsed)
}

func TestReplaySignupReturnsToMenu(t *testing.T) {
	res, err := Replay(context.Background(), []string{"no", "neo", "zion", "y"}, Options{})
	require.NoError(t, err)
	require.True(t, res.Exited)
	require.Equal(t, OutcomeSuccess, res.Outcome)
	for _, l := range res.Lines {
		require.NotContains(t, l.Text, "zion")
	}
}

func TestReplayRestartStopsWhenAnswersRunOut(t *testing.T) {
	var all []string
	res, err := Replay(context.Background(), []string{"y", "alice", "secret", "y"}, Options{
		OnLine: func(l Line) { all = append(all, l.Text) },
	})
	require.NoError(t, err)
	require.False(t, res.Exited)
	require.Equal(t, StepAccountCheck, res.Step)
	require.Len(t, res.Lines, 5)
	require.Contains(t, all, msgRestartPrompt)
}

func TestReplaySkipsBlankAnswers(t *testing.T) {
	res, err := Replay(context.Background(), []string{"", "  ", "n"}, Options{})
	require.NoError(t, err)
	require.Equal(t, StepCreateUsername, res.Step)
	require.Empty(t, res.Unused)
}

func TestReplayHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Replay(ctx, []string{"y"}, Options{})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, StepInit, res.Step)
}
