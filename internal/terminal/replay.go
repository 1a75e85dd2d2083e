package terminal

import (
	"context"
	"time"

	"github.com/jask/phoenyx/internal/clock"
)

// maxReplaySteps bounds a replay whose answers keep restarting the flow.
const maxReplaySteps = 10000

// ReplayResult is the end state of a headless run.
type ReplayResult struct {
	Lines   []Line
	Step    Step
	Outcome Outcome
	Exited  bool
	Elapsed time.Duration
	// Unused holds answers left over when the flow exited early.
	Unused []string
}

// Replay runs the dialogue on a virtual clock, handing over the next answer
// each time the engine waits for input. It stops when the flow exits, when
// the answers run out, or when ctx is done. opts.Scheduler is replaced.
func Replay(ctx context.Context, answers []string, opts Options) (ReplayResult, error) {
	mc := clock.NewManual()
	opts.Scheduler = mc
	e := New(opts)
	defer e.Close()

	e.Start()
	queue := append([]string(nil), answers...)
	for i := 0; i < maxReplaySteps; i++ {
		if err := ctx.Err(); err != nil {
			return e.replayResult(mc, queue), err
		}
		if e.Exited() {
			break
		}
		if e.InputEnabled() && !e.Busy() {
			if len(queue) == 0 {
				break
			}
			answer := queue[0]
			queue = queue[1:]
			e.Submit(answer)
			continue
		}
		if !mc.Next() {
			break
		}
	}
	return e.replayResult(mc, queue), nil
}

func (e *Engine) replayResult(mc *clock.Manual, unused []string) ReplayResult {
	s := e.State()
	return ReplayResult{
		Lines:   s.Lines,
		Step:    s.Step,
		Outcome: s.Outcome,
		Exited:  e.Exited(),
		Elapsed: mc.Now(),
		Unused:  unused,
	}
}
