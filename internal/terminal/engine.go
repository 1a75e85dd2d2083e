// Package terminal implements the scripted login/signup dialogue that backs
// the gateway terminal view.
//
// The engine is a linear script with one branch point (existing account or
// not) and timed system replies. All delays go through a clock.Scheduler so a
// reset or teardown can cancel every reply that has not fired yet.
package terminal

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/phoenyx/internal/clock"
)

const defaultMaskGlyph = '•'

// Options configures an Engine. Scheduler is required; the rest default.
type Options struct {
	Scheduler clock.Scheduler
	Verifier  CredentialVerifier
	// Timings defaults to DefaultTimings when nil. Zero delays are honoured.
	Timings   *Timings
	MaskGlyph rune
	// OnExit is called once when the flow hands control back to the host.
	OnExit func()
	// OnLine observes every appended line. It must not call into the Engine.
	OnLine func(Line)
	Logger *zap.Logger
	NewID  func() string
}

// Engine owns the transcript, the active step and the pending replies.
// Scheduled callbacks and user calls are serialised by an internal lock.
type Engine struct {
	mu   sync.Mutex
	opts    Options
	timings Timings
	log     *zap.Logger

	state    FlowState
	username string
	pending  map[uint64]clock.Timer
	nextID   uint64
	exited   bool
	closed   bool
}

func New(opts Options) *Engine {
	if opts.Scheduler == nil {
		panic("terminal: Options.Scheduler is required")
	}
	if opts.Verifier == nil {
		opts.Verifier = DenyAll
	}
	timings := DefaultTimings()
	if opts.Timings != nil {
		timings = *opts.Timings
	}
	if opts.MaskGlyph == 0 {
		opts.MaskGlyph = defaultMaskGlyph
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		opts:    opts,
		timings: timings,
		log:     log.Named("terminal"),
		state:   FlowState{Step: StepInit},
		pending: make(map[uint64]clock.Timer),
	}
}

// Start plays the boot sequence. Only the first call per mount or reset has
// any effect.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startLocked()
}

// Submit feeds one line of user input through the script and reports
// whether it was accepted. Input is refused when the step takes none, when
// it is blank outside DONE, while a scripted reply is still pending, and
// after the flow has exited.
func (e *Engine) Submit(text string) bool {
	e.mu.Lock()
	accepted, exit := e.submitLocked(text)
	e.mu.Unlock()

	if exit && e.opts.OnExit != nil {
		e.opts.OnExit()
	}
	return accepted
}

// Reset cancels pending replies, clears the transcript and boots again.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.resetLocked()
}

// Close tears the engine down. No line is emitted after Close returns.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	n := e.cancelAllLocked()
	e.log.Debug("closed", zap.Int("cancelled", n))
}

func (e *Engine) SetInput(s string) {
	e.mu.Lock()
	e.state.Input = s
	e.mu.Unlock()
}

func (e *Engine) Input() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Input
}

func (e *Engine) Step() Step {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Step
}

func (e *Engine) Outcome() Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Outcome
}

// Lines returns a copy of the transcript.
func (e *Engine) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Line(nil), e.state.Lines...)
}

// State returns a snapshot of the whole flow.
func (e *Engine) State() FlowState {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.state
	s.Lines = append([]Line(nil), e.state.Lines...)
	s.Pending = len(e.pending)
	return s
}

// Pending is the number of scheduled replies that have not fired.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Busy reports whether a scripted reply is still on its way.
func (e *Engine) Busy() bool {
	return e.Pending() > 0
}

// InputEnabled reports whether the input box should be shown.
func (e *Engine) InputEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Step.ExpectsInput() && !e.exited && !e.closed
}

func (e *Engine) Masked() bool {
	return e.Step().Masked()
}

func (e *Engine) Exited() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exited
}

// Prompt is the label shown before the input box.
func (e *Engine) Prompt() string {
	if e.Step() == StepDone {
		return "CMD"
	}
	return "INPUT"
}

func (e *Engine) Signals() Signals {
	return SignalsFor(e.Step())
}

func (e *Engine) startLocked() {
	if e.state.Started || e.closed {
		return
	}
	e.state.Started = true
	e.state.Lines = nil
	e.log.Debug("boot sequence started")

	t := e.timings
	e.scheduleLocked(t.BootConnect, func() {
		e.systemLocked(msgConnecting, VariantDefault)
		e.scheduleLocked(after(t.BootConnect, t.BootEmbeddings), func() {
			e.systemLocked(msgEmbeddings, VariantDefault)
			e.scheduleLocked(after(t.BootEmbeddings, t.BootHandshake), func() {
				e.systemLocked(msgHandshake, VariantSuccess)
				e.scheduleLocked(after(t.BootHandshake, t.BootReady), func() {
					e.systemLocked(msgDatabaseLoaded, VariantDefault)
					e.systemLocked(msgAccountPrompt, VariantDefault)
					e.setStepLocked(StepAccountCheck)
				})
			})
		})
	})
}

func (e *Engine) submitLocked(text string) (accepted, exit bool) {
	step := e.state.Step
	switch {
	case e.closed || e.exited:
		return false, false
	case !step.ExpectsInput():
		return false, false
	case len(e.pending) > 0:
		e.log.Debug("input dropped while reply pending", zap.String("step", string(step)))
		return false, false
	case strings.TrimSpace(text) == "" && step != StepDone:
		return false, false
	}

	e.state.Input = ""
	if step.Masked() {
		e.appendLocked(strings.Repeat(string(e.opts.MaskGlyph), utf8.RuneCountInString(text)), SenderUser, VariantDefault)
	} else {
		e.appendLocked(text, SenderUser, VariantDefault)
	}

	t := e.timings
	switch step {
	case StepAccountCheck:
		if affirmative(text) {
			e.scheduleLocked(t.LoginAck, func() {
				e.systemLocked(msgLoginStart, VariantDefault)
				e.systemLocked(msgUsernamePrompt, VariantDefault)
				e.setStepLocked(StepUsername)
			})
		} else {
			e.scheduleLocked(t.SignupAck, func() {
				e.systemLocked(msgSignupStart, VariantDefault)
				e.systemLocked(msgPathway, VariantDefault)
				e.systemLocked(msgDesiredUsername, VariantDefault)
				e.setStepLocked(StepCreateUsername)
			})
		}

	case StepUsername:
		e.username = text
		e.scheduleLocked(t.IdentityEcho, func() {
			e.systemLocked(fmt.Sprintf(msgIdentityFmt, strings.ToUpper(text)), VariantSuccess)
			e.systemLocked(msgPasswordPrompt, VariantDefault)
			e.setStepLocked(StepPassword)
		})

	case StepPassword:
		// Only the verdict is kept; the secret does not outlive this call.
		granted := e.opts.Verifier.Verify(e.username, text)
		user := strings.ToUpper(e.username)
		e.setStepLocked(StepProcessing)
		e.systemLocked(msgVerifying, VariantWarning)
		e.scheduleLocked(t.Verify, func() {
			if granted {
				e.systemLocked(msgGranted, VariantSuccess)
				e.systemLocked(fmt.Sprintf(msgWelcomeBackFmt, user), VariantSuccess)
				e.systemLocked(msgMainMenuPrompt, VariantWarning)
				e.doneLocked(OutcomeSuccess)
				return
			}
			e.systemLocked(msgInvalid, VariantError)
			e.systemLocked(msgRestricted, VariantError)
			e.systemLocked(msgRestartPrompt, VariantWarning)
			e.doneLocked(OutcomeFailure)
		})

	case StepCreateUsername:
		e.username = text
		e.scheduleLocked(t.AvailabilityEcho, func() {
			e.systemLocked(fmt.Sprintf(msgAvailableFmt, strings.ToUpper(text)), VariantSuccess)
			e.systemLocked(msgAccessKeyPrompt, VariantDefault)
			e.setStepLocked(StepCreatePassword)
		})

	case StepCreatePassword:
		e.setStepLocked(StepCreating)
		e.systemLocked(msgEncrypting, VariantWarning)
		e.scheduleLocked(t.Generating, func() {
			e.systemLocked(msgGenerating, VariantDefault)
			e.scheduleLocked(after(t.Generating, t.AccountCreated), func() {
				e.systemLocked(msgCreated, VariantSuccess)
				e.systemLocked(msgWelcomeInitiate, VariantSuccess)
				e.systemLocked(msgMainMenuPrompt, VariantWarning)
				e.doneLocked(OutcomeSuccess)
			})
		})

	case StepDone:
		if affirmative(text) && e.state.Outcome != OutcomeSuccess {
			e.log.Info("restart requested", zap.String("outcome", string(e.state.Outcome)))
			e.resetLocked()
			return true, false
		}
		e.exited = true
		n := e.cancelAllLocked()
		e.log.Info("flow exited", zap.String("outcome", string(e.state.Outcome)), zap.Int("cancelled", n))
		return true, true
	}
	return true, false
}

func (e *Engine) resetLocked() {
	n := e.cancelAllLocked()
	e.state = FlowState{Step: StepInit}
	e.username = ""
	e.exited = false
	e.log.Debug("reset", zap.Int("cancelled", n))
	e.startLocked()
}

func (e *Engine) doneLocked(o Outcome) {
	e.state.Outcome = o
	e.setStepLocked(StepDone)
}

func (e *Engine) setStepLocked(s Step) {
	if e.state.Step == s {
		return
	}
	e.log.Debug("step", zap.String("from", string(e.state.Step)), zap.String("to", string(s)))
	e.state.Step = s
}

func (e *Engine) systemLocked(text string, v Variant) {
	e.appendLocked(text, SenderSystem, v)
}

func (e *Engine) appendLocked(text string, sender Sender, v Variant) {
	l := Line{ID: e.opts.NewID(), Text: text, Sender: sender, Variant: v}
	e.state.Lines = append(e.state.Lines, l)
	if e.opts.OnLine != nil {
		e.opts.OnLine(l)
	}
}

// scheduleLocked registers fn as a pending reply. The callback is dropped if
// its entry was cancelled before it ran.
func (e *Engine) scheduleLocked(delay time.Duration, fn func()) {
	e.nextID++
	id := e.nextID
	e.pending[id] = e.opts.Scheduler.Schedule(delay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if _, ok := e.pending[id]; !ok || e.closed {
			return
		}
		delete(e.pending, id)
		fn()
	})
}

func (e *Engine) cancelAllLocked() int {
	n := len(e.pending)
	for id, t := range e.pending {
		t.Stop()
		delete(e.pending, id)
	}
	return n
}

func affirmative(text string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(text)), "y")
}
