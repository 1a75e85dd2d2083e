package terminal

// Step is a node in the login dialogue script.
type Step string

const (
	StepInit           Step = "INIT"
	StepAccountCheck   Step = "ACCOUNT_CHECK"
	StepUsername       Step = "USERNAME"
	StepPassword       Step = "PASSWORD"
	StepCreateUsername Step = "CREATE_USERNAME"
	StepCreatePassword Step = "CREATE_PASSWORD"
	StepProcessing     Step = "PROCESSING"
	StepCreating       Step = "CREATING"
	StepDone           Step = "DONE"
)

// ExpectsInput reports whether the step waits for user text.
func (s Step) ExpectsInput() bool {
	switch s {
	case StepAccountCheck, StepUsername, StepPassword, StepCreateUsername, StepCreatePassword, StepDone:
		return true
	default:
		return false
	}
}

// Masked reports whether typed text must be hidden at this step.
func (s Step) Masked() bool {
	return s == StepPassword || s == StepCreatePassword
}

type Sender string

const (
	SenderSystem Sender = "SYSTEM"
	SenderUser   Sender = "USER"
)

// Variant is a display hint only.
type Variant string

const (
	VariantDefault Variant = "DEFAULT"
	VariantError   Variant = "ERROR"
	VariantSuccess Variant = "SUCCESS"
	VariantWarning Variant = "WARNING"
)

// Line is one transcript entry. Masked input is stored as glyphs only.
type Line struct {
	ID      string
	Text    string
	Sender  Sender
	Variant Variant
}

// Outcome records how the flow reached DONE.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFailure Outcome = "FAILURE"
)

const (
	ActivityLow  = 0.2
	ActivityHigh = 0.8
)

// Signals feed the decorative gate indicator.
type Signals struct {
	SecureMode    bool
	ActivityLevel float64
}

// SignalsFor derives the indicator inputs from a step.
func SignalsFor(s Step) Signals {
	level := ActivityHigh
	switch s {
	case StepInit, StepProcessing, StepCreating:
		level = ActivityLow
	}
	return Signals{SecureMode: s.Masked(), ActivityLevel: level}
}

// FlowState is a snapshot of the engine.
type FlowState struct {
	Step    Step
	Outcome Outcome
	Lines   []Line
	Input   string
	Started bool
	Pending int
}
