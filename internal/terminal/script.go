package terminal

import "time"

const (
	msgConnecting     = "ESTABLISHING SECURE CONNECTION..."
	msgEmbeddings     = "LOADING NEURAL EMBEDDINGS..."
	msgHandshake      = "CRYPTOGRAPHIC HANDSHAKE: SYNCHRONIZED."
	msgDatabaseLoaded = "USER DATABASE LOADED."
	msgAccountPrompt  = "DO YOU HAVE AN EXISTING ACCOUNT? (Y/N)"

	msgLoginStart     = "INITIATING LOGIN SEQUENCE..."
	msgUsernamePrompt = "PLEASE ENTER YOUR EMAIL/USERNAME:"
	msgIdentityFmt    = "IDENTITY RECOGNIZED: [%s]"
	msgPasswordPrompt = "ENTER PASSWORD:"
	msgVerifying      = "VERIFYING HASH..."
	msgInvalid        = "ERROR: INVALID CREDENTIALS."
	msgRestricted     = "PROTOCOL BETA ACCESS RESTRICTED."
	msgRestartPrompt  = "RESTART SEQUENCE? (Y/N)"
	msgGranted        = "ACCESS GRANTED."
	msgWelcomeBackFmt = "WELCOME BACK, [%s]."

	msgSignupStart     = "INITIATING NEW USER PROTOCOL..."
	msgPathway         = "ESTABLISHING NEURAL PATHWAY..."
	msgDesiredUsername = "ENTER DESIRED EMAIL/USERNAME:"
	msgAvailableFmt    = "AVAILABILITY CONFIRMED: [%s]"
	msgAccessKeyPrompt = "SET SECURE ACCESS KEY:"
	msgEncrypting      = "ENCRYPTING DATA..."
	msgGenerating      = "GENERATING NEURAL SIGNATURE..."
	msgCreated         = "ACCOUNT CREATION SUCCESSFUL."
	msgWelcomeInitiate = "WELCOME TO THE NEXUS, INITIATE."
	msgMainMenuPrompt  = "RETURN TO MAIN MENU? (Y/N)"
)

// Timings holds every scripted delay. Offsets within one burst are measured
// from the submit (or boot) that started it.
type Timings struct {
	BootConnect    time.Duration
	BootEmbeddings time.Duration
	BootHandshake  time.Duration
	BootReady      time.Duration

	LoginAck     time.Duration
	SignupAck    time.Duration
	IdentityEcho time.Duration
	Verify       time.Duration

	AvailabilityEcho time.Duration
	Generating       time.Duration
	AccountCreated   time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		BootConnect:      500 * time.Millisecond,
		BootEmbeddings:   1500 * time.Millisecond,
		BootHandshake:    2400 * time.Millisecond,
		BootReady:        3000 * time.Millisecond,
		LoginAck:         400 * time.Millisecond,
		SignupAck:        600 * time.Millisecond,
		IdentityEcho:     600 * time.Millisecond,
		Verify:           2000 * time.Millisecond,
		AvailabilityEcho: 500 * time.Millisecond,
		Generating:       800 * time.Millisecond,
		AccountCreated:   2500 * time.Millisecond,
	}
}

// Scale multiplies every delay by f. Non-positive f yields zero delays.
func (t Timings) Scale(f float64) Timings {
	s := func(d time.Duration) time.Duration {
		if f <= 0 {
			return 0
		}
		return time.Duration(float64(d) * f)
	}
	return Timings{
		BootConnect:      s(t.BootConnect),
		BootEmbeddings:   s(t.BootEmbeddings),
		BootHandshake:    s(t.BootHandshake),
		BootReady:        s(t.BootReady),
		LoginAck:         s(t.LoginAck),
		SignupAck:        s(t.SignupAck),
		IdentityEcho:     s(t.IdentityEcho),
		Verify:           s(t.Verify),
		AvailabilityEcho: s(t.AvailabilityEcho),
		Generating:       s(t.Generating),
		AccountCreated:   s(t.AccountCreated),
	}
}

// after returns the gap between two offsets of the same burst.
func after(prev, next time.Duration) time.Duration {
	if next < prev {
		return 0
	}
	return next - prev
}
