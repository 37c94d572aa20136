package provisioning

import (
	"time"

	"github.com/migratory/gwsetup/internal/gcloud"
)

// State holds the shared results of provisioning steps. It is progressively
// populated as each step completes; later steps read the recorded handles
// rather than assuming an earlier step's best-case outcome.
type State struct {
	// Project results (steps 1-2)
	Project        gcloud.Project
	ProjectAdopted bool // an existing project was adopted after create failed

	// Billing (step 3)
	BillingLinked bool

	// Service enablement results (step 4), one per requested service, in
	// request order.
	Enablements []Enablement

	// Service account results (step 5-6)
	ServiceAccount     gcloud.ServiceAccount
	DelegationClientID string // the id a Workspace admin authorizes; equals the unique id
	DelegationEnabled  bool   // provider confirmed the delegation flag

	// Key results (step 8)
	KeyPath  string // empty when no key was created this run
	Recovery *RecoveryState

	// Per-step records, in execution order. Written by the sequencer only.
	Records []StepRecord
}

// Enablement is the outcome of enabling one service.
type Enablement struct {
	Service  string
	Err      error
	Category gcloud.FailureCategory
}

// Succeeded reports whether the service was enabled.
func (e Enablement) Succeeded() bool { return e.Err == nil }

// FailedEnablements returns the subset of enablements that failed.
func (s *State) FailedEnablements() []Enablement {
	var failed []Enablement
	for _, e := range s.Enablements {
		if !e.Succeeded() {
			failed = append(failed, e)
		}
	}
	return failed
}

// RecoveryState tracks the policy-blocked key recovery sub-flow. It exists
// only when the sub-flow ran.
type RecoveryState struct {
	OrganizationID string
	RoleGranted    bool
	PolicyDisabled bool
	Attempts       int
	TotalWait      time.Duration
	KeyCreated     bool
	PolicyRestored bool
}

// StepRecord is one line of the end-of-run summary.
type StepRecord struct {
	Step    string
	Outcome Outcome
	Detail  string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// record appends a step record. Called by the sequencer, never by steps.
func (s *State) record(step string, outcome Outcome, detail string) {
	s.Records = append(s.Records, StepRecord{Step: step, Outcome: outcome, Detail: detail})
}
