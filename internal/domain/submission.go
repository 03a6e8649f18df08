package domain

import "sync"

// SubmissionState lifecycle of a form submission
type SubmissionState string

const (
	SubmissionIdle       SubmissionState = "idle"
	SubmissionSubmitting SubmissionState = "submitting"
	SubmissionSucceeded  SubmissionState = "succeeded"
	SubmissionFailed     SubmissionState = "failed"
)

// Submission state machine Idle -> Submitting -> {Succeeded | Failed} -> Idle.
// Safe for concurrent use; Begin is the only guard against double submits.
type Submission struct {
	mu     sync.Mutex
	state  SubmissionState
	detail string
}

func NewSubmission() *Submission {
	return &Submission{state: SubmissionIdle}
}

// Begin moves Idle or Failed to Submitting
func (s *Submission) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case SubmissionSubmitting:
		return ErrSubmissionInProgress
	case SubmissionSucceeded:
		return ErrAlreadySubmitted
	}

	s.state = SubmissionSubmitting
	s.detail = ""
	return nil
}

// Succeed moves Submitting to Succeeded
func (s *Submission) Succeed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SubmissionSubmitting {
		s.state = SubmissionSucceeded
	}
}

// Fail moves Submitting to Failed keeping the error detail
func (s *Submission) Fail(detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SubmissionSubmitting {
		s.state = SubmissionFailed
		s.detail = detail
	}
}

// Reset returns a finished submission to Idle
func (s *Submission) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SubmissionSubmitting {
		s.state = SubmissionIdle
		s.detail = ""
	}
}

func (s *Submission) State() SubmissionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Detail error detail of a Failed submission
func (s *Submission) Detail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detail
}

// IsSubmitting flag threaded to every control of the form
func (s *Submission) IsSubmitting() bool {
	return s.State() == SubmissionSubmitting
}
