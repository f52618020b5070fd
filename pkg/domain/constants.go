package domain

import "time"

// Built-in wizard identifiers.
const (
	WizardStudentRegistration = "student-registration"
	WizardMentorSession       = "mentor-session"
)

// Submission targets understood by the gateways.
const (
	TargetStudents       = "students"
	TargetMentorSessions = "mentor_sessions"
)

// DefaultResetDelay is how long a submitted session stays on the
// acknowledgment screen before it is cleared and returned to the first step.
const DefaultResetDelay = 3 * time.Second

// DefaultSubmitTimeout bounds a single gateway call.
const DefaultSubmitTimeout = 10 * time.Second
