package ui

// FormState tracks the lifecycle of an auth form submission.
type FormState int

const (
	FormIdle FormState = iota
	FormSubmitting
	FormError
	FormSuccess
)

func (s FormState) String() string {
	switch s {
	case FormSubmitting:
		return "submitting"
	case FormError:
		return "error"
	case FormSuccess:
		return "success"
	default:
		return "idle"
	}
}
