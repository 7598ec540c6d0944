package domain

// ValidationError carries a readable reason for rejected input. It matches
// ErrInvalidInput under errors.Is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }
