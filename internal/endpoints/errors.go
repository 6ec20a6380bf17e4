package endpoints

import "errors"

var (
	// ErrInvalidBaseURL is returned when the table is built from a base that cannot prefix a route.
	ErrInvalidBaseURL = errors.New("invalid base url")
	// ErrUnknownRoute is returned by lookups of names that are not in the table.
	ErrUnknownRoute = errors.New("unknown route")
	// ErrInvalidInput marks identifier problems; details via FieldErrors(err).
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError describes a single bad identifier passed to a parameterized route.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an ErrInvalidInput error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var v interface{ Fields() []FieldError }
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}
