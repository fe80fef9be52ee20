package upstream

// StatusError carries a non-2xx answer from the remote API
type StatusError struct {
	Status int
	Body   string
	Err    error
}

// Error interface
func (e *StatusError) Error() string { return e.Err.Error() }

// Unwrap interface
func (e *StatusError) Unwrap() error { return e.Err }

// HTTPStatus is the status the remote answered with
func (e *StatusError) HTTPStatus() int { return e.Status }
