package llm

import "fmt"

// ErrUnavailable indicates the completion endpoint was unreachable, timed
// out, or returned a non-success status.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("completion endpoint unavailable: %v", e.Err)
	}
	return "completion endpoint unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrMalformedResponse indicates the endpoint responded successfully but
// without the expected message content.
type ErrMalformedResponse struct {
	Reason string
}

func (e *ErrMalformedResponse) Error() string {
	return fmt.Sprintf("malformed completion response: %s", e.Reason)
}
