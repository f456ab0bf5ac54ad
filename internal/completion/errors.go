package completion

import "fmt"

// StatusError reports a non-2xx answer from the endpoint. Worth retrying:
// overload and gateway hiccups clear up between attempts.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("completion endpoint status %d", e.Code)
	}
	return fmt.Sprintf("completion endpoint status %d: %s", e.Code, e.Body)
}

// EnvelopeError reports a 2xx answer whose body does not match the expected
// {"output":{"choices":[...]}} shape. Worth retrying: a later attempt can
// produce a well-formed envelope.
type EnvelopeError struct {
	Reason string
}

func (e *EnvelopeError) Error() string {
	return "invalid response structure: " + e.Reason
}

// ContractError reports a well-formed envelope whose first choice cannot
// yield text, such as a missing or non-string text field. The endpoint is
// speaking a different dialect, so retrying cannot help.
type ContractError struct {
	Reason string
}

func (e *ContractError) Error() string {
	return "unusable completion choice: " + e.Reason
}

// ErrUnsupportedAPI is returned by NewClient for an unknown API style.
type ErrUnsupportedAPI struct {
	API string
}

func (e ErrUnsupportedAPI) Error() string {
	return fmt.Sprintf("unsupported completion API style: %s", e.API)
}
