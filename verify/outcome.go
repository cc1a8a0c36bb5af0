package verify

import (
	"fmt"
	"strings"
)

// Check names one of the independent checks the verifier runs.
type Check string

const (
	CheckStatus      Check = "status code"
	CheckContentType Check = "Content-Type header"
	CheckConnection  Check = "Connection header"
	CheckSchema      Check = "schema"
	CheckLocation    Check = "Location header"
	CheckProtocol    Check = "protocol"
)

// Failure describes one check that did not pass.
type Failure struct {
	Check    Check
	Expected string
	Actual   string
	// Details holds any further explanation, such as the individual schema violations.
	Details []string
	// Body is the response body, attached when it is needed to make sense of the failure.
	Body string
	// Fatal is set for failures that make the rest of the response meaningless to examine.
	Fatal bool
}

func (f Failure) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: expected %s, got %s", f.Check, f.Expected, f.Actual)
	for _, d := range f.Details {
		b.WriteString("\n    - ")
		b.WriteString(d)
	}
	if f.Body != "" {
		b.WriteString("\n    body: ")
		b.WriteString(f.Body)
	}
	return b.String()
}

// Outcome is the result of verifying one response: every failed check, in the order the checks
// were run. An Outcome with no failures means the response passed.
type Outcome struct {
	Description string
	Failures    []Failure
}

func (o Outcome) OK() bool { return len(o.Failures) == 0 }

// HasFatal reports whether any failure was fatal.
func (o Outcome) HasFatal() bool {
	for _, f := range o.Failures {
		if f.Fatal {
			return true
		}
	}
	return false
}

// Failed reports whether the given check failed.
func (o Outcome) Failed(check Check) bool {
	for _, f := range o.Failures {
		if f.Check == check {
			return true
		}
	}
	return false
}

func (o Outcome) String() string {
	if o.OK() {
		return o.Description + ": OK"
	}
	lines := make([]string, 0, len(o.Failures)+1)
	lines = append(lines, fmt.Sprintf("%s: %d check(s) failed", o.Description, len(o.Failures)))
	for _, f := range o.Failures {
		lines = append(lines, "  "+f.String())
	}
	return strings.Join(lines, "\n")
}

// Err returns nil if the outcome is OK, or an *Error listing every failure.
func (o Outcome) Err() error {
	if o.OK() {
		return nil
	}
	return &Error{Outcome: o}
}

func (o *Outcome) add(f Failure) {
	o.Failures = append(o.Failures, f)
}

// Error is the error form of a failed Outcome.
type Error struct {
	Outcome Outcome
}

func (e *Error) Error() string { return e.Outcome.String() }
