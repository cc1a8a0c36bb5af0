package verify

import (
	"github.com/sendrequest/api-contract-tests/apiclient"
	"github.com/sendrequest/api-contract-tests/schemas"

	"github.com/stretchr/testify/require"
)

// Assert reports every failure of the outcome to t, and stops the test only if one of them was
// fatal. It returns true if the outcome was OK.
func Assert(t require.TestingT, o Outcome) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if o.OK() {
		return true
	}
	t.Errorf("%s", o.String())
	if o.HasFatal() {
		t.FailNow()
	}
	return false
}

// Require reports the outcome to t and stops the test if anything failed.
func Require(t require.TestingT, o Outcome) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if !o.OK() {
		t.Errorf("%s", o.String())
		t.FailNow()
	}
}

// RequireContract is shorthand for Require(t, Contract(resp, schemas.Get(schema), statusCode)).
func RequireContract(t require.TestingT, resp *apiclient.Response, schema schemas.Name, statusCode int) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	Require(t, Contract(resp, schemas.Get(schema), statusCode))
}
