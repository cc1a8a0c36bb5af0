// Package verify checks that a response from the service meets the contract every endpoint must
// uphold: the expected status code, the mandatory headers, and a body that conforms to the
// expected schema.
//
// All checks are always run, so that a single failure report lists every problem with the
// response. A status code mismatch is marked as fatal, since the caller's own checks on the body
// are unlikely to mean anything after it.
package verify

import (
	"fmt"
	"strconv"

	"github.com/sendrequest/api-contract-tests/apiclient"
	"github.com/sendrequest/api-contract-tests/schemas"
)

const (
	ExpectedContentType = "application/json"
	ExpectedConnection  = "keep-alive"
)

// Contract checks the status code, the Content-Type and Connection headers, and the body against
// the schema. A nil schema skips the body check.
func Contract(resp *apiclient.Response, schema *schemas.Schema, statusCode int) Outcome {
	o := Outcome{Description: describe(resp)}
	checkStatus(&o, resp, statusCode)
	checkHeader(&o, resp, CheckContentType, "Content-Type", ExpectedContentType)
	checkHeader(&o, resp, CheckConnection, "Connection", ExpectedConnection)
	if schema != nil {
		checkSchema(&o, resp, schema)
	}
	return o
}

// Redirect checks that a plain-HTTP request was answered with a permanent redirect to one of the
// allowed locations, and that the redirect itself was not followed.
func Redirect(resp *apiclient.Response, allowedLocations ...string) Outcome {
	o := Outcome{Description: describe(resp)}
	checkStatus(&o, resp, 301)

	location := resp.Header.Get("Location")
	matched := false
	for _, l := range allowedLocations {
		if location == l {
			matched = true
			break
		}
	}
	if !matched {
		o.add(Failure{Check: CheckLocation, Expected: fmt.Sprintf("one of %q", allowedLocations),
			Actual: strconv.Quote(location)})
	}

	checkHeader(&o, resp, CheckConnection, "Connection", ExpectedConnection)

	if scheme := resp.Scheme(); scheme != "http" {
		o.add(Failure{Check: CheckProtocol, Expected: `"http"`, Actual: strconv.Quote(scheme)})
	}
	return o
}

func describe(resp *apiclient.Response) string {
	return fmt.Sprintf("%s %s", resp.Method, resp.URL)
}

func checkStatus(o *Outcome, resp *apiclient.Response, expected int) {
	if resp.StatusCode != expected {
		o.add(Failure{
			Check:    CheckStatus,
			Expected: strconv.Itoa(expected),
			Actual:   strconv.Itoa(resp.StatusCode),
			Body:     string(resp.Body),
			Fatal:    true,
		})
	}
}

func checkHeader(o *Outcome, resp *apiclient.Response, check Check, name, expected string) {
	if actual := resp.Header.Get(name); actual != expected {
		o.add(Failure{Check: check, Expected: strconv.Quote(expected), Actual: strconv.Quote(actual)})
	}
}

func checkSchema(o *Outcome, resp *apiclient.Response, schema *schemas.Schema) {
	problems, err := schema.Validate(resp.Body)
	switch {
	case err != nil:
		o.add(Failure{Check: CheckSchema, Expected: "JSON matching " + string(schema.Name()),
			Actual: "unparseable body", Details: []string{err.Error()}, Body: string(resp.Body)})
	case len(problems) > 0:
		o.add(Failure{Check: CheckSchema, Expected: "body matching " + string(schema.Name()),
			Actual: fmt.Sprintf("%d violation(s)", len(problems)), Details: problems, Body: string(resp.Body)})
	}
}
