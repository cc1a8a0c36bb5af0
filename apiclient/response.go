package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is the raw result of one HTTP call. The client does not interpret it in any way.
type Response struct {
	Method     string
	URL        string
	RequestID  string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON parses the body as an arbitrary JSON value. A body that is not valid JSON yields a null
// value; use DecodeJSON to find out why.
func (r *Response) JSON() ldvalue.Value {
	return ldvalue.Parse(r.Body)
}

// DecodeJSON unmarshals the body into target.
func (r *Response) DecodeJSON(target interface{}) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return errors.Wrapf(err, "error unmarshaling response body of %s %s", r.Method, r.URL)
	}
	return nil
}

func (r *Response) String() string {
	return fmt.Sprintf("%s %s -> %d", r.Method, r.URL, r.StatusCode)
}

// Scheme returns the scheme of the URL that produced this response, such as "https".
func (r *Response) Scheme() string {
	u, err := url.Parse(r.URL)
	if err != nil {
		return ""
	}
	return u.Scheme
}
