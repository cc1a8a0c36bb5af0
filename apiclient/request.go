package apiclient

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Params are query parameters. Values may be strings, numbers, or anything else that
// fmt.Sprint can format; ldvalue.OptionalInt values that are not defined are omitted.
type Params map[string]interface{}

type requestOptions struct {
	params          Params
	headers         map[string]string
	body            []byte
	timeout         time.Duration
	followRedirects bool
	err             error
}

// RequestOption configures a single call.
type RequestOption func(*requestOptions)

func WithParams(params Params) RequestOption {
	return func(o *requestOptions) {
		if o.params == nil {
			o.params = make(Params)
		}
		for k, v := range params {
			o.params[k] = v
		}
	}
}

func WithHeader(name, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[name] = value
	}
}

// WithBody sends a raw request body as-is.
func WithBody(body []byte) RequestOption {
	return func(o *requestOptions) { o.body = body }
}

// WithJSONBody marshals a value as the request body and sets the JSON content type. If the value
// cannot be marshaled, the call fails without sending anything.
func WithJSONBody(v interface{}) RequestOption {
	data, err := json.Marshal(v)
	return func(o *requestOptions) {
		if err != nil {
			o.err = errors.Wrap(err, "cannot marshal request body")
			return
		}
		o.body = data
		WithHeader("Content-Type", "application/json")(o)
	}
}

func WithTimeout(timeout time.Duration) RequestOption {
	return func(o *requestOptions) { o.timeout = timeout }
}

// FollowRedirects makes the call follow redirect responses instead of returning them.
func FollowRedirects() RequestOption {
	return func(o *requestOptions) { o.followRedirects = true }
}
