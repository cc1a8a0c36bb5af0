package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// ValidationErrorItem is one entry of a 422 response. Loc is the path of the offending input,
// such as ["body", "last_name"] or ["query", "limit"]; its elements may be strings or integers.
type ValidationErrorItem struct {
	Loc  []ldvalue.Value `json:"loc"`
	Msg  string          `json:"msg"`
	Type string          `json:"type"`
}

// ValidationError is the body of a 422 response.
type ValidationError struct {
	Detail []ValidationErrorItem `json:"detail"`
}

type ReasonDetail struct {
	Reason string `json:"reason"`
}

// ReasonError is the body of a 400 or 404 response.
type ReasonError struct {
	Detail ReasonDetail `json:"detail"`
}
