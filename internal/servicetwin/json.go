package servicetwin

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sendrequest/api-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// writeJSON writes a JSON response with the headers the real service always sends.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"detail":"Internal Server Error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeReason(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, servicedef.ReasonError{Detail: servicedef.ReasonDetail{Reason: reason}})
}

func writeValidationError(w http.ResponseWriter, items []servicedef.ValidationErrorItem) {
	writeJSON(w, http.StatusUnprocessableEntity, servicedef.ValidationError{Detail: items})
}

// fieldError builds one 422 item. Each loc element must be a string or an int.
func fieldError(msg, errorType string, loc ...interface{}) servicedef.ValidationErrorItem {
	item := servicedef.ValidationErrorItem{Msg: msg, Type: errorType}
	for _, l := range loc {
		switch v := l.(type) {
		case int:
			item.Loc = append(item.Loc, ldvalue.Int(v))
		default:
			item.Loc = append(item.Loc, ldvalue.String(v.(string)))
		}
	}
	return item
}

const (
	msgNotInteger    = "value is not a valid integer"
	typeNotInteger   = "type_error.integer"
	msgNotString     = "str type expected"
	typeNotString    = "type_error.str"
	msgFieldRequired = "field required"
	typeMissing      = "value_error.missing"
)
