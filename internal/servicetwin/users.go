package servicetwin

import (
	"encoding/json"
	"io/ioutil"
	"math"
	"net/http"
	"strconv"

	"github.com/sendrequest/api-contract-tests/servicedef"

	"github.com/go-chi/chi/v5"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	p, problems := parsePage(r)
	if len(problems) > 0 {
		writeValidationError(w, problems)
		return
	}
	users := h.store.listUsers()
	start, end := p.bounds(len(users), h.faults)
	data := make([]ldvalue.Value, 0, end-start)
	for _, u := range users[start:end] {
		data = append(data, u.asJSON())
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": data,
		"meta": p.meta(len(users)),
	})
}

func (h *handler) userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		writeValidationError(w, []servicedef.ValidationErrorItem{
			fieldError(msgNotInteger, typeNotInteger, "path", "user_id"),
		})
		return 0, false
	}
	return id, true
}

func (h *handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	u, ok := h.store.getUser(id)
	if !ok {
		writeReason(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, u.asJSON())
}

func (h *handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	if !h.store.deleteUser(id) {
		writeReason(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]interface{}{})
}

// createUser reproduces the real service's validation, including its defects: scalars of any type
// are accepted as names and converted to strings, a null or blank last name is accepted, and a
// fractional company id is truncated.
func (h *handler) createUser(w http.ResponseWriter, r *http.Request) {
	data, err := ioutil.ReadAll(r.Body)
	if err != nil {
		writeReason(w, http.StatusBadRequest, "Could not read request body")
		return
	}
	var fields map[string]ldvalue.Value
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		writeValidationError(w, []servicedef.ValidationErrorItem{
			fieldError("value is not a valid dict", "type_error.dict", "body"),
		})
		return
	}

	var (
		u        userRecord
		problems []servicedef.ValidationErrorItem
	)
	if v, present := fields["last_name"]; !present {
		problems = append(problems, fieldError(msgFieldRequired, typeMissing, "body", "last_name"))
	} else if s, ok := coerceName(v); ok {
		u.lastName = s
	} else {
		problems = append(problems, fieldError(msgNotString, typeNotString, "body", "last_name"))
	}
	if v, present := fields["first_name"]; present {
		if s, ok := coerceName(v); ok {
			u.firstName = s
		} else {
			problems = append(problems, fieldError(msgNotString, typeNotString, "body", "first_name"))
		}
	}
	if v, present := fields["company_id"]; present {
		if id, ok := coerceID(v); ok {
			u.companyID = id
		} else {
			problems = append(problems, fieldError(msgNotInteger, typeNotInteger, "body", "company_id"))
		}
	}
	if len(problems) > 0 {
		writeValidationError(w, problems)
		return
	}

	if u.companyID.IsDefined() {
		company, ok := h.store.Company(u.companyID.IntValue())
		if !ok {
			writeReason(w, http.StatusNotFound, "Company not found")
			return
		}
		if company.Status != servicedef.StatusActive {
			writeReason(w, http.StatusBadRequest, "You can only create users only in ACTIVE companies")
			return
		}
	}

	u = h.store.addUser(u)
	h.logger.Printf("created user %d", u.id)
	writeJSON(w, http.StatusCreated, u.asJSON())
}

// coerceName converts a scalar to the string the service would store for it. Objects and arrays
// are rejected.
func coerceName(v ldvalue.Value) (ldvalue.Value, bool) {
	switch v.Type() {
	case ldvalue.NullType, ldvalue.StringType:
		return v, true
	case ldvalue.BoolType:
		if v.BoolValue() {
			return ldvalue.String("True"), true
		}
		return ldvalue.String("False"), true
	case ldvalue.NumberType:
		if v.IsInt() {
			return ldvalue.String(strconv.Itoa(v.IntValue())), true
		}
		return ldvalue.String(strconv.FormatFloat(v.Float64Value(), 'f', -1, 64)), true
	default:
		return ldvalue.Null(), false
	}
}

// coerceID converts a company id. Numeric strings are parsed, and fractional numbers lose their
// fractional part.
func coerceID(v ldvalue.Value) (ldvalue.OptionalInt, bool) {
	switch v.Type() {
	case ldvalue.NullType:
		return ldvalue.OptionalInt{}, true
	case ldvalue.NumberType:
		return ldvalue.NewOptionalInt(int(math.Trunc(v.Float64Value()))), true
	case ldvalue.StringType:
		n, err := strconv.Atoi(v.StringValue())
		if err != nil {
			return ldvalue.OptionalInt{}, false
		}
		return ldvalue.NewOptionalInt(n), true
	default:
		return ldvalue.OptionalInt{}, false
	}
}
