package servicetwin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sendrequest/api-contract-tests/servicedef"

	"github.com/go-chi/chi/v5"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultPageSize is the number of records a list returns when no limit is given.
const DefaultPageSize = 3

type page struct {
	limit  int
	offset int
}

// parsePage reads the limit and offset query parameters. Negative numbers are accepted and
// clamped to zero, which is how the real service behaves even though it documents a 422.
func parsePage(r *http.Request) (page, []servicedef.ValidationErrorItem) {
	p := page{limit: DefaultPageSize}
	var problems []servicedef.ValidationErrorItem
	q := r.URL.Query()
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			problems = append(problems, fieldError(msgNotInteger, typeNotInteger, "query", "limit"))
		}
		p.limit = n
	}
	if s := q.Get("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			problems = append(problems, fieldError(msgNotInteger, typeNotInteger, "query", "offset"))
		}
		p.offset = n
	}
	if p.limit < 0 {
		p.limit = 0
	}
	if p.offset < 0 {
		p.offset = 0
	}
	return p, problems
}

// bounds returns the slice bounds of the page within a list of n records.
func (p page) bounds(n int, faults Faults) (int, int) {
	start := p.offset
	if faults.OffsetOffByOne {
		start++
	}
	if start > n {
		start = n
	}
	end := start + p.limit
	if end > n {
		end = n
	}
	return start, end
}

func (p page) meta(total int) servicedef.ListMeta {
	return servicedef.ListMeta{
		Limit:  ldvalue.NewOptionalInt(p.limit),
		Offset: ldvalue.NewOptionalInt(p.offset),
		Total:  total,
	}
}

func (h *handler) listCompanies(w http.ResponseWriter, r *http.Request) {
	p, problems := parsePage(r)
	var status servicedef.CompanyStatus
	if s := r.URL.Query().Get("status"); s != "" {
		status = servicedef.CompanyStatus(s)
		if !status.Valid() {
			problems = append(problems, fieldError(
				"value is not a valid enumeration member; permitted: 'ACTIVE', 'CLOSED', 'BANKRUPT'",
				"type_error.enum", "query", "status"))
		}
	}
	if len(problems) > 0 {
		writeValidationError(w, problems)
		return
	}

	if h.faults.IgnoreStatusFilter {
		status = ""
	}
	companies := h.store.Companies(status)
	start, end := p.bounds(len(companies), h.faults)
	writeJSON(w, http.StatusOK, servicedef.CompaniesList{
		Data: append([]servicedef.Company{}, companies[start:end]...),
		Meta: p.meta(len(companies)),
	})
}

func (h *handler) getCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "companyID"))
	if err != nil {
		writeValidationError(w, []servicedef.ValidationErrorItem{
			fieldError(msgNotInteger, typeNotInteger, "path", "company_id"),
		})
		return
	}
	company, ok := h.store.Company(id)
	if !ok {
		writeReason(w, http.StatusNotFound, "Company not found")
		return
	}

	// A known language gets a single description; anything else gets every translation.
	lang := servicedef.Language(strings.TrimSpace(r.Header.Get("Accept-Language")))
	if lang.Valid() {
		if h.faults.TranslationLang != "" {
			lang = h.faults.TranslationLang
		}
		if text, ok := company.Translation(lang); ok {
			company.Description = text
			company.DescriptionLang = nil
		}
	}
	writeJSON(w, http.StatusOK, company)
}
