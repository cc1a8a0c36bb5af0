package apitests

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sendrequest/api-contract-tests/apiclient"
	"github.com/sendrequest/api-contract-tests/framework/suite"
	"github.com/sendrequest/api-contract-tests/schemas"
	"github.com/sendrequest/api-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Only company 1 is known to have a description in every language.
const localizedCompanyID = 1

var descriptionPrefixes = map[servicedef.Language]string{
	servicedef.LangRU: "Ее сздать",
	servicedef.LangPL: "Podkomorzynę",
	servicedef.LangEN: "Ye on properly",
	servicedef.LangUA: "Ой у лузі",
}

func getCompany(t *suite.T, id string, schema schemas.Name, statusCode int,
	options ...apiclient.RequestOption) *apiclient.Response {
	return getAndVerify(t, companiesClient(t), "/"+id, schema, statusCode, options...)
}

func DoCompanyByIDTests(t *suite.T) {
	t.Run("valid id", func(t *suite.T) {
		t.Mark(MarkSmoke)
		id := randomInt(t, 1, KnownCompanyCount)
		resp := getCompany(t, strconv.Itoa(id), schemas.CompanyByID, 200)

		var company servicedef.Company
		decodeBody(t, resp, &company)
		assert.Equal(t, id, company.ID)
		require.NotEmpty(t, company.DescriptionLang)
		assert.Equal(t, servicedef.LangEN, company.DescriptionLang[0].Lang,
			"with no language requested, the first translation should be EN")
	})

	for _, id := range []int{0, randomInt(t, KnownCompanyCount+1, 100)} {
		id := id
		t.Run(fmt.Sprintf("unknown id %d", id), func(t *suite.T) {
			t.Mark(MarkSmoke)
			getCompany(t, strconv.Itoa(id), schemas.NotFound404, 404)
		})
	}

	for _, id := range []string{"ABC", "1.5"} {
		id := id
		t.Run(fmt.Sprintf("invalid id %s", id), func(t *suite.T) {
			t.Mark(MarkNegative, MarkRegression)
			getCompany(t, id, schemas.ValidationError422, 422)
		})
	}

	t.Run("invalid id -1", func(t *suite.T) {
		t.Mark(MarkNegative, MarkRegression, MarkKnownDefect)
		knownDefect(t, "a negative company id is answered with 404 instead of 422")
		getCompany(t, "-1", schemas.NotFound404, 404)
	})

	t.Run("localization", doCompanyLocalizationTests)
}

func doCompanyLocalizationTests(t *suite.T) {
	for _, lang := range servicedef.AllLanguages() {
		lang := lang
		t.Run(string(lang), func(t *suite.T) {
			t.Mark(MarkSmoke)
			resp := getCompany(t, strconv.Itoa(localizedCompanyID), schemas.CompanyByID, 200,
				apiclient.WithHeader("Accept-Language", string(lang)))

			var company servicedef.Company
			decodeBody(t, resp, &company)
			assert.Equal(t, localizedCompanyID, company.ID)
			prefix := descriptionPrefixes[lang]
			assert.True(t, strings.HasPrefix(company.Description, prefix),
				"description for %s should start with %q, was %q", lang, prefix, company.Description)
		})
	}

	// The service does not document what happens for an unknown language. It returns every
	// translation, as if no language had been requested; this is open for confirmation.
	t.Run("unknown language", func(t *suite.T) {
		t.Mark(MarkSmoke, MarkNegative)
		resp := getCompany(t, strconv.Itoa(localizedCompanyID), schemas.CompanyByID, 200,
			apiclient.WithHeader("Accept-Language", "XXX"))

		var company servicedef.Company
		decodeBody(t, resp, &company)
		assert.Equal(t, localizedCompanyID, company.ID)
		assert.Len(t, company.DescriptionLang, len(servicedef.AllLanguages()))
	})
}
