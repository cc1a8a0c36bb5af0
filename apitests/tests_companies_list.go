package apitests

import (
	"fmt"

	"github.com/sendrequest/api-contract-tests/apiclient"
	"github.com/sendrequest/api-contract-tests/framework/suite"
	"github.com/sendrequest/api-contract-tests/schemas"
	"github.com/sendrequest/api-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoCompaniesListTests(t *suite.T) {
	t.Run("without parameters", func(t *suite.T) {
		t.Mark(MarkSmoke)
		_, list := getCompanies(t, nil)
		assert.Len(t, list.Data, 3, "default page size")
	})

	t.Run("status filter", doCompaniesStatusFilterTests)
	t.Run("limit", doCompaniesLimitTests)
	t.Run("offset", doCompaniesOffsetTests)

	t.Run("limit and offset", func(t *suite.T) {
		t.Mark(MarkRegression)
		limit, offset := randomInt(t, 1, KnownCompanyCount), randomInt(t, 0, KnownCompanyCount-1)
		_, list := getCompanies(t, apiclient.Params{"limit": limit, "offset": offset})
		require.Len(t, list.Data, minInt(KnownCompanyCount-offset, limit))
		assert.Equal(t, offset+1, list.Data[0].ID, "first company after offset %d", offset)
	})
}

func doCompaniesStatusFilterTests(t *suite.T) {
	for _, row := range requireContext(t).config.StatusTable {
		row := row
		t.Run(string(row.Status), func(t *suite.T) {
			t.Mark(MarkSmoke)
			expectedCount := allCompanies(t).CountByStatus()[row.Status]

			_, list := getCompanies(t, apiclient.Params{"status": row.Status, "limit": KnownCompanyCount})
			for _, c := range list.Data {
				assert.Equal(t, row.Expected, c.Status, "status of company %d; all statuses: %v",
					c.ID, companyStatuses(list.Data))
			}
			assert.Len(t, list.Data, expectedCount, "number of %s companies", row.Status)
		})
	}

	for _, status := range []string{"ABC", "123"} {
		status := status
		t.Run(fmt.Sprintf("invalid status %s", status), func(t *suite.T) {
			t.Mark(MarkNegative, MarkRegression)
			getAndVerify(t, companiesClient(t), "", schemas.ValidationError422, 422,
				apiclient.WithParams(apiclient.Params{"status": status}))
		})
	}
}

func doCompaniesLimitTests(t *suite.T) {
	limits := []int{randomInt(t, 0, KnownCompanyCount-1), KnownCompanyCount, randomInt(t, KnownCompanyCount+1, 100)}
	for _, limit := range limits {
		limit := limit
		t.Run(fmt.Sprintf("valid limit %d", limit), func(t *suite.T) {
			t.Mark(MarkRegression)
			_, list := getCompanies(t, apiclient.Params{"limit": limit})
			assert.Len(t, list.Data, minInt(limit, KnownCompanyCount))
		})
	}

	t.Run("invalid limit ABC", func(t *suite.T) {
		t.Mark(MarkNegative, MarkRegression)
		getAndVerify(t, companiesClient(t), "", schemas.ValidationError422, 422,
			apiclient.WithParams(apiclient.Params{"limit": "ABC"}))
	})

	t.Run("invalid limit -1", func(t *suite.T) {
		t.Mark(MarkNegative, MarkRegression, MarkKnownDefect)
		knownDefect(t, "a negative limit is accepted with 200 instead of being rejected with 422")
		getCompanies(t, apiclient.Params{"limit": -1})
	})
}

func doCompaniesOffsetTests(t *suite.T) {
	t.Run("within range", func(t *suite.T) {
		t.Mark(MarkRegression)
		offset := randomInt(t, 0, KnownCompanyCount-1)
		_, list := getCompanies(t, apiclient.Params{"offset": offset})
		require.NotEmpty(t, list.Data)
		assert.Equal(t, offset+1, list.Data[0].ID, "first company after offset %d", offset)
		assert.Len(t, list.Data, minInt(3, KnownCompanyCount-offset))
	})

	t.Run("beyond range", func(t *suite.T) {
		t.Mark(MarkRegression)
		offset := randomInt(t, KnownCompanyCount, 100)
		_, list := getCompanies(t, apiclient.Params{"offset": offset})
		assert.Empty(t, list.Data)
	})

	t.Run("invalid offset ABC", func(t *suite.T) {
		t.Mark(MarkNegative, MarkRegression)
		getAndVerify(t, companiesClient(t), "", schemas.ValidationError422, 422,
			apiclient.WithParams(apiclient.Params{"offset": "ABC"}))
	})

	t.Run("invalid offset -1", func(t *suite.T) {
		t.Mark(MarkNegative, MarkRegression, MarkKnownDefect)
		knownDefect(t, "a negative offset is accepted with 200 instead of being rejected with 422")
		getCompanies(t, apiclient.Params{"offset": -1})
	})
}

// companyStatuses lists the statuses of the given companies, for failure messages.
func companyStatuses(companies []servicedef.Company) []servicedef.CompanyStatus {
	ret := make([]servicedef.CompanyStatus, 0, len(companies))
	for _, c := range companies {
		ret = append(ret, c.Status)
	}
	return ret
}
