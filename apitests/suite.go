package apitests

import (
	"math/rand"

	"github.com/sendrequest/api-contract-tests/apiclient"
	"github.com/sendrequest/api-contract-tests/framework"
	"github.com/sendrequest/api-contract-tests/framework/suite"
)

// Markers that tests declare with T.Mark, for selecting subsets of the suite.
const (
	MarkSmoke      = "smoke"
	MarkRegression = "regression"
	MarkNegative   = "negative"
	// MarkKnownDefect is for tests that expect the service's actual behavior where it departs
	// from its documentation.
	MarkKnownDefect = "known-defect"
)

// Config describes the service under test.
type Config struct {
	CompaniesURL         string
	CompaniesInsecureURL string
	UsersURL             string
	UsersInsecureURL     string

	// ClientOptions are applied to every client the suite creates.
	ClientOptions []apiclient.ClientOption

	// StatusTable holds the status filter cases; nil means DefaultStatusTable.
	StatusTable []StatusTableRow

	// Seed drives every random choice the tests make, so that a run can be repeated.
	Seed int64
}

func RunTestSuite(
	config Config,
	filter framework.Filter,
	marks framework.MarkFilter,
	testLogger framework.TestLogger,
) framework.Results {
	if config.StatusTable == nil {
		config.StatusTable = DefaultStatusTable()
	}
	ctx := APITestContext{
		config:            config,
		companies:         apiclient.New(config.CompaniesURL, config.ClientOptions...),
		companiesInsecure: apiclient.New(config.CompaniesInsecureURL, config.ClientOptions...),
		users:             apiclient.New(config.UsersURL, config.ClientOptions...),
		usersInsecure:     apiclient.New(config.UsersInsecureURL, config.ClientOptions...),
		rngs:              make(map[string]*rand.Rand),
	}
	return suite.Run(
		suite.Config{Filter: filter, Marks: marks, TestLogger: testLogger, Context: ctx},
		func(t *suite.T) {
			t.Run("companies list", DoCompaniesListTests)
			t.Run("company by id", DoCompanyByIDTests)
			t.Run("users list", DoUsersListTests)
			t.Run("create user", DoCreateUserTests)
			t.Run("HTTP redirect", DoRedirectTests)
		},
	)
}
