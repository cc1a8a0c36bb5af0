package apitests

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sendrequest/api-contract-tests/apiclient"
	"github.com/sendrequest/api-contract-tests/framework"
	"github.com/sendrequest/api-contract-tests/internal/servicetwin"
	"github.com/sendrequest/api-contract-tests/servicedef"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twinConfig(twin *servicetwin.Instance) Config {
	return Config{
		CompaniesURL:         twin.URL() + servicetwin.CompaniesPath,
		CompaniesInsecureURL: twin.InsecureURL() + servicetwin.CompaniesPath,
		UsersURL:             twin.URL() + servicetwin.UsersPath,
		UsersInsecureURL:     twin.InsecureURL() + servicetwin.UsersPath,
		ClientOptions: []apiclient.ClientOption{
			apiclient.WithRootCAs(twin.CertPool()),
			apiclient.WithTimeouts(apiclient.Timeouts{Get: 5 * time.Second, Post: 5 * time.Second, Delete: 5 * time.Second}),
		},
		Seed: 42,
	}
}

func startTwin(t *testing.T) *servicetwin.Instance {
	twin, err := servicetwin.Start(servicetwin.Config{RandomSeed: 1})
	require.NoError(t, err)
	return twin
}

func requireNoFailures(t *testing.T, results framework.Results) {
	for _, f := range results.Failures {
		t.Errorf("%s: %v", f.TestID, f.Errors)
	}
}

func TestSuitePassesAgainstTwin(t *testing.T) {
	twin := startTwin(t)
	defer twin.Close()
	usersBefore := twin.Store().UserCount()

	results := RunTestSuite(twinConfig(twin), nil, nil, nil)
	requireNoFailures(t, results)
	assert.True(t, results.OK())
	assert.Greater(t, len(results.Tests), 50)
	assert.Empty(t, results.Skipped)
	assert.Equal(t, usersBefore, twin.Store().UserCount(), "every created user should have been deleted")
}

func TestSuitePassesWithOtherSeeds(t *testing.T) {
	twin := startTwin(t)
	defer twin.Close()

	for _, seed := range []int64{1, 2, 3} {
		config := twinConfig(twin)
		config.Seed = seed
		requireNoFailures(t, RunTestSuite(config, nil, nil, nil))
	}
}

func TestMarkFilter(t *testing.T) {
	twin := startTwin(t)
	defer twin.Close()

	results := RunTestSuite(twinConfig(twin), nil, framework.MarkFilter{MarkNegative}, nil)
	requireNoFailures(t, results)
	assert.NotEmpty(t, results.Skipped)
	for _, r := range results.Skipped {
		assert.False(t, strings.Contains(r.TestID.String(), "invalid"), "%s should not be skipped", r.TestID)
	}
}

func TestRegexFilter(t *testing.T) {
	twin := startTwin(t)
	defer twin.Close()

	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("^HTTP redirect"))
	results := RunTestSuite(twinConfig(twin), filters.AsFilter, nil, nil)
	requireNoFailures(t, results)
	for _, r := range results.Tests {
		assert.True(t, strings.HasPrefix(r.TestID.String(), "HTTP redirect"), r.TestID.String())
	}
	assert.NotEmpty(t, results.Tests)
}

func TestSuiteReportsFailuresOfBrokenService(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(500), func(server *httptest.Server) {
		results := RunTestSuite(Config{
			CompaniesURL:         server.URL + "/api/companies",
			CompaniesInsecureURL: server.URL + "/api/companies",
			UsersURL:             server.URL + "/api/users",
			UsersInsecureURL:     server.URL + "/api/users",
		}, nil, nil, nil)

		assert.False(t, results.OK())
		require.NotEmpty(t, results.Failures)
		found := false
		for _, f := range results.Failures {
			for _, err := range f.Errors {
				if strings.Contains(err.Error(), "status code: expected 200, got 500") {
					found = true
				}
			}
		}
		assert.True(t, found, "expected a status code failure to be reported")
	})
}

func TestKnownDefectsAreNotedInResults(t *testing.T) {
	twin := startTwin(t)
	defer twin.Close()

	results := RunTestSuite(twinConfig(twin), nil, framework.MarkFilter{MarkKnownDefect}, nil)
	requireNoFailures(t, results)
	noted := make(map[string][]string)
	for _, r := range results.Tests {
		if len(r.Notes) > 0 {
			noted[r.TestID.String()] = r.Notes
		}
	}
	assert.Contains(t, noted, "company by id/invalid id -1")
	assert.Contains(t, noted, "users list/invalid offset -1")
	assert.Contains(t, noted, `create user/missing or empty last_name/last_name null`)
	for id, notes := range noted {
		for _, n := range notes {
			assert.True(t, strings.HasPrefix(n, "known defect: "), "%s: %s", id, n)
		}
	}
}

func failedTests(results framework.Results) map[string]string {
	failed := make(map[string]string)
	for _, f := range results.Failures {
		var messages []string
		for _, err := range f.Errors {
			messages = append(messages, err.Error())
		}
		failed[f.TestID.String()] = strings.Join(messages, "\n")
	}
	return failed
}

func TestSuiteDetectsServiceRegressions(t *testing.T) {
	for _, tc := range []struct {
		name       string
		faults     servicetwin.Faults
		failedTest string
		message    string
	}{
		{"offset off by one", servicetwin.Faults{OffsetOffByOne: true},
			"companies list/offset/within range", ""},
		{"status filter ignored", servicetwin.Faults{IgnoreStatusFilter: true},
			"companies list/status filter/ACTIVE", "number of ACTIVE companies"},
		{"wrong translation", servicetwin.Faults{TranslationLang: servicedef.LangEN},
			"company by id/localization/RU", "description for RU should start with"},
		{"redirect elsewhere", servicetwin.Faults{RedirectOrigin: "https://example.com"},
			"HTTP redirect/companies", "Location header: expected"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			twin, err := servicetwin.Start(servicetwin.Config{RandomSeed: 1, Faults: tc.faults})
			require.NoError(t, err)
			defer twin.Close()

			results := RunTestSuite(twinConfig(twin), nil, nil, nil)
			assert.False(t, results.OK())
			failed := failedTests(results)
			require.Contains(t, failed, tc.failedTest)
			assert.Contains(t, failed[tc.failedTest], tc.message)
		})
	}
}

func TestRunPatternOfFailedTestReranOnlyThatTest(t *testing.T) {
	twin := startTwin(t)
	defer twin.Close()

	id := framework.TestID{Path: []string{"company by id", "invalid id 1.5"}}
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set(id.RunPattern()))

	results := RunTestSuite(twinConfig(twin), filters.AsFilter, nil, nil)
	requireNoFailures(t, results)
	var ran []string
	for _, r := range results.Tests {
		ran = append(ran, r.TestID.String())
	}
	assert.Equal(t, []string{id.String(), "company by id"}, ran)
}

func TestRunPatternsReproduceFailures(t *testing.T) {
	twin, err := servicetwin.Start(servicetwin.Config{RandomSeed: 1, Faults: servicetwin.Faults{TranslationLang: servicedef.LangEN}})
	require.NoError(t, err)
	defer twin.Close()

	first := RunTestSuite(twinConfig(twin), nil, nil, nil)
	require.NotEmpty(t, first.Failures)

	var filters framework.RegexFilters
	for _, f := range first.Failures {
		require.NoError(t, filters.MustMatch.Set(f.TestID.RunPattern()))
	}
	rerun := RunTestSuite(twinConfig(twin), filters.AsFilter, nil, nil)

	firstFailed, rerunFailed := failedTests(first), failedTests(rerun)
	assert.Equal(t, len(firstFailed), len(rerunFailed))
	for id := range firstFailed {
		assert.Contains(t, rerunFailed, id)
	}
	assert.Less(t, len(rerun.Tests), len(first.Tests))
}

func TestParseStatusTable(t *testing.T) {
	rows, err := ParseStatusTable(strings.NewReader("status,expected_status\nACTIVE,ACTIVE\nCLOSED, CLOSED\n"))
	require.NoError(t, err)
	assert.Equal(t, []StatusTableRow{{"ACTIVE", "ACTIVE"}, {"CLOSED", "CLOSED"}}, rows)

	_, err = ParseStatusTable(strings.NewReader("MERGED,MERGED\n"))
	assert.Error(t, err)

	_, err = ParseStatusTable(strings.NewReader("ACTIVE\n"))
	assert.Error(t, err)

	assert.Len(t, DefaultStatusTable(), 3)
}
