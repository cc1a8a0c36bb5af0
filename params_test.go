package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/sendrequest/api-contract-tests/apiclient"
	"github.com/sendrequest/api-contract-tests/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadParams(t *testing.T) {
	var p commandParams
	require.True(t, p.Read([]string{"apitests", "-run", "users", "-mark", "smoke,negative", "-twin", "-seed", "7"}))
	assert.True(t, p.twin)
	assert.True(t, p.seedSet)
	assert.Equal(t, int64(7), p.seed)
	assert.Equal(t, framework.MarkFilter{"smoke", "negative"}, p.marks)
	assert.True(t, p.filters.AsFilter(framework.TestID{Path: []string{"users list"}}))
	assert.False(t, p.filters.AsFilter(framework.TestID{Path: []string{"companies list"}}))
}

func TestReadParamsRejectsBadRegex(t *testing.T) {
	var p commandParams
	assert.False(t, p.Read([]string{"apitests", "-run", "("}))
}

func TestRerunCommand(t *testing.T) {
	p := commandParams{twin: true, seed: 42}
	failures := []framework.TestResult{
		{TestID: framework.TestID{Path: []string{"create user", "last_name \" \""}}},
		{TestID: framework.TestID{Path: []string{"company by id", "invalid id 1.5"}}},
	}
	assert.Equal(t,
		`./apitests -twin -seed 42 -run '^create user$/^last_name " "$' -run '^company by id$/^invalid id 1\.5$'`,
		p.rerunCommand("./apitests", failures))
}

func TestSelectedNothing(t *testing.T) {
	var p commandParams
	assert.False(t, p.selectedNothing(framework.Results{}))

	require.True(t, p.Read([]string{"apitests", "-run", "^nonexistent$"}))
	assert.True(t, p.selectedNothing(framework.Results{}))

	ran := framework.TestResult{TestID: framework.TestID{Path: []string{"company by id"}}}
	assert.False(t, p.selectedNothing(framework.Results{Tests: []framework.TestResult{ran}}))
}

func TestConfigDefaults(t *testing.T) {
	c, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://send-request.me", c.BaseURL)
	assert.Equal(t, 500*time.Millisecond, c.GetTimeout)
	assert.Equal(t, []string{"ru_RU", "en_US"}, c.Locales)

	sc, err := c.suiteConfig("", "", 1)
	require.NoError(t, err)
	assert.Equal(t, "https://send-request.me/api/companies", sc.CompaniesURL)
	assert.Equal(t, "http://send-request.me/api/users", sc.UsersInsecureURL)
	assert.Nil(t, sc.StatusTable)
}

func TestConfigFromEnvironment(t *testing.T) {
	os.Setenv("APITESTS_BASE_URL", "https://staging.example.com/")
	os.Setenv("APITESTS_POST_TIMEOUT", "3s")
	defer os.Unsetenv("APITESTS_BASE_URL")
	defer os.Unsetenv("APITESTS_POST_TIMEOUT")

	c, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, c.PostTimeout)

	sc, err := c.suiteConfig("", "", 1)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com/api/users", sc.UsersURL)
}

func TestConfigWithMissingStatusTable(t *testing.T) {
	c := config{StatusTable: "/nonexistent/statuses.csv"}
	_, err := c.suiteConfig("https://a", "http://a", 1)
	assert.Error(t, err)
}

func TestAwaitService(t *testing.T) {
	var out bytes.Buffer
	httphelpers.WithServer(httphelpers.HandlerWithStatus(503), func(server *httptest.Server) {
		err := awaitService(apiclient.New(server.URL), time.Second, &out)
		assert.NoError(t, err)
		assert.Contains(t, out.String(), "status 503")
	})

	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()
	out.Reset()
	err := awaitService(apiclient.New(url), 300*time.Millisecond, &out)
	assert.Error(t, err)
}
