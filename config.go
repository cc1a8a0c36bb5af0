package main

import (
	"strings"
	"time"

	"github.com/sendrequest/api-contract-tests/apiclient"
	"github.com/sendrequest/api-contract-tests/apitests"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envconfigPrefix = "APITESTS"

// config holds the location of the service under test and the client settings, read from
// APITESTS_* environment variables.
type config struct {
	BaseURL         string        `envconfig:"BASE_URL" default:"https://send-request.me"`
	InsecureBaseURL string        `envconfig:"INSECURE_BASE_URL" default:"http://send-request.me"`
	CompaniesPath   string        `envconfig:"COMPANIES_PATH" default:"/api/companies"`
	UsersPath       string        `envconfig:"USERS_PATH" default:"/api/users"`
	GetTimeout      time.Duration `envconfig:"GET_TIMEOUT" default:"500ms"`
	PostTimeout     time.Duration `envconfig:"POST_TIMEOUT" default:"1s"`
	DeleteTimeout   time.Duration `envconfig:"DELETE_TIMEOUT" default:"500ms"`
	RetryWait       time.Duration `envconfig:"RETRY_WAIT" default:"500ms"`
	// StatusTable is the path of a CSV file of status filter cases; empty means the built-in cases.
	StatusTable string `envconfig:"STATUS_TABLE"`
	// Locales selects the names the service twin generates users from.
	Locales []string `envconfig:"LOCALES" default:"ru_RU,en_US"`
}

func loadConfig() (config, error) {
	c := config{}
	err := envconfig.Process(envconfigPrefix, &c)
	if err != nil {
		return c, errors.Wrap(err, "error getting configuration from environment")
	}
	return c, nil
}

// suiteConfig builds the suite configuration for the given origins, which default to the
// configured ones when empty.
func (c config) suiteConfig(baseURL, insecureBaseURL string, seed int64) (apitests.Config, error) {
	if baseURL == "" {
		baseURL = c.BaseURL
	}
	if insecureBaseURL == "" {
		insecureBaseURL = c.InsecureBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	insecureBaseURL = strings.TrimSuffix(insecureBaseURL, "/")

	ret := apitests.Config{
		CompaniesURL:         baseURL + c.CompaniesPath,
		CompaniesInsecureURL: insecureBaseURL + c.CompaniesPath,
		UsersURL:             baseURL + c.UsersPath,
		UsersInsecureURL:     insecureBaseURL + c.UsersPath,
		ClientOptions: []apiclient.ClientOption{
			apiclient.WithTimeouts(apiclient.Timeouts{Get: c.GetTimeout, Post: c.PostTimeout, Delete: c.DeleteTimeout}),
			apiclient.WithRetryWait(c.RetryWait),
		},
		Seed: seed,
	}
	if c.StatusTable != "" {
		rows, err := apitests.LoadStatusTable(c.StatusTable)
		if err != nil {
			return ret, err
		}
		ret.StatusTable = rows
	}
	return ret, nil
}
