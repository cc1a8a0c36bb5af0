package apitests

import (
	"strings"

	"github.com/sendrequest/api-contract-tests/apiclient"
	"github.com/sendrequest/api-contract-tests/framework/suite"
	"github.com/sendrequest/api-contract-tests/verify"
)

// DoRedirectTests checks that plain HTTP requests are redirected to HTTPS. The redirect is not
// followed, so the response examined is the one that came over HTTP.
func DoRedirectTests(t *suite.T) {
	c := requireContext(t)

	t.Run("companies", func(t *suite.T) {
		t.Mark(MarkRegression)
		checkRedirect(t, companiesInsecureClient(t), c.config.CompaniesURL)
	})

	t.Run("users", func(t *suite.T) {
		t.Mark(MarkRegression)
		checkRedirect(t, usersInsecureClient(t), c.config.UsersURL)
	})
}

func checkRedirect(t *suite.T, client *apiclient.Client, secureURL string) {
	resp := doGet(t, client, "")
	base := strings.TrimSuffix(secureURL, "/")
	verify.Assert(t, verify.Redirect(resp, base, base+"/"))
}
