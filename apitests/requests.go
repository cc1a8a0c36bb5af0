package apitests

import (
	"fmt"
	"strconv"

	"github.com/sendrequest/api-contract-tests/apiclient"
	"github.com/sendrequest/api-contract-tests/framework/suite"
	"github.com/sendrequest/api-contract-tests/schemas"
	"github.com/sendrequest/api-contract-tests/servicedef"
	"github.com/sendrequest/api-contract-tests/verify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doGet(t *suite.T, client *apiclient.Client, path string, options ...apiclient.RequestOption) *apiclient.Response {
	resp, err := client.Get(path, options...)
	require.NoError(t, err)
	return resp
}

// getAndVerify sends a GET and checks the response against the common contract.
func getAndVerify(
	t *suite.T,
	client *apiclient.Client,
	path string,
	schema schemas.Name,
	statusCode int,
	options ...apiclient.RequestOption,
) *apiclient.Response {
	resp := doGet(t, client, path, options...)
	verify.Assert(t, verify.Contract(resp, schemas.Get(schema), statusCode))
	return resp
}

func decodeBody(t *suite.T, resp *apiclient.Response, target interface{}) {
	require.NoError(t, resp.DecodeJSON(target))
}

func getCompanies(t *suite.T, params apiclient.Params) (*apiclient.Response, servicedef.CompaniesList) {
	resp := getAndVerify(t, companiesClient(t), "", schemas.CompaniesList, 200, apiclient.WithParams(params))
	var list servicedef.CompaniesList
	decodeBody(t, resp, &list)
	return resp, list
}

func getUsers(t *suite.T, params apiclient.Params) (*apiclient.Response, servicedef.UsersList) {
	resp := getAndVerify(t, usersClient(t), "", schemas.UsersList, 200, apiclient.WithParams(params))
	var list servicedef.UsersList
	decodeBody(t, resp, &list)
	return resp, list
}

// allCompanies fetches every company. It is called by each test that needs it, rather than
// once per run, since it serves as a baseline for that test.
func allCompanies(t *suite.T) servicedef.CompaniesList {
	_, list := getCompanies(t, apiclient.Params{"limit": KnownCompanyCount})
	require.Len(t, list.Data, KnownCompanyCount, "baseline request did not return every company")
	return list
}

// pickCompany returns a random company with the given status, or skips the test if there is none.
func pickCompany(t *suite.T, status servicedef.CompanyStatus) int {
	ids := allCompanies(t).IDsByStatus(status)
	if len(ids) == 0 {
		t.SkipWithReason(fmt.Sprintf("service has no %s companies", status))
	}
	return ids[randomInt(t, 0, len(ids)-1)]
}

// createdUser tracks a user that a test created, so that it is deleted when the test ends.
type createdUser struct {
	id      int
	deleted bool
}

// createUser sends a create-user request. If a user was created, its deletion is scheduled
// before the response is examined any further.
func createUser(t *suite.T, body interface{}) (*apiclient.Response, *createdUser) {
	client := usersClient(t)
	resp, err := client.Post("", apiclient.WithJSONBody(body))
	require.NoError(t, err)
	if resp.StatusCode != 201 {
		return resp, nil
	}
	id := resp.JSON().GetByKey("user_id")
	if !id.IsInt() {
		t.Errorf("created user has no valid user_id: %s", string(resp.Body))
		return resp, nil
	}
	u := &createdUser{id: id.IntValue()}
	t.Defer(func() { u.delete(t) })
	return resp, u
}

func (u *createdUser) delete(t *suite.T) {
	if u == nil || u.deleted {
		return
	}
	resp, err := usersClient(t).Delete("/" + strconv.Itoa(u.id))
	if !assert.NoError(t, err, "could not delete user %d", u.id) {
		return
	}
	u.deleted = true
	assert.True(t, resp.StatusCode >= 200 && resp.StatusCode < 300,
		"deleting user %d returned status %d", u.id, resp.StatusCode)
}

// knownDefect notes in the run summary that an expectation follows the service's actual
// behavior rather than its documentation.
func knownDefect(t *suite.T, description string) {
	t.Note("known defect: %s", description)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
