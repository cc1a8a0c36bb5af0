package apitests

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sendrequest/api-contract-tests/apiclient"
	"github.com/sendrequest/api-contract-tests/framework/suite"
	"github.com/sendrequest/api-contract-tests/schemas"
	"github.com/sendrequest/api-contract-tests/servicedef"
	"github.com/sendrequest/api-contract-tests/verify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// A company id that no company has.
const unknownCompanyID = 1000000

func requireUser(t *suite.T, resp *apiclient.Response) servicedef.User {
	var u servicedef.User
	decodeBody(t, resp, &u)
	return u
}

func DoCreateUserTests(t *suite.T) {
	t.Run("all fields valid", func(t *suite.T) {
		t.Mark(MarkSmoke)
		companyID := pickCompany(t, servicedef.StatusActive)
		resp, _ := createUser(t, servicedef.NewUser("Corneliy", "Shnabs", companyID))
		verify.Assert(t, verify.Contract(resp, schemas.Get(schemas.UserCreated), 201))

		u := requireUser(t, resp)
		assert.Equal(t, ldvalue.NewOptionalString("Corneliy"), u.FirstName)
		assert.Equal(t, "Shnabs", u.LastName)
		assert.Equal(t, ldvalue.NewOptionalInt(companyID), u.CompanyID)
	})

	t.Run("only required field", func(t *suite.T) {
		t.Mark(MarkSmoke)
		resp, _ := createUser(t, servicedef.NewUser("", "Shnabs", 0))
		verify.Assert(t, verify.Contract(resp, schemas.Get(schemas.UserCreated), 201))
		assert.Equal(t, "Shnabs", requireUser(t, resp).LastName)
	})

	t.Run("round trip", func(t *suite.T) {
		t.Mark(MarkSmoke, MarkRegression)
		companyID := pickCompany(t, servicedef.StatusActive)
		resp, created := createUser(t, servicedef.NewUser("Corneliy", "Shnabs", companyID))
		verify.Require(t, verify.Contract(resp, schemas.Get(schemas.UserCreated), 201))
		require.NotNil(t, created)
		u := requireUser(t, resp)

		fetched := getAndVerify(t, usersClient(t), "/"+strconv.Itoa(created.id), schemas.UserByID, 200)
		assert.Equal(t, u, requireUser(t, fetched))

		created.delete(t)
	})

	t.Run("non-string last_name", doCreateUserCoercionTests)
	t.Run("missing or empty last_name", doCreateUserRequiredFieldTests)
	t.Run("structured names", doCreateUserStructuredNameTests)
	t.Run("company", doCreateUserCompanyTests)
}

// The service documents last_name as a string, but converts other scalar values to strings.
func doCreateUserCoercionTests(t *suite.T) {
	cases := []struct {
		value    ldvalue.Value
		expected string
	}{
		{ldvalue.Int(0), "0"},
		{ldvalue.Float64(0.5), "0.5"},
		{ldvalue.Int(-1), "-1"},
		{ldvalue.Bool(false), "False"},
		{ldvalue.Bool(true), "True"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.value.JSONString(), func(t *suite.T) {
			t.Mark(MarkSmoke, MarkKnownDefect)
			knownDefect(t, "non-string scalars in last_name are converted to strings instead of being rejected")
			resp, _ := createUser(t, servicedef.CreateUserParams{LastName: servicedef.Field(c.value)})
			verify.Assert(t, verify.Contract(resp, schemas.Get(schemas.UserCreated), 201))
			assert.Equal(t, c.expected, requireUser(t, resp).LastName)
		})
	}
}

func doCreateUserRequiredFieldTests(t *suite.T) {
	t.Run("empty body", func(t *suite.T) {
		t.Mark(MarkSmoke, MarkNegative)
		resp, _ := createUser(t, servicedef.CreateUserParams{})
		verify.Assert(t, verify.Contract(resp, schemas.Get(schemas.ValidationError422), 422))
	})

	t.Run("body without last_name", func(t *suite.T) {
		t.Mark(MarkSmoke, MarkNegative)
		companyID := pickCompany(t, servicedef.StatusActive)
		resp, _ := createUser(t, servicedef.CreateUserParams{
			FirstName: servicedef.Field(ldvalue.String("Corneliy")),
			CompanyID: servicedef.Field(ldvalue.Int(companyID)),
		})
		verify.Assert(t, verify.Contract(resp, schemas.Get(schemas.ValidationError422), 422))
	})

	// The schema says last_name is required and non-empty, but the service accepts these.
	for _, value := range []ldvalue.Value{ldvalue.Null(), ldvalue.String(""), ldvalue.String(" ")} {
		value := value
		t.Run(fmt.Sprintf("last_name %s", value.JSONString()), func(t *suite.T) {
			t.Mark(MarkSmoke, MarkNegative, MarkKnownDefect)
			knownDefect(t, "an empty or null last_name is accepted with 201 instead of being rejected with 422")
			resp, _ := createUser(t, servicedef.CreateUserParams{LastName: servicedef.Field(value)})

			// A null last_name is echoed as null, which the declared schema does not allow.
			schema := schemas.Get(schemas.UserCreated)
			if value.IsNull() {
				schema = nil
			}
			verify.Assert(t, verify.Contract(resp, schema, 201))
			assert.Equal(t, value, resp.JSON().GetByKey("last_name"))
		})
	}
}

func doCreateUserStructuredNameTests(t *suite.T) {
	values := []ldvalue.Value{
		ldvalue.ArrayOf(),
		ldvalue.ObjectBuild().Set("1", ldvalue.Bool(true)).Build(),
		ldvalue.ArrayOf(ldvalue.Int(3)),
	}
	for _, value := range values {
		value := value
		t.Run(fmt.Sprintf("last_name %s", value.JSONString()), func(t *suite.T) {
			t.Mark(MarkSmoke, MarkNegative)
			resp, _ := createUser(t, servicedef.CreateUserParams{LastName: servicedef.Field(value)})
			verify.Assert(t, verify.Contract(resp, schemas.Get(schemas.ValidationError422), 422))
		})
		t.Run(fmt.Sprintf("first_name %s", value.JSONString()), func(t *suite.T) {
			t.Mark(MarkNegative)
			resp, _ := createUser(t, servicedef.CreateUserParams{
				FirstName: servicedef.Field(value),
				LastName:  servicedef.Field(ldvalue.String("Shnabs")),
			})
			verify.Assert(t, verify.Contract(resp, schemas.Get(schemas.ValidationError422), 422))
		})
	}
}

func doCreateUserCompanyTests(t *suite.T) {
	for _, status := range []servicedef.CompanyStatus{servicedef.StatusClosed, servicedef.StatusBankrupt} {
		status := status
		t.Run(fmt.Sprintf("%s company", status), func(t *suite.T) {
			t.Mark(MarkNegative, MarkRegression)
			companyID := pickCompany(t, status)
			resp, _ := createUser(t, servicedef.NewUser("Corneliy", "Shnabs", companyID))
			verify.Assert(t, verify.Contract(resp, schemas.Get(schemas.BadRequest400), 400))
		})
	}

	t.Run("unknown company", func(t *suite.T) {
		t.Mark(MarkNegative, MarkRegression)
		resp, _ := createUser(t, servicedef.NewUser("Corneliy", "Shnabs", unknownCompanyID))
		verify.Assert(t, verify.Contract(resp, schemas.Get(schemas.NotFound404), 404))
	})

	t.Run("string company id", func(t *suite.T) {
		t.Mark(MarkNegative, MarkRegression)
		resp, _ := createUser(t, servicedef.CreateUserParams{
			LastName:  servicedef.Field(ldvalue.String("Shnabs")),
			CompanyID: servicedef.Field(ldvalue.String("ABC")),
		})
		verify.Assert(t, verify.Contract(resp, schemas.Get(schemas.ValidationError422), 422))
	})

	// A fractional id should be rejected, but the service sometimes truncates it and creates
	// the user. Either outcome is accepted as long as it is consistent.
	t.Run("fractional company id", func(t *suite.T) {
		t.Mark(MarkNegative, MarkRegression)
		companyID := pickCompany(t, servicedef.StatusActive)
		fractional := float64(companyID) + 0.5
		resp, _ := createUser(t, servicedef.CreateUserParams{
			LastName:  servicedef.Field(ldvalue.String("Shnabs")),
			CompanyID: servicedef.Field(ldvalue.Float64(fractional)),
		})
		if resp.StatusCode == 201 {
			knownDefect(t, "a fractional company_id is truncated instead of being rejected with 422")
			verify.Assert(t, verify.Contract(resp, schemas.Get(schemas.UserCreated), 201))
			assert.Equal(t, ldvalue.NewOptionalInt(int(math.Trunc(fractional))), requireUser(t, resp).CompanyID)
			return
		}
		verify.Assert(t, verify.Contract(resp, schemas.Get(schemas.ValidationError422), 422))
	})
}
