package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemasCompile(t *testing.T) {
	r, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []Name{BadRequest400, CompaniesList, CompanyByID, NotFound404, UserByID, UserCreated,
		UsersList, ValidationError422}, r.Names())
}

func TestUnknownSchema(t *testing.T) {
	r, err := Load()
	require.NoError(t, err)
	_, err = r.Get("Nope")
	assert.Error(t, err)
	assert.Panics(t, func() { Get("Nope") })
}

func TestCompanyByIDRequiresExactlyOneDescriptionForm(t *testing.T) {
	s := Get(CompanyByID)
	base := `"company_id":1,"company_name":"A","company_address":"B","company_status":"ACTIVE"`

	problems, err := s.Validate([]byte(`{` + base + `,"description":"hello"}`))
	require.NoError(t, err)
	assert.Empty(t, problems)

	problems, err = s.Validate([]byte(`{` + base +
		`,"description_lang":[{"translation_lang":"EN","translation":"hello"}]}`))
	require.NoError(t, err)
	assert.Empty(t, problems)

	problems, err = s.Validate([]byte(`{` + base + `}`))
	require.NoError(t, err)
	assert.NotEmpty(t, problems)

	problems, err = s.Validate([]byte(`{` + base +
		`,"description":"x","description_lang":[{"translation_lang":"EN","translation":"x"}]}`))
	require.NoError(t, err)
	assert.NotEmpty(t, problems)
}

func TestCompanyByIDRejectsUnknownLanguageAndStatus(t *testing.T) {
	s := Get(CompanyByID)

	problems, err := s.Validate([]byte(`{"company_id":1,"company_name":"A","company_address":"B",` +
		`"company_status":"ACTIVE","description_lang":[{"translation_lang":"DE","translation":"x"}]}`))
	require.NoError(t, err)
	assert.NotEmpty(t, problems)

	problems, err = s.Validate([]byte(`{"company_id":1,"company_name":"A","company_address":"B",` +
		`"company_status":"MERGED","description":"x"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, problems)
}

func TestCompaniesList(t *testing.T) {
	s := Get(CompaniesList)

	problems, err := s.Validate([]byte(`{"data":[{"company_id":1,"company_name":"A","company_address":"B",` +
		`"company_status":"CLOSED","description":"x"}],"meta":{"limit":3,"offset":0,"total":7}}`))
	require.NoError(t, err)
	assert.Empty(t, problems)

	problems, err = s.Validate([]byte(`{"data":[],"meta":{}}`))
	require.NoError(t, err)
	assert.NotEmpty(t, problems)
}

func TestUserShapes(t *testing.T) {
	for _, name := range []Name{UserByID, UserCreated} {
		t.Run(string(name), func(t *testing.T) {
			s := Get(name)

			problems, err := s.Validate([]byte(`{"first_name":null,"last_name":"Shnabs","company_id":null,"user_id":5}`))
			require.NoError(t, err)
			assert.Empty(t, problems)

			problems, err = s.Validate([]byte(`{"first_name":"A","company_id":3,"user_id":5}`))
			require.NoError(t, err)
			assert.NotEmpty(t, problems)

			problems, err = s.Validate([]byte(`{"last_name":"A","company_id":"3","user_id":5}`))
			require.NoError(t, err)
			assert.NotEmpty(t, problems)
		})
	}
}

func TestErrorBodies(t *testing.T) {
	problems, err := Get(ValidationError422).Validate(
		[]byte(`{"detail":[{"loc":["body","last_name"],"msg":"field required","type":"value_error.missing"},` +
			`{"loc":["query",0],"msg":"x","type":"y"}]}`))
	require.NoError(t, err)
	assert.Empty(t, problems)

	problems, err = Get(ValidationError422).Validate([]byte(`{"detail":[{"loc":["body"],"msg":"x"}]}`))
	require.NoError(t, err)
	assert.NotEmpty(t, problems)

	for _, name := range []Name{NotFound404, BadRequest400} {
		problems, err = Get(name).Validate([]byte(`{"detail":{"reason":"Company not found"}}`))
		require.NoError(t, err)
		assert.Empty(t, problems, name)

		problems, err = Get(name).Validate([]byte(`{"detail":"Not Found"}`))
		require.NoError(t, err)
		assert.NotEmpty(t, problems, name)
	}
}

func TestBodyThatIsNotJSON(t *testing.T) {
	_, err := Get(UserByID).Validate([]byte("<html>oops</html>"))
	assert.Error(t, err)
}
