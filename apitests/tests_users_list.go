package apitests

import (
	"fmt"

	"github.com/sendrequest/api-contract-tests/apiclient"
	"github.com/sendrequest/api-contract-tests/framework/suite"
	"github.com/sendrequest/api-contract-tests/schemas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Users are created and deleted concurrently by other clients, so these tests only rely on the
// order of user ids and on the total reported in the same response, never on exact positions.

func DoUsersListTests(t *suite.T) {
	t.Run("without parameters", func(t *suite.T) {
		t.Mark(MarkSmoke)
		_, list := getUsers(t, nil)
		assert.Len(t, list.Data, minInt(3, list.Meta.Total), "default page size")
	})

	for _, limit := range []int{0, randomInt(t, 1, 100)} {
		limit := limit
		t.Run(fmt.Sprintf("valid limit %d", limit), func(t *suite.T) {
			t.Mark(MarkRegression)
			_, list := getUsers(t, apiclient.Params{"limit": limit})
			assert.Len(t, list.Data, minInt(limit, list.Meta.Total))
		})
	}

	t.Run("invalid limit ABC", func(t *suite.T) {
		t.Mark(MarkNegative, MarkRegression)
		getAndVerify(t, usersClient(t), "", schemas.ValidationError422, 422,
			apiclient.WithParams(apiclient.Params{"limit": "ABC"}))
	})

	t.Run("invalid limit -1", func(t *suite.T) {
		t.Mark(MarkNegative, MarkRegression, MarkKnownDefect)
		knownDefect(t, "a negative limit is accepted with 200 instead of being rejected with 422")
		getUsers(t, apiclient.Params{"limit": -1})
	})

	t.Run("offset within range", func(t *suite.T) {
		t.Mark(MarkRegression)
		offset := randomInt(t, 0, 50)
		_, list := getUsers(t, apiclient.Params{"offset": offset})
		require.NotEmpty(t, list.Data)
		assert.GreaterOrEqual(t, list.Data[0].ID, offset+1, "first user after offset %d", offset)
	})

	t.Run("offset beyond range", func(t *suite.T) {
		t.Mark(MarkRegression)
		offset := randomInt(t, 100000, 100100)
		_, list := getUsers(t, apiclient.Params{"offset": offset})
		assert.Empty(t, list.Data)
	})

	t.Run("invalid offset ABC", func(t *suite.T) {
		t.Mark(MarkNegative, MarkRegression)
		getAndVerify(t, usersClient(t), "", schemas.ValidationError422, 422,
			apiclient.WithParams(apiclient.Params{"offset": "ABC"}))
	})

	t.Run("invalid offset -1", func(t *suite.T) {
		t.Mark(MarkNegative, MarkRegression, MarkKnownDefect)
		knownDefect(t, "a negative offset is accepted with 200 instead of being rejected with 422")
		getUsers(t, apiclient.Params{"offset": -1})
	})

	t.Run("limit and offset", func(t *suite.T) {
		t.Mark(MarkRegression)
		limit, offset := randomInt(t, 1, 100), randomInt(t, 0, 100)
		_, list := getUsers(t, apiclient.Params{"limit": limit, "offset": offset})
		assert.Len(t, list.Data, minInt(limit, maxInt(list.Meta.Total-offset, 0)))
		if len(list.Data) > 0 {
			assert.GreaterOrEqual(t, list.Data[0].ID, offset+1, "first user after offset %d", offset)
		}
	})
}
