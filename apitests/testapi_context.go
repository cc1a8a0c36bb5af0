package apitests

import (
	"hash/fnv"
	"math/rand"

	"github.com/sendrequest/api-contract-tests/apiclient"
	"github.com/sendrequest/api-contract-tests/framework/suite"
)

// KnownCompanyCount is the number of companies the service has. The set of companies is fixed.
const KnownCompanyCount = 7

type APITestContext struct {
	config            Config
	companies         *apiclient.Client
	companiesInsecure *apiclient.Client
	users             *apiclient.Client
	usersInsecure     *apiclient.Client
	rngs              map[string]*rand.Rand
}

func requireContext(t *suite.T) APITestContext {
	if c, ok := t.Context().(APITestContext); ok {
		return c
	}
	panic("APITestContext was not included in the global test configuration!" +
		" This is a basic mistake in the initialization logic.")
}

// The client accessors return clients that log to the test's debug output.

func companiesClient(t *suite.T) *apiclient.Client {
	return requireContext(t).companies.WithLogger(t.DebugLogger())
}

func companiesInsecureClient(t *suite.T) *apiclient.Client {
	return requireContext(t).companiesInsecure.WithLogger(t.DebugLogger())
}

func usersClient(t *suite.T) *apiclient.Client {
	return requireContext(t).users.WithLogger(t.DebugLogger())
}

func usersInsecureClient(t *suite.T) *apiclient.Client {
	return requireContext(t).usersInsecure.WithLogger(t.DebugLogger())
}

// randomInt returns a random number in [min, max]. Each test draws from its own sequence, derived
// from the run's seed and the test's ID, so a test picks the same values when it is rerun by
// itself with the same seed.
func randomInt(t *suite.T, min, max int) int {
	c := requireContext(t)
	id := t.ID().String()
	rng, ok := c.rngs[id]
	if !ok {
		h := fnv.New64a()
		_, _ = h.Write([]byte(id))
		rng = rand.New(rand.NewSource(c.config.Seed ^ int64(h.Sum64())))
		c.rngs[id] = rng
	}
	return min + rng.Intn(max-min+1)
}
