package servicetwin

import (
	_ "embed"
	"math/rand"

	"github.com/sendrequest/api-contract-tests/servicedef"

	"github.com/pkg/errors"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeedData []byte

// Seed is the initial state of the twin.
type Seed struct {
	Companies []servicedef.Company `yaml:"companies"`
	Users     UserSeed             `yaml:"users"`
	Names     map[string]NameList  `yaml:"names"`
}

type UserSeed struct {
	Count int `yaml:"count"`
	// WithoutCompany is the percentage of generated users that have no company.
	WithoutCompany int `yaml:"without_company"`
}

// NameList holds the names used to generate users for one locale.
type NameList struct {
	First []string `yaml:"first"`
	Last  []string `yaml:"last"`
}

// DefaultSeed returns the built-in initial state.
func DefaultSeed() (*Seed, error) {
	return ParseSeed(defaultSeedData)
}

// ParseSeed reads a seed document in YAML form.
func ParseSeed(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "invalid seed data")
	}
	for i, c := range s.Companies {
		if c.ID < 1 {
			return nil, errors.Errorf("seed company #%d has invalid id %d", i+1, c.ID)
		}
		if !c.Status.Valid() {
			return nil, errors.Errorf("seed company %d has invalid status %q", c.ID, c.Status)
		}
		for _, t := range c.DescriptionLang {
			if !t.Lang.Valid() {
				return nil, errors.Errorf("seed company %d has translation in unknown language %q", c.ID, t.Lang)
			}
		}
	}
	return &s, nil
}

// generateUsers creates the initial users, numbered from 1. Names are drawn from the name lists
// of the given locales; locales that have no list are ignored.
func (s *Seed) generateUsers(rng *rand.Rand, locales []string) ([]userRecord, error) {
	var lists []NameList
	for _, l := range locales {
		if nl, ok := s.Names[l]; ok && len(nl.First) > 0 && len(nl.Last) > 0 {
			lists = append(lists, nl)
		}
	}
	if len(lists) == 0 && s.Users.Count > 0 {
		return nil, errors.Errorf("no user names available for locales %v", locales)
	}

	users := make([]userRecord, 0, s.Users.Count)
	for i := 1; i <= s.Users.Count; i++ {
		nl := lists[rng.Intn(len(lists))]
		u := userRecord{
			id:        i,
			firstName: ldvalue.String(nl.First[rng.Intn(len(nl.First))]),
			lastName:  ldvalue.String(nl.Last[rng.Intn(len(nl.Last))]),
		}
		if len(s.Companies) > 0 && rng.Intn(100) >= s.Users.WithoutCompany {
			u.companyID = ldvalue.NewOptionalInt(s.Companies[rng.Intn(len(s.Companies))].ID)
		}
		users = append(users, u)
	}
	return users, nil
}
