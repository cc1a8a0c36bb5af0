package servicetwin

import (
	"sort"
	"sync"

	"github.com/sendrequest/api-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// userRecord is a stored user. The names are raw values because the service stores whatever it
// was given after coercion, including null.
type userRecord struct {
	id        int
	firstName ldvalue.Value
	lastName  ldvalue.Value
	companyID ldvalue.OptionalInt
}

func (u userRecord) asJSON() ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set("first_name", u.firstName).
		Set("last_name", u.lastName).
		Set("company_id", u.companyID.AsValue()).
		Set("user_id", ldvalue.Int(u.id)).
		Build()
}

// Store holds the twin's data. Companies are fixed; users can be added and removed.
type Store struct {
	companies  []servicedef.Company
	users      []userRecord
	nextUserID int
	lock       sync.RWMutex
}

func newStore(companies []servicedef.Company, users []userRecord) *Store {
	s := &Store{
		companies:  append([]servicedef.Company(nil), companies...),
		users:      users,
		nextUserID: 1,
	}
	sort.Slice(s.companies, func(i, j int) bool { return s.companies[i].ID < s.companies[j].ID })
	sort.Slice(s.users, func(i, j int) bool { return s.users[i].id < s.users[j].id })
	for _, u := range s.users {
		if u.id >= s.nextUserID {
			s.nextUserID = u.id + 1
		}
	}
	return s
}

// Companies returns the companies with the given status, or all of them if status is empty.
func (s *Store) Companies(status servicedef.CompanyStatus) []servicedef.Company {
	var ret []servicedef.Company
	for _, c := range s.companies {
		if status == "" || c.Status == status {
			ret = append(ret, c)
		}
	}
	return ret
}

func (s *Store) Company(id int) (servicedef.Company, bool) {
	for _, c := range s.companies {
		if c.ID == id {
			return c, true
		}
	}
	return servicedef.Company{}, false
}

// UserCount returns the current number of users.
func (s *Store) UserCount() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.users)
}

func (s *Store) listUsers() []userRecord {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]userRecord(nil), s.users...)
}

func (s *Store) getUser(id int) (userRecord, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	i := sort.Search(len(s.users), func(i int) bool { return s.users[i].id >= id })
	if i < len(s.users) && s.users[i].id == id {
		return s.users[i], true
	}
	return userRecord{}, false
}

// addUser assigns the next id to the user and stores it. Ids are never reused.
func (s *Store) addUser(u userRecord) userRecord {
	s.lock.Lock()
	defer s.lock.Unlock()
	u.id = s.nextUserID
	s.nextUserID++
	s.users = append(s.users, u)
	return u
}

func (s *Store) deleteUser(id int) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	for i, u := range s.users {
		if u.id == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return true
		}
	}
	return false
}
