package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// User is one record of the users resource.
type User struct {
	ID        int                    `json:"user_id"`
	FirstName ldvalue.OptionalString `json:"first_name"`
	LastName  string                 `json:"last_name"`
	CompanyID ldvalue.OptionalInt    `json:"company_id"`
}

type UsersList struct {
	Data []User   `json:"data"`
	Meta ListMeta `json:"meta"`
}

// CreateUserParams is the body of a create-user request. Each field is a raw JSON value so that
// requests can carry the wrong types on purpose; a nil field is left out of the body entirely,
// while a pointer to ldvalue.Null() sends an explicit null.
type CreateUserParams struct {
	FirstName *ldvalue.Value `json:"first_name,omitempty"`
	LastName  *ldvalue.Value `json:"last_name,omitempty"`
	CompanyID *ldvalue.Value `json:"company_id,omitempty"`
}

// Field wraps a value for use in CreateUserParams.
func Field(v ldvalue.Value) *ldvalue.Value {
	return &v
}

// NewUser builds the usual well-typed create-user body. An empty firstName or a zero companyID
// is left out.
func NewUser(firstName, lastName string, companyID int) CreateUserParams {
	p := CreateUserParams{LastName: Field(ldvalue.String(lastName))}
	if firstName != "" {
		p.FirstName = Field(ldvalue.String(firstName))
	}
	if companyID != 0 {
		p.CompanyID = Field(ldvalue.Int(companyID))
	}
	return p
}
