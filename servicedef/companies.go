package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// CompanyStatus is the lifecycle state of a company.
type CompanyStatus string

const (
	StatusActive   CompanyStatus = "ACTIVE"
	StatusClosed   CompanyStatus = "CLOSED"
	StatusBankrupt CompanyStatus = "BANKRUPT"
)

// AllCompanyStatuses lists every valid status, in the order the service documents them.
func AllCompanyStatuses() []CompanyStatus {
	return []CompanyStatus{StatusActive, StatusClosed, StatusBankrupt}
}

func (s CompanyStatus) Valid() bool {
	for _, v := range AllCompanyStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

// Language is a value of the Accept-Language header understood by the companies resource.
type Language string

const (
	LangEN Language = "EN"
	LangRU Language = "RU"
	LangPL Language = "PL"
	LangUA Language = "UA"
)

func AllLanguages() []Language {
	return []Language{LangEN, LangRU, LangPL, LangUA}
}

func (l Language) Valid() bool {
	for _, v := range AllLanguages() {
		if l == v {
			return true
		}
	}
	return false
}

type Translation struct {
	Lang        Language `json:"translation_lang" yaml:"lang"`
	Translation string   `json:"translation" yaml:"text"`
}

// Company is one record of the companies resource. The service returns either Description, when
// a known language was requested, or DescriptionLang with every translation.
type Company struct {
	ID              int           `json:"company_id" yaml:"id"`
	Name            string        `json:"company_name" yaml:"name"`
	Address         string        `json:"company_address" yaml:"address"`
	Status          CompanyStatus `json:"company_status" yaml:"status"`
	Description     string        `json:"description,omitempty" yaml:"-"`
	DescriptionLang []Translation `json:"description_lang,omitempty" yaml:"translations"`
}

// Translation returns the text for a language, if the company has one.
func (c Company) Translation(lang Language) (string, bool) {
	for _, t := range c.DescriptionLang {
		if t.Lang == lang {
			return t.Translation, true
		}
	}
	return "", false
}

// ListMeta is the pagination block of a list response. The service echoes limit and offset as
// null when they were not specified.
type ListMeta struct {
	Limit  ldvalue.OptionalInt `json:"limit"`
	Offset ldvalue.OptionalInt `json:"offset"`
	Total  int                 `json:"total"`
}

type CompaniesList struct {
	Data []Company `json:"data"`
	Meta ListMeta  `json:"meta"`
}

// CountByStatus groups a page of companies by status.
func (l CompaniesList) CountByStatus() map[CompanyStatus]int {
	ret := make(map[CompanyStatus]int)
	for _, c := range l.Data {
		ret[c.Status]++
	}
	return ret
}

// IDsByStatus returns the ids of the companies in the page that have the given status.
func (l CompaniesList) IDsByStatus(status CompanyStatus) []int {
	var ret []int
	for _, c := range l.Data {
		if c.Status == status {
			ret = append(ret, c.ID)
		}
	}
	return ret
}
