package apitests

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/sendrequest/api-contract-tests/servicedef"

	"github.com/pkg/errors"
)

//go:embed data/company_statuses.csv
var defaultStatusTable []byte

// StatusTableRow is one case of the status filter test: the status to filter by, and the status
// every returned company must have.
type StatusTableRow struct {
	Status   servicedef.CompanyStatus
	Expected servicedef.CompanyStatus
}

// DefaultStatusTable returns the built-in status filter cases.
func DefaultStatusTable() []StatusTableRow {
	rows, err := ParseStatusTable(bytes.NewReader(defaultStatusTable))
	if err != nil {
		panic(err)
	}
	return rows
}

// LoadStatusTable reads status filter cases from a CSV file.
func LoadStatusTable(path string) ([]StatusTableRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open status table")
	}
	defer f.Close()
	rows, err := ParseStatusTable(f)
	return rows, errors.Wrapf(err, "invalid status table %s", path)
}

// ParseStatusTable reads CSV rows of the form "status,expected_status". A first row that is
// exactly that header is skipped.
func ParseStatusTable(r io.Reader) ([]StatusTableRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	var rows []StatusTableRow
	for i, rec := range records {
		if i == 0 && strings.EqualFold(rec[0], "status") && strings.EqualFold(rec[1], "expected_status") {
			continue
		}
		row := StatusTableRow{
			Status:   servicedef.CompanyStatus(strings.TrimSpace(rec[0])),
			Expected: servicedef.CompanyStatus(strings.TrimSpace(rec[1])),
		}
		if !row.Status.Valid() {
			return nil, errors.Errorf("line %d: unknown status %q", i+1, row.Status)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, errors.New("no rows")
	}
	return rows, nil
}
