package model

import (
	"strconv"
	"time"

	"github.com/David-Botos/data-quality/pkg/table"
)

// Record is one customer row with every field coerced to its logical type
type Record struct {
	CustomerID    int64
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	DateOfBirth   time.Time
	Address       string
	Income        float64
	AccountStatus string
	CreatedDate   time.Time
}

// FormatIncome renders an income the way output tables store it
func FormatIncome(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ToRow renders the record as a table row carrying the given source index
func (r Record) ToRow(index int) table.Row {
	row := table.NewRow(index)
	row.Set(ColumnCustomerID, table.String(strconv.FormatInt(r.CustomerID, 10)))
	row.Set(ColumnFirstName, table.String(r.FirstName))
	row.Set(ColumnLastName, table.String(r.LastName))
	row.Set(ColumnEmail, table.String(r.Email))
	row.Set(ColumnPhone, table.String(r.Phone))
	row.Set(ColumnDateOfBirth, table.String(r.DateOfBirth.Format(DateLayout)))
	row.Set(ColumnAddress, table.String(r.Address))
	row.Set(ColumnIncome, table.String(FormatIncome(r.Income)))
	row.Set(ColumnAccountStatus, table.String(r.AccountStatus))
	row.Set(ColumnCreatedDate, table.String(r.CreatedDate.Format(DateLayout)))
	return row
}
