// pkg/model/metadata.go
package model

import "strings"

// DataType is the logical type of a customer column
type DataType string

const (
	DataTypeInteger DataType = "integer"
	DataTypeFloat   DataType = "float"
	DataTypeDate    DataType = "date"
	DataTypeString  DataType = "string"
)

// TableMetadata describes the canonical shape of a table
type TableMetadata struct {
	Table       string   // Table name
	Columns     []Column // Column definitions in output order
	PrimaryKeys []string // Primary key column names
}

// Column represents metadata about a single column
type Column struct {
	Name         string   // Canonical column name
	DataType     DataType // Logical type the column coerces to
	IsPrimaryKey bool     // Whether column is part of primary key
	IsPII        bool     // Whether the column identifies a person
}

// CustomerTable is the canonical customer record layout
var CustomerTable = TableMetadata{
	Table: "customers",
	Columns: []Column{
		{Name: ColumnCustomerID, DataType: DataTypeInteger, IsPrimaryKey: true},
		{Name: ColumnFirstName, DataType: DataTypeString, IsPII: true},
		{Name: ColumnLastName, DataType: DataTypeString, IsPII: true},
		{Name: ColumnEmail, DataType: DataTypeString, IsPII: true},
		{Name: ColumnPhone, DataType: DataTypeString, IsPII: true},
		{Name: ColumnDateOfBirth, DataType: DataTypeDate, IsPII: true},
		{Name: ColumnAddress, DataType: DataTypeString, IsPII: true},
		{Name: ColumnIncome, DataType: DataTypeFloat},
		{Name: ColumnAccountStatus, DataType: DataTypeString},
		{Name: ColumnCreatedDate, DataType: DataTypeDate},
	},
	PrimaryKeys: []string{ColumnCustomerID},
}

// GetColumnByName returns a column by name (case-insensitive)
// Returns nil if column not found
func (tm *TableMetadata) GetColumnByName(name string) *Column {
	normalizedName := strings.ToLower(strings.TrimSpace(name))
	for i, col := range tm.Columns {
		if col.Name == normalizedName {
			return &tm.Columns[i]
		}
	}
	return nil
}

// ColumnNames returns the column names in output order
func (tm *TableMetadata) ColumnNames() []string {
	names := make([]string, len(tm.Columns))
	for i, col := range tm.Columns {
		names[i] = col.Name
	}
	return names
}

// PIIColumns returns the names of the columns flagged as PII
func (tm *TableMetadata) PIIColumns() []string {
	var names []string
	for _, col := range tm.Columns {
		if col.IsPII {
			names = append(names, col.Name)
		}
	}
	return names
}

// ColumnsOfType returns the names of the columns with the given data type
func (tm *TableMetadata) ColumnsOfType(dt DataType) []string {
	var names []string
	for _, col := range tm.Columns {
		if col.DataType == dt {
			names = append(names, col.Name)
		}
	}
	return names
}

// ColumnIndex returns the position of a column in output order, or the column
// count when the name is unknown
func (tm *TableMetadata) ColumnIndex(name string) int {
	for i, col := range tm.Columns {
		if col.Name == name {
			return i
		}
	}
	return len(tm.Columns)
}
