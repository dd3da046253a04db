package database

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ColumnInfo matches the output of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // NULL defaults are possible
	Extra   string
}

// GetTableColumns retrieves the column definitions for a given table.
// Field and Type are lower-cased for both dialects.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo

	if db.Dialector.Name() == "sqlite" {
		// SQLite uses PRAGMA table_info
		type sqliteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string
			Pk         int
		}
		var sqliteCols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			columns = append(columns, ColumnInfo{
				Field: strings.ToLower(col.Name),
				Type:  strings.ToLower(col.Type),
			})
		}
		return columns, nil
	}

	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// TableCheck is the result of comparing a GORM model with its live table.
type TableCheck struct {
	Table          string   `json:"table"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "missing_table", "missing_columns"
}

// CheckModelTable verifies that every column of the GORM model exists in its table.
// Only presence is checked; column types differ between dialects.
func CheckModelTable(db *gorm.DB, model any) (*TableCheck, error) {
	s, err := schema.Parse(model, &sync.Map{}, db.NamingStrategy)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}

	check := &TableCheck{Table: s.Table, MissingColumns: []string{}, Status: "ok"}

	actual, err := GetTableColumns(db, s.Table)
	if err != nil {
		return nil, err
	}
	if len(actual) == 0 {
		check.Status = "missing_table"
		return check, nil
	}

	present := make(map[string]struct{}, len(actual))
	for _, col := range actual {
		present[col.Field] = struct{}{}
	}
	for _, field := range s.Fields {
		if field.DBName == "" {
			continue
		}
		if _, ok := present[strings.ToLower(field.DBName)]; !ok {
			check.MissingColumns = append(check.MissingColumns, field.DBName)
		}
	}
	if len(check.MissingColumns) > 0 {
		check.Status = "missing_columns"
	}
	return check, nil
}
