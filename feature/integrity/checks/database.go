package checks

import (
	"fmt"

	"catalog-sync/core/database"

	"gorm.io/gorm"
)

// DatabaseReport is the result of comparing the persisted models with the live schema.
type DatabaseReport struct {
	Driver  string                         `json:"driver"`
	Matched bool                           `json:"matched"`
	Tables  map[string]database.TableCheck `json:"tables"`
	Errors  []string                       `json:"errors"`
}

// CheckDatabase verifies that every model has its table and columns.
func CheckDatabase(db *gorm.DB, models ...any) (*DatabaseReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &DatabaseReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]database.TableCheck),
		Errors:  []string{},
	}

	for _, model := range models {
		check, err := database.CheckModelTable(db, model)
		if err != nil {
			report.Errors = append(report.Errors, err.Error())
			report.Matched = false
			continue
		}
		report.Tables[check.Table] = *check
		if check.Status != "ok" {
			report.Matched = false
		}
	}
	return report, nil
}
