package models

// Setting is a single-row-per-key configuration value, e.g. initial_capital.
type Setting struct {
	Key   string `gorm:"column:key;type:text;primaryKey"`
	Value string `gorm:"column:value;not null"`
}

// TableName keeps the legacy table name used by existing databases.
func (Setting) TableName() string { return "config" }
