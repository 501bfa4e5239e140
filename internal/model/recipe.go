package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is a custom type for handling string arrays stored as JSON text
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Recipe is one corpus entry. ID, Cuisine and Ingredients come from the
// dataset; Allergens and SearchText are computed once at corpus load and
// never change afterwards.
type Recipe struct {
	ID          int64      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string     `gorm:"size:255" json:"name"`
	Cuisine     string     `gorm:"size:100;index" json:"cuisine"`
	Ingredients StringList `gorm:"type:text;not null;default:'[]'" json:"ingredients"`
	Allergens   string     `gorm:"-" json:"allergens,omitempty"`
	SearchText  string     `gorm:"-" json:"-"`
}

// DisplayName returns the stored name, or one derived from the cuisine and
// ID ("Cajun Creole Recipe #29109") when the dataset carries no name.
func (r Recipe) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	cuisine := titleCase(strings.ReplaceAll(r.Cuisine, "_", " "))
	if cuisine == "" {
		return fmt.Sprintf("Recipe #%d", r.ID)
	}
	return fmt.Sprintf("%s Recipe #%d", cuisine, r.ID)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
