package entities

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Category string    `gorm:"type:varchar(100)" json:"category"`
	Unit     string    `gorm:"type:varchar(50)" json:"unit"`
	Aliases  string    `gorm:"type:text" json:"aliases"` // comma separated

	Timestamp
}

func (i *Ingredient) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *Ingredient) AliasList() []string {
	if strings.TrimSpace(i.Aliases) == "" {
		return []string{}
	}
	parts := strings.Split(i.Aliases, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
