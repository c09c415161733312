package entities

import (
	"errors"
	"slices"
	"time"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp with time zone" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp with time zone" json:"updated_at"`
}

// AddToSet appends v unless it is already present.
func AddToSet(list []string, v string) ([]string, bool) {
	if slices.Contains(list, v) {
		return list, false
	}
	return append(list, v), true
}

// Pull returns a copy of list without any occurrence of v.
func Pull(list []string, v string) ([]string, bool) {
	out := slices.DeleteFunc(slices.Clone(list), func(item string) bool { return item == v })
	return out, len(out) != len(list)
}

// AverageRating is the arithmetic mean of ratings, 0 for an empty list.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
