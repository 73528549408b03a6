package models

import "sort"

// Level is one row of the immutable level threshold table: users whose points
// reach Points are at least level Number.
type Level struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	Points int  `gorm:"not null;uniqueIndex" json:"points"`
	Number int  `gorm:"not null" json:"number"`
}

// TableName specifies the table name for GORM
func (Level) TableName() string {
	return "levels"
}

// LevelTable is an ordered set of level thresholds supporting pure lookups.
type LevelTable struct {
	levels []Level // sorted by Points descending
}

// NewLevelTable builds a lookup table from the given rows. The input slice is
// not retained or mutated.
func NewLevelTable(levels []Level) *LevelTable {
	sorted := make([]Level, len(levels))
	copy(sorted, levels)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})
	return &LevelTable{levels: sorted}
}

// ForPoints returns the level number of the entry with the greatest threshold
// that does not exceed points. Points below every threshold map to level 1.
func (t *LevelTable) ForPoints(points int) int {
	for _, l := range t.levels {
		if l.Points <= points {
			return l.Number
		}
	}
	return 1
}

// Len returns the number of entries in the table.
func (t *LevelTable) Len() int {
	return len(t.levels)
}

// DefaultLevels is the built-in threshold table used when no levels have been
// seeded. Mirrors levels.yml.
func DefaultLevels() []Level {
	return []Level{
		{Points: 0, Number: 1},
		{Points: 25, Number: 2},
		{Points: 50, Number: 3},
		{Points: 100, Number: 4},
		{Points: 200, Number: 5},
		{Points: 400, Number: 6},
		{Points: 800, Number: 7},
	}
}
