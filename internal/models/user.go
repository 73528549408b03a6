// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// EducationLevel is a graded education attribute with a fixed integer score.
type EducationLevel string

// WorkLevel is a graded employment attribute with a fixed integer score.
type WorkLevel string

const (
	EducationNone         EducationLevel = "no_education"
	EducationHighSchool   EducationLevel = "high_school"
	EducationCollege      EducationLevel = "college"
	EducationUniversity   EducationLevel = "university"
	EducationPostGraduate EducationLevel = "post_graduate"

	WorkUnemployed   WorkLevel = "unemployed"
	WorkPartTime     WorkLevel = "part_time"
	WorkFullTime     WorkLevel = "full_time"
	WorkSelfEmployed WorkLevel = "self_employed"
	WorkEntrepreneur WorkLevel = "entrepreneur"
)

var educationScores = map[EducationLevel]int{
	EducationNone:         0,
	EducationHighSchool:   25,
	EducationCollege:      50,
	EducationUniversity:   75,
	EducationPostGraduate: 100,
}

var workScores = map[WorkLevel]int{
	WorkUnemployed:   0,
	WorkPartTime:     25,
	WorkFullTime:     50,
	WorkSelfEmployed: 75,
	WorkEntrepreneur: 100,
}

// Score returns the integer score for the education level, or -1 if unknown.
func (l EducationLevel) Score() int {
	if score, ok := educationScores[l]; ok {
		return score
	}
	return -1
}

// Valid reports whether the education level is one of the defined variants.
func (l EducationLevel) Valid() bool {
	_, ok := educationScores[l]
	return ok
}

// Score returns the integer score for the work level, or -1 if unknown.
func (l WorkLevel) Score() int {
	if score, ok := workScores[l]; ok {
		return score
	}
	return -1
}

// Valid reports whether the work level is one of the defined variants.
func (l WorkLevel) Valid() bool {
	_, ok := workScores[l]
	return ok
}

// Advisory category lists for profile attributes. The original product never
// enforced these server-side, so they stay advisory here too.
var (
	InterestCategories = []string{"Movies", "Sports", "Music", "Books", "Travel"}
	SkillsetCategories = []string{"Web Development", "Data Analysis", "Graphic Design", "Project Management"}
	LanguageSkills     = []string{"English", "Spanish", "French", "German", "Chinese"}
)

// StringList stores an ordered list of strings as a JSON column so the same
// model works on Postgres and the sqlite test driver.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// User represents a registered Karmalama member.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Required profile attributes
	Name     string `gorm:"not null" json:"name"`
	Surname  string `gorm:"not null" json:"surname"`
	Phone    string `gorm:"not null" json:"phone"`
	Birthday string `gorm:"not null" json:"birthday"`
	Postal   string `gorm:"not null" json:"postal"`
	Area     string `gorm:"not null" json:"area"`
	AboutMe  string `json:"about_me"`

	// Categorical attributes
	Interests      StringList     `gorm:"type:text" json:"interests"`
	Skillset       StringList     `gorm:"type:text" json:"skillset"`
	LanguageSkills StringList     `gorm:"type:text" json:"language_skills"`
	EducationLevel EducationLevel `gorm:"type:varchar(20)" json:"education_level"`
	WorkLevel      WorkLevel      `gorm:"type:varchar(20)" json:"work_level"`

	// Progress attributes. Level is always the table entry for Points.
	Points      int `gorm:"not null;default:0" json:"points"`
	Level       int `gorm:"not null;default:1" json:"level"`
	HoursWorked int `gorm:"not null;default:0" json:"hours_worked"`

	IsAdmin bool `gorm:"default:false" json:"is_admin"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Listings []Listing `gorm:"foreignKey:UserID" json:"listings,omitempty"`
	Bookings []Booking `gorm:"foreignKey:UserID" json:"bookings,omitempty"`
}
