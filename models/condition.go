package models

import "time"

// Condition/mitigation types. Every condition and mitigation belongs to one
// of the three risk categories on the assessment form.
const (
	ConditionTypeWeather  = "weather"
	ConditionTypeLocation = "location"
	ConditionTypeTree     = "tree"
)

// Condition is an administrator-curated risk entry (e.g. "Fog" under
// weather). Names are unique within a type. Assessments reference conditions
// by name snapshot, not by id, so renaming a condition stops historical
// assessments from matching it.
type Condition struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_condition_name_type" json:"name"`
	Type      string    `gorm:"size:20;not null;uniqueIndex:idx_condition_name_type" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Mitigation is a counter-measure that can be linked to any number of
// conditions of the same type.
type Mitigation struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConditionMitigation is the many-to-many join between conditions and
// mitigations. Insertion is checked for duplicates rather than
// unique-constrained, matching the curation workflow.
type ConditionMitigation struct {
	ID           uint `gorm:"primarykey" json:"id"`
	ConditionID  uint `gorm:"not null;index" json:"condition_id"`
	MitigationID uint `gorm:"not null;index" json:"mitigation_id"`
}

func ValidConditionType(t string) bool {
	switch t {
	case ConditionTypeWeather, ConditionTypeLocation, ConditionTypeTree:
		return true
	}
	return false
}
