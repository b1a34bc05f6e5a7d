package models

// Skill levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelExpert       = "expert"
)

// Skill groups related skill items under a category.
type Skill struct {
	Category string      `json:"category" yaml:"category"`
	Items    []SkillItem `json:"items" yaml:"items"`
}

// SkillItem is a single named skill.
type SkillItem struct {
	Name        string   `json:"name" yaml:"name"`
	Level       string   `json:"level,omitempty" yaml:"level,omitempty"`
	Years       *float64 `json:"years,omitempty" yaml:"years,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}
