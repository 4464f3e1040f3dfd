package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionText           QuestionType = "text"
)

func (t QuestionType) IsValid() bool {
	return t == QuestionMultipleChoice || t == QuestionText
}

// Question is stored inline in the test's JSON column
type Question struct {
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correctAnswer,omitempty"`
}

type Test struct {
	ID          uint                         `json:"id" gorm:"primaryKey"`
	Title       string                       `json:"title" gorm:"not null;size:200"`
	Description string                       `json:"description" gorm:"type:text"`
	Questions   datatypes.JSONSlice[Question] `json:"questions"`
	TeacherID   string                       `json:"teacherId" gorm:"not null;index;size:36"`
	DueDate     *time.Time                   `json:"dueDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`

	// Relations
	Teacher    User   `json:"-" gorm:"foreignKey:TeacherID"`
	AssignedTo []User `json:"-" gorm:"many2many:test_assignments;"`
}

func (Test) TableName() string {
	return "tests"
}

// IsAssignedTo reports whether the user is in the loaded assignee set
func (t *Test) IsAssignedTo(userID string) bool {
	for _, u := range t.AssignedTo {
		if u.ID == userID {
			return true
		}
	}
	return false
}
