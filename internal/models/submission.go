package models

import (
	"time"

	"gorm.io/datatypes"
)

type Answer struct {
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
}

// Submission is a student's single response to a test.
// (test_id, student_id) is unique.
type Submission struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	TestID      uint                        `json:"testId" gorm:"not null;uniqueIndex:idx_submission_test_student"`
	StudentID   string                      `json:"studentId" gorm:"not null;size:36;uniqueIndex:idx_submission_test_student;index"`
	Answers     datatypes.JSONSlice[Answer] `json:"answers"`
	Score       *float64                    `json:"score"`
	Feedback    *string                     `json:"feedback"`
	SubmittedAt time.Time                   `json:"submittedAt" gorm:"not null;index"`
	Graded      bool                        `json:"graded" gorm:"not null;default:false"`

	UpdatedAt time.Time `json:"-"`

	// Relations
	Test    Test `json:"-" gorm:"foreignKey:TestID"`
	Student User `json:"-" gorm:"foreignKey:StudentID"`
}

func (Submission) TableName() string {
	return "submissions"
}
