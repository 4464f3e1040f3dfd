package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleSuperAdmin UserRole = "superadmin"
	RoleTeacher    UserRole = "teacher"
	RoleStudent    UserRole = "student"
)

// Capability is a single permission granted to a role
type Capability string

const (
	CapManageTeachers    Capability = "manage_teachers"
	CapViewPlatformStats Capability = "view_platform_stats"
	CapRegisterStudents  Capability = "register_students"
	CapManageTests       Capability = "manage_tests"
	CapGradeSubmissions  Capability = "grade_submissions"
	CapTakeTests         Capability = "take_tests"
)

var roleCapabilities = map[UserRole][]Capability{
	RoleSuperAdmin: {CapManageTeachers, CapViewPlatformStats},
	RoleTeacher:    {CapRegisterStudents, CapManageTests, CapGradeSubmissions},
	RoleStudent:    {CapTakeTests},
}

// IsValid reports whether r is one of the known roles
func (r UserRole) IsValid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Can reports whether the role carries the capability
func (r UserRole) Can(capability Capability) bool {
	for _, c := range roleCapabilities[r] {
		if c == capability {
			return true
		}
	}
	return false
}

// Capabilities returns a copy of the role's capability set
func (r UserRole) Capabilities() []Capability {
	caps := roleCapabilities[r]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:36"`
	Name     string   `json:"name" gorm:"not null;size:100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string   `json:"-" gorm:"not null;size:255"`
	Role     UserRole `json:"role" gorm:"not null;size:20;index"`
	IsActive bool     `json:"isActive" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Student is the profile linked to a student-role user
type Student struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	UserID    string  `json:"userId" gorm:"not null;uniqueIndex;size:36"`
	StudentID string  `json:"studentId" gorm:"not null;uniqueIndex;size:100"`
	TeacherID string  `json:"teacherId" gorm:"not null;index;size:36"`
	Grade     *string `json:"grade,omitempty" gorm:"size:50"`

	CreatedAt time.Time `json:"createdAt"`

	// Relations
	User    User `json:"user" gorm:"foreignKey:UserID"`
	Teacher User `json:"-" gorm:"foreignKey:TeacherID"`
}

func (Student) TableName() string {
	return "students"
}
