package models

// CurrentRecordVersion is the schema version written by this build.
const CurrentRecordVersion = 1

type Grade string

const (
	Grade9  Grade = "9"
	Grade10 Grade = "10"
	Grade11 Grade = "11"
)

type Exam string

const (
	ExamOGE Exam = "oge"
	ExamEGE Exam = "ege"
)

type Level string

const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// UserRecord is the single profile/session record kept per client scope.
// Optional fields are nil until the transition that sets them has run.
type UserRecord struct {
	Version            int      `json:"version"`
	Name               *string  `json:"name,omitempty"`
	Email              *string  `json:"email,omitempty"`
	IsLoggedIn         bool     `json:"isLoggedIn"`
	SetupCompleted     bool     `json:"setupCompleted"`
	Grade              *Grade   `json:"grade,omitempty"`
	Exam               *Exam    `json:"exam,omitempty"`
	Subjects           []string `json:"subjects,omitempty"`
	Level              *Level   `json:"level,omitempty"`
	RegisteredAt       *string  `json:"registeredAt,omitempty"`
	LastLogin          *string  `json:"lastLogin,omitempty"`
	ProfileCompletedAt *string  `json:"profileCompletedAt,omitempty"`
}

// UserPatch carries a partial write. Non-nil fields replace the matching
// record field; nil fields leave it untouched.
type UserPatch struct {
	Name               *string
	Email              *string
	IsLoggedIn         *bool
	SetupCompleted     *bool
	Grade              *Grade
	Exam               *Exam
	Subjects           []string
	Level              *Level
	RegisteredAt       *string
	LastLogin          *string
	ProfileCompletedAt *string
}

// Apply merges the patch into r and returns the result. r is not modified.
func (p UserPatch) Apply(r UserRecord) UserRecord {
	out := r.Clone()
	if p.Name != nil {
		out.Name = p.Name
	}
	if p.Email != nil {
		out.Email = p.Email
	}
	if p.IsLoggedIn != nil {
		out.IsLoggedIn = *p.IsLoggedIn
	}
	if p.SetupCompleted != nil {
		out.SetupCompleted = *p.SetupCompleted
	}
	if p.Grade != nil {
		out.Grade = p.Grade
	}
	if p.Exam != nil {
		out.Exam = p.Exam
	}
	if p.Subjects != nil {
		out.Subjects = append([]string{}, p.Subjects...)
	}
	if p.Level != nil {
		out.Level = p.Level
	}
	if p.RegisteredAt != nil {
		out.RegisteredAt = p.RegisteredAt
	}
	if p.LastLogin != nil {
		out.LastLogin = p.LastLogin
	}
	if p.ProfileCompletedAt != nil {
		out.ProfileCompletedAt = p.ProfileCompletedAt
	}
	out.Version = CurrentRecordVersion
	return out
}

// Clone returns a copy that shares no mutable state with r.
func (r UserRecord) Clone() UserRecord {
	out := r
	if r.Subjects != nil {
		out.Subjects = append([]string{}, r.Subjects...)
	}
	return out
}

// Preferences is the subset of the record used to filter tasks.
type Preferences struct {
	Grade    *Grade   `json:"grade"`
	Exam     *Exam    `json:"exam"`
	Level    *Level   `json:"level"`
	Subjects []string `json:"subjects"`
}

// UserInfo is the display snapshot handed to page scripts.
type UserInfo struct {
	IsLoggedIn     bool     `json:"isLoggedIn"`
	SetupCompleted bool     `json:"setupCompleted"`
	Grade          *Grade   `json:"grade,omitempty"`
	Exam           *Exam    `json:"exam,omitempty"`
	Level          *Level   `json:"level,omitempty"`
	Subjects       []string `json:"subjects,omitempty"`
	Name           *string  `json:"name,omitempty"`
	Email          *string  `json:"email,omitempty"`
}
