package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StatusRecentlyApplied is the pipeline state given to every new application.
const StatusRecentlyApplied = "recently-applied"

// Candidate is a recruitment applicant. Status references CandidateStatus.Value loosely:
// unknown values are stored as-is.
type Candidate struct {
	BaseModel
	Name          string                      `gorm:"type:varchar(255);not null" json:"name"`
	Phone         string                      `gorm:"type:varchar(20);index" json:"phone"`
	Email         string                      `gorm:"type:varchar(255)" json:"email"`
	Position      string                      `gorm:"type:varchar(255)" json:"position"`
	Experience    string                      `gorm:"type:varchar(100)" json:"experience"`
	Location      string                      `gorm:"type:varchar(255)" json:"location"`
	Status        string                      `gorm:"type:varchar(100);index;not null" json:"status"`
	Salary        string                      `gorm:"type:varchar(100)" json:"salary"`
	Source        string                      `gorm:"type:varchar(30)" json:"source"`
	Notes         string                      `gorm:"type:text" json:"notes,omitempty"`
	VendorID      *uuid.UUID                  `gorm:"type:uuid;index" json:"vendorId,omitempty"`
	AddedByHrID   *uuid.UUID                  `gorm:"type:uuid;index" json:"addedByHrId,omitempty"`
	AddedByHr     *Hr                         `gorm:"foreignKey:AddedByHrID" json:"addedByHr,omitempty"`
	UserID        *uuid.UUID                  `gorm:"type:uuid;index" json:"userId,omitempty"`
	ResumeURL     string                      `gorm:"type:varchar(500)" json:"resumeUrl,omitempty"`
	Attachments   datatypes.JSONSlice[string] `json:"attachments"`
	Skills        datatypes.JSONSlice[string] `json:"skills"`
	SharedWith    datatypes.JSONSlice[string] `json:"sharedWith"`
	InterviewDate *time.Time                  `gorm:"type:date" json:"interviewDate,omitempty"`
}

const (
	SourceWebsite = "website"
	SourceHr      = "hr"
)

// CandidateStatus is one entry of the ordered pipeline registry.
type CandidateStatus struct {
	BaseModel
	Value     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"value"`
	Label     string `gorm:"type:varchar(100);not null" json:"label"`
	Color     string `gorm:"type:varchar(20)" json:"color"`
	SortOrder int    `gorm:"not null;default:0" json:"sortOrder"`
}

// DefaultCandidateStatuses seeds an empty registry.
var DefaultCandidateStatuses = []CandidateStatus{
	{Value: StatusRecentlyApplied, Label: "Recently Applied", Color: "#3b82f6", SortOrder: 1},
	{Value: "screening", Label: "Screening", Color: "#8b5cf6", SortOrder: 2},
	{Value: "shortlisted", Label: "Shortlisted", Color: "#06b6d4", SortOrder: 3},
	{Value: "interview-scheduled", Label: "Interview Scheduled", Color: "#f59e0b", SortOrder: 4},
	{Value: "selected", Label: "Selected", Color: "#22c55e", SortOrder: 5},
	{Value: "joined", Label: "Joined", Color: "#16a34a", SortOrder: 6},
	{Value: "rejected", Label: "Rejected", Color: "#ef4444", SortOrder: 7},
	{Value: "on-hold", Label: "On Hold", Color: "#6b7280", SortOrder: 8},
}

// Hr is a staff member working under a vendor.
type Hr struct {
	BaseModel
	VendorID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_hr_vendor_email" json:"vendorId"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Email       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_hr_vendor_email" json:"email"`
	Phone       string    `gorm:"type:varchar(20)" json:"phone"`
	Designation string    `gorm:"type:varchar(100)" json:"designation"`
}

func (Hr) TableName() string {
	return "hrs"
}
