package model

import "github.com/google/uuid"

// MenuItem is a navigational entry of the back-office dashboard.
type MenuItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// AdminMenuCatalog lists the dashboard menu of vendor / super admin accounts.
var AdminMenuCatalog = []MenuItem{
	{Key: "dashboard", Label: "Dashboard", Path: "/vendor"},
	{Key: "candidates", Label: "Candidates", Path: "/vendor/candidates"},
	{Key: "hr", Label: "HR Team", Path: "/vendor/hr"},
	{Key: "incentives", Label: "Incentives", Path: "/vendor/incentives"},
	{Key: "locations", Label: "Locations", Path: "/vendor/locations"},
	{Key: "outlet-types", Label: "Outlet Types", Path: "/vendor/outlet-types"},
	{Key: "positions", Label: "Positions", Path: "/vendor/positions"},
	{Key: "candidate-statuses", Label: "Candidate Statuses", Path: "/vendor/candidate-statuses"},
	{Key: "billing", Label: "Billing", Path: "/vendor/billing"},
	{Key: "settings", Label: "Settings", Path: "/vendor/settings"},
}

// HrMenuCatalog lists the menu of HR staff.
var HrMenuCatalog = []MenuItem{
	{Key: "dashboard", Label: "Dashboard", Path: "/hr"},
	{Key: "candidates", Label: "Candidates", Path: "/hr/candidates"},
	{Key: "add-candidate", Label: "Add Candidate", Path: "/hr/candidates/new"},
	{Key: "interviews", Label: "Interviews", Path: "/hr/interviews"},
	{Key: "incentives", Label: "Incentives", Path: "/hr/incentives"},
	{Key: "cv-links", Label: "CV Links", Path: "/hr/cv-links"},
}

// DefaultAllowedMap returns every key of the catalog mapped to true.
func DefaultAllowedMap(catalog []MenuItem) map[string]bool {
	m := make(map[string]bool, len(catalog))
	for _, item := range catalog {
		m[item.Key] = true
	}
	return m
}

// AdminMenuPermission overrides one admin menu key. A missing row means allowed.
type AdminMenuPermission struct {
	BaseModel
	AdminUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_admin_menu_key" json:"adminUserId"`
	MenuKey     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_admin_menu_key" json:"menuKey"`
	Allowed     bool      `gorm:"not null" json:"allowed"`
}

// HrMenuPermission overrides one HR menu key. A missing row means allowed.
type HrMenuPermission struct {
	BaseModel
	HrID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_hr_menu_key" json:"hrId"`
	MenuKey string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_hr_menu_key" json:"menuKey"`
	Allowed bool      `gorm:"not null" json:"allowed"`
}
