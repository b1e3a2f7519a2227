package service

import (
	"context"
	"sort"
	"strings"

	"uhs-recruit/internal/model"
	"uhs-recruit/internal/repository"

	"github.com/google/uuid"
)

// MenuEntry is a catalog item with its resolved visibility.
type MenuEntry struct {
	model.MenuItem
	Allowed bool `json:"allowed"`
}

type ResolvedMenu struct {
	OwnerID     uuid.UUID       `json:"ownerId"`
	Items       []MenuEntry     `json:"items"`
	Permissions map[string]bool `json:"permissions"`
}

type MenuPermissionService interface {
	AdminMenu(ctx context.Context, adminUserID uuid.UUID) (*ResolvedMenu, error)
	UpdateAdminMenu(ctx context.Context, caller *Principal, adminUserID uuid.UUID, perms map[string]bool) (*ResolvedMenu, error)
	HrMenu(ctx context.Context, caller *Principal, hrID uuid.UUID) (*ResolvedMenu, error)
	UpdateHrMenu(ctx context.Context, caller *Principal, hrID uuid.UUID, perms map[string]bool) (*ResolvedMenu, error)
}

type menuPermissionService struct {
	repo   repository.MenuPermissionRepository
	admins repository.AdminUserRepository
	hrs    repository.HrRepository
}

func NewMenuPermissionService(repo repository.MenuPermissionRepository, admins repository.AdminUserRepository, hrs repository.HrRepository) MenuPermissionService {
	return &menuPermissionService{repo: repo, admins: admins, hrs: hrs}
}

// ResolveMenu overlays overrides on the default-allow map of catalog.
// Overrides for keys outside the catalog are ignored.
func ResolveMenu(catalog []model.MenuItem, overrides map[string]bool) ([]MenuEntry, map[string]bool) {
	allowed := model.DefaultAllowedMap(catalog)
	for key, v := range overrides {
		if _, known := allowed[key]; known {
			allowed[key] = v
		}
	}
	items := make([]MenuEntry, len(catalog))
	for i, item := range catalog {
		items[i] = MenuEntry{MenuItem: item, Allowed: allowed[item.Key]}
	}
	return items, allowed
}

func (s *menuPermissionService) AdminMenu(ctx context.Context, adminUserID uuid.UUID) (*ResolvedMenu, error) {
	if _, err := s.admins.FindByID(ctx, adminUserID); err != nil {
		return nil, notFoundOr(err, "Admin user")
	}
	overrides, err := s.repo.AdminOverrides(ctx, adminUserID)
	if err != nil {
		return nil, err
	}
	items, allowed := ResolveMenu(model.AdminMenuCatalog, overrides)
	return &ResolvedMenu{OwnerID: adminUserID, Items: items, Permissions: allowed}, nil
}

func (s *menuPermissionService) UpdateAdminMenu(ctx context.Context, caller *Principal, adminUserID uuid.UUID, perms map[string]bool) (*ResolvedMenu, error) {
	if err := Authorize(caller, model.RoleSuperAdmin); err != nil {
		return nil, err
	}
	if err := checkKeys(model.AdminMenuCatalog, perms); err != nil {
		return nil, err
	}
	if _, err := s.admins.FindByID(ctx, adminUserID); err != nil {
		return nil, notFoundOr(err, "Admin user")
	}
	if err := s.repo.UpsertAdmin(ctx, adminUserID, perms); err != nil {
		return nil, err
	}
	return s.AdminMenu(ctx, adminUserID)
}

func (s *menuPermissionService) HrMenu(ctx context.Context, caller *Principal, hrID uuid.UUID) (*ResolvedMenu, error) {
	if err := s.checkHrAccess(ctx, caller, hrID); err != nil {
		return nil, err
	}
	overrides, err := s.repo.HrOverrides(ctx, hrID)
	if err != nil {
		return nil, err
	}
	items, allowed := ResolveMenu(model.HrMenuCatalog, overrides)
	return &ResolvedMenu{OwnerID: hrID, Items: items, Permissions: allowed}, nil
}

func (s *menuPermissionService) UpdateHrMenu(ctx context.Context, caller *Principal, hrID uuid.UUID, perms map[string]bool) (*ResolvedMenu, error) {
	if err := s.checkHrAccess(ctx, caller, hrID); err != nil {
		return nil, err
	}
	if err := checkKeys(model.HrMenuCatalog, perms); err != nil {
		return nil, err
	}
	if err := s.repo.UpsertHr(ctx, hrID, perms); err != nil {
		return nil, err
	}
	return s.HrMenu(ctx, caller, hrID)
}

// checkHrAccess lets a super admin reach any HR and a vendor only its own.
func (s *menuPermissionService) checkHrAccess(ctx context.Context, caller *Principal, hrID uuid.UUID) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	var err error
	if caller.IsSuperAdmin() {
		_, err = s.hrs.FindByID(ctx, hrID)
	} else {
		_, err = s.hrs.FindOwned(ctx, hrID, caller.ID())
	}
	return notFoundOr(err, "HR")
}

func checkKeys(catalog []model.MenuItem, perms map[string]bool) error {
	if len(perms) == 0 {
		return invalid("permissions must not be empty")
	}
	known := model.DefaultAllowedMap(catalog)
	var unknown []string
	for key := range perms {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return invalid("Unknown menu keys: %s", strings.Join(unknown, ", "))
	}
	return nil
}
