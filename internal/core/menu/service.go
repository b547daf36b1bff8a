// Copyright (c) 2026 Raytha. All rights reserved.

/*
Package menu implements navigation menus and their ordered, nestable items.

Menus are revisioned as whole snapshots (label plus items): every mutation
appends the new state to the generic revision log, and reverting adopts a
snapshot and appends a further revision rather than rewriting history.
*/
package menu

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RaythaHQ/raytha-sub000/internal/core/revision"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/ctxutil"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/validate"
	"github.com/RaythaHQ/raytha-sub000/pkg/slug"
	"github.com/RaythaHQ/raytha-sub000/pkg/uuidv7"
)

// Validation field identifiers surfaced in error details.
const (
	FieldLabel         = "label"
	FieldDeveloperName = "developer_name"
	FieldURL           = "url"
	FieldParentItemID  = "parent_item_id"
)

// Service orchestrates navigation menu management and revisioning.
type Service struct {
	repo      Repository
	revisions revision.Repository
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(repo Repository, revisions revision.Repository) *Service {
	return &Service{repo: repo, revisions: revisions}
}

// # Inputs

// CreateMenuInput carries a new navigation menu.
type CreateMenuInput struct {
	Label         string `json:"label"`
	DeveloperName string `json:"developer_name"`
}

// EditMenuInput carries a menu label edit. Developer names are immutable.
type EditMenuInput struct {
	Label string `json:"label"`
}

// ItemInput carries a menu item create or edit.
type ItemInput struct {
	Label        string  `json:"label"`
	URL          string  `json:"url"`
	IsDisabled   bool    `json:"is_disabled"`
	OpenInNewTab bool    `json:"open_in_new_tab"`
	CSSClassName string  `json:"css_class_name"`
	ParentItemID *string `json:"parent_item_id"`
}

// menuSnapshot is the revision payload: the menu label plus its full item
// set.
type menuSnapshot struct {
	Label string               `json:"label"`
	Items []NavigationMenuItem `json:"items"`
}

// # Menus

// GetMenu fetches a menu by id or developer name, items included.
func (service *Service) GetMenu(context context.Context, identifier string) (*NavigationMenu, error) {
	return service.findMenu(context, identifier)
}

// GetMainMenu fetches the menu currently flagged as main.
func (service *Service) GetMainMenu(context context.Context) (*NavigationMenu, error) {
	return service.repo.FindMainMenu(context)
}

// ListMenus retrieves a paginated collection of menus.
func (service *Service) ListMenus(context context.Context, limit, offset int) ([]*NavigationMenu, int, error) {
	return service.repo.ListMenus(context, limit, offset)
}

/*
CreateMenu creates a navigation menu.

Description: The developer name is generated from the label when omitted
and must be unique. The first menu created becomes the main menu
automatically so the public surface always has one to render.

Parameters:
  - input: CreateMenuInput (Label, optional DeveloperName)

Returns:
  - *NavigationMenu: The created menu, empty item set
  - error: VALIDATION_ERROR or CONFLICT on a duplicate developer name
*/
func (service *Service) CreateMenu(context context.Context, input CreateMenuInput) (*NavigationMenu, error) {
	developerName := input.DeveloperName
	if developerName == "" {
		developerName = slug.From(input.Label)
	}

	validator := &validate.Validator{}
	validator.Required(FieldLabel, input.Label).MaxLen(FieldLabel, input.Label, 120)
	validator.DeveloperName(FieldDeveloperName, developerName)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	taken, err := service.repo.ExistsMenuByDeveloperName(context, developerName)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict(fmt.Sprintf("A menu named %q already exists", developerName))
	}

	_, err = service.repo.FindMainMenu(context)
	isFirstMenu := false
	if err != nil {
		if appError := apperr.As(err); appError == nil || appError.Code != "NOT_FOUND" {
			return nil, err
		}
		isFirstMenu = true
	}

	created := &NavigationMenu{
		ID:                 uuidv7.New(),
		Label:              input.Label,
		DeveloperName:      developerName,
		IsMainMenu:         isFirstMenu,
		CreatorUserID:      ctxutil.GetActorID(context),
		LastModifierUserID: ctxutil.GetActorID(context),
		Items:              []NavigationMenuItem{},
	}

	if err := service.repo.CreateMenu(context, created); err != nil {
		return nil, err
	}

	if err := service.snapshot(context, created); err != nil {
		return nil, err
	}
	return created, nil
}

// EditMenu updates a menu's label.
func (service *Service) EditMenu(context context.Context, id string, input EditMenuInput) (*NavigationMenu, error) {
	current, err := service.repo.FindMenuByID(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldLabel, input.Label).MaxLen(FieldLabel, input.Label, 120)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current.Label = input.Label
	current.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.UpdateMenu(context, current); err != nil {
		return nil, err
	}

	if err := service.snapshot(context, current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteMenu removes a menu and its items. The main menu cannot be
// deleted; flip the flag to another menu first.
func (service *Service) DeleteMenu(context context.Context, id string) error {
	current, err := service.repo.FindMenuByID(context, id)
	if err != nil {
		return err
	}
	if current.IsMainMenu {
		return validate.RequiredError(FieldLabel, "The main menu cannot be deleted")
	}
	return service.repo.DeleteMenu(context, id)
}

// SetAsMainMenu flips the main flag to the given menu.
func (service *Service) SetAsMainMenu(context context.Context, id string) error {
	if _, err := service.repo.FindMenuByID(context, id); err != nil {
		return err
	}
	return service.repo.SetAsMainMenu(context, id)
}

// # Menu Items

// CreateItem appends a link to a menu, last within its sibling group.
func (service *Service) CreateItem(context context.Context, menuID string, input ItemInput) (*NavigationMenuItem, error) {
	current, err := service.repo.FindMenuByID(context, menuID)
	if err != nil {
		return nil, err
	}

	if err := validateItemInput(current, input, ""); err != nil {
		return nil, err
	}

	item := &NavigationMenuItem{
		ID:                 uuidv7.New(),
		NavigationMenuID:   menuID,
		Label:              input.Label,
		URL:                input.URL,
		IsDisabled:         input.IsDisabled,
		OpenInNewTab:       input.OpenInNewTab,
		CSSClassName:       input.CSSClassName,
		Ordinal:            len(current.Siblings(input.ParentItemID)),
		ParentItemID:       input.ParentItemID,
		CreatorUserID:      ctxutil.GetActorID(context),
		LastModifierUserID: ctxutil.GetActorID(context),
	}

	if err := service.repo.CreateItem(context, item); err != nil {
		return nil, err
	}

	if err := service.snapshotByID(context, menuID); err != nil {
		return nil, err
	}
	return item, nil
}

/*
EditItem updates a menu item.

Description: All link attributes may change, including the parent. An item
moved to a different parent is appended at the end of the new sibling
group and its old group's ordinals are closed up.

Parameters:
  - menuID: string
  - itemID: string
  - input: ItemInput

Returns:
  - *NavigationMenuItem: The updated item
  - error: NOT_FOUND when the item is not part of the menu
*/
func (service *Service) EditItem(context context.Context, menuID, itemID string, input ItemInput) (*NavigationMenuItem, error) {
	current, err := service.repo.FindMenuByID(context, menuID)
	if err != nil {
		return nil, err
	}

	item, found := current.ItemByID(itemID)
	if !found {
		return nil, apperr.NotFound("Menu item")
	}

	if err := validateItemInput(current, input, itemID); err != nil {
		return nil, err
	}

	parentChanged := !sameParent(item.ParentItemID, input.ParentItemID)
	oldParentID := item.ParentItemID

	item.Label = input.Label
	item.URL = input.URL
	item.IsDisabled = input.IsDisabled
	item.OpenInNewTab = input.OpenInNewTab
	item.CSSClassName = input.CSSClassName
	item.LastModifierUserID = ctxutil.GetActorID(context)
	if parentChanged {
		item.ParentItemID = input.ParentItemID
		item.Ordinal = len(current.Siblings(input.ParentItemID))
	}

	if err := service.repo.UpdateItem(context, item); err != nil {
		return nil, err
	}

	if parentChanged {
		if err := service.closeUpSiblings(context, menuID, oldParentID); err != nil {
			return nil, err
		}
	}

	if err := service.snapshotByID(context, menuID); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a link. Children of the removed item are promoted to
// its parent, appended after the existing siblings there.
func (service *Service) DeleteItem(context context.Context, menuID, itemID string) error {
	current, err := service.repo.FindMenuByID(context, menuID)
	if err != nil {
		return err
	}

	item, found := current.ItemByID(itemID)
	if !found {
		return apperr.NotFound("Menu item")
	}
	parentID := item.ParentItemID

	for _, child := range current.Siblings(&itemID) {
		promoted := child
		promoted.ParentItemID = parentID
		promoted.LastModifierUserID = ctxutil.GetActorID(context)
		if err := service.repo.UpdateItem(context, &promoted); err != nil {
			return err
		}
	}

	if err := service.repo.DeleteItem(context, itemID); err != nil {
		return err
	}

	if err := service.closeUpSiblings(context, menuID, parentID); err != nil {
		return err
	}
	return service.snapshotByID(context, menuID)
}

// ReorderItem moves an item to a new position within its sibling group.
// Positions outside the group clamp to the nearest end.
func (service *Service) ReorderItem(context context.Context, menuID, itemID string, newPosition int) ([]NavigationMenuItem, error) {
	current, err := service.repo.FindMenuByID(context, menuID)
	if err != nil {
		return nil, err
	}

	item, found := current.ItemByID(itemID)
	if !found {
		return nil, apperr.NotFound("Menu item")
	}

	siblings := current.Siblings(item.ParentItemID)
	ordered := make([]string, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.ID != itemID {
			ordered = append(ordered, sibling.ID)
		}
	}

	if newPosition < 0 {
		newPosition = 0
	}
	if newPosition > len(ordered) {
		newPosition = len(ordered)
	}
	ordered = append(ordered[:newPosition], append([]string{itemID}, ordered[newPosition:]...)...)

	if err := service.repo.SaveItemOrder(context, menuID, ordered); err != nil {
		return nil, err
	}

	if err := service.snapshotByID(context, menuID); err != nil {
		return nil, err
	}

	refreshed, err := service.repo.FindMenuByID(context, menuID)
	if err != nil {
		return nil, err
	}
	return refreshed.Siblings(item.ParentItemID), nil
}

// # Revisions

// Revert adopts a revision's label and item set as the current state and
// appends a new revision recording the revert.
func (service *Service) Revert(context context.Context, menuID, revisionID string) (*NavigationMenu, error) {
	current, err := service.repo.FindMenuByID(context, menuID)
	if err != nil {
		return nil, err
	}

	record, err := service.revisions.GetByID(context, revisionID)
	if err != nil {
		return nil, err
	}
	if record.ParentType != revision.ParentNavigationMenu || record.ParentID != current.ID {
		return nil, apperr.NotFound("Revision for this menu")
	}

	var snapshot menuSnapshot
	if err := json.Unmarshal(record.Snapshot, &snapshot); err != nil {
		return nil, fmt.Errorf("menu: decode revision snapshot: %w", err)
	}

	current.Label = snapshot.Label
	current.LastModifierUserID = ctxutil.GetActorID(context)

	if err := service.repo.UpdateMenu(context, current); err != nil {
		return nil, err
	}
	if err := service.repo.ReplaceItems(context, menuID, snapshot.Items); err != nil {
		return nil, err
	}

	if err := service.snapshotByID(context, menuID); err != nil {
		return nil, err
	}
	return service.repo.FindMenuByID(context, menuID)
}

// ListRevisions retrieves a menu's history, newest first.
func (service *Service) ListRevisions(context context.Context, menuID string, limit, offset int) ([]*revision.Revision, int, error) {
	if _, err := service.repo.FindMenuByID(context, menuID); err != nil {
		return nil, 0, err
	}
	return service.revisions.ListByParent(context, revision.ParentNavigationMenu, menuID, limit, offset)
}

// # Internals

func (service *Service) findMenu(context context.Context, identifier string) (*NavigationMenu, error) {
	if uuidv7.IsValid(identifier) {
		return service.repo.FindMenuByID(context, identifier)
	}
	return service.repo.FindMenuByDeveloperName(context, identifier)
}

// closeUpSiblings re-densifies the ordinals of one sibling group after an
// item left it.
func (service *Service) closeUpSiblings(context context.Context, menuID string, parentItemID *string) error {
	refreshed, err := service.repo.FindMenuByID(context, menuID)
	if err != nil {
		return err
	}

	siblings := refreshed.Siblings(parentItemID)
	ordered := make([]string, 0, len(siblings))
	for _, sibling := range siblings {
		ordered = append(ordered, sibling.ID)
	}
	return service.repo.SaveItemOrder(context, menuID, ordered)
}

func (service *Service) snapshotByID(context context.Context, menuID string) error {
	current, err := service.repo.FindMenuByID(context, menuID)
	if err != nil {
		return err
	}
	return service.snapshot(context, current)
}

func (service *Service) snapshot(context context.Context, current *NavigationMenu) error {
	snapshot, err := json.Marshal(menuSnapshot{Label: current.Label, Items: current.Items})
	if err != nil {
		return fmt.Errorf("menu: marshal snapshot: %w", err)
	}
	_, err = service.revisions.Create(context, revision.ParentNavigationMenu, current.ID, snapshot, ctxutil.GetActorID(context))
	return err
}

func validateItemInput(current *NavigationMenu, input ItemInput, itemID string) error {
	validator := &validate.Validator{}
	validator.Required(FieldLabel, input.Label).MaxLen(FieldLabel, input.Label, 120)
	validator.Required(FieldURL, input.URL).MaxLen(FieldURL, input.URL, 500)

	if input.ParentItemID != nil {
		parent, found := current.ItemByID(*input.ParentItemID)
		switch {
		case !found:
			validator.Fail(FieldParentItemID, "Parent item does not belong to this menu")
		case itemID != "" && parent.ID == itemID:
			validator.Fail(FieldParentItemID, "An item cannot be its own parent")
		}
	}
	return validator.Err()
}
