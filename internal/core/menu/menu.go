// Copyright (c) 2026 Raytha. All rights reserved.

package menu

import "time"

// NavigationMenu is a named collection of ordered, nestable links.
//
// Exactly one menu is flagged as the main menu; it is what the
// NavigationMenu template variable resolves to on public pages.
type NavigationMenu struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	DeveloperName string `json:"developer_name"`
	IsMainMenu    bool   `json:"is_main_menu"`

	CreatorUserID      string    `json:"creator_user_id,omitempty"`
	LastModifierUserID string    `json:"last_modifier_user_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Items holds every link of the menu ordered by Ordinal within each
	// sibling group. Hydrated on every read.
	Items []NavigationMenuItem `json:"items"`
}

// NavigationMenuItem is one link of a navigation menu. Nesting is
// expressed through ParentItemID; Ordinal is kept dense (0..n-1) within
// each sibling group.
type NavigationMenuItem struct {
	ID               string  `json:"id"`
	NavigationMenuID string  `json:"navigation_menu_id"`
	Label            string  `json:"label"`
	URL              string  `json:"url"`
	IsDisabled       bool    `json:"is_disabled"`
	OpenInNewTab     bool    `json:"open_in_new_tab"`
	CSSClassName     string  `json:"css_class_name,omitempty"`
	Ordinal          int     `json:"ordinal"`
	ParentItemID     *string `json:"parent_item_id,omitempty"`

	CreatorUserID      string    `json:"creator_user_id,omitempty"`
	LastModifierUserID string    `json:"last_modifier_user_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ItemByID returns the item with the given id.
func (m *NavigationMenu) ItemByID(id string) (*NavigationMenuItem, bool) {
	for index := range m.Items {
		if m.Items[index].ID == id {
			return &m.Items[index], true
		}
	}
	return nil, false
}

// Siblings returns the items sharing the given parent, in Ordinal order.
// A nil parent selects the top-level items.
func (m *NavigationMenu) Siblings(parentItemID *string) []NavigationMenuItem {
	siblings := make([]NavigationMenuItem, 0, len(m.Items))
	for _, item := range m.Items {
		if sameParent(item.ParentItemID, parentItemID) {
			siblings = append(siblings, item)
		}
	}
	return siblings
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
