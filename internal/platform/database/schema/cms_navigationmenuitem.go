package schema

// CMSNavigationMenuItemTable represents the 'cms.navigationmenuitem' table
type CMSNavigationMenuItemTable struct {
	Table              string
	ID                 string
	NavigationMenuID   string
	Label              string
	URL                string
	IsDisabled         string
	OpenInNewTab       string
	CSSClassName       string
	Ordinal            string
	ParentItemID       string
	CreatorUserID      string
	LastModifierUserID string
	CreatedAt          string
	UpdatedAt          string
}

// CMSNavigationMenuItem is the schema definition for cms.navigationmenuitem
var CMSNavigationMenuItem = CMSNavigationMenuItemTable{
	Table:              "cms.navigationmenuitem",
	ID:                 "id",
	NavigationMenuID:   "navigationmenuid",
	Label:              "label",
	URL:                "url",
	IsDisabled:         "isdisabled",
	OpenInNewTab:       "openinnewtab",
	CSSClassName:       "cssclassname",
	Ordinal:            "ordinal",
	ParentItemID:       "parentitemid",
	CreatorUserID:      "creatoruserid",
	LastModifierUserID: "lastmodifieruserid",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}

func (t CMSNavigationMenuItemTable) Columns() []string {
	return []string{
		t.ID, t.NavigationMenuID, t.Label, t.URL, t.IsDisabled,
		t.OpenInNewTab, t.CSSClassName, t.Ordinal, t.ParentItemID,
		t.CreatorUserID, t.LastModifierUserID, t.CreatedAt, t.UpdatedAt,
	}
}
