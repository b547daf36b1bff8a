package schema

// CMSNavigationMenuTable represents the 'cms.navigationmenu' table
type CMSNavigationMenuTable struct {
	Table              string
	ID                 string
	Label              string
	DeveloperName      string
	IsMainMenu         string
	CreatorUserID      string
	LastModifierUserID string
	CreatedAt          string
	UpdatedAt          string
}

// CMSNavigationMenu is the schema definition for cms.navigationmenu
var CMSNavigationMenu = CMSNavigationMenuTable{
	Table:              "cms.navigationmenu",
	ID:                 "id",
	Label:              "label",
	DeveloperName:      "developername",
	IsMainMenu:         "ismainmenu",
	CreatorUserID:      "creatoruserid",
	LastModifierUserID: "lastmodifieruserid",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}

func (t CMSNavigationMenuTable) Columns() []string {
	return []string{
		t.ID, t.Label, t.DeveloperName, t.IsMainMenu,
		t.CreatorUserID, t.LastModifierUserID, t.CreatedAt, t.UpdatedAt,
	}
}
