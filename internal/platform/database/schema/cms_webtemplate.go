package schema

// CMSWebTemplateTable represents the 'cms.webtemplate' table
type CMSWebTemplateTable struct {
	Table              string
	ID                 string
	Label              string
	DeveloperName      string
	Content            string
	IsBuiltIn          string
	ParentTemplateID   string
	CreatorUserID      string
	LastModifierUserID string
	CreatedAt          string
	UpdatedAt          string
}

// CMSWebTemplate is the schema definition for cms.webtemplate
var CMSWebTemplate = CMSWebTemplateTable{
	Table:              "cms.webtemplate",
	ID:                 "id",
	Label:              "label",
	DeveloperName:      "developername",
	Content:            "content",
	IsBuiltIn:          "isbuiltin",
	ParentTemplateID:   "parenttemplateid",
	CreatorUserID:      "creatoruserid",
	LastModifierUserID: "lastmodifieruserid",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}

func (t CMSWebTemplateTable) Columns() []string {
	return []string{
		t.ID, t.Label, t.DeveloperName, t.Content, t.IsBuiltIn,
		t.ParentTemplateID, t.CreatorUserID, t.LastModifierUserID,
		t.CreatedAt, t.UpdatedAt,
	}
}
