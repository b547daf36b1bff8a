package schema

// CMSEmailTemplateTable represents the 'cms.emailtemplate' table
type CMSEmailTemplateTable struct {
	Table              string
	ID                 string
	DeveloperName      string
	Subject            string
	Content            string
	Cc                 string
	Bcc                string
	IsBuiltIn          string
	CreatorUserID      string
	LastModifierUserID string
	CreatedAt          string
	UpdatedAt          string
}

// CMSEmailTemplate is the schema definition for cms.emailtemplate
var CMSEmailTemplate = CMSEmailTemplateTable{
	Table:              "cms.emailtemplate",
	ID:                 "id",
	DeveloperName:      "developername",
	Subject:            "subject",
	Content:            "content",
	Cc:                 "cc",
	Bcc:                "bcc",
	IsBuiltIn:          "isbuiltin",
	CreatorUserID:      "creatoruserid",
	LastModifierUserID: "lastmodifieruserid",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}

func (t CMSEmailTemplateTable) Columns() []string {
	return []string{
		t.ID, t.DeveloperName, t.Subject, t.Content, t.Cc, t.Bcc,
		t.IsBuiltIn, t.CreatorUserID, t.LastModifierUserID,
		t.CreatedAt, t.UpdatedAt,
	}
}
