package schema

// CMSContentTypeTable represents the 'cms.contenttype' table
type CMSContentTypeTable struct {
	Table                string
	ID                   string
	LabelSingular        string
	LabelPlural          string
	DeveloperName        string
	Description          string
	DefaultRouteTemplate string
	PrimaryFieldID       string
	IsDeleted            string
	CreatorUserID        string
	LastModifierUserID   string
	CreatedAt            string
	UpdatedAt            string
}

// CMSContentType is the schema definition for cms.contenttype
var CMSContentType = CMSContentTypeTable{
	Table:                "cms.contenttype",
	ID:                   "id",
	LabelSingular:        "labelsingular",
	LabelPlural:          "labelplural",
	DeveloperName:        "developername",
	Description:          "description",
	DefaultRouteTemplate: "defaultroutetemplate",
	PrimaryFieldID:       "primaryfieldid",
	IsDeleted:            "isdeleted",
	CreatorUserID:        "creatoruserid",
	LastModifierUserID:   "lastmodifieruserid",
	CreatedAt:            "createdat",
	UpdatedAt:            "updatedat",
}

func (t CMSContentTypeTable) Columns() []string {
	return []string{
		t.ID, t.LabelSingular, t.LabelPlural, t.DeveloperName, t.Description,
		t.DefaultRouteTemplate, t.PrimaryFieldID, t.IsDeleted,
		t.CreatorUserID, t.LastModifierUserID, t.CreatedAt, t.UpdatedAt,
	}
}
