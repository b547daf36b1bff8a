package schema

// CMSDeletedContentItemTable represents the 'cms.deletedcontentitem' table
type CMSDeletedContentItemTable struct {
	Table             string
	ID                string
	OriginalItemID    string
	ContentTypeID     string
	PrimaryFieldValue string
	PublishedContent  string
	RoutePath         string
	WebTemplateID     string
	DeleterUserID     string
	CreatedAt         string
}

// CMSDeletedContentItem is the schema definition for cms.deletedcontentitem
var CMSDeletedContentItem = CMSDeletedContentItemTable{
	Table:             "cms.deletedcontentitem",
	ID:                "id",
	OriginalItemID:    "originalitemid",
	ContentTypeID:     "contenttypeid",
	PrimaryFieldValue: "primaryfieldvalue",
	PublishedContent:  "publishedcontent",
	RoutePath:         "routepath",
	WebTemplateID:     "webtemplateid",
	DeleterUserID:     "deleteruserid",
	CreatedAt:         "createdat",
}

func (t CMSDeletedContentItemTable) Columns() []string {
	return []string{
		t.ID, t.OriginalItemID, t.ContentTypeID, t.PrimaryFieldValue,
		t.PublishedContent, t.RoutePath, t.WebTemplateID, t.DeleterUserID,
		t.CreatedAt,
	}
}
