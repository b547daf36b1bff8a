package schema

// CMSContentItemTable represents the 'cms.contentitem' table
type CMSContentItemTable struct {
	Table              string
	ID                 string
	ContentTypeID      string
	IsPublished        string
	IsDraft            string
	DraftContent       string
	PublishedContent   string
	RoutePath          string
	WebTemplateID      string
	CreatorUserID      string
	LastModifierUserID string
	CreatedAt          string
	UpdatedAt          string
}

// CMSContentItem is the schema definition for cms.contentitem
var CMSContentItem = CMSContentItemTable{
	Table:              "cms.contentitem",
	ID:                 "id",
	ContentTypeID:      "contenttypeid",
	IsPublished:        "ispublished",
	IsDraft:            "isdraft",
	DraftContent:       "draftcontent",
	PublishedContent:   "publishedcontent",
	RoutePath:          "routepath",
	WebTemplateID:      "webtemplateid",
	CreatorUserID:      "creatoruserid",
	LastModifierUserID: "lastmodifieruserid",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}

func (t CMSContentItemTable) Columns() []string {
	return []string{
		t.ID, t.ContentTypeID, t.IsPublished, t.IsDraft, t.DraftContent,
		t.PublishedContent, t.RoutePath, t.WebTemplateID,
		t.CreatorUserID, t.LastModifierUserID, t.CreatedAt, t.UpdatedAt,
	}
}
