package schema

// CMSViewTable represents the 'cms.view' table
type CMSViewTable struct {
	Table                  string
	ID                     string
	ContentTypeID          string
	Label                  string
	DeveloperName          string
	Description            string
	RoutePath              string
	Filter                 string
	ViewColumns            string
	Sorts                  string
	IsPublished            string
	DefaultItemsPerPage    string
	MaxItemsPerPage        string
	IgnoreClientFilterSort string
	FavoritedBy            string
	CreatorUserID          string
	LastModifierUserID     string
	CreatedAt              string
	UpdatedAt              string
}

// CMSView is the schema definition for cms.view
var CMSView = CMSViewTable{
	Table:                  "cms.view",
	ID:                     "id",
	ContentTypeID:          "contenttypeid",
	Label:                  "label",
	DeveloperName:          "developername",
	Description:            "description",
	RoutePath:              "routepath",
	Filter:                 "filter",
	ViewColumns:            "viewcolumns",
	Sorts:                  "sorts",
	IsPublished:            "ispublished",
	DefaultItemsPerPage:    "defaultitemsperpage",
	MaxItemsPerPage:        "maxitemsperpage",
	IgnoreClientFilterSort: "ignoreclientfiltersort",
	FavoritedBy:            "favoritedby",
	CreatorUserID:          "creatoruserid",
	LastModifierUserID:     "lastmodifieruserid",
	CreatedAt:              "createdat",
	UpdatedAt:              "updatedat",
}

func (t CMSViewTable) Columns() []string {
	return []string{
		t.ID, t.ContentTypeID, t.Label, t.DeveloperName, t.Description,
		t.RoutePath, t.Filter, t.ViewColumns, t.Sorts, t.IsPublished,
		t.DefaultItemsPerPage, t.MaxItemsPerPage, t.IgnoreClientFilterSort,
		t.FavoritedBy, t.CreatorUserID, t.LastModifierUserID,
		t.CreatedAt, t.UpdatedAt,
	}
}
