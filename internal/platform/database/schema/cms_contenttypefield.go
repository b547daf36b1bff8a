package schema

// CMSContentTypeFieldTable represents the 'cms.contenttypefield' table
type CMSContentTypeFieldTable struct {
	Table                string
	ID                   string
	ContentTypeID        string
	Label                string
	DeveloperName        string
	Description          string
	FieldType            string
	FieldOrder           string
	IsRequired           string
	Choices              string
	RelatedContentTypeID string
	IsDeleted            string
	CreatedAt            string
	UpdatedAt            string
}

// CMSContentTypeField is the schema definition for cms.contenttypefield
var CMSContentTypeField = CMSContentTypeFieldTable{
	Table:                "cms.contenttypefield",
	ID:                   "id",
	ContentTypeID:        "contenttypeid",
	Label:                "label",
	DeveloperName:        "developername",
	Description:          "description",
	FieldType:            "fieldtype",
	FieldOrder:           "fieldorder",
	IsRequired:           "isrequired",
	Choices:              "choices",
	RelatedContentTypeID: "relatedcontenttypeid",
	IsDeleted:            "isdeleted",
	CreatedAt:            "createdat",
	UpdatedAt:            "updatedat",
}

func (t CMSContentTypeFieldTable) Columns() []string {
	return []string{
		t.ID, t.ContentTypeID, t.Label, t.DeveloperName, t.Description,
		t.FieldType, t.FieldOrder, t.IsRequired, t.Choices,
		t.RelatedContentTypeID, t.IsDeleted, t.CreatedAt, t.UpdatedAt,
	}
}
