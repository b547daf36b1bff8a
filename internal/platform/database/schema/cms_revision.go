package schema

// CMSRevisionTable represents the 'cms.revision' table
type CMSRevisionTable struct {
	Table         string
	ID            string
	ParentType    string
	ParentID      string
	Snapshot      string
	CreatorUserID string
	CreatedAt     string
}

// CMSRevision is the schema definition for cms.revision
var CMSRevision = CMSRevisionTable{
	Table:         "cms.revision",
	ID:            "id",
	ParentType:    "parenttype",
	ParentID:      "parentid",
	Snapshot:      "snapshot",
	CreatorUserID: "creatoruserid",
	CreatedAt:     "createdat",
}

func (t CMSRevisionTable) Columns() []string {
	return []string{
		t.ID, t.ParentType, t.ParentID, t.Snapshot, t.CreatorUserID, t.CreatedAt,
	}
}
