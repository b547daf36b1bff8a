package schema

// CMSBackgroundTaskTable represents the 'cms.backgroundtask' table
type CMSBackgroundTaskTable struct {
	Table           string
	ID              string
	Name            string
	Args            string
	Status          string
	StatusInfo      string
	PercentComplete string
	NumberOfRetries string
	ErrorMessage    string
	CreatedAt       string
	UpdatedAt       string
	CompletedAt     string
}

// CMSBackgroundTask is the schema definition for cms.backgroundtask
var CMSBackgroundTask = CMSBackgroundTaskTable{
	Table:           "cms.backgroundtask",
	ID:              "id",
	Name:            "name",
	Args:            "args",
	Status:          "status",
	StatusInfo:      "statusinfo",
	PercentComplete: "percentcomplete",
	NumberOfRetries: "numberofretries",
	ErrorMessage:    "errormessage",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
	CompletedAt:     "completedat",
}

func (t CMSBackgroundTaskTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Args, t.Status, t.StatusInfo, t.PercentComplete,
		t.NumberOfRetries, t.ErrorMessage, t.CreatedAt, t.UpdatedAt, t.CompletedAt,
	}
}
