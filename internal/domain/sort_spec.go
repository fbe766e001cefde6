package domain

import "maps"

// EntityType names a listable collection.
type EntityType string

const (
	EntityClients    EntityType = "clients"
	EntityProjects   EntityType = "projects"
	EntityTasks      EntityType = "tasks"
	EntityChecklists EntityType = "checklists"
	EntityTimeline   EntityType = "timeline"
	EntityActivity   EntityType = "activity"
	EntityFiles      EntityType = "files"
)

var sortSpec = map[EntityType]SortableFields{
	EntityClients: {
		"id":         "id",
		"name":       "name",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	EntityProjects: {
		"id":                "id",
		"title":             "title",
		"status":            "status",
		"risk":              "risk",
		"start_date":        "start_date",
		"target_close_date": "target_close_date",
		"created_at":        "created_at",
		"updated_at":        "updated_at",
	},
	EntityTasks: {
		"due_date":   "due_date",
		"status":     "status",
		"priority":   "priority",
		"title":      "title",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	EntityChecklists: {
		"id": "id",
	},
	EntityTimeline: {
		"start_date": "start_date",
		"end_date":   "end_date",
	},
	EntityActivity: {
		"created_at": "created_at",
	},
	EntityFiles: {
		"uploaded_at": "uploaded_at",
		"filename":    "filename",
		"file_size":   "file_size",
		"version":     "version",
	},
}

// SortableFor returns a copy of the sortable fields registered for entity.
// Unknown entities have no sortable fields.
func SortableFor(entity EntityType) SortableFields {
	return maps.Clone(sortSpec[entity])
}
