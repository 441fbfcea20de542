package events

// Event and entity type names for the legacy-history sync pipeline.
const (
	EntitySyncRun = "syncrun"

	EventSyncRunStarted        = "sync.run.started"
	EventSyncCategoryCompleted = "sync.category.completed"
	EventSyncRunCompleted      = "sync.run.completed"
	EventSyncRunAborted        = "sync.run.aborted"
)

// SyncRunStarted is emitted when an import run begins.
type SyncRunStarted struct {
	BaseEvent
	RunID      string   `json:"run_id"`
	Clear      bool     `json:"clear"`
	Categories []string `json:"categories"`
}

// SyncCategoryCompleted is emitted after each category finishes, whether or
// not individual records failed.
type SyncCategoryCompleted struct {
	BaseEvent
	RunID     string `json:"run_id"`
	Category  string `json:"category"`
	Written   int    `json:"written"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

// SyncRunCompleted is emitted when all enabled categories have been
// processed.
type SyncRunCompleted struct {
	BaseEvent
	RunID   string `json:"run_id"`
	Written int    `json:"written"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

// SyncRunAborted is emitted when a run stops before any category executes,
// e.g. because the legacy source cannot be opened.
type SyncRunAborted struct {
	BaseEvent
	RunID  string `json:"run_id"`
	Reason string `json:"reason"`
}
