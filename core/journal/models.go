package journal

import "time"

const (
	RunStatusRunning  = "running"
	RunStatusFinished = "finished"
	RunStatusAborted  = "aborted"
)

// Run is a journaled seeding run.
type Run struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	DryRun      bool       `json:"dry_run"`
	Status      string     `gorm:"size:16;index" json:"status"`
	StartedAt   time.Time  `gorm:"index" json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	Created     int        `json:"created"`
	Present     int        `json:"present"`
	WouldCreate int        `json:"would_create"`
	Updated     int        `json:"updated"`
	WouldUpdate int        `json:"would_update"`
	Skipped     int        `json:"skipped"`
	Failed      int        `json:"failed"`
	Error       string     `gorm:"type:text" json:"error,omitempty"`
	Items       []Item     `gorm:"foreignKey:RunID" json:"items,omitempty"`
}

func (Run) TableName() string {
	return "nb_init_runs"
}

// Item is one journaled item outcome.
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	RunID     string    `gorm:"size:36;index" json:"-"`
	Tag       string    `gorm:"size:64" json:"tag"`
	Name      string    `gorm:"size:255" json:"name"`
	Status    string    `gorm:"size:16" json:"status"`
	RemoteID  int       `json:"remote_id,omitempty"`
	Reason    string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Item) TableName() string {
	return "nb_init_items"
}
