package harvester

import (
	"time"

	"github.com/lib/pq"
)

// PromptModel is one harvested prompt. source_link is the dedup key: one row
// per tweet/gallery item, enforced by the unique index.
type PromptModel struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"type:text;not null" json:"title"`
	Prompt       string         `gorm:"type:text;not null" json:"prompt"`
	Category     string         `gorm:"type:text;not null" json:"category"`
	Tags         pq.StringArray `gorm:"type:text[]" json:"tags"`
	Images       pq.StringArray `gorm:"type:text[]" json:"images"`
	SourceLink   string         `gorm:"type:text;uniqueIndex;not null" json:"source_link"`
	Author       string         `gorm:"type:text" json:"author"`
	ImportSource string         `gorm:"type:text" json:"import_source"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (PromptModel) TableName() string {
	return "prompts"
}

// EmailRecordModel keeps the full digest mail so reruns skip it even when
// the IMAP seen flag is lost, and so failed links can be replayed later.
type EmailRecordModel struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	MessageID    string         `gorm:"type:text;uniqueIndex;not null" json:"message_id"`
	Subject      string         `gorm:"type:text" json:"subject"`
	Sender       string         `gorm:"type:text" json:"sender"`
	ReceivedAt   time.Time      `json:"received_at"`
	Body         string         `gorm:"type:text" json:"body"`
	TwitterLinks pq.StringArray `gorm:"type:text[]" json:"twitter_links"`
	Processed    bool           `json:"processed"`
	Imported     int            `json:"imported"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (EmailRecordModel) TableName() string {
	return "email_records"
}
