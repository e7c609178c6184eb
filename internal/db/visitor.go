package db

import "time"

// ActiveVisitor is the single presence row kept per browser session. It is
// upserted on navigation and refreshed by the heartbeat; readers treat a
// row as active only while last_seen is within the 5-minute window.
type ActiveVisitor struct {
	ID          uint    `gorm:"primaryKey"`
	SessionID   string  `gorm:"size:64;uniqueIndex"`
	PagePath    string  `gorm:"not null"`
	UserAgent   string  `gorm:"type:text"`
	Referrer    string  `gorm:"type:text"`
	IPAddress   string  `gorm:"size:64"`
	Country     *string `gorm:"size:128"`
	CountryCode *string `gorm:"size:2"`
	City        *string `gorm:"size:128"`
	Latitude    *float64
	Longitude   *float64
	LastSeen    time.Time `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName pins the table name used by the dashboard queries.
func (ActiveVisitor) TableName() string {
	return "active_visitors"
}

// PageView is an append-only navigation fact. Rows are never updated or
// deleted; duplicate suppression happens before insertion and is only a
// heuristic.
type PageView struct {
	ID        uint      `gorm:"primaryKey"`
	SessionID string    `gorm:"size:64;index"`
	PagePath  string    `gorm:"not null;index"`
	Referrer  string    `gorm:"type:text"`
	UserAgent string    `gorm:"type:text"`
	VisitedAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

// TableName pins the table name.
func (PageView) TableName() string {
	return "page_views"
}
