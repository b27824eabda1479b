package entity

type EventType string

const (
	EventLike   EventType = "LIKE"
	EventReview EventType = "REVIEW"
	EventFriend EventType = "FRIEND"
)

type Operation string

const (
	OperationAdd    Operation = "ADD"
	OperationRemove Operation = "REMOVE"
	OperationUpdate Operation = "UPDATE"
)

// FeedEvent rows are append-only.
type FeedEvent struct {
	ID        int64     `gorm:"primaryKey" json:"eventId"`
	UserID    int64     `gorm:"not null;index:idx_feed_user_time,priority:1" json:"userId"`
	EntityID  int64     `gorm:"not null" json:"entityId"`
	EventType EventType `gorm:"size:10;not null" json:"eventType"`
	Operation Operation `gorm:"size:10;not null" json:"operation"`
	Timestamp int64     `gorm:"not null;index:idx_feed_user_time,priority:2" json:"timestamp"`
}

func (f *FeedEvent) TableName() string {
	return "feed_events"
}
