package model

/*

NewsBoard is a themed subscription channel that clients subscribe to and
news items get published under.

Id: natural key supplied by the caller at creation (never generated),
length 3 to 50. News rows reference boards by this string key.
Title: board's display name.
Fee: subscription fee, stored as numeric(12,2).
Version: optimistic concurrency token checked by directory updates.

Subscriptions: all subscription rows for this board, "has-many" relation.
Deleting a board cascades these away.
Subscribers: clients subscribed to this board, "many-to-many" through the
subscriptions join table.
News: items published under this board. Deleting a board nulls their
reference instead of cascading, so the items survive the board.

*/
type NewsBoard struct {
	Id      string  `gorm:"primaryKey" json:"id"`
	Title   string  `json:"title"`
	Fee     float64 `gorm:"type:numeric(12,2)" json:"fee"`
	Version int     `gorm:"not null;default:0" json:"version"`

	Subscriptions []Subscription `gorm:"foreignKey:NewsBoardID;constraint:OnDelete:CASCADE;" json:"subscriptions,omitempty"`
	Subscribers   []*Client      `gorm:"many2many:subscriptions;" json:"subscribers,omitempty"`
	News          []News         `gorm:"foreignKey:NewsBoardID;constraint:OnDelete:SET NULL;" json:"news,omitempty"`
}
