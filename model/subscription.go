package model

import "time"

/*

Subscription is the "many-to-many" relation of a client's subscription to a
news board. It has no surrogate key: the composite primary key
(ClientID, NewsBoardID) guarantees at most one subscription per pair.

ClientID: client id
NewsBoardID: board natural key
CreatedAt: time when the relation is created

*/
type Subscription struct {
	ClientID    int       `gorm:"primaryKey" json:"client_id"`
	NewsBoardID string    `gorm:"primaryKey" json:"news_board_id"`
	CreatedAt   time.Time `json:"created_at"`

	Client    *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	NewsBoard *NewsBoard `gorm:"foreignKey:NewsBoardID" json:"news_board,omitempty"`
}
