package model

import "time"

type Client struct {
	Id        int       `gorm:"primaryKey" json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate time.Time `gorm:"type:date" json:"birth_date"`
	Version   int       `gorm:"not null;default:0" json:"version"`

	Subscriptions    []Subscription `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE;" json:"subscriptions,omitempty"`
	SubscribedBoards []*NewsBoard   `gorm:"many2many:subscriptions;" json:"subscribed_boards,omitempty"`
}
