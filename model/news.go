package model

/*

News is a single item published under a news board, backed by an uploaded
image living in the asset store.

Id: primary key
NewsBoardID: owning board's natural key. Nullable: board deletion leaves
items behind with the reference nulled.
FileName: key of the remote object in the asset store. Whenever a News row
exists, an object with this key is expected to exist remotely.
ImageUrl: publicly resolvable address of that object.

*/
type News struct {
	Id          int     `gorm:"primaryKey" json:"id"`
	NewsBoardID *string `json:"news_board_id"`
	FileName    string  `gorm:"not null" json:"file_name"`
	ImageUrl    string  `gorm:"not null" json:"image_url"`

	NewsBoard *NewsBoard `gorm:"foreignKey:NewsBoardID" json:"news_board,omitempty"`
}
