package model

// Projections are read-only, request-scoped snapshots assembled for display.
// They are deep copies detached from any gorm-tracked row, never a live
// reference back into storage.

// ClientSubscriptionsView backs the subscription editing surface: the
// requesting client plus every board with its subscriptions and each
// subscription's client eager-loaded.
type ClientSubscriptionsView struct {
	Client     Client      `json:"client"`
	NewsBoards []NewsBoard `json:"news_boards"`
}

// BoardDirectoryView backs the client directory listing. NewsBoards is
// always the complete board list whenever a client filter is supplied; only
// Subscriptions is narrowed to the requesting client.
type BoardDirectoryView struct {
	Clients       []Client       `json:"clients"`
	NewsBoards    []NewsBoard    `json:"news_boards,omitempty"`
	Subscriptions []Subscription `json:"subscriptions,omitempty"`
}

// NewsListView backs the news listing for a single board.
type NewsListView struct {
	NewsBoard NewsBoard `json:"news_board"`
	News      []News    `json:"news"`
}
