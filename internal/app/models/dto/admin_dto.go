package dto

// DeleteUserResponse reports what a moderation cascade removed
type DeleteUserResponse struct {
	UserID     string `json:"userId"`
	Reactions  int64  `json:"reactions"`
	Comments   int64  `json:"comments"`
	Activities int64  `json:"activities"`
}

// BulkDeleteResponse reports a per-image or log-wide bulk removal
type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}
