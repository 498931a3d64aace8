package models

// Thumbnail is an uploaded post image
type Thumbnail struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
