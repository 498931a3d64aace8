package models

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"
)

// Post represents a blog post together with its linked categories
type Post struct {
	ID                int64         `json:"id"`
	Title             string        `json:"title"`
	Content           string        `json:"content"` // HTML, rendered unescaped by the reader site
	ThumbnailImageKey *string       `json:"thumbnailImageKey"`
	ThumbnailURL      string        `json:"thumbnailUrl,omitempty"`
	Categories        []CategoryRef `json:"categories"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// CategoryRef is the denormalized category view embedded in a post
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryID is a category reference in a post write request
type CategoryID struct {
	ID int64 `json:"id"`
}

// PostInput is the request body for creating or updating a post.
//
// ThumbnailImageKey is nil when the field was omitted. An explicit null or ""
// decodes to a pointer to "", which removes the thumbnail.
type PostInput struct {
	Title             string        `json:"title"`
	Content           string        `json:"content"`
	ThumbnailImageKey *string       `json:"thumbnailImageKey"`
	Categories        *[]CategoryID `json:"categories"`
}

func (in *PostInput) UnmarshalJSON(data []byte) error {
	type postInput PostInput
	var raw struct {
		postInput
		ThumbnailImageKey json.RawMessage `json:"thumbnailImageKey"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*in = PostInput(raw.postInput)
	in.ThumbnailImageKey = nil

	switch {
	case raw.ThumbnailImageKey == nil:
	case bytes.Equal(raw.ThumbnailImageKey, []byte("null")):
		empty := ""
		in.ThumbnailImageKey = &empty
	default:
		var key string
		if err := json.Unmarshal(raw.ThumbnailImageKey, &key); err != nil {
			return err
		}
		in.ThumbnailImageKey = &key
	}
	return nil
}

// CategorySetInput is the request body for replacing a post's categories
type CategorySetInput struct {
	Categories *[]CategoryID `json:"categories"`
}

// CategoryIDs returns the requested category ids, de-duplicated and sorted.
// A nil or empty request yields an empty, non-nil slice.
func (in *PostInput) CategoryIDs() []int64 {
	if in.Categories == nil {
		return []int64{}
	}
	ids := make([]int64, 0, len(*in.Categories))
	for _, c := range *in.Categories {
		ids = append(ids, c.ID)
	}
	return UniqueIDs(ids)
}

// UniqueIDs returns ids sorted with duplicates removed
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
