package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessUploadImage = "image uploaded successfully"
	MessageSuccessGetImage    = "success get image"
	MessageSuccessDeleteImage = "image deleted successfully"
	MessageSuccessGetMe       = "success get current user"
	MessageSuccessGetImages   = "success get images"
	MessageFailedUploadImage  = "failed to upload image"
	MessageFailedGetImage     = "failed to get image"
	MessageFailedDeleteImage  = "failed to delete image"
	MessageFailedNoImage      = "no image file provided"
	MessageFailedGetImages    = "failed to get images"

	ErrImageNotFound = errors.New("image not found")
)

type ImageView struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	URL              string    `json:"url"`
	Type             string    `json:"type"`
	ProcessingStatus string    `json:"processing_status,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ImageFilter narrows an image listing. Zero fields match everything. OrderBy
// falls back to id when it is not one of ImageOrderFields.
type ImageFilter struct {
	Kind       string
	OwnerID    uint
	OrderBy    string
	Desc       bool
	Pagination PaginationQuery
}

var ImageOrderFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"name":              true,
	"kind":              true,
	"processing_status": true,
}

func (f ImageFilter) OrderClause() string {
	column := f.OrderBy
	if column == "type" {
		column = "kind"
	}
	if !ImageOrderFields[column] {
		column = "id"
	}
	if f.Desc {
		return column + " desc"
	}
	return column + " asc"
}

type ImageListResponse struct {
	Images     []*ImageView       `json:"images"`
	Pagination PaginationResponse `json:"pagination"`
}
