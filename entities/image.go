package entities

import "time"

type ImageKind string

type ImageStatus string

const (
	ImageKindUser       ImageKind = "USER"
	ImageKindRecipe     ImageKind = "RECIPE"
	ImageKindStep       ImageKind = "STEP"
	ImageKindIngredient ImageKind = "INGREDIENT"

	ImageStatusUploaded   ImageStatus = "UPLOADED"
	ImageStatusProcessing ImageStatus = "PROCESSING"
	ImageStatusCompleted  ImageStatus = "COMPLETED"
	ImageStatusFailed     ImageStatus = "FAILED"
)

func (k ImageKind) Valid() bool {
	switch k {
	case ImageKindUser, ImageKindRecipe, ImageKindStep, ImageKindIngredient:
		return true
	}
	return false
}

// Image is owned by (OwnerID, Kind) instead of a foreign key, so owners must
// remove their images explicitly when they are deleted.
type Image struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	Name             string      `gorm:"size:100" json:"name"`
	Kind             ImageKind   `gorm:"size:15;uniqueIndex:idx_image_owner" json:"type"`
	OwnerID          uint        `gorm:"uniqueIndex:idx_image_owner" json:"external_id"`
	Path             string      `gorm:"size:255" json:"-"`
	URL              string      `gorm:"size:255" json:"url"`
	ProcessingStatus ImageStatus `gorm:"size:15;default:UPLOADED" json:"processing_status"`
	CreatedAt        time.Time   `gorm:"type:timestamp" json:"created_at"`
}

func (Image) TableName() string {
	return "images"
}
