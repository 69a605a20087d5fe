package models

import "time"

// ImageAsset is the metadata record kept for every stored image file.
//
// Assets are namespaced per owner: (OwnerID, Filename) is unique, so two
// users may both own a "cat.png" without colliding. The recorded dimensions
// and format act as a cache of the stored bytes — every in-place transform
// refreshes them, and derived outputs get a row of their own.
type ImageAsset struct {
	// AssetID is the server-assigned identifier of the metadata row.
	AssetID int64 `json:"id"`

	// OwnerID references the user who uploaded the asset.
	OwnerID int64 `json:"-"`

	// Filename is the asset's name inside the owner's namespace.
	// It doubles as the on-disk name under the owner's upload directory.
	Filename string `json:"filename"`

	// Width and Height are the decoded pixel dimensions of the stored file.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the encoded container format as reported by the image
	// decoder: "png", "jpeg" or "gif".
	Format string `json:"format"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the ImageAsset model.
func (a ImageAsset) TableName() string {
	return "images"
}
