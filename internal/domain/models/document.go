// internal/domain/models/document.go
package models

import "time"

// Document is a file attached to an asset (invoice, warranty, manual).
type Document struct {
	ID         string    `bson:"_id" json:"id"`
	AssetID    string    `bson:"asset_id" json:"asset_id"`
	Name       string    `bson:"name" json:"name"`
	Type       string    `bson:"document_type,omitempty" json:"document_type,omitempty"`
	URL        string    `bson:"url" json:"url"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}
