package models

// Collection caps
const (
	MaxPackages     = 10
	MaxGalleryItems = 10
)

// Singleton document ids
const (
	ProfileDocumentID    = "profil_id"
	TourLeaderDocumentID = "tour_leader_id"
)

// Package travel package shown on the landing page
type Package struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Description string   `json:"description" db:"description"`
	Features    []string `json:"features" db:"features"`
	Facilities  []string `json:"facilities" db:"facilities"`
	CreatedAt   string   `json:"created_at" db:"created_at"`
	UpdatedAt   string   `json:"updated_at" db:"updated_at"`
}

// CreatePackageRequest package create payload
type CreatePackageRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Features    []string `json:"features"`
	Facilities  []string `json:"facilities"`
}

// UpdatePackageRequest partial update; nil fields are left unchanged
type UpdatePackageRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Features    *[]string `json:"features,omitempty"`
	Facilities  *[]string `json:"facilities,omitempty"`
}

// GalleryItem documentation photo. Image holds bare base64, never a data URL.
type GalleryItem struct {
	ID            string `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	Description   string `json:"description" db:"description"`
	Image         string `json:"image" db:"image"`
	ImageMimeType string `json:"image_mime_type,omitempty" db:"image_mime_type"`
	CreatedAt     string `json:"created_at" db:"created_at"`
	UpdatedAt     string `json:"updated_at" db:"updated_at"`
}

// CreateGalleryItemRequest gallery create payload
type CreateGalleryItemRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Image         string `json:"image"`
	ImageMimeType string `json:"image_mime_type,omitempty"`
}

// UpdateGalleryItemRequest partial update
type UpdateGalleryItemRequest struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	Image         *string `json:"image,omitempty"`
	ImageMimeType *string `json:"image_mime_type,omitempty"`
}

// Profile company profile (single document)
type Profile struct {
	Address       string `json:"address" db:"address"`
	Email         string `json:"email" db:"email"`
	Image         string `json:"image" db:"image"`
	ImageMimeType string `json:"image_mime_type,omitempty" db:"image_mime_type"`
	UpdatedAt     string `json:"updated_at,omitempty" db:"updated_at"`
}

// UpdateProfileRequest partial update
type UpdateProfileRequest struct {
	Address       *string `json:"address,omitempty"`
	Email         *string `json:"email,omitempty"`
	Image         *string `json:"image,omitempty"`
	ImageMimeType *string `json:"image_mime_type,omitempty"`
}

// TourLeader tour leader card (single document)
type TourLeader struct {
	Name          string `json:"name" db:"name"`
	Experience    string `json:"experience" db:"experience"`
	Phone         string `json:"phone" db:"phone"`
	Description   string `json:"description" db:"description"`
	Image         string `json:"image" db:"image"`
	ImageMimeType string `json:"image_mime_type,omitempty" db:"image_mime_type"`
	UpdatedAt     string `json:"updated_at,omitempty" db:"updated_at"`
}

// UpdateTourLeaderRequest partial update
type UpdateTourLeaderRequest struct {
	Name          *string `json:"name,omitempty"`
	Experience    *string `json:"experience,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Description   *string `json:"description,omitempty"`
	Image         *string `json:"image,omitempty"`
	ImageMimeType *string `json:"image_mime_type,omitempty"`
}

// EncodedImage result of the image upload endpoint
type EncodedImage struct {
	Image         string `json:"image"`
	ImageMimeType string `json:"image_mime_type"`
	DataURL       string `json:"data_url"`
	Bytes         int    `json:"bytes"`
}

// DashboardStats admin dashboard counters
type DashboardStats struct {
	Packages CollectionMeta `json:"packages"`
	Gallery  CollectionMeta `json:"gallery"`
}
