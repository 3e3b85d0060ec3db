package dto

// SiteSettingsDTO is the storefront content served to the public site.
type SiteSettingsDTO struct {
	SalonName    string `json:"salon_name"`
	Tagline      string `json:"tagline"`
	AboutText    string `json:"about_text"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	InstagramURL string `json:"instagram_url"`
	TikTokURL    string `json:"tiktok_url"`
	BookingNote  string `json:"booking_note"`
	HeroMediaURL string `json:"hero_media_url,omitempty"`
	UpdatedAt    string `json:"updated_at"`
}

// UpdateSiteSettingsRequest replaces the editable storefront content.
// HeroMediaUUID references a previously uploaded media asset.
type UpdateSiteSettingsRequest struct {
	SalonName     string  `json:"salon_name" validate:"max=255"`
	Tagline       string  `json:"tagline" validate:"max=500"`
	AboutText     string  `json:"about_text" validate:"max=5000"`
	ContactEmail  string  `json:"contact_email" validate:"omitempty,email,max=255"`
	ContactPhone  string  `json:"contact_phone" validate:"max=30"`
	Address       string  `json:"address" validate:"max=500"`
	InstagramURL  string  `json:"instagram_url" validate:"omitempty,url,max=500"`
	TikTokURL     string  `json:"tiktok_url" validate:"omitempty,url,max=500"`
	BookingNote   string  `json:"booking_note" validate:"max=5000"`
	HeroMediaUUID *string `json:"hero_media_uuid" validate:"omitempty,uuid"`
}
