package dto

// UploadMediaRequest is the JSON body for an admin upload. DataURL is a
// base64 data URL, e.g. "data:image/png;base64,....".
type UploadMediaRequest struct {
	Filename string `json:"filename" validate:"required,min=1,max=255"`
	DataURL  string `json:"data_url" validate:"required"`
}

// UploadMediaResponse represents a successful media upload response.
type UploadMediaResponse struct {
	UUID             string `json:"uuid"`
	OriginalFilename string `json:"original_filename"`
	StoredName       string `json:"stored_name"`
	MimeType         string `json:"mime_type"`
	SizeBytes        int64  `json:"size_bytes"`
	URL              string `json:"url"`
	CreatedAt        string `json:"created_at"`
}

// MediaAssetDTO is a payload-free view of a stored asset.
type MediaAssetDTO struct {
	UUID             string `json:"uuid"`
	OriginalFilename string `json:"original_filename"`
	StoredName       string `json:"stored_name"`
	MimeType         string `json:"mime_type"`
	SizeBytes        int64  `json:"size_bytes"`
	URL              string `json:"url"`
	CreatedAt        string `json:"created_at"`
}

// ListMediaResponse is the admin media library listing, newest first.
type ListMediaResponse struct {
	Items []MediaAssetDTO `json:"items"`
	Total int64           `json:"total"`
}

// MediaContent carries raw bytes and headers for a retrieval response.
type MediaContent struct {
	MimeType  string `json:"-"`
	SizeBytes int64  `json:"-"`
	Payload   []byte `json:"-"`
}
