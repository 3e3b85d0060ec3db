package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/solangehq/maison-api/app/dto"
	"github.com/solangehq/maison-api/models"
	"github.com/solangehq/maison-api/repository"
	"github.com/solangehq/maison-api/utils"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MediaFlow defines operations for the media library.
type MediaFlow interface {
	UploadMedia(ctx context.Context, req *dto.UploadMediaRequest, metadata *ClientMetadata) (*dto.UploadMediaResponse, error)
	GetMedia(ctx context.Context, mediaUUID string) (*dto.MediaContent, error)
	ListMedia(ctx context.Context, limit, offset int) (*dto.ListMediaResponse, error)
	PreviewMedia(ctx context.Context, mediaUUID string) (*dto.MediaContent, error)
	DeleteMedia(ctx context.Context, mediaUUID string) error
}

// MediaFlowImpl implements MediaFlow.
type MediaFlowImpl struct {
	mediaRepo repository.MediaAssetRepository
	maxBytes  int64
}

// NewMediaFlow creates a new media flow instance. maxBytes bounds the
// decoded payload size; zero selects the default of 100 MiB.
func NewMediaFlow(mediaRepo repository.MediaAssetRepository, maxBytes int64) MediaFlow {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxMediaBytes
	}
	return &MediaFlowImpl{
		mediaRepo: mediaRepo,
		maxBytes:  maxBytes,
	}
}

// DefaultMaxMediaBytes bounds decoded uploads when no limit is configured.
const DefaultMaxMediaBytes = int64(100 * 1024 * 1024)

var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"video/mp4":  true,
	"video/webm": true,
}

// AllowedMediaTypes lists the accepted upload mime types, for error messages.
func AllowedMediaTypes() []string {
	return []string{"image/jpeg", "image/png", "image/webp", "image/gif", "video/mp4", "video/webm"}
}

// MediaPublicURL is the retrieval path for a stored asset.
func MediaPublicURL(assetUUID string) string {
	return "/api/v1/uploads/" + assetUUID
}

func (f *MediaFlowImpl) UploadMedia(ctx context.Context, req *dto.UploadMediaRequest, metadata *ClientMetadata) (*dto.UploadMediaResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request body is required", nil)
	}
	if strings.TrimSpace(req.Filename) == "" {
		return nil, NewBusinessError("INVALID_REQUEST", "filename is required", ErrFilenameRequired)
	}
	if req.DataURL == "" {
		return nil, NewBusinessError("INVALID_REQUEST", "data_url is required", ErrDataURLRequired)
	}

	parsed, err := ParseDataURL(req.DataURL)
	if err != nil {
		return nil, NewBusinessError("INVALID_DATA_URL", "content must be a base64 data URL", err)
	}
	if int64(len(parsed.Payload)) > f.maxBytes {
		return nil, NewBusinessErrorf("FILE_TOO_LARGE", "media exceeds maximum size of %d bytes", ErrMediaTooLarge, f.maxBytes)
	}
	if !allowedMediaTypes[parsed.MimeType] {
		return nil, NewBusinessErrorf("UNSUPPORTED_MEDIA_TYPE", "allowed media types: %s", ErrUnsupportedMedia, strings.Join(AllowedMediaTypes(), ", "))
	}

	storedName := fmt.Sprintf("%d-%s", utils.UTCNow().UnixMilli(), SanitizeFilename(req.Filename))

	asset := models.MediaAsset{
		OriginalFilename: req.Filename,
		StoredName:       storedName,
		MimeType:         parsed.MimeType,
		SizeBytes:        int64(len(parsed.Payload)),
		Payload:          parsed.Payload,
	}

	if err := f.mediaRepo.Save(ctx, &asset); err != nil {
		return nil, err
	}

	return &dto.UploadMediaResponse{
		UUID:             asset.UUID.String(),
		OriginalFilename: asset.OriginalFilename,
		StoredName:       asset.StoredName,
		MimeType:         asset.MimeType,
		SizeBytes:        asset.SizeBytes,
		URL:              MediaPublicURL(asset.UUID.String()),
		CreatedAt:        asset.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (f *MediaFlowImpl) GetMedia(ctx context.Context, mediaUUID string) (*dto.MediaContent, error) {
	if _, err := utils.ParseUUID(mediaUUID); err != nil {
		return nil, NewBusinessError("INVALID_REQUEST", "invalid media id", err)
	}

	asset, err := f.mediaRepo.ByUUID(ctx, mediaUUID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, NewBusinessError("MEDIA_NOT_FOUND", "media not found", ErrMediaNotFound)
	}

	mimeType := asset.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &dto.MediaContent{
		MimeType:  mimeType,
		SizeBytes: int64(len(asset.Payload)),
		Payload:   asset.Payload,
	}, nil
}

func (f *MediaFlowImpl) ListMedia(ctx context.Context, limit, offset int) (*dto.ListMediaResponse, error) {
	rows, err := f.mediaRepo.ListMetadata(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := f.mediaRepo.Count(ctx, models.MediaAssetFilter{})
	if err != nil {
		return nil, err
	}

	items := make([]dto.MediaAssetDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToMediaAssetDTO(*row, MediaPublicURL(row.UUID.String())))
	}

	return &dto.ListMediaResponse{Items: items, Total: total}, nil
}

func (f *MediaFlowImpl) PreviewMedia(ctx context.Context, mediaUUID string) (*dto.MediaContent, error) {
	content, err := f.GetMedia(ctx, mediaUUID)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(content.MimeType, "image/") {
		return nil, NewBusinessError("PREVIEW_UNAVAILABLE", "previews are only generated for images", nil)
	}

	img, _, err := image.Decode(bytes.NewReader(content.Payload))
	if err != nil {
		return nil, NewBusinessError("PREVIEW_FAILED", "failed to decode image", err)
	}

	thumb := resizeImage(img, 512)
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, thumb, &jpeg.Options{Quality: 75}); err != nil {
		return nil, NewBusinessError("PREVIEW_FAILED", "failed to encode preview", err)
	}

	return &dto.MediaContent{
		MimeType:  "image/jpeg",
		SizeBytes: int64(buf.Len()),
		Payload:   buf.Bytes(),
	}, nil
}

func (f *MediaFlowImpl) DeleteMedia(ctx context.Context, mediaUUID string) error {
	if _, err := utils.ParseUUID(mediaUUID); err != nil {
		return NewBusinessError("MEDIA_NOT_FOUND", "media not found", ErrMediaNotFound)
	}
	deleted, err := f.mediaRepo.DeleteByUUID(ctx, mediaUUID)
	if err != nil {
		return err
	}
	if !deleted {
		return NewBusinessError("MEDIA_NOT_FOUND", "media not found", ErrMediaNotFound)
	}
	return nil
}

func resizeImage(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	var nw, nh int
	if w >= h {
		nw = maxDim
		nh = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		nh = maxDim
		nw = int(float64(w) * float64(maxDim) / float64(h))
	}
	// Extreme aspect ratios truncate the short side to zero.
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	imagedraw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, imagedraw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
