package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/solangehq/maison-api/app/dto"
	businessflow "github.com/solangehq/maison-api/business_flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMediaFlow struct {
	upload  *dto.UploadMediaResponse
	content *dto.MediaContent
	getErr  error
}

func (s *stubMediaFlow) UploadMedia(ctx context.Context, req *dto.UploadMediaRequest, metadata *businessflow.ClientMetadata) (*dto.UploadMediaResponse, error) {
	return s.upload, nil
}

func (s *stubMediaFlow) GetMedia(ctx context.Context, mediaUUID string) (*dto.MediaContent, error) {
	return s.content, s.getErr
}

func (s *stubMediaFlow) ListMedia(ctx context.Context, limit, offset int) (*dto.ListMediaResponse, error) {
	return &dto.ListMediaResponse{}, nil
}

func (s *stubMediaFlow) PreviewMedia(ctx context.Context, mediaUUID string) (*dto.MediaContent, error) {
	return s.content, s.getErr
}

func (s *stubMediaFlow) DeleteMedia(ctx context.Context, mediaUUID string) error {
	return nil
}

func TestMediaHandlerUploadReturnsOK(t *testing.T) {
	flow := &stubMediaFlow{upload: &dto.UploadMediaResponse{
		UUID:     "0b0d3a58-6c1f-4c3e-9f1a-1f2d3c4b5a69",
		MimeType: "image/png",
		URL:      "/api/v1/uploads/0b0d3a58-6c1f-4c3e-9f1a-1f2d3c4b5a69",
	}}
	h := NewMediaHandler(flow)

	app := fiber.New()
	app.Post("/api/v1/admin/uploads", h.Upload)

	body := `{"filename":"photo.png","data_url":"data:image/png;base64,iVBORw0KGgo="}`
	req := httptest.NewRequest("POST", "/api/v1/admin/uploads", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMediaHandlerServeRejectsMalformedID(t *testing.T) {
	flow := &stubMediaFlow{
		getErr: businessflow.NewBusinessError("INVALID_REQUEST", "invalid media id", nil),
	}
	h := NewMediaHandler(flow)

	app := fiber.New()
	app.Get("/api/v1/uploads/:uuid", h.Serve)

	req := httptest.NewRequest("GET", "/api/v1/uploads/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
