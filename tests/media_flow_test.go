package tests

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/solangehq/maison-api/app/dto"
	businessflow "github.com/solangehq/maison-api/business_flow"
	"github.com/solangehq/maison-api/repository"
	testingutil "github.com/solangehq/maison-api/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		mediaRepo := repository.NewMediaAssetRepository(testDB.DB)
		flow := businessflow.NewMediaFlow(mediaRepo, 0)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		storedCount := func(t *testing.T) int64 {
			result, err := flow.ListMedia(ctx, 1, 0)
			require.NoError(t, err)
			return result.Total
		}

		t.Run("UploadSuccess", func(t *testing.T) {
			result, err := flow.UploadMedia(ctx, &dto.UploadMediaRequest{
				Filename: "hero image.png",
				DataURL:  testingutil.PNGDataURL(),
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.NotEmpty(t, result.UUID)
			assert.Equal(t, "hero image.png", result.OriginalFilename)
			assert.Equal(t, "image/png", result.MimeType)
			assert.Contains(t, result.StoredName, "hero-image.png")
			assert.Equal(t, "/api/v1/uploads/"+result.UUID, result.URL)
			assert.Positive(t, result.SizeBytes)
		})

		t.Run("UploadRejectsMissingFilename", func(t *testing.T) {
			before := storedCount(t)
			_, err := flow.UploadMedia(ctx, &dto.UploadMediaRequest{
				Filename: "   ",
				DataURL:  testingutil.PNGDataURL(),
			}, metadata)
			require.Error(t, err)
			var bizErr *businessflow.BusinessError
			require.ErrorAs(t, err, &bizErr)
			assert.Equal(t, "INVALID_REQUEST", bizErr.Code)
			assert.Equal(t, before, storedCount(t))
		})

		t.Run("UploadRejectsPlainBase64", func(t *testing.T) {
			before := storedCount(t)
			_, err := flow.UploadMedia(ctx, &dto.UploadMediaRequest{
				Filename: "photo.png",
				DataURL:  base64.StdEncoding.EncodeToString([]byte("not a data url")),
			}, metadata)
			require.Error(t, err)
			var bizErr *businessflow.BusinessError
			require.ErrorAs(t, err, &bizErr)
			assert.Equal(t, "INVALID_DATA_URL", bizErr.Code)
			assert.True(t, businessflow.IsInvalidDataURL(err))
			assert.Equal(t, before, storedCount(t))
		})

		t.Run("UploadRejectsPDF", func(t *testing.T) {
			before := storedCount(t)
			content := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.4"))
			_, err := flow.UploadMedia(ctx, &dto.UploadMediaRequest{
				Filename: "contract.pdf",
				DataURL:  content,
			}, metadata)
			require.Error(t, err)
			var bizErr *businessflow.BusinessError
			require.ErrorAs(t, err, &bizErr)
			assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", bizErr.Code)
			assert.True(t, businessflow.IsUnsupportedMedia(err))
			assert.Equal(t, before, storedCount(t))
		})

		t.Run("UploadRejectsOversizedPayload", func(t *testing.T) {
			before := storedCount(t)
			tiny := businessflow.NewMediaFlow(mediaRepo, 4)
			_, err := tiny.UploadMedia(ctx, &dto.UploadMediaRequest{
				Filename: "big.png",
				DataURL:  testingutil.PNGDataURL(),
			}, metadata)
			require.Error(t, err)
			var bizErr *businessflow.BusinessError
			require.ErrorAs(t, err, &bizErr)
			assert.Equal(t, "FILE_TOO_LARGE", bizErr.Code)
			assert.True(t, businessflow.IsMediaTooLarge(err))
			assert.Equal(t, before, storedCount(t))
		})

		t.Run("GetMediaRoundTrip", func(t *testing.T) {
			uploaded, err := flow.UploadMedia(ctx, &dto.UploadMediaRequest{
				Filename: "gallery.png",
				DataURL:  testingutil.PNGDataURL(),
			}, metadata)
			require.NoError(t, err)

			content, err := flow.GetMedia(ctx, uploaded.UUID)
			require.NoError(t, err)
			require.NotNil(t, content)
			assert.Equal(t, "image/png", content.MimeType)
			assert.Equal(t, uploaded.SizeBytes, content.SizeBytes)

			raw := testingutil.PNGDataURL()
			expected, err := base64.StdEncoding.DecodeString(raw[strings.IndexByte(raw, ',')+1:])
			require.NoError(t, err)
			assert.Equal(t, expected, content.Payload)
		})

		t.Run("GetMediaNotFound", func(t *testing.T) {
			_, err := flow.GetMedia(ctx, testingutil.GenerateUUID())
			require.Error(t, err)
			assert.True(t, businessflow.IsMediaNotFound(err))
		})

		t.Run("GetMediaMalformedUUID", func(t *testing.T) {
			_, err := flow.GetMedia(ctx, "not-a-uuid")
			require.Error(t, err)
			var bizErr *businessflow.BusinessError
			require.ErrorAs(t, err, &bizErr)
			assert.Equal(t, "INVALID_REQUEST", bizErr.Code)
		})

		t.Run("ListMedia", func(t *testing.T) {
			result, err := flow.ListMedia(ctx, 50, 0)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.GreaterOrEqual(t, result.Total, int64(2))
			require.NotEmpty(t, result.Items)
			for _, item := range result.Items {
				assert.NotEmpty(t, item.UUID)
				assert.NotEmpty(t, item.URL)
			}
		})

		t.Run("DeleteMedia", func(t *testing.T) {
			uploaded, err := flow.UploadMedia(ctx, &dto.UploadMediaRequest{
				Filename: "temp.png",
				DataURL:  testingutil.PNGDataURL(),
			}, metadata)
			require.NoError(t, err)

			require.NoError(t, flow.DeleteMedia(ctx, uploaded.UUID))

			err = flow.DeleteMedia(ctx, uploaded.UUID)
			require.Error(t, err)
			assert.True(t, businessflow.IsMediaNotFound(err))
		})

		t.Run("PreviewUnavailableForVideo", func(t *testing.T) {
			content := "data:video/mp4;base64," + base64.StdEncoding.EncodeToString([]byte("ftypmp42"))
			uploaded, err := flow.UploadMedia(ctx, &dto.UploadMediaRequest{
				Filename: "clip.mp4",
				DataURL:  content,
			}, metadata)
			require.NoError(t, err)

			_, err = flow.PreviewMedia(ctx, uploaded.UUID)
			require.Error(t, err)
			var bizErr *businessflow.BusinessError
			require.ErrorAs(t, err, &bizErr)
			assert.Equal(t, "PREVIEW_UNAVAILABLE", bizErr.Code)
		})

		t.Run("PreviewFailsOnTruncatedImage", func(t *testing.T) {
			uploaded, err := flow.UploadMedia(ctx, &dto.UploadMediaRequest{
				Filename: "broken.png",
				DataURL:  testingutil.PNGDataURL(),
			}, metadata)
			require.NoError(t, err)

			_, err = flow.PreviewMedia(ctx, uploaded.UUID)
			require.Error(t, err)
			var bizErr *businessflow.BusinessError
			require.ErrorAs(t, err, &bizErr)
			assert.Equal(t, "PREVIEW_FAILED", bizErr.Code)
		})

		return nil
	})
	require.NoError(t, err)
}
