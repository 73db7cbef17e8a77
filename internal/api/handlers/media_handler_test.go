package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"devcollab/internal/media"
	"devcollab/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubMediaStore struct{}

func (stubMediaStore) Upload(ctx context.Context, ownerID, fileName, contentType string, reader io.Reader, size int64) (*media.Object, error) {
	return &media.Object{URL: "http://minio/bucket/" + ownerID, ObjectKey: ownerID}, nil
}

func (stubMediaStore) Remove(ctx context.Context, objectKey string) error { return nil }

func (stubMediaStore) PresignURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("http://minio/bucket/%s?signed=1&expires=%d", objectKey, int(expiry.Seconds())), nil
}

func TestMediaHandler_ResolveURL(t *testing.T) {
	logger.SetNewNop()

	app := fiber.New()
	handler := NewMediaHandler(stubMediaStore{})
	app.Get("/media/url", handler.ResolveURL)

	t.Run("resolves a key to a presigned link", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/media/url?key=alice/o1.png", nil)
		resp, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "alice/o1.png?signed=1")
	})

	t.Run("missing key is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/media/url", nil)
		resp, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
