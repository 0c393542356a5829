package job

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"jewelstore-backend/internal/domains/product/model"
	"jewelstore-backend/internal/domains/product/repository"
	"jewelstore-backend/internal/infrastructure/storage"
	"jewelstore-backend/internal/shared"
	"jewelstore-backend/pkg/logger"
)

// ImageHandler runs the worker side of the image pipeline: resizing
// uploaded originals into serving variants, and purging the object
// store after a product is deleted.
type ImageHandler struct {
	repo      repository.ProductRepository
	minio     *storage.MinIOStorage
	processor *storage.ImageProcessor
}

func NewImageHandler(
	repo repository.ProductRepository,
	minioStorage *storage.MinIOStorage,
	processor *storage.ImageProcessor,
) *ImageHandler {
	return &ImageHandler{
		repo:      repo,
		minio:     minioStorage,
		processor: processor,
	}
}

// HandleProcessImage downloads the uploaded original, generates the
// thumbnail/medium/large variants next to it, and records the image
// row. The first image of a product becomes its primary image.
func (h *ImageHandler) HandleProcessImage(ctx context.Context, t *asynq.Task) error {
	var payload shared.ProductImagePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	productID, err := uuid.Parse(payload.ProductID)
	if err != nil {
		return fmt.Errorf("invalid product id %q: %w", payload.ProductID, err)
	}

	original, err := h.minio.Download(ctx, payload.ObjectKey)
	if err != nil {
		return fmt.Errorf("download original: %w", err)
	}

	variants, err := h.processor.ProcessImage(original)
	if err != nil {
		// A broken upload will never decode; retrying is pointless.
		logger.Error("image cannot be processed, dropping task", err, map[string]interface{}{
			"object_key": payload.ObjectKey,
		})
		return nil
	}

	prefix := path.Dir(payload.ObjectKey)
	urls := make(map[string]string, len(variants))
	for name, data := range variants {
		key := fmt.Sprintf("%s/%s.jpg", prefix, name)
		url, err := h.minio.Upload(ctx, key, data, "image/jpeg")
		if err != nil {
			return fmt.Errorf("upload %s variant: %w", name, err)
		}
		urls[name] = url
	}

	existing, err := h.repo.ListImages(ctx, productID)
	if err != nil {
		return fmt.Errorf("list images: %w", err)
	}

	img := &model.ProductImage{
		ID:           uuid.New(),
		ProductID:    productID,
		ObjectKey:    payload.ObjectKey,
		ThumbnailURL: urls["thumbnail"],
		MediumURL:    urls["medium"],
		LargeURL:     urls["large"],
		Position:     len(existing),
	}
	if err := h.repo.AddImage(ctx, img); err != nil {
		return fmt.Errorf("record image: %w", err)
	}

	if len(existing) == 0 {
		if err := h.repo.SetPrimaryImageURL(ctx, productID, urls["medium"]); err != nil {
			return fmt.Errorf("set primary image: %w", err)
		}
	}

	logger.Info("product image processed", map[string]interface{}{
		"product_id": productID,
		"variants":   len(variants),
	})
	return nil
}

// HandleDeleteImages purges every object under the product's prefix.
// The catalog rows are already gone by the time this runs.
func (h *ImageHandler) HandleDeleteImages(ctx context.Context, t *asynq.Task) error {
	var payload shared.ProductImagePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if strings.TrimSpace(payload.ProductID) == "" {
		return fmt.Errorf("empty product id in payload")
	}

	prefix := fmt.Sprintf("products/%s/", payload.ProductID)
	if err := h.minio.DeleteByPrefix(ctx, prefix); err != nil {
		return fmt.Errorf("purge %s: %w", prefix, err)
	}

	logger.Info("product images purged", map[string]interface{}{
		"product_id": payload.ProductID,
	})
	return nil
}
