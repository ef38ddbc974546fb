package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/AlejandroCopponi/esencia-retro/internal/util"
)

// maxUploadBytes caps product images at 10 MB.
const maxUploadBytes = 10 << 20

// maxImageWidth is the width product photos get scaled down to.
const maxImageWidth = 1600

type Handler struct {
	store  ObjectStore
	bucket string
}

func NewHandler(store ObjectStore, bucket string) *Handler {
	return &Handler{store: store, bucket: bucket}
}

// Upload receives one multipart file, downscales oversized images and
// returns the public URL for the product form to reference.
func (h *Handler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	if len(data) > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if shrunk, ok := shrinkImage(data); ok {
		data = shrunk
		ext = ".jpg"
	}

	base := util.Slugify(strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)))
	key := fmt.Sprintf("%s-%s%s", base, uuid.NewString(), ext)

	if err := h.store.Upload(c.Request.Context(), h.bucket, key, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": h.store.PublicURL(h.bucket, key)})
}

// shrinkImage re-encodes decodable images wider than maxImageWidth as
// JPEG. Anything undecodable is stored untouched.
func shrinkImage(data []byte) ([]byte, bool) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	if img.Bounds().Dx() <= maxImageWidth {
		return nil, false
	}
	scaled := resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 80}); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}
