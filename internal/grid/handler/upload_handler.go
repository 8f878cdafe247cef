package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maham-nadeemm/APDS/internal/shared/storage"
)

// UploadHandler stores documentation attachments in object storage.
type UploadHandler struct {
	store *storage.Client
}

func NewUploadHandler(store *storage.Client) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload POST /uploads
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.store == nil {
		Error(c, 50300, "object storage is not configured")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required: "+err.Error())
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "open upload: "+err.Error())
		return
	}
	defer f.Close()

	key, err := h.store.Upload(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		f,
	)
	if err != nil {
		InternalError(c, "store upload: "+err.Error())
		return
	}
	Created(c, gin.H{"key": key})
}

// Download GET /uploads/:key/url
func (h *UploadHandler) Download(c *gin.Context) {
	if h.store == nil {
		Error(c, 50300, "object storage is not configured")
		return
	}

	url, err := h.store.PresignedURL(c.Request.Context(), c.Param("key"), 15*time.Minute)
	if err != nil {
		InternalError(c, "presign download: "+err.Error())
		return
	}
	Success(c, gin.H{"url": url})
}
