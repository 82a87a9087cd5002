package storage

import (
	"errors"
	"io"
	"strings"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pdfpage"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const maxUploadSize = 50 << 20

var errStoreDisabled = errors.New("object storage is not configured")

// UploadResult is returned for a standalone file upload, used by clients
// that collect URLs before composing a larger request.
type UploadResult struct {
	URL       string `json:"url"`
	FileName  string `json:"fileName"`
	Size      int64  `json:"size"`
	PageCount int    `json:"pageCount"`
}

type Handler struct {
	store *ObjectStore
}

func NewHandler(store *ObjectStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/files", authMW)
	grp.POST("", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	if h.store == nil {
		response.InternalError(c, errStoreDisabled)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "a file field named file is required")
		return
	}
	if fh.Size > maxUploadSize {
		response.BadRequest(c, "file exceeds the size limit")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()
	payload, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	pages := 0
	if strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		pages = pdfpage.Count(payload)
	}

	url, err := h.store.Upload(c.Request.Context(), "uploads", fh.Filename,
		payload, fh.Header.Get("Content-Type"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, UploadResult{
		URL:       url,
		FileName:  fh.Filename,
		Size:      fh.Size,
		PageCount: pages,
	})
}
