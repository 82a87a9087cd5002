package legacy

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/middleware"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// 256 MiB covers multi-year dumps comfortably.
const maxDumpSize = 256 << 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/admin/legacy-import", authMW, middleware.RequireRoles(models.RoleAdmin))
	grp.POST("", h.importDump)
}

func (h *Handler) importDump(c *gin.Context) {
	fh, err := c.FormFile("dump")
	if err != nil {
		response.BadRequest(c, "a zip file field named dump is required")
		return
	}
	if fh.Size > maxDumpSize {
		response.BadRequest(c, "dump exceeds the size limit")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()

	payload, err := io.ReadAll(io.LimitReader(f, maxDumpSize))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		response.BadRequest(c, "dump is not a valid zip archive")
		return
	}

	report, err := h.svc.Import(zr)
	if err != nil {
		if errors.Is(err, ErrNoCollections) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, report)
}
