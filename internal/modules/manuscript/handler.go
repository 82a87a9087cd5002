package manuscript

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/middleware"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/modules/storage"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pagination"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pdfpage"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// maxFileBytes caps a single uploaded item (50 MiB).
const maxFileBytes = 50 << 20

type Handler struct {
	svc   *Service
	store *storage.ObjectStore
}

func NewHandler(svc *Service, store *storage.ObjectStore) *Handler {
	return &Handler{svc: svc, store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/manuscripts")
	grp.GET("/public", h.searchPublic)

	grp.POST("", authMW, middleware.RequireRoles(models.RoleAuthor), h.create)
	grp.GET("/my", authMW, h.findMine)
	grp.GET("/:id", authMW, h.findOne)

	editorial := middleware.RequireRoles(models.RoleEditor, models.RolePublisher, models.RoleAdmin)
	grp.GET("", authMW, editorial, h.list)
	grp.PATCH("/:id/status", authMW, editorial, h.updateStatus)
}

func (h *Handler) create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "multipart form required")
		return
	}

	dto, err := parseCreateForm(form)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	headers := form.File["files"]
	if len(headers) < minFiles {
		response.BadRequest(c, ErrTooFewFiles.Error())
		return
	}
	if h.store == nil {
		response.BadRequest(c, "object storage is not configured")
		return
	}

	itemTitles := form.Value["itemTitles"]
	itemDescriptions := form.Value["itemDescriptions"]

	files := make([]models.ManuscriptFile, 0, len(headers))
	for i, fh := range headers {
		payload, err := readAll(fh)
		if err != nil {
			response.BadRequest(c, "unreadable file: "+fh.Filename)
			return
		}

		pages := 0
		if strings.EqualFold(strings.TrimPrefix(filepathExt(fh.Filename), "."), "pdf") {
			pages = pdfpage.Count(payload)
		}

		url, err := h.store.Upload(c.Request.Context(), "manuscripts", fh.Filename, payload, fh.Header.Get("Content-Type"))
		if err != nil {
			response.InternalError(c, err)
			return
		}

		f := models.ManuscriptFile{FileName: fh.Filename, FileURL: url, PageCount: pages}
		if i < len(itemTitles) {
			f.ItemTitle = itemTitles[i]
		}
		if i < len(itemDescriptions) {
			f.ItemDescription = itemDescriptions[i]
		}
		files = append(files, f)
	}

	m, err := h.svc.Create(middleware.CurrentUserID(c), dto, files)
	if err != nil {
		if errors.Is(err, ErrTooFewFiles) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, m)
}

func (h *Handler) searchPublic(c *gin.Context) {
	filter := SearchFilter{
		Text:      c.Query("q"),
		Type:      c.Query("type"),
		IssueSlug: c.Query("issueSlug"),
	}
	items, meta, err := h.svc.SearchPublic(filter, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, meta)
}

func (h *Handler) findMine(c *gin.Context) {
	items, err := h.svc.FindMine(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) findOne(c *gin.Context) {
	detail, err := h.svc.FindOne(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if detail == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, detail)
}

func (h *Handler) list(c *gin.Context) {
	status := models.ManuscriptStatus(c.Query("status"))
	items, meta, err := h.svc.List(status, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, meta)
}

func (h *Handler) updateStatus(c *gin.Context) {
	var dto StatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.UpdateStatus(c.Param("id"), dto.Status)
	if err != nil {
		if errors.Is(err, ErrUnknownStatus) || errors.Is(err, ErrInvalidTransition) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if m == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, m)
}

// parseCreateForm maps the multipart submission fields onto the DTO.
func parseCreateForm(form *multipart.Form) (*CreateDTO, error) {
	dto := CreateDTO{
		Title:    formValue(form, "title"),
		Abstract: formValue(form, "abstract"),
		Type:     formValue(form, "type"),
		Status:   models.ManuscriptStatus(formValue(form, "status")),
		ImageURL: formValue(form, "imageUrl"),
		Comment:  formValue(form, "comment"),
	}
	if dto.Title == "" {
		return nil, errors.New("title is required")
	}
	if kw := formValue(form, "keywords"); kw != "" {
		for _, k := range strings.Split(kw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				dto.Keywords = append(dto.Keywords, k)
			}
		}
	}
	if al := formValue(form, "authorList"); al != "" {
		if err := json.Unmarshal([]byte(al), &dto.AuthorList); err != nil {
			return nil, errors.New("authorList must be valid JSON")
		}
	}
	return &dto, nil
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return strings.TrimSpace(vs[0])
	}
	return ""
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > maxFileBytes {
		return nil, errors.New("file too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxFileBytes))
}

func filepathExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}
