package issue

import (
	"errors"
	"strconv"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/middleware"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pagination"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/issues")
	grp.GET("", h.list)
	grp.GET("/latest", h.latest)
	grp.GET("/featured-manuscripts", h.featured)
	grp.GET("/:id", h.get)

	editorial := middleware.RequireRoles(models.RoleEditor, models.RolePublisher, models.RoleAdmin)
	authed := grp.Group("", authMW, editorial)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.DELETE("/:id", h.delete)
	authed.POST("/:id/manuscripts", h.addManuscript)
	authed.DELETE("/:id/manuscripts/:manuscriptId", h.removeManuscript)
	authed.POST("/:id/publish", h.publish)
	authed.POST("/:id/archive", h.archive)
}

// guardError maps the service's precondition failures onto the API.
func guardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrDuplicateNumber), errors.Is(err, ErrDuplicateSlug):
		response.Conflict(c, err.Error())
	case errors.Is(err, ErrImmutable), errors.Is(err, ErrAlreadyArchived),
		errors.Is(err, ErrNoManuscripts), errors.Is(err, ErrNoAcceptedManuscript),
		errors.Is(err, ErrManuscriptNotAccepted), errors.Is(err, ErrManuscriptAlreadyAdded),
		errors.Is(err, ErrManuscriptNotInIssue):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrManuscriptNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFoundMsg(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	iss, err := h.svc.Create(&dto)
	if err != nil {
		guardError(c, err)
		return
	}
	response.Created(c, iss)
}

func (h *Handler) list(c *gin.Context) {
	filter := ListFilter{
		Year:   atoiOr(c.Query("year"), 0),
		Volume: atoiOr(c.Query("volume"), 0),
		Status: models.IssueStatus(c.Query("status")),
	}
	issues, meta, err := h.svc.List(filter, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, issues, meta)
}

func (h *Handler) latest(c *gin.Context) {
	issues, err := h.svc.Latest(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, issues)
}

func (h *Handler) featured(c *gin.Context) {
	featured, err := h.svc.FeaturedManuscripts()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, featured)
}

func (h *Handler) get(c *gin.Context) {
	iss, err := h.svc.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if iss == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, iss)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	iss, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		guardError(c, err)
		return
	}
	if iss == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, iss)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		guardError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) addManuscript(c *gin.Context) {
	var dto AddManuscriptDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	iss, err := h.svc.AddManuscript(c.Param("id"), dto.ManuscriptID)
	if err != nil {
		guardError(c, err)
		return
	}
	if iss == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, iss)
}

func (h *Handler) removeManuscript(c *gin.Context) {
	iss, err := h.svc.RemoveManuscript(c.Param("id"), c.Param("manuscriptId"))
	if err != nil {
		guardError(c, err)
		return
	}
	if iss == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, iss)
}

func (h *Handler) publish(c *gin.Context) {
	iss, err := h.svc.Publish(c.Param("id"))
	if err != nil {
		guardError(c, err)
		return
	}
	if iss == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, iss)
}

func (h *Handler) archive(c *gin.Context) {
	iss, err := h.svc.Archive(c.Param("id"))
	if err != nil {
		guardError(c, err)
		return
	}
	if iss == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, iss)
}

func atoiOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
