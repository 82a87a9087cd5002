package blog

import (
	"errors"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/middleware"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pagination"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/blog")
	grp.GET("", h.list)
	grp.GET("/:id", h.get)

	staff := grp.Group("", authMW, middleware.RequireRoles(models.RoleEditor, models.RoleAdmin))
	staff.POST("", h.create)
	staff.PUT("/:id", h.update)
	staff.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	posts, meta, err := h.svc.List(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, posts, meta)
}

func (h *Handler) get(c *gin.Context) {
	post, err := h.svc.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, post)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, ErrDuplicateSlug) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, post)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, ErrDuplicateSlug) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, post)
}

func (h *Handler) delete(c *gin.Context) {
	ok, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFound(c)
		return
	}
	response.NoContent(c)
}
