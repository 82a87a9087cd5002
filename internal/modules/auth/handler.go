package auth

import (
	"errors"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/middleware"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pagination"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc          *Service
	cookieMaxAge int
	secureCookie bool
}

func NewHandler(svc *Service, cookieMaxAge int, secureCookie bool) *Handler {
	return &Handler{svc: svc, cookieMaxAge: cookieMaxAge, secureCookie: secureCookie}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/auth")
	grp.POST("/register", h.register)
	grp.POST("/login", h.login)
	grp.GET("/profile", authMW, h.profile)

	users := rg.Group("/users", authMW, middleware.RequireRoles(models.RoleAdmin))
	users.GET("", h.listUsers)
	users.PATCH("/:id/approve", h.moderate)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, u)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, u, err := h.svc.Login(dto.Email, dto.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.BadRequest(c, err.Error())
		case errors.Is(err, ErrNotApproved):
			response.Forbidden(c)
		default:
			response.InternalError(c, err)
		}
		return
	}
	c.SetCookie(middleware.CookieName, token, h.cookieMaxAge, "/", "", h.secureCookie, true)
	response.OK(c, LoginResult{Token: token, User: u})
}

func (h *Handler) profile(c *gin.Context) {
	u, err := h.svc.Profile(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, u)
}

func (h *Handler) moderate(c *gin.Context) {
	var dto ModerateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		// Bare PATCH approves; the dashboard sends no body for the common case.
		dto.Status = models.UserApproved
	}
	u, err := h.svc.Moderate(c.Param("id"), dto.Status)
	if err != nil {
		if errors.Is(err, ErrBadStatus) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, u)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, meta, err := h.svc.ListUsers(c.Query("role"), c.Query("status"), pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, users, meta)
}
