package contact

import (
	"fmt"
	"html/template"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/middleware"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/mail"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/pagination"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc        *Service
	sender     *mail.Sender
	adminEmail string
}

func NewHandler(svc *Service, sender *mail.Sender, adminEmail string) *Handler {
	return &Handler{svc: svc, sender: sender, adminEmail: adminEmail}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/contact-messages")
	grp.POST("", h.submit)

	admin := grp.Group("", authMW, middleware.RequireRoles(models.RoleAdmin))
	admin.GET("", h.list)
	admin.PATCH("/:id/read", h.markRead)
}

func (h *Handler) submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	msg, err := h.svc.Submit(&dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if h.sender != nil && h.adminEmail != "" {
		h.sender.SendAsync(
			h.adminEmail,
			"New contact message: "+msg.Subject,
			fmt.Sprintf("<p><b>%s</b> (%s) wrote:</p><p>%s</p>",
				template.HTMLEscapeString(msg.Name),
				template.HTMLEscapeString(msg.Email),
				template.HTMLEscapeString(msg.Message)),
		)
	}
	response.Created(c, msg)
}

func (h *Handler) list(c *gin.Context) {
	messages, meta, err := h.svc.List(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, messages, meta)
}

func (h *Handler) markRead(c *gin.Context) {
	msg, err := h.svc.MarkRead(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if msg == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, msg)
}
