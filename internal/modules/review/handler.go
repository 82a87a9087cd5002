package review

import (
	"errors"
	"fmt"

	"github.com/CHIRGJAIN/journal-admin-sub000/internal/middleware"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/models"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/mail"
	"github.com/CHIRGJAIN/journal-admin-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type AssignDTO struct {
	ManuscriptID string `json:"manuscriptId" binding:"required"`
	ReviewerID   string `json:"reviewerId"   binding:"required"`
}

type SubmitDTO struct {
	Content  string                `json:"content"`
	Decision models.ReviewDecision `json:"decision" binding:"required"`
}

type Handler struct {
	svc    *Service
	sender *mail.Sender
}

func NewHandler(svc *Service, sender *mail.Sender) *Handler {
	return &Handler{svc: svc, sender: sender}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/reviews", authMW)

	grp.POST("/assign", middleware.RequireRoles(models.RoleEditor, models.RoleAdmin), h.assign)
	grp.PATCH("/:id/submit", middleware.RequireRoles(models.RoleReviewer), h.submit)
	grp.GET("/my", middleware.RequireRoles(models.RoleReviewer), h.findMine)
	grp.GET("/manuscript/:id",
		middleware.RequireRoles(models.RoleEditor, models.RolePublisher, models.RoleAdmin),
		h.findForManuscript)
}

func (h *Handler) assign(c *gin.Context) {
	var dto AssignDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	r, err := h.svc.Assign(dto.ManuscriptID, dto.ReviewerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrManuscriptNotFound), errors.Is(err, ErrReviewerNotFound):
			response.NotFoundMsg(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}

	if h.sender != nil && r.Reviewer != nil && r.Reviewer.Email != "" {
		h.sender.SendAsync(
			r.Reviewer.Email,
			"New review assignment",
			fmt.Sprintf("<p>Dear %s,</p><p>A manuscript has been assigned to you for review. Please visit your reviewer dashboard.</p>", r.Reviewer.Name),
		)
	}
	response.Created(c, r)
}

func (h *Handler) submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	r, err := h.svc.Submit(c.Param("id"), middleware.CurrentUserID(c), dto.Content, dto.Decision)
	if err != nil {
		switch {
		case errors.Is(err, ErrReviewNotFound):
			response.NotFound(c)
		case errors.Is(err, ErrNotYourReview):
			response.Forbidden(c)
		case errors.Is(err, ErrAlreadySubmitted):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, r)
}

func (h *Handler) findMine(c *gin.Context) {
	reviews, err := h.svc.FindByReviewer(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, reviews)
}

func (h *Handler) findForManuscript(c *gin.Context) {
	reviews, err := h.svc.FindForManuscript(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, reviews)
}
