// Package contact 联系表单 API
package contact

import (
	"net/http"

	"restaurant/api/ctxutil"
	"restaurant/api/middleware"
	"restaurant/api/response"
	contactapp "restaurant/application/contact"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	contactService *contactapp.ApplicationService
}

func NewController(contactService *contactapp.ApplicationService) *Controller {
	return &Controller{contactService: contactService}
}

// RegisterRoutes 提交公开，查看和删除仅管理员
func (c *Controller) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	group := router.Group("/contacts")
	{
		group.POST("", c.CreateContact)

		admin := group.Group("", authn, middleware.RequireAdmin())
		admin.GET("", c.ListContacts)
		admin.GET("/:contactId", c.GetContact)
		admin.DELETE("/:contactId", c.DeleteContact)
	}
}

// CreateContact
// POST /api/v1/contacts
func (c *Controller) CreateContact(ctx *gin.Context) {
	var req contactapp.CreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	contact, err := c.contactService.Create(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, contact, "message sent successfully")
}

// ListContacts 缺省按 createdAt 倒序
// GET /api/v1/contacts
func (c *Controller) ListContacts(ctx *gin.Context) {
	var params ctxutil.PageParams
	if err := ctx.ShouldBindQuery(&params); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	contacts, total, page, err := c.contactService.List(ctx.Request.Context(), contactapp.ListQuery{
		SortBy:    params.SortBy,
		SortOrder: params.SortOrder,
		Page:      params.Page,
		Limit:     params.Limit,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, contacts, response.NewPagination(page, total), "contacts retrieved successfully")
}

// GetContact
// GET /api/v1/contacts/:contactId
func (c *Controller) GetContact(ctx *gin.Context) {
	contact, err := c.contactService.Get(ctx.Request.Context(), ctx.Param("contactId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, contact, "contact retrieved successfully")
}

// DeleteContact
// DELETE /api/v1/contacts/:contactId
func (c *Controller) DeleteContact(ctx *gin.Context) {
	if err := c.contactService.Delete(ctx.Request.Context(), ctx.Param("contactId")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "contact deleted successfully")
}
