// Package booking 餐桌预订 API
package booking

import (
	"net/http"

	"restaurant/api/ctxutil"
	"restaurant/api/middleware"
	"restaurant/api/response"
	bookingapp "restaurant/application/booking"
	"restaurant/pkg/errors"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	bookingService *bookingapp.ApplicationService
}

func NewController(bookingService *bookingapp.ApplicationService) *Controller {
	return &Controller{bookingService: bookingService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup, authn gin.HandlerFunc) {
	bookingGroup := router.Group("/bookings", authn)
	{
		bookingGroup.GET("", c.ListBookings)
		bookingGroup.POST("", c.CreateBooking)
		bookingGroup.GET("/:bookingId", c.GetBooking)
		bookingGroup.PATCH("/:bookingId", middleware.RequireAdmin(), c.UpdateBooking)
		bookingGroup.DELETE("/:bookingId", c.DeleteBooking)
	}
}

type listParams struct {
	ctxutil.PageParams
	Status         string `form:"status" binding:"omitempty,booking_status"`
	UserID         string `form:"userId"`
	NumberOfPeople int    `form:"numberOfPeople" binding:"omitempty,min=1,max=100"`
}

// ListBookings 普通用户只能看到自己的预订
// GET /api/v1/bookings
func (c *Controller) ListBookings(ctx *gin.Context) {
	var params listParams
	if err := ctx.ShouldBindQuery(&params); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	userID := params.UserID
	if principal, _ := ctxutil.PrincipalFrom(ctx); !principal.IsAdmin() {
		userID = principal.UserID
	}

	bookings, total, page, err := c.bookingService.List(ctx.Request.Context(), bookingapp.ListQuery{
		Status:         params.Status,
		UserID:         userID,
		NumberOfPeople: params.NumberOfPeople,
		SortBy:         params.SortBy,
		SortOrder:      params.SortOrder,
		Page:           params.Page,
		Limit:          params.Limit,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, bookings, response.NewPagination(page, total), "bookings retrieved successfully")
}

// GetBooking
// GET /api/v1/bookings/:bookingId
func (c *Controller) GetBooking(ctx *gin.Context) {
	booking, err := c.bookingService.Get(ctx.Request.Context(), ctx.Param("bookingId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !ctxutil.CanAccess(ctx, booking.UserID) {
		response.HandleAppError(ctx, errors.Forbidden("You can only access your own bookings"))
		return
	}

	response.HandleSuccess(ctx, booking, "booking retrieved successfully")
}

// CreateBooking 普通用户只能为自己预订
// POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	var req bookingapp.CreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	if principal, _ := ctxutil.PrincipalFrom(ctx); !principal.IsAdmin() {
		req.UserID = principal.UserID
	}

	booking, err := c.bookingService.Create(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, booking, "booking created successfully")
}

// UpdateBooking 状态变化经过预订迁移表校验
// PATCH /api/v1/bookings/:bookingId
func (c *Controller) UpdateBooking(ctx *gin.Context) {
	var req bookingapp.UpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	booking, err := c.bookingService.Update(ctx.Request.Context(), ctx.Param("bookingId"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, booking, "booking updated successfully")
}

// DeleteBooking 本人或管理员
// DELETE /api/v1/bookings/:bookingId
func (c *Controller) DeleteBooking(ctx *gin.Context) {
	id := ctx.Param("bookingId")
	booking, err := c.bookingService.Get(ctx.Request.Context(), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if !ctxutil.CanAccess(ctx, booking.UserID) {
		response.HandleAppError(ctx, errors.Forbidden("You can only delete your own bookings"))
		return
	}

	if err := c.bookingService.Delete(ctx.Request.Context(), id); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "booking deleted successfully")
}
