/*
Package booking 预订应用服务

新预订提交后广播 NEW_RESERVATION；状态真正进入 CONFIRMED 时
给预订用户写 RESERVATION_CONFIRMED。两种通知都在事务提交后尽力写入。
*/
package booking

import (
	"context"
	"fmt"

	notificationapp "restaurant/application/notification"
	"restaurant/domain/booking"
	"restaurant/domain/notification"
	"restaurant/domain/shared"
	"restaurant/domain/user"
)

type ApplicationService struct {
	bookings    booking.Repository
	users       user.Repository
	uowFactory  shared.UnitOfWorkFactory
	sink        notification.Sink
	transitions *shared.TransitionTable[booking.Status]
}

func NewApplicationService(
	bookings booking.Repository,
	users user.Repository,
	uowFactory shared.UnitOfWorkFactory,
	sink notification.Sink,
) *ApplicationService {
	return &ApplicationService{
		bookings:    bookings,
		users:       users,
		uowFactory:  uowFactory,
		sink:        sink,
		transitions: booking.Transitions(),
	}
}

func (s *ApplicationService) List(ctx context.Context, q ListQuery) ([]*Response, int64, shared.Page, error) {
	page := shared.NewPage(q.Page, q.Limit)

	filter := booking.Filter{UserID: q.UserID, NumberOfPeople: q.NumberOfPeople}
	if q.Status != "" {
		st, err := booking.ParseStatus(q.Status)
		if err != nil {
			return nil, 0, page, err
		}
		filter.Status = st
	}

	bookings, total, err := s.bookings.List(ctx, booking.ListCriteria{
		Filter:    filter,
		SortBy:    booking.ParseSortField(q.SortBy),
		SortOrder: shared.ParseSortOrder(q.SortOrder, shared.SortDesc),
		Page:      page,
	})
	if err != nil {
		return nil, 0, page, err
	}

	responses := make([]*Response, len(bookings))
	for i, b := range bookings {
		responses[i] = toResponse(b)
	}
	return responses, total, page, nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*Response, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(b), nil
}

func (s *ApplicationService) Create(ctx context.Context, req CreateRequest) (*Response, error) {
	if req.UserID == "" {
		return nil, shared.NewError(nil, shared.ErrInvalidInput, "booking", "userId", "userId is required")
	}

	var status booking.Status
	if req.Status != "" {
		st, err := booking.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	var b *booking.Booking
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
			return err
		}

		var err error
		if b, err = booking.NewBooking(req.UserID, req.NumberOfPeople, req.BookedAt, status); err != nil {
			return err
		}
		if err := s.bookings.Save(ctx, b); err != nil {
			return err
		}
		uow.RegisterNew(b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	notificationapp.Notify(ctx, s.sink, notification.Draft{
		Type: notification.TypeNewReservation,
		Message: fmt.Sprintf("New reservation for %d on %s",
			b.NumberOfPeople(), b.BookedAt().Format("2006-01-02 15:04")),
	})
	return toResponse(b), nil
}

func (s *ApplicationService) Update(ctx context.Context, id string, req UpdateRequest) (*Response, error) {
	patch := booking.Patch{NumberOfPeople: req.NumberOfPeople, BookedAt: req.BookedAt}
	if req.Status != nil {
		st, err := booking.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		patch.Status = &st
	}

	var (
		b         *booking.Booking
		confirmed bool
	)
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		if b, err = s.bookings.FindByID(ctx, id); err != nil {
			return err
		}
		if confirmed, err = b.Apply(patch, s.transitions); err != nil {
			return err
		}
		if err := s.bookings.Save(ctx, b); err != nil {
			return err
		}
		uow.RegisterDirty(b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if confirmed {
		userID := b.UserID()
		notificationapp.Notify(ctx, s.sink, notification.Draft{
			UserID: &userID,
			Type:   notification.TypeReservationConfirmed,
			Message: fmt.Sprintf("Your reservation for %s has been confirmed",
				b.BookedAt().Format("2006-01-02 15:04")),
		})
	}
	return toResponse(b), nil
}

func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	return s.bookings.Remove(ctx, id)
}

func toResponse(b *booking.Booking) *Response {
	return &Response{
		ID:             b.ID(),
		UserID:         b.UserID(),
		NumberOfPeople: b.NumberOfPeople(),
		BookedAt:       b.BookedAt(),
		Status:         string(b.Status()),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}
}
