package service

import (
	"context"
	"time"

	"github.com/reservetable/reservetable-go/internal/model"
)

// Counter exposes the aggregate count of a stored collection.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// LoginCounter counts users whose last login falls in a time window.
type LoginCounter interface {
	CountLoginsBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// AdminService assembles the admin dashboard summary.
type AdminService struct {
	users        Counter
	hotels       Counter
	reservations Counter
	logins       LoginCounter
}

// NewAdminService creates a new AdminService.
func NewAdminService(users, hotels, reservations Counter, logins LoginCounter) *AdminService {
	return &AdminService{
		users:        users,
		hotels:       hotels,
		reservations: reservations,
		logins:       logins,
	}
}

// DashboardSummary returns the platform-wide counters plus the number of
// users who logged in today (server-local midnight to midnight).
func (s *AdminService) DashboardSummary(ctx context.Context) (model.DashboardSummary, error) {
	var summary model.DashboardSummary
	var err error

	if summary.Users, err = s.users.Count(ctx); err != nil {
		return model.DashboardSummary{}, err
	}
	if summary.Hotels, err = s.hotels.Count(ctx); err != nil {
		return model.DashboardSummary{}, err
	}
	if summary.Reservations, err = s.reservations.Count(ctx); err != nil {
		return model.DashboardSummary{}, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	if summary.TodayLogins, err = s.logins.CountLoginsBetween(ctx, today, tomorrow); err != nil {
		return model.DashboardSummary{}, err
	}

	return summary, nil
}
