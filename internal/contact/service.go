package contact

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	contacts Repository
}

func NewService(contacts Repository) *Service {
	return &Service{contacts: contacts}
}

func (s *Service) Create(ctx context.Context, c *Contact) error {
	return s.contacts.Create(ctx, c)
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Contact, error) {
	return s.contacts.GetByID(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, query string, limit, offset int) ([]*Contact, error) {
	return s.contacts.List(ctx, ownerID, query, limit, offset)
}

func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, c *Contact) error {
	existing, err := s.contacts.GetByID(ctx, ownerID, c.ID)
	if err != nil {
		return err
	}
	c.OwnerID = existing.OwnerID
	c.CreatedAt = existing.CreatedAt
	return s.contacts.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.contacts.Delete(ctx, ownerID, id)
}

// UpcomingBirthdays returns the owner's contacts whose birthday falls within
// the next `days` days. The year boundary wraps.
func (s *Service) UpcomingBirthdays(ctx context.Context, ownerID uuid.UUID, days int) ([]*Contact, error) {
	all, err := s.contacts.List(ctx, ownerID, "", 0, 0)
	if err != nil {
		return nil, err
	}

	today := startOfDay(time.Now())
	var upcoming []*Contact
	for _, c := range all {
		if c.Birthday == nil {
			continue
		}
		if within := daysUntilBirthday(today, *c.Birthday); within >= 0 && within <= days {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}

// startOfDay returns midnight of t's date in t's own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysUntilBirthday(today, birthday time.Time) int {
	next := time.Date(today.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, today.Location())
	if next.Before(today) {
		next = next.AddDate(1, 0, 0)
	}
	return int(next.Sub(today).Hours() / 24)
}
