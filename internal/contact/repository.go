package contact

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"contactbook/infrastructure"
)

type Repository interface {
	Create(ctx context.Context, c *Contact) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Contact, error)
	List(ctx context.Context, ownerID uuid.UUID, query string, limit, offset int) ([]*Contact, error)
	Update(ctx context.Context, c *Contact) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Contact) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Contact, error) {
	var c Contact
	err := r.db.WithContext(ctx).
		First(&c, "id = ? AND owner_id = ?", id, ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, infrastructure.ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, ownerID uuid.UUID, query string, limit, offset int) ([]*Contact, error) {
	tx := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if query != "" {
		like := "%" + query + "%"
		tx = tx.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
			like, like, like,
		)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if offset > 0 {
		tx = tx.Offset(offset)
	}

	var contacts []*Contact
	if err := tx.Order("last_name, first_name").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *repository) Update(ctx context.Context, c *Contact) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Delete(&Contact{}, "id = ? AND owner_id = ?", id, ownerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return infrastructure.ErrContactNotFound
	}
	return nil
}
