package postgres

import (
	"errors"

	"github.com/expensecontrol/api/internal/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(limit, offset int) ([]*user.User, error) {
	var users []*user.User
	err := r.db.Order("created_at ASC").Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&user.User{}).Count(&total).Error
	return total, err
}

func (r *UserRepository) GetByID(id uuid.UUID) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.Model(&user.User{}).Where("email = ?", email)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ListExpenses(userID uuid.UUID, isPaid *bool) ([]user.ExpenseSummary, error) {
	q := r.db.Where("user_id = ?", userID)
	if isPaid != nil {
		q = q.Where("is_paid = ?", *isPaid)
	}

	expenses := make([]user.ExpenseSummary, 0)
	err := q.Order("created_at ASC").Order("id ASC").Find(&expenses).Error
	return expenses, err
}

func (r *UserRepository) Create(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *user.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&user.User{}).Error
}
