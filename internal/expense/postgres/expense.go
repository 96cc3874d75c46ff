package postgres

import (
	"errors"
	"time"

	"github.com/expensecontrol/api/internal/expense"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpenseRepository implements expense.RepositoryAPI and the report source
// with GORM. Both paths compose their predicates through the same helper
// so listing and report generation can never disagree on what matches.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// applyFilter translates the optional predicates into conjunctive WHERE
// clauses. The latePayment=false branch is intentionally "paid OR not yet
// due", not the mere absence of the late condition.
func applyFilter(q *gorm.DB, isPaid, latePayment *bool, now time.Time) *gorm.DB {
	if isPaid != nil {
		q = q.Where("is_paid = ?", *isPaid)
	}
	if latePayment != nil {
		if *latePayment {
			q = q.Where("is_paid = ? AND due_date < ?", false, now)
		} else {
			q = q.Where("is_paid = ? OR due_date >= ?", true, now)
		}
	}
	return q
}

func (r *ExpenseRepository) filtered(f expense.Filter, now time.Time) *gorm.DB {
	q := r.db.Model(&expense.Expense{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.SubCategoryID != nil {
		q = q.Where("sub_category_id = ?", *f.SubCategoryID)
	}
	return applyFilter(q, f.IsPaid, f.LatePayment, now)
}

// Search computes count, sum and one page under the same predicate set and
// the same now, ordered by (created_at, id) so the window is stable.
func (r *ExpenseRepository) Search(f expense.Filter, now time.Time, limit, offset int) ([]*expense.Expense, int64, float64, error) {
	var total int64
	if err := r.filtered(f, now).Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	var totalAmount float64
	err := r.filtered(f, now).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalAmount).Error
	if err != nil {
		return nil, 0, 0, err
	}

	var expenses []*expense.Expense
	err = r.filtered(f, now).
		Order("created_at ASC").Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&expenses).Error
	if err != nil {
		return nil, 0, 0, err
	}

	return expenses, total, totalAmount, nil
}

// FindMatching resolves a report filter without pagination; owner and
// subcategory sets restrict with IN semantics when non-empty.
func (r *ExpenseRepository) FindMatching(f expense.ReportFilter, now time.Time) ([]*expense.Expense, error) {
	q := r.db.Model(&expense.Expense{})
	if len(f.UserIDs) > 0 {
		q = q.Where("user_id IN ?", f.UserIDs)
	}
	if len(f.SubCategoryIDs) > 0 {
		q = q.Where("sub_category_id IN ?", f.SubCategoryIDs)
	}
	q = applyFilter(q, f.IsPaid, f.LatePayment, now)

	var expenses []*expense.Expense
	err := q.Order("created_at ASC").Order("id ASC").Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) GetByID(id uuid.UUID) (*expense.Expense, error) {
	var e expense.Expense
	err := r.db.Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) UserExists(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Table("users").Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ExpenseRepository) SubCategoryExists(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Table("subcategories").Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ExpenseRepository) Create(e *expense.Expense) error {
	return r.db.Create(e).Error
}

func (r *ExpenseRepository) Update(e *expense.Expense) error {
	return r.db.Save(e).Error
}

func (r *ExpenseRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&expense.Expense{}).Error
}
