package postgres

import (
	"errors"

	"github.com/expensecontrol/api/internal/category"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(limit, offset int) ([]*category.Category, error) {
	var categories []*category.Category
	err := r.db.Order("created_at ASC").Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&category.Category{}).Count(&total).Error
	return total, err
}

func (r *CategoryRepository) GetByID(id uuid.UUID) (*category.Category, error) {
	var cat category.Category
	err := r.db.Where("id = ?", id).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) ExistsByName(name string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.Model(&category.Category{}).Where("name = ?", name)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepository) ListSubCategories(categoryID uuid.UUID) ([]category.SubCategorySummary, error) {
	summaries := make([]category.SubCategorySummary, 0)
	err := r.db.Where("category_id = ?", categoryID).
		Order("created_at ASC").Order("id ASC").
		Find(&summaries).Error
	return summaries, err
}

func (r *CategoryRepository) Create(cat *category.Category) error {
	return r.db.Create(cat).Error
}

func (r *CategoryRepository) Update(cat *category.Category) error {
	return r.db.Save(cat).Error
}

func (r *CategoryRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&category.Category{}).Error
}
