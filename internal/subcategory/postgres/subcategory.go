package postgres

import (
	"errors"

	"github.com/expensecontrol/api/internal/subcategory"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubCategoryRepository struct {
	db *gorm.DB
}

func NewSubCategoryRepository(db *gorm.DB) subcategory.RepositoryAPI {
	return &SubCategoryRepository{db: db}
}

func (r *SubCategoryRepository) List(limit, offset int) ([]*subcategory.SubCategory, error) {
	var subCategories []*subcategory.SubCategory
	err := r.db.Order("created_at ASC").Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&subCategories).Error
	return subCategories, err
}

func (r *SubCategoryRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&subcategory.SubCategory{}).Count(&total).Error
	return total, err
}

func (r *SubCategoryRepository) GetByID(id uuid.UUID) (*subcategory.SubCategory, error) {
	var sc subcategory.SubCategory
	err := r.db.Where("id = ?", id).First(&sc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sc, nil
}

func (r *SubCategoryRepository) ExistsByNameInCategory(name string, categoryID, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.Model(&subcategory.SubCategory{}).
		Where("name = ? AND category_id = ?", name, categoryID)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *SubCategoryRepository) CategoryExists(categoryID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Table("categories").Where("id = ?", categoryID).Count(&count).Error
	return count > 0, err
}

func (r *SubCategoryRepository) ListExpenses(subCategoryID uuid.UUID, isPaid *bool) ([]subcategory.ExpenseSummary, error) {
	q := r.db.Where("sub_category_id = ?", subCategoryID)
	if isPaid != nil {
		q = q.Where("is_paid = ?", *isPaid)
	}

	expenses := make([]subcategory.ExpenseSummary, 0)
	err := q.Order("created_at ASC").Order("id ASC").Find(&expenses).Error
	return expenses, err
}

func (r *SubCategoryRepository) Create(sc *subcategory.SubCategory) error {
	return r.db.Create(sc).Error
}

func (r *SubCategoryRepository) Update(sc *subcategory.SubCategory) error {
	return r.db.Save(sc).Error
}

func (r *SubCategoryRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&subcategory.SubCategory{}).Error
}
