package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/expensecontrol/api/internal/category"
	"github.com/expensecontrol/api/internal/expense"
	"github.com/expensecontrol/api/internal/subcategory"
	"github.com/expensecontrol/api/internal/user"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var clearData bool

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			// expenses first, the FKs cascade the other way
			for _, table := range []string{"expenses", "subcategories", "categories", "users"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedAll(db)
	},
}

func seedAll(db *gorm.DB) {
	food := seedCategory(db, "Alimentação", "Gastos com alimentação")
	transport := seedCategory(db, "Transporte", "Gastos com transporte")

	ifood := seedSubCategory(db, food, "Ifood", "Pedidos pelo aplicativo")
	restaurant := seedSubCategory(db, food, "Restaurante", "Refeições fora de casa")
	uber := seedSubCategory(db, transport, "Uber", "Corridas de aplicativo")
	seedSubCategory(db, transport, "Combustível", "Abastecimento do carro")

	owner := seedUser(db, "User", "teste@gmail.com")

	now := time.Now()
	paidAt := now.AddDate(0, 0, -3)

	seedExpense(db, owner, ifood, "Jantar de sexta", 54.90, now.AddDate(0, 0, -3), &paidAt)
	seedExpense(db, owner, restaurant, "Almoço de domingo", 120.00, now.AddDate(0, 0, 7), nil)
	seedExpense(db, owner, uber, "Corrida para o aeroporto", 38.50, now.AddDate(0, 0, -10), nil)

	fmt.Println("Sample data seeded successfully")
}

func seedCategory(db *gorm.DB, name, description string) uuid.UUID {
	var existing category.Category
	if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
		fmt.Printf("category already exists: %s\n", name)
		return existing.ID
	}

	c := category.Category{ID: uuid.New(), Name: name, Description: &description, CreatedAt: time.Now()}
	if err := db.Create(&c).Error; err != nil {
		log.Fatalf("failed to seed category %s: %v", name, err)
	}
	fmt.Printf("Seeded category: %s\n", name)
	return c.ID
}

func seedSubCategory(db *gorm.DB, categoryID uuid.UUID, name, description string) uuid.UUID {
	var existing subcategory.SubCategory
	if err := db.Where("name = ? AND category_id = ?", name, categoryID).First(&existing).Error; err == nil {
		fmt.Printf("subcategory already exists: %s\n", name)
		return existing.ID
	}

	sc := subcategory.SubCategory{
		ID:          uuid.New(),
		Name:        name,
		Description: &description,
		CategoryID:  categoryID,
		CreatedAt:   time.Now(),
	}
	if err := db.Create(&sc).Error; err != nil {
		log.Fatalf("failed to seed subcategory %s: %v", name, err)
	}
	fmt.Printf("Seeded subcategory: %s\n", name)
	return sc.ID
}

func seedUser(db *gorm.DB, name, email string) uuid.UUID {
	var existing user.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("user already exists: %s\n", email)
		return existing.ID
	}

	u := user.User{ID: uuid.New(), Name: name, Email: email, CreatedAt: time.Now()}
	if err := db.Create(&u).Error; err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	fmt.Printf("Seeded user: %s\n", email)
	return u.ID
}

func seedExpense(db *gorm.DB, userID, subCategoryID uuid.UUID, description string, amount float64, dueDate time.Time, paidAt *time.Time) {
	var count int64
	db.Model(&expense.Expense{}).Where("description = ? AND user_id = ?", description, userID).Count(&count)
	if count > 0 {
		fmt.Printf("expense already exists: %s\n", description)
		return
	}

	e := expense.Expense{
		ID:            uuid.New(),
		Description:   description,
		Amount:        amount,
		DueDate:       dueDate,
		PaidAt:        paidAt,
		IsPaid:        paidAt != nil,
		CreatedAt:     time.Now(),
		UserID:        userID,
		SubCategoryID: subCategoryID,
	}
	if err := db.Create(&e).Error; err != nil {
		log.Fatalf("failed to seed expense %s: %v", description, err)
	}
	fmt.Printf("Seeded expense: %s\n", description)
}
