package postgres

import (
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"Inkwell/pkg/bcrypt"
)

type seedCategory struct {
	Name        string
	Description string
	Slug        string
}

var defaultCategories = []seedCategory{
	{"Technology", "Tech news, tutorials, and reviews", "technology"},
	{"Lifestyle", "Life, health, and wellness", "lifestyle"},
	{"Business", "Business trends and strategies", "business"},
	{"Travel", "Travel tips and destinations", "travel"},
	{"Food", "Recipes and food reviews", "food"},
	{"Education", "Learning and development", "education"},
}

// Seed inserts the default categories and the bootstrap admin account when
// the tables are empty. Safe to run on every startup.
func Seed(db *sqlx.DB, log *logrus.Logger, hasher bcrypt.IBcrypt) error {
	if err := seedCategories(db, log); err != nil {
		return err
	}
	return seedAdminUser(db, log, hasher)
}

func seedCategories(db *sqlx.DB, log *logrus.Logger) error {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, category := range defaultCategories {
		_, err := db.Exec(
			`INSERT INTO categories (name, description, slug) VALUES ($1, $2, $3)`,
			category.Name, category.Description, category.Slug,
		)
		if err != nil {
			return err
		}
	}

	log.WithField("count", len(defaultCategories)).Info("Seeded default blog categories")
	return nil
}

func seedAdminUser(db *sqlx.DB, log *logrus.Logger, hasher bcrypt.IBcrypt) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM users WHERE id = $1`, adminEmail); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := hasher.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		`INSERT INTO users (id, username, password, role) VALUES ($1, $2, $3, 'Admin')`,
		adminEmail, "admin", hashedPassword,
	)
	if err != nil {
		return err
	}

	log.WithField("user_id", adminEmail).Info("Seeded admin account")
	return nil
}
