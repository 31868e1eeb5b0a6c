package Models

import (
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the database named by DB_DRIVER/DB_DSN (sqlite file by
// default) and runs migrations. The handle is kept in DB for the auth
// middleware; controllers receive it through their constructors.
func Connect() {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")

	var (
		connection *gorm.DB
		err        error
	)
	switch driver {
	case "mysql":
		if dsn == "" {
			log.Fatal("DB_DRIVER=mysql requires DB_DSN")
		}
		connection, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		if dsn == "" {
			dsn = "database.db"
		}
		connection, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = connection
	if err := Migrate(DB); err != nil {
		log.Fatal("Migration failed:", err)
	}
}

// Migrate creates/updates the schema. Identity tables first, then the
// template, then the tables that reference it.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Admin{},
		&OperationTeamMember{},
	); err != nil {
		return err
	}

	if err := db.AutoMigrate(&DefaultTask{}); err != nil {
		return err
	}

	// DailyTaskInstance and NewTask also own the many2many join tables
	return db.AutoMigrate(
		&DailyTaskInstance{},
		&NewTask{},
	)
}
