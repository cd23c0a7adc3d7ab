package bundler

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Build represents one bundling run.
type Build struct {
	ID        string `gorm:"primaryKey"`
	Version   string
	StartedAt time.Time
}

// SourceFile stores the original source file contents.
type SourceFile struct {
	FileName string `gorm:"primaryKey"`
	Contents string
	Hash     string `gorm:"index"`
}

// Expansion stores the record stream produced from a source file.
type Expansion struct {
	FileName    string `gorm:"primaryKey"`
	Hash        string
	ConfigHash  string
	BuildID     string `gorm:"index"`
	Records     string
	LabelCount  int
	BranchCount int
}

// LabelRef is the cross reference of one generated label.
type LabelRef struct {
	FileName  string `gorm:"primaryKey;index"`
	LabelName string `gorm:"primaryKey"`
	LabelID   int
	DefinedAt int
	Branches  int
}

// getMigrations returns the list of migrations for the bundle database.
func getMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202610150001",
			Migrate: func(tx *gorm.DB) error {
				// Create initial schema.
				return tx.AutoMigrate(
					&Build{},
					&SourceFile{},
					&Expansion{},
					&LabelRef{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				// Drop all tables.
				return tx.Migrator().DropTable(
					&LabelRef{},
					&Expansion{},
					&SourceFile{},
					&Build{},
				)
			},
		},
		{
			ID: "202610160001",
			Migrate: func(tx *gorm.DB) error {
				// Expansions depend on the expander options as well as the source.
				if tx.Migrator().HasColumn(&Expansion{}, "ConfigHash") {
					return nil
				}
				return tx.Migrator().AddColumn(&Expansion{}, "ConfigHash")
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropColumn(&Expansion{}, "ConfigHash")
			},
		},
	}
}

// Migrate performs database migrations using gormigrate.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, getMigrations())
	return m.Migrate()
}

// CheckMigration checks if the database schema is up to date.
func CheckMigration(db *gorm.DB) (bool, error) {
	// If the migrations table doesn't exist yet nothing has been applied.
	// Use a silent logger to avoid spurious warnings on fresh databases.
	var lastMigration string
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Table(gormigrate.DefaultOptions.TableName).
		Select("id").
		Order("id DESC").
		Limit(1).
		Scan(&lastMigration).Error

	if err != nil {
		return false, nil
	}

	migrations := getMigrations()
	if len(migrations) == 0 {
		return true, nil
	}

	// The last migration in our list should match the last applied migration.
	expectedLastID := migrations[len(migrations)-1].ID
	return lastMigration == expectedLastID, nil
}
