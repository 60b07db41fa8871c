package config

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"trip_dispatch/internal/models"
)

// SchemaMigration records one applied migration. Whether a migration
// has run is decided by this table, never by probing the schema.
type SchemaMigration struct {
	Version   int    `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	AppliedAt time.Time
}

type migration struct {
	version int
	name    string
	run     func(tx *gorm.DB) error
}

// Ordered, append-only. Never renumber or edit an entry that has
// shipped; add a new one.
var migrations = []migration{
	{1, "create core schema", createCoreSchema},
	{2, "seed trip status taxonomy", seedStatusTaxonomy},
	{3, "seed roles", seedRoles},
	{4, "seed default admin user", seedDefaultAdmin},
}

// Migrate applies every migration that is not yet recorded in
// schema_migrations. Each migration runs in its own transaction
// together with its version record.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return err
	}

	for _, m := range migrations {
		var applied int64
		if err := db.Model(&SchemaMigration{}).Where("version = ?", m.version).Count(&applied).Error; err != nil {
			return err
		}
		if applied > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.run(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{Version: m.version, Name: m.name, AppliedAt: time.Now()}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
	}
	return nil
}

func createCoreSchema(tx *gorm.DB) error {
	return tx.AutoMigrate(
		&models.Region{},
		&models.Venue{},
		&models.Location{},
		&models.Event{},
		&models.TripStatus{},
		&models.TripSubStatus{},
		&models.Vehicle{},
		&models.Profile{},
		&models.Trip{},
		&models.TripStatusHistory{},
		&models.User{},
		&models.Role{},
		&models.RolePermission{},
	)
}

func seedStatusTaxonomy(tx *gorm.DB) error {
	statuses := []models.TripStatus{
		{Name: "Planned", PassengerCountRequired: false, SortOrder: 1},
		{Name: "Active", PassengerCountRequired: false, SortOrder: 2},
		{Name: "Arriving", PassengerCountRequired: false, SortOrder: 3},
		{Name: "Completed", PassengerCountRequired: true, SortOrder: 4},
		{Name: "Breakdown", PassengerCountRequired: false, SortOrder: 5},
		{Name: "Cancelled", PassengerCountRequired: false, SortOrder: 6},
	}
	for _, s := range statuses {
		if err := tx.Where(models.TripStatus{Name: s.Name}).FirstOrCreate(&s).Error; err != nil {
			return err
		}
	}

	subStatuses := []models.TripSubStatus{
		{Name: "Scheduled", LinkedStatus: "Planned", SortOrder: 10},
		{Name: "Ready for onboarding", LinkedStatus: "Planned", SortOrder: 20},
		{Name: "Enroute", LinkedStatus: "Active", SortOrder: 30},
		{Name: "At pit stop", LinkedStatus: "Active", SortOrder: 40},
		{Name: "Within 1 km of destination", LinkedStatus: "Active", SortOrder: 50},
		{Name: "Arrived", LinkedStatus: "Completed", SortOrder: 60},
		{Name: "Parked", LinkedStatus: "Completed", SortOrder: 70},
	}
	for _, s := range subStatuses {
		if err := tx.Where(models.TripSubStatus{Name: s.Name}).FirstOrCreate(&s).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedRoles(tx *gorm.DB) error {
	roles := []models.Role{
		{Name: "Super Admin", Description: "Full access to everything", IsSystemRole: true},
		{Name: "Region Admin", Description: "Full access to regional data", IsSystemRole: true},
		{Name: "Dispatcher", Description: "Can manage trips and vehicles"},
		{Name: "Bus Incharge", Description: "Can view trips and update active status"},
		{Name: "Volunteer", Description: "Base access"},
	}
	for _, r := range roles {
		if err := tx.Where(models.Role{Name: r.Name}).FirstOrCreate(&r).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedDefaultAdmin(tx *gorm.DB) error {
	var superAdmin models.Role
	if err := tx.Where("name = ?", "Super Admin").First(&superAdmin).Error; err != nil {
		return err
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:         "Super Admin",
		Email:        "admin@transport.com",
		PasswordHash: string(hash),
		Role:         "SUPER_ADMIN",
		RoleID:       &superAdmin.ID,
	}
	return tx.Where(models.User{Email: admin.Email}).FirstOrCreate(&admin).Error
}
