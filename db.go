package main

import (
	"log"
	"os"
	"strings"

	"kosman/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	// References are validated in the handlers; rows for ended rentals keep
	// pointing at their room and tenant without blocking deletes.
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true).
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		migrateAll(db)
	}
	seedDB()
}

// migrateAll runs AutoMigrate model by model so a failure on one doesn't
// block the others, then applies the constraints GORM tags cannot express.
func migrateAll(g *gorm.DB) {
	for _, m := range []interface{}{
		&models.User{},
		&models.Room{},
		&models.Tenant{},
		&models.Rental{},
		&models.Bill{},
		&models.ProofUpload{},
		&models.Maintenance{},
		&models.Transaction{},
		&models.Category{},
	} {
		if err := g.AutoMigrate(m); err != nil {
			log.Printf("migration warning (%T): %v", m, err)
		}
	}
	if err := ensureSewaBillIndex(g); err != nil {
		log.Printf("warning: ensuring sewa bill unique index failed: %v", err)
	}
}

// ensureSewaBillIndex enforces at most one sewa bill per rental and period.
// Partial unique indexes have no GORM tag, so this is raw DDL; the WHERE
// clause leaves tambahan bills unconstrained. Works on Postgres and sqlite.
func ensureSewaBillIndex(g *gorm.DB) error {
	return g.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_bills_sewa_period
		ON bills(rental_id, bulan, tahun) WHERE tipe = 'sewa'`).Error
}

// defaultCategories are seeded on startup so the ledger's category check
// works out of the box. Matches the categories the app posts to itself
// (sewa on settlement, perbaikan on maintenance completion).
var defaultCategories = []models.Category{
	{Nama: "sewa", Tipe: models.TrxPemasukan},
	{Nama: "listrik", Tipe: models.TrxPengeluaran},
	{Nama: "air", Tipe: models.TrxPengeluaran},
	{Nama: "internet", Tipe: models.TrxPengeluaran},
	{Nama: "perbaikan", Tipe: models.TrxPengeluaran},
	{Nama: "gaji", Tipe: models.TrxPengeluaran},
	{Nama: "kebersihan", Tipe: models.TrxPengeluaran},
	{Nama: "keamanan", Tipe: models.TrxPengeluaran},
	{Nama: "lainnya", Tipe: models.CategoryBoth},
}

func seedDB() {
	for _, cat := range defaultCategories {
		var cnt int64
		db.Model(&models.Category{}).Where("nama = ?", cat.Nama).Count(&cnt)
		if cnt == 0 {
			if err := db.Create(&cat).Error; err != nil {
				log.Printf("failed to seed category %s: %v", cat.Nama, err)
			}
		}
	}
	ensureUploadBase()
}

// ensureUploadBase creates the base directory for proof-of-payment files.
func ensureUploadBase() {
	base := uploadBaseDir()
	if err := os.MkdirAll(base, 0755); err != nil {
		log.Printf("failed to create upload base dir %s: %v", base, err)
	}
}

// uploadBaseDir returns the local directory proof files are written to
// (configurable via UPLOAD_BASE). The same directory is served at /uploads.
func uploadBaseDir() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}
