package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"conciergerie-backend/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(AppConfig.MySQLURL)
	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		AppConfig.DBUser, AppConfig.DBPass, AppConfig.DBHost, AppConfig.DBPort, AppConfig.DBName,
	), nil
}

// Migrate applies the schema in parent->child order on any gorm connection.
// Shared with the test harness, which runs it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Organisation{},
		&models.Admin{},
		&models.Unit{},
		&models.Contract{},
		&models.Reservation{},
		&models.Mission{},
		&models.ChecklistTemplate{},
		&models.ChecklistTemplateItem{},
		&models.MissionChecklistItem{},
		&models.Revenue{},
	)
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase ensures a default organisation and admin exist so a fresh
// install is usable.
func SeedDatabase() {
	var orgCount int64
	DB.Model(&models.Organisation{}).Count(&orgCount)
	var org models.Organisation
	if orgCount == 0 {
		org = models.Organisation{Name: "Default Conciergerie"}
		if err := DB.Create(&org).Error; err != nil {
			log.Printf("warning: failed to create default organisation: %v", err)
			return
		}
		log.Println("Default organisation seeded")
	} else {
		DB.Order("id ASC").First(&org)
	}

	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				OrganisationID: org.ID,
				FullName:       "Admin User",
				Username:       "admin@conciergerie.local",
				Password:       string(hash),
				Role:           models.RoleAdmin,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var unitCount int64
	DB.Model(&models.Unit{}).Count(&unitCount)
	if unitCount == 0 {
		units := []models.Unit{
			{OrganisationID: org.ID, Name: "Studio Vieux-Port", City: "Marseille", MaxGuests: 2},
			{OrganisationID: org.ID, Name: "T2 Canebière", City: "Marseille", MaxGuests: 4},
		}
		if err := DB.Create(&units).Error; err != nil {
			log.Printf("warning: failed to seed units: %v", err)
		} else {
			log.Println("Units seeded")

			rate := decimal.NewFromInt(20)
			contract := models.Contract{
				OrganisationID: org.ID,
				UnitID:         units[0].ID,
				CommissionRate: rate,
				Status:         models.ContractStatusActive,
				StartDate:      time.Now().AddDate(0, -1, 0),
				EndDate:        time.Now().AddDate(1, 0, 0),
			}
			if err := DB.Create(&contract).Error; err != nil {
				log.Printf("warning: failed to seed contract: %v", err)
			}
		}
	}
}
