package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/jara-travels/booking_api/model"
	"github.com/jara-travels/booking_api/shared"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "booking_api"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			host, user, password, dbname, port, sslmode)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				if pingErr := sqlDB.Ping(); pingErr == nil {
					break
				} else {
					err = pingErr
				}
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	err = ds.db.AutoMigrate(
		&model.Booking{},
		&model.RateLimit{},
	)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *PostgresService) Shutdown() {
}

func (ds *PostgresService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "duplicate key value") {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

// ==================== BOOKING METHODS ====================

func (ds *PostgresService) CreateBooking(booking *model.Booking) (*model.Booking, error) {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if booking.Status == "" {
		booking.Status = shared.StatusPending
	}

	if err := ds.db.Create(booking).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return booking, nil
}

// ListBookings returns bookings newest-first, optionally filtered by status.
func (ds *PostgresService) ListBookings(status string) ([]model.Booking, error) {
	query := ds.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	bookings := []model.Booking{}
	if err := query.Find(&bookings).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return bookings, nil
}

func (ds *PostgresService) UpdateBookingStatus(id, status string) (*model.Booking, error) {
	var booking model.Booking
	if err := ds.db.Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, err
	}

	booking.Status = status
	booking.UpdatedAt = time.Now()

	err := ds.db.Model(&booking).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     booking.Status,
		"updated_at": booking.UpdatedAt,
	}).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return &booking, nil
}

func (ds *PostgresService) DeleteBooking(id string) error {
	result := ds.db.Where("id = ?", id).Delete(&model.Booking{})
	if result.Error != nil {
		return ds.HandleError(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ==================== RATE LIMIT METHODS ====================

// IncrementRateLimit is the single atomic check-and-increment for one
// (identifier, action) pair. The row is locked for the duration of the
// transaction so concurrent submissions from the same identity serialize
// instead of racing past the limit. Concurrent first submissions can both
// miss the row; the losing insert hits the (identifier, action) unique index
// and the retry then finds the winner's row under lock and increments it.
func (ds *PostgresService) IncrementRateLimit(identifier, action string, window time.Duration) (*model.RateLimit, error) {
	var record model.RateLimit
	var err error

	for attempt := 0; attempt < 2; attempt++ {
		record = model.RateLimit{}
		now := time.Now()

		err = ds.db.Transaction(func(tx *gorm.DB) error {
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("identifier = ? AND action = ?", identifier, action).
				First(&record).Error

			if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && windowExpired(record.WindowStart, now, window)) {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					id, _ := uuid.NewV7()
					record.ID = id.String()
					record.CreatedAt = now
				}
				record.Identifier = identifier
				record.Action = action
				record.RequestCount = 1
				record.WindowStart = now
				record.UpdatedAt = now
				return tx.Save(&record).Error
			}
			if err != nil {
				return err
			}

			record.RequestCount++
			record.UpdatedAt = now
			return tx.Model(&record).Where("id = ?", record.ID).Updates(map[string]interface{}{
				"request_count": record.RequestCount,
				"updated_at":    record.UpdatedAt,
			}).Error
		})
		if err == nil {
			return &record, nil
		}
		if !isDuplicateKey(err) {
			break
		}
	}

	return nil, ds.HandleError(err)
}

// windowExpired reports whether a fixed window that started at windowStart is
// already over at now.
func windowExpired(windowStart, now time.Time, window time.Duration) bool {
	return windowStart.Before(now.Add(-window))
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key value")
}

// CleanupOldRateLimits removes records whose window expired long ago.
func (ds *PostgresService) CleanupOldRateLimits() error {
	cutoff := time.Now().Add(-7 * 24 * time.Hour)
	return ds.db.Where("updated_at < ?", cutoff).Delete(&model.RateLimit{}).Error
}
