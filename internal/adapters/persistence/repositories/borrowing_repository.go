package repositories

import (
	"context"
	"time"

	"shelfwise/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// borrowingRepository implements BorrowingRepository interface
type borrowingRepository struct {
	db *gorm.DB
}

// NewBorrowingRepository creates a new borrowing repository
func NewBorrowingRepository(db *gorm.DB) BorrowingRepository {
	return &borrowingRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *borrowingRepository) WithTx(tx *gorm.DB) BorrowingRepository {
	if tx == nil {
		return r
	}
	return &borrowingRepository{db: tx}
}

// Create creates a new borrowing record
func (r *borrowingRepository) Create(ctx context.Context, borrowing *models.Borrowing) error {
	return r.db.WithContext(ctx).Create(borrowing).Error
}

// Update updates a borrowing record
func (r *borrowingRepository) Update(ctx context.Context, borrowing *models.Borrowing) error {
	return r.db.WithContext(ctx).Save(borrowing).Error
}

// CountActiveByUser counts the user's not-yet-returned borrowings
func (r *borrowingRepository) CountActiveByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Borrowing{}).
		Where("user_id = ? AND checkin_date IS NULL", userID).
		Count(&count).Error
	return count, err
}

// FindActiveByUserAndBook finds the single open borrowing for a user/book pair
func (r *borrowingRepository) FindActiveByUserAndBook(ctx context.Context, userID, bookID uint) (*models.Borrowing, error) {
	var borrowing models.Borrowing
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ? AND checkin_date IS NULL", userID, bookID).
		First(&borrowing).Error
	if err != nil {
		return nil, err
	}
	return &borrowing, nil
}

// FindLatestByUserAndBook finds the most recent borrowing for a user/book
// pair, open or closed. Used to tell "already returned" from "never borrowed".
func (r *borrowingRepository) FindLatestByUserAndBook(ctx context.Context, userID, bookID uint) (*models.Borrowing, error) {
	var borrowing models.Borrowing
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Order("checkout_date DESC").
		First(&borrowing).Error
	if err != nil {
		return nil, err
	}
	return &borrowing, nil
}

// ListByUser lists all borrowings of a user, newest first, with the book preloaded
func (r *borrowingRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Borrowing, error) {
	var borrowings []*models.Borrowing
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("checkout_date DESC").
		Find(&borrowings).Error
	return borrowings, err
}

// ListActiveCheckedOutBefore lists open borrowings checked out before the cutoff
func (r *borrowingRepository) ListActiveCheckedOutBefore(ctx context.Context, cutoff time.Time) ([]*models.Borrowing, error) {
	var borrowings []*models.Borrowing
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("User").
		Where("checkin_date IS NULL AND checkout_date < ?", cutoff).
		Order("checkout_date").
		Find(&borrowings).Error
	return borrowings, err
}
