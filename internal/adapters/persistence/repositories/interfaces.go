package repositories

import (
	"context"
	"time"

	"shelfwise/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// UserRepository defines user lookup and persistence operations.
// Soft-deleted users behave as not found.
type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SoftDelete(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
}

// BookRepository defines book lookup and persistence operations
type BookRepository interface {
	WithTx(tx *gorm.DB) BookRepository
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	SoftDelete(ctx context.Context, book *models.Book) error
	List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error)
	ExistsByISBN(ctx context.Context, isbn string, excludeID uint) (bool, error)
}

// BorrowingRepository defines queries over the borrowing store.
// An active borrowing is one whose checkin_date is null.
type BorrowingRepository interface {
	WithTx(tx *gorm.DB) BorrowingRepository
	Create(ctx context.Context, borrowing *models.Borrowing) error
	Update(ctx context.Context, borrowing *models.Borrowing) error
	CountActiveByUser(ctx context.Context, userID uint) (int64, error)
	FindActiveByUserAndBook(ctx context.Context, userID, bookID uint) (*models.Borrowing, error)
	FindLatestByUserAndBook(ctx context.Context, userID, bookID uint) (*models.Borrowing, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Borrowing, error)
	ListActiveCheckedOutBefore(ctx context.Context, cutoff time.Time) ([]*models.Borrowing, error)
}

// TxManager runs a function inside one database transaction
type TxManager interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a gorm-backed transaction manager
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
