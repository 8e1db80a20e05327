package services_test

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"shelfwise/internal/adapters/persistence/models"
	"shelfwise/internal/adapters/persistence/repositories"
)

// In-memory fakes standing in for the gorm repositories. They mimic the
// lookup semantics the services rely on: gorm.ErrRecordNotFound for missing
// rows and soft-deleted rows excluded from lookups.

type fakeTxManager struct{}

func (fakeTxManager) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// users

type fakeUserRepo struct {
	users   map[uint]*models.User
	deleted map[uint]*models.User
	nextID  uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[uint]*models.User),
		deleted: make(map[uint]*models.User),
		nextID:  1,
	}
}

func (r *fakeUserRepo) WithTx(*gorm.DB) repositories.UserRepository { return r }

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.User, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) SoftDelete(_ context.Context, user *models.User) error {
	delete(r.users, user.ID)
	copied := *user
	r.deleted[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	ids := make([]int, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	var out []*models.User
	for i, id := range ids {
		if i < offset || len(out) >= limit {
			continue
		}
		out = append(out, r.users[uint(id)])
	}
	return out, int64(len(r.users)), nil
}

// ExistsByEmail counts soft-deleted users too, like the unscoped query
// backing the unique index pre-check.
func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string, excludeID uint) (bool, error) {
	for id, user := range r.users {
		if user.Email == email && id != excludeID {
			return true, nil
		}
	}
	for id, user := range r.deleted {
		if user.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// books

type fakeBookRepo struct {
	books   map[uint]*models.Book
	deleted map[uint]*models.Book
	nextID  uint
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{
		books:   make(map[uint]*models.Book),
		deleted: make(map[uint]*models.Book),
		nextID:  1,
	}
}

func (r *fakeBookRepo) WithTx(*gorm.DB) repositories.BookRepository { return r }

func (r *fakeBookRepo) Create(_ context.Context, book *models.Book) error {
	book.ID = r.nextID
	r.nextID++
	book.CreatedAt = time.Now().UTC()
	r.books[book.ID] = book
	return nil
}

func (r *fakeBookRepo) GetByID(_ context.Context, id uint) (*models.Book, error) {
	book, ok := r.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *book
	return &copied, nil
}

func (r *fakeBookRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Book, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeBookRepo) Update(_ context.Context, book *models.Book) error {
	if _, ok := r.books[book.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *book
	r.books[book.ID] = &copied
	return nil
}

func (r *fakeBookRepo) SoftDelete(_ context.Context, book *models.Book) error {
	delete(r.books, book.ID)
	copied := *book
	r.deleted[book.ID] = &copied
	return nil
}

func (r *fakeBookRepo) List(_ context.Context, offset, limit int) ([]*models.Book, int64, error) {
	ids := make([]int, 0, len(r.books))
	for id := range r.books {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	var out []*models.Book
	for i, id := range ids {
		if i < offset || len(out) >= limit {
			continue
		}
		out = append(out, r.books[uint(id)])
	}
	return out, int64(len(r.books)), nil
}

// ExistsByISBN counts soft-deleted books too, like the unscoped query
// backing the unique index pre-check.
func (r *fakeBookRepo) ExistsByISBN(_ context.Context, isbn string, excludeID uint) (bool, error) {
	for id, book := range r.books {
		if book.ISBN == isbn && id != excludeID {
			return true, nil
		}
	}
	for id, book := range r.deleted {
		if book.ISBN == isbn && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// borrowings

type fakeBorrowingRepo struct {
	borrowings []*models.Borrowing
	nextID     uint
}

func newFakeBorrowingRepo() *fakeBorrowingRepo {
	return &fakeBorrowingRepo{nextID: 1}
}

func (r *fakeBorrowingRepo) WithTx(*gorm.DB) repositories.BorrowingRepository { return r }

func (r *fakeBorrowingRepo) Create(_ context.Context, borrowing *models.Borrowing) error {
	borrowing.ID = r.nextID
	r.nextID++
	copied := *borrowing
	r.borrowings = append(r.borrowings, &copied)
	return nil
}

func (r *fakeBorrowingRepo) Update(_ context.Context, borrowing *models.Borrowing) error {
	for i, existing := range r.borrowings {
		if existing.ID == borrowing.ID {
			copied := *borrowing
			r.borrowings[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeBorrowingRepo) CountActiveByUser(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, bw := range r.borrowings {
		if bw.UserID == userID && bw.IsActive() {
			count++
		}
	}
	return count, nil
}

func (r *fakeBorrowingRepo) FindActiveByUserAndBook(_ context.Context, userID, bookID uint) (*models.Borrowing, error) {
	for _, bw := range r.borrowings {
		if bw.UserID == userID && bw.BookID == bookID && bw.IsActive() {
			copied := *bw
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBorrowingRepo) FindLatestByUserAndBook(_ context.Context, userID, bookID uint) (*models.Borrowing, error) {
	var latest *models.Borrowing
	for _, bw := range r.borrowings {
		if bw.UserID != userID || bw.BookID != bookID {
			continue
		}
		if latest == nil || bw.CheckoutDate.After(latest.CheckoutDate) {
			latest = bw
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeBorrowingRepo) ListByUser(_ context.Context, userID uint) ([]*models.Borrowing, error) {
	var out []*models.Borrowing
	for _, bw := range r.borrowings {
		if bw.UserID == userID {
			copied := *bw
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CheckoutDate.After(out[j].CheckoutDate)
	})
	return out, nil
}

func (r *fakeBorrowingRepo) ListActiveCheckedOutBefore(_ context.Context, cutoff time.Time) ([]*models.Borrowing, error) {
	var out []*models.Borrowing
	for _, bw := range r.borrowings {
		if bw.IsActive() && bw.CheckoutDate.Before(cutoff) {
			copied := *bw
			out = append(out, &copied)
		}
	}
	return out, nil
}
