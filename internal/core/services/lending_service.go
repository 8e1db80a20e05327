package services

import (
	"context"
	"errors"
	"time"

	"shelfwise/internal/adapters/persistence/models"
	"shelfwise/internal/adapters/persistence/repositories"
	"shelfwise/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LendingService orchestrates the borrow/return workflow and enforces the
// cross-entity invariants: at most 5 active borrowings per user, at most one
// borrower per book. Both operations run inside a single transaction. Borrow
// row-locks the user and the book, so two concurrent borrows of the same
// book cannot both succeed and two concurrent borrows by the same user
// cannot both pass the limit check on a stale count.
type LendingService struct {
	txm           repositories.TxManager
	userRepo      repositories.UserRepository
	bookRepo      repositories.BookRepository
	borrowingRepo repositories.BorrowingRepository
}

// NewLendingService creates a new lending service
func NewLendingService(
	txm repositories.TxManager,
	userRepo repositories.UserRepository,
	bookRepo repositories.BookRepository,
	borrowingRepo repositories.BorrowingRepository,
) *LendingService {
	return &LendingService{
		txm:           txm,
		userRepo:      userRepo,
		bookRepo:      bookRepo,
		borrowingRepo: borrowingRepo,
	}
}

// Borrow checks out a book to a user.
//
// Preconditions, checked in order inside one transaction:
//  1. the user exists (row locked, so two borrows by the same user on
//     different books cannot both read the same active count)
//  2. the book exists (row locked for the rest of the transaction)
//  3. the user holds fewer than the maximum number of active borrowings
//  4. no active borrowing exists for this exact user/book pair
//  5. the book status is Available
//
// On success a new active borrowing exists and the book is Borrowed; both
// changes commit together.
func (s *LendingService) Borrow(ctx context.Context, userID, bookID uint) (*models.Borrowing, error) {
	var result *models.Borrowing

	err := s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		users := s.userRepo.WithTx(tx)
		books := s.bookRepo.WithTx(tx)
		borrowings := s.borrowingRepo.WithTx(tx)

		user, err := users.GetByIDForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		book, err := books.GetByIDForUpdate(ctx, bookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBookNotFound
			}
			return err
		}

		active, err := borrowings.CountActiveByUser(ctx, user.ID)
		if err != nil {
			return err
		}
		if active >= domain.MaxActiveBorrowings {
			return domain.ErrBorrowLimitReached
		}

		// The status check alone cannot tell "borrowed by someone else"
		// from "borrowed by this same user", so the pair is checked first.
		_, err = borrowings.FindActiveByUserAndBook(ctx, user.ID, book.ID)
		if err == nil {
			return domain.ErrBookAlreadyBorrowed
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := book.MarkBorrowed(); err != nil {
			return err
		}

		borrowing := &models.Borrowing{
			RefCode:      uuid.NewString(),
			UserID:       user.ID,
			BookID:       book.ID,
			CheckoutDate: time.Now().UTC(),
		}

		if err := borrowings.Create(ctx, borrowing); err != nil {
			return err
		}
		if err := books.Update(ctx, book); err != nil {
			return err
		}

		result = borrowing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Return checks a book back in.
//
// The active borrowing for the user/book pair is closed and the book flips
// back to Available, atomically. Returning a pair that only has closed
// borrowings fails with ErrAlreadyReturned; a pair never borrowed fails with
// ErrBorrowingNotFound.
func (s *LendingService) Return(ctx context.Context, userID, bookID uint) (*models.Borrowing, error) {
	var result *models.Borrowing

	err := s.txm.Transaction(ctx, func(tx *gorm.DB) error {
		users := s.userRepo.WithTx(tx)
		books := s.bookRepo.WithTx(tx)
		borrowings := s.borrowingRepo.WithTx(tx)

		user, err := users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		book, err := books.GetByIDForUpdate(ctx, bookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBookNotFound
			}
			return err
		}

		borrowing, err := borrowings.FindActiveByUserAndBook(ctx, user.ID, book.ID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			latest, lerr := borrowings.FindLatestByUserAndBook(ctx, user.ID, book.ID)
			if lerr == nil && !latest.IsActive() {
				return domain.ErrAlreadyReturned
			}
			if lerr != nil && !errors.Is(lerr, gorm.ErrRecordNotFound) {
				return lerr
			}
			return domain.ErrBorrowingNotFound
		}

		if err := borrowing.Close(time.Now().UTC()); err != nil {
			return err
		}
		book.MarkAvailable()

		if err := borrowings.Update(ctx, borrowing); err != nil {
			return err
		}
		if err := books.Update(ctx, book); err != nil {
			return err
		}

		result = borrowing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ListUserBorrowings lists the full borrowing history of a user, newest first
func (s *LendingService) ListUserBorrowings(ctx context.Context, userID uint) ([]*models.Borrowing, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return s.borrowingRepo.ListByUser(ctx, userID)
}
