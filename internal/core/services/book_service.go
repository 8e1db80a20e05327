package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shelfwise/internal/adapters/persistence/models"
	"shelfwise/internal/adapters/persistence/repositories"
	"shelfwise/internal/core/domain"
	"shelfwise/internal/pkg/isbn"

	"gorm.io/gorm"
)

// validationError wraps constraint violations into a single domain error
func validationError(violations []string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(violations, ", "))
}

// BookService handles book catalog business logic
type BookService struct {
	bookRepo repositories.BookRepository
}

// NewBookService creates a new book service
func NewBookService(bookRepo repositories.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

// BookInput represents create/update book input
type BookInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// Create validates and persists a new book with status Available
func (s *BookService) Create(ctx context.Context, input *BookInput) (*models.Book, error) {
	book := &models.Book{
		Title:  strings.TrimSpace(input.Title),
		Author: strings.TrimSpace(input.Author),
		ISBN:   isbn.Normalize(input.ISBN),
		Status: domain.BookStatusAvailable,
	}

	if violations := book.Validate(); len(violations) > 0 {
		return nil, validationError(violations)
	}

	exists, err := s.bookRepo.ExistsByISBN(ctx, book.ISBN, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateISBN
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateISBN
		}
		return nil, err
	}

	return book, nil
}

// Update validates and persists edits to title, author and ISBN
func (s *BookService) Update(ctx context.Context, id uint, input *BookInput) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}

	book.Title = strings.TrimSpace(input.Title)
	book.Author = strings.TrimSpace(input.Author)
	book.ISBN = isbn.Normalize(input.ISBN)

	if violations := book.Validate(); len(violations) > 0 {
		return nil, validationError(violations)
	}

	exists, err := s.bookRepo.ExistsByISBN(ctx, book.ISBN, book.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateISBN
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateISBN
		}
		return nil, err
	}

	return book, nil
}

// Delete marks the book as deleted and removes it from normal lookups
func (s *BookService) Delete(ctx context.Context, id uint) error {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBookNotFound
		}
		return err
	}

	book.MarkDeleted()
	return s.bookRepo.SoftDelete(ctx, book)
}

// GetByID gets a book by ID. A soft-deleted book behaves as not found.
func (s *BookService) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// List lists books with pagination
func (s *BookService) List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	return s.bookRepo.List(ctx, offset, limit)
}
