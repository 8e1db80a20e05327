package domain

import "errors"

// Common domain errors
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation failed")
)

// UserErrors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("a user with this email already exists")
)

// BookErrors
var (
	ErrBookNotFound  = errors.New("book not found")
	ErrDuplicateISBN = errors.New("a book with this ISBN already exists")
)

// BorrowingErrors
var (
	ErrBookUnavailable     = errors.New("book is not available")
	ErrBookAlreadyBorrowed = errors.New("book is already borrowed by this user")
	ErrBorrowLimitReached  = errors.New("user has reached the maximum number of borrowed books")
	ErrBorrowingNotFound   = errors.New("borrowing record not found")
	ErrAlreadyReturned     = errors.New("this book is already returned")
)
