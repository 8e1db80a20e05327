package domain

// BookStatus represents the lending state of a book
type BookStatus string

const (
	BookStatusAvailable BookStatus = "Available"
	BookStatusBorrowed  BookStatus = "Borrowed"
	BookStatusDeleted   BookStatus = "Deleted"
)

// UserStatus represents the lifecycle state of a user
type UserStatus string

const (
	UserStatusActive  UserStatus = "Active"
	UserStatusDeleted UserStatus = "Deleted"
)

// RoleUser is the base role every user carries
const RoleUser = "user"

// MaxActiveBorrowings is the maximum number of books a user may hold at once
const MaxActiveBorrowings = 5

// Field length limits enforced before persistence
const (
	MaxTitleLength  = 150
	MaxAuthorLength = 150
)
