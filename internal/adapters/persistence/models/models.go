package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"shelfwise/internal/core/domain"
	"shelfwise/internal/pkg/isbn"

	"gorm.io/gorm"
)

// ============================================================
// Users
// ============================================================

// RoleList is a JSON-encoded set of role names
type RoleList []string

// Value implements driver.Valuer
func (r RoleList) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner
func (r *RoleList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	case nil:
		*r = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into RoleList", value)
	}
}

// User represents users table
type User struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"size:150;not null" json:"name"`
	Email     string            `gorm:"uniqueIndex;size:150;not null" json:"email"`
	Password  string            `gorm:"size:255;not null" json:"-"`
	Roles     RoleList          `gorm:"type:json" json:"roles"`
	Status    domain.UserStatus `gorm:"size:20;not null;default:'Active'" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// GetRoles returns the user's roles, guaranteeing the base role is present
func (u *User) GetRoles() []string {
	roles := make([]string, 0, len(u.Roles)+1)
	seen := make(map[string]bool, len(u.Roles)+1)
	for _, r := range u.Roles {
		if !seen[r] {
			seen[r] = true
			roles = append(roles, r)
		}
	}
	if !seen[domain.RoleUser] {
		roles = append(roles, domain.RoleUser)
	}
	return roles
}

// MarkDeleted tags the user as logically removed
func (u *User) MarkDeleted() {
	u.Status = domain.UserStatusDeleted
}

// Validate returns the list of constraint violations, empty when valid
func (u *User) Validate() []string {
	var violations []string
	if strings.TrimSpace(u.Name) == "" {
		violations = append(violations, "Name should not be blank.")
	}
	if strings.TrimSpace(u.Email) == "" {
		violations = append(violations, "Email should not be blank.")
	} else if _, err := mail.ParseAddress(u.Email); err != nil {
		violations = append(violations, "Email value is not valid.")
	}
	if u.Password == "" {
		violations = append(violations, "Password should not be blank.")
	}
	return violations
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Roles:     u.GetRoles(),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}

// ============================================================
// Books
// ============================================================

// Book represents books table
type Book struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Title     string            `gorm:"size:150;not null" json:"title"`
	Author    string            `gorm:"size:150;not null" json:"author"`
	ISBN      string            `gorm:"uniqueIndex;size:13;not null" json:"isbn"`
	Status    domain.BookStatus `gorm:"size:20;not null;default:'Available'" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// MarkBorrowed transitions the book to Borrowed.
// Only an Available book can be borrowed.
func (b *Book) MarkBorrowed() error {
	if b.Status != domain.BookStatusAvailable {
		return domain.ErrBookUnavailable
	}
	b.Status = domain.BookStatusBorrowed
	return nil
}

// MarkAvailable transitions the book back to Available.
// Callers must have verified an active borrowing exists.
func (b *Book) MarkAvailable() {
	b.Status = domain.BookStatusAvailable
}

// MarkDeleted tags the book as logically removed
func (b *Book) MarkDeleted() {
	b.Status = domain.BookStatusDeleted
}

// Validate returns the list of constraint violations, empty when valid
func (b *Book) Validate() []string {
	var violations []string
	if strings.TrimSpace(b.Title) == "" {
		violations = append(violations, "Title should not be blank.")
	} else if utf8.RuneCountInString(b.Title) > domain.MaxTitleLength {
		violations = append(violations, fmt.Sprintf("Your title cannot be longer than %d characters", domain.MaxTitleLength))
	}
	if strings.TrimSpace(b.Author) == "" {
		violations = append(violations, "Author should not be blank.")
	} else if utf8.RuneCountInString(b.Author) > domain.MaxAuthorLength {
		violations = append(violations, fmt.Sprintf("Your author cannot be longer than %d characters", domain.MaxAuthorLength))
	}
	if strings.TrimSpace(b.ISBN) == "" {
		violations = append(violations, "ISBN should not be blank.")
	} else if !isbn.IsValid(b.ISBN) {
		violations = append(violations, "ISBN value is not valid.")
	}
	return violations
}

// BookResponse DTO
type BookResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Book) ToResponse() *BookResponse {
	return &BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ============================================================
// Borrowings
// ============================================================

// Borrowing links one user and one book for one lending period.
// Rows are never deleted, a closed borrowing keeps the history.
type Borrowing struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RefCode      string     `gorm:"uniqueIndex;size:36;not null" json:"ref_code"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	BookID       uint       `gorm:"not null;index" json:"book_id"`
	CheckoutDate time.Time  `gorm:"not null" json:"checkout_date"`
	CheckinDate  *time.Time `gorm:"index" json:"checkin_date"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (Borrowing) TableName() string {
	return "borrowings"
}

// IsActive reports whether the book is still out
func (bw *Borrowing) IsActive() bool {
	return bw.CheckinDate == nil
}

// Close sets the check-in date. It can succeed exactly once.
func (bw *Borrowing) Close(at time.Time) error {
	if bw.CheckinDate != nil {
		return domain.ErrAlreadyReturned
	}
	bw.CheckinDate = &at
	return nil
}

// BorrowingResponse DTO
type BorrowingResponse struct {
	ID           uint          `json:"id"`
	RefCode      string        `json:"ref_code"`
	UserID       uint          `json:"user_id"`
	BookID       uint          `json:"book_id"`
	CheckoutDate time.Time     `json:"checkout_date"`
	CheckinDate  *time.Time    `json:"checkin_date"`
	Book         *BookResponse `json:"book,omitempty"`
}

func (bw *Borrowing) ToResponse() *BorrowingResponse {
	resp := &BorrowingResponse{
		ID:           bw.ID,
		RefCode:      bw.RefCode,
		UserID:       bw.UserID,
		BookID:       bw.BookID,
		CheckoutDate: bw.CheckoutDate,
		CheckinDate:  bw.CheckinDate,
	}
	if bw.Book != nil {
		resp.Book = bw.Book.ToResponse()
	}
	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates the schema for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Book{},
		&Borrowing{},
	)
}
