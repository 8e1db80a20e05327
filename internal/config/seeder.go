package config

import (
	"log"

	"shelfwise/internal/adapters/persistence/models"
	"shelfwise/internal/core/domain"
	"shelfwise/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. For development/testing only.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedUsers(); err != nil {
		log.Printf("⚠️ User seeder skipped: %v", err)
	}
	if err := s.seedBooks(); err != nil {
		log.Printf("⚠️ Book seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedUsers seeds sample members. All seeded accounts use the password "password".
func (s *Seeder) seedUsers() error {
	var count int64
	s.db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return nil // Already seeded
	}

	hashed, err := password.Hash("password")
	if err != nil {
		return err
	}

	samples := []struct {
		name  string
		email string
	}{
		{"Ada Lovelace", "ada.lovelace@example.com"},
		{"Grace Hopper", "grace.hopper@example.com"},
		{"Dennis Ritchie", "dennis.ritchie@example.com"},
	}

	for _, sample := range samples {
		user := &models.User{
			Name:     sample.name,
			Email:    sample.email,
			Password: hashed,
			Roles:    models.RoleList{domain.RoleUser},
			Status:   domain.UserStatusActive,
		}
		if err := s.db.Create(user).Error; err != nil {
			return err
		}
	}

	log.Printf("🌱 Seeded %d users", len(samples))
	return nil
}

// seedBooks seeds a small catalog with checksum-valid ISBNs
func (s *Seeder) seedBooks() error {
	var count int64
	s.db.Model(&models.Book{}).Count(&count)
	if count > 0 {
		return nil // Already seeded
	}

	samples := []struct {
		title  string
		author string
		isbn   string
	}{
		{"The C Programming Language", "Brian W. Kernighan", "0131103628"},
		{"The Pragmatic Programmer", "Andrew Hunt", "020161622X"},
		{"Introduction to Algorithms", "Thomas H. Cormen", "0262033844"},
		{"Multivariate Data Analysis", "Joseph F. Hair", "0471958697"},
		{"The Theory of Sound", "John William Strutt", "0306406152"},
	}

	for _, sample := range samples {
		book := &models.Book{
			Title:  sample.title,
			Author: sample.author,
			ISBN:   sample.isbn,
			Status: domain.BookStatusAvailable,
		}
		if err := s.db.Create(book).Error; err != nil {
			return err
		}
	}

	log.Printf("🌱 Seeded %d books", len(samples))
	return nil
}
