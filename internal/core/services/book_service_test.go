package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfwise/internal/core/domain"
	"shelfwise/internal/core/services"
)

func Test_BookService_Create_Succeeds(t *testing.T) {
	svc := services.NewBookService(newFakeBookRepo())

	book, err := svc.Create(context.Background(), &services.BookInput{
		Title:  "  The C Programming Language ",
		Author: "Brian W. Kernighan",
		ISBN:   "0-13-110362-8",
	})

	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.Equal(t, "The C Programming Language", book.Title)
	assert.Equal(t, "0131103628", book.ISBN)
	assert.Equal(t, domain.BookStatusAvailable, book.Status)
}

func Test_BookService_Create_RejectsInvalidInput(t *testing.T) {
	svc := services.NewBookService(newFakeBookRepo())

	testCases := []struct {
		name  string
		input services.BookInput
	}{
		{"blank title", services.BookInput{Title: " ", Author: "A", ISBN: "0306406152"}},
		{"blank author", services.BookInput{Title: "T", Author: "", ISBN: "0306406152"}},
		{"bad isbn check digit", services.BookInput{Title: "T", Author: "A", ISBN: "0306406153"}},
		{"isbn wrong length", services.BookInput{Title: "T", Author: "A", ISBN: "12345"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tc.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func Test_BookService_Create_RejectsDuplicateISBN(t *testing.T) {
	svc := services.NewBookService(newFakeBookRepo())

	input := &services.BookInput{Title: "T", Author: "A", ISBN: "0306406152"}
	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrDuplicateISBN)
}

func Test_BookService_Create_NormalizesISBNBeforeDuplicateCheck(t *testing.T) {
	svc := services.NewBookService(newFakeBookRepo())

	_, err := svc.Create(context.Background(), &services.BookInput{Title: "T", Author: "A", ISBN: "0306406152"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &services.BookInput{Title: "T2", Author: "A2", ISBN: "0-306-40615-2"})

	assert.ErrorIs(t, err, domain.ErrDuplicateISBN)
}

func Test_BookService_Create_RejectsISBNHeldBySoftDeletedBook(t *testing.T) {
	svc := services.NewBookService(newFakeBookRepo())

	created, err := svc.Create(context.Background(), &services.BookInput{Title: "T", Author: "A", ISBN: "0306406152"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), created.ID))

	// The unique index still holds the deleted book's ISBN, so the
	// pre-check must reject it the same way.
	_, err = svc.Create(context.Background(), &services.BookInput{Title: "T2", Author: "A2", ISBN: "0306406152"})

	assert.ErrorIs(t, err, domain.ErrDuplicateISBN)
}

func Test_BookService_Update_Succeeds(t *testing.T) {
	svc := services.NewBookService(newFakeBookRepo())

	created, err := svc.Create(context.Background(), &services.BookInput{Title: "T", Author: "A", ISBN: "0306406152"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &services.BookInput{
		Title:  "Applied Numerical Linear Algebra",
		Author: "James W. Demmel",
		ISBN:   "0471958697",
	})

	require.NoError(t, err)
	assert.Equal(t, "0471958697", updated.ISBN)

	fetched, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Applied Numerical Linear Algebra", fetched.Title)
}

func Test_BookService_Update_AllowsKeepingOwnISBN(t *testing.T) {
	svc := services.NewBookService(newFakeBookRepo())

	created, err := svc.Create(context.Background(), &services.BookInput{Title: "T", Author: "A", ISBN: "0306406152"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, &services.BookInput{Title: "T renamed", Author: "A", ISBN: "0306406152"})

	assert.NoError(t, err)
}

func Test_BookService_Update_RejectsISBNOfAnotherBook(t *testing.T) {
	svc := services.NewBookService(newFakeBookRepo())

	first, err := svc.Create(context.Background(), &services.BookInput{Title: "T1", Author: "A1", ISBN: "0306406152"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &services.BookInput{Title: "T2", Author: "A2", ISBN: "0471958697"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), first.ID, &services.BookInput{Title: "T1", Author: "A1", ISBN: "0471958697"})

	assert.ErrorIs(t, err, domain.ErrDuplicateISBN)
}

func Test_BookService_Update_FailsForUnknownBook(t *testing.T) {
	svc := services.NewBookService(newFakeBookRepo())

	_, err := svc.Update(context.Background(), 42, &services.BookInput{Title: "T", Author: "A", ISBN: "0306406152"})

	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func Test_BookService_Delete_HidesBookFromLookups(t *testing.T) {
	svc := services.NewBookService(newFakeBookRepo())

	created, err := svc.Create(context.Background(), &services.BookInput{Title: "T", Author: "A", ISBN: "0306406152"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)

	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func Test_BookService_List_Paginates(t *testing.T) {
	svc := services.NewBookService(newFakeBookRepo())

	for _, isbn := range []string{"0306406152", "0471958697", "0131103628"} {
		_, err := svc.Create(context.Background(), &services.BookInput{Title: "T " + isbn, Author: "A", ISBN: isbn})
		require.NoError(t, err)
	}

	books, total, err := svc.List(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, books, 2)
}
