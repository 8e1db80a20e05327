package handlers

import (
	"errors"

	"shelfwise/internal/core/domain"
	"shelfwise/internal/core/services"
	"shelfwise/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BorrowingHandler handles borrow/return endpoints
type BorrowingHandler struct {
	lendingService *services.LendingService
}

// NewBorrowingHandler creates a new borrowing handler
func NewBorrowingHandler(lendingService *services.LendingService) *BorrowingHandler {
	return &BorrowingHandler{lendingService: lendingService}
}

// Borrow checks out a book to a user
// @Summary Borrow a book
// @Description Create an active borrowing and mark the book Borrowed
// @Tags Borrowings
// @Produce json
// @Param id path int true "User ID"
// @Param bookId path int true "Book ID"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id}/borrow/{bookId} [post]
func (h *BorrowingHandler) Borrow(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	bookID, err := parseIDParam(c, "bookId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	borrowing, err := h.lendingService.Borrow(c.Context(), userID, bookID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found.")
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found.")
		case errors.Is(err, domain.ErrBorrowLimitReached):
			return response.Conflict(c, "User has reached the maximum number of borrowed books")
		case errors.Is(err, domain.ErrBookAlreadyBorrowed):
			return response.Conflict(c, "Book is already borrowed by this user")
		case errors.Is(err, domain.ErrBookUnavailable):
			return response.Conflict(c, "Book not available")
		default:
			return response.InternalServerError(c, "Failed to borrow book")
		}
	}

	return response.Created(c, "Book borrowed!", fiber.Map{
		"borrowing": borrowing.ToResponse(),
	})
}

// Return checks a book back in
// @Summary Return a borrowed book
// @Description Close the active borrowing and mark the book Available
// @Tags Borrowings
// @Produce json
// @Param id path int true "User ID"
// @Param bookId path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id}/return/{bookId} [post]
func (h *BorrowingHandler) Return(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	bookID, err := parseIDParam(c, "bookId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	borrowing, err := h.lendingService.Return(c.Context(), userID, bookID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found.")
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found.")
		case errors.Is(err, domain.ErrBorrowingNotFound):
			return response.NotFound(c, "Borrowing record not found")
		case errors.Is(err, domain.ErrAlreadyReturned):
			return response.Conflict(c, "This book is already returned")
		default:
			return response.InternalServerError(c, "Failed to return book")
		}
	}

	return response.Success(c, "Book returned!", fiber.Map{
		"borrowing": borrowing.ToResponse(),
	})
}

// ListByUser lists the borrowing history of a user
// @Summary List user borrowings
// @Description Full borrowing history, newest first
// @Tags Borrowings
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/borrowings [get]
func (h *BorrowingHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	borrowings, err := h.lendingService.ListUserBorrowings(c.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found.")
		default:
			return response.InternalServerError(c, "An error occurred while fetching the borrowings")
		}
	}

	items := make([]interface{}, len(borrowings))
	for i, bw := range borrowings {
		items[i] = bw.ToResponse()
	}

	return response.Success(c, "Borrowings retrieved successfully", fiber.Map{
		"borrowings": items,
	})
}
