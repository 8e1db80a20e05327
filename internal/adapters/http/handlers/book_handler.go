package handlers

import (
	"errors"
	"strconv"

	"shelfwise/internal/core/domain"
	"shelfwise/internal/core/services"
	"shelfwise/internal/pkg/pagination"
	"shelfwise/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles book catalog endpoints
type BookHandler struct {
	bookService *services.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// parseIDParam parses a positive integer path parameter
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("ID must be a positive integer")
	}
	return uint(id), nil
}

// BookRequest represents create/update book request
type BookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// Create creates a new book
// @Summary Create book
// @Description Create a new book with status Available
// @Tags Books
// @Accept json
// @Produce json
// @Param body body BookRequest true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title == "" || req.Author == "" || req.ISBN == "" {
		return response.BadRequest(c, "Title, author, and ISBN are required fields")
	}

	book, err := h.bookService.Create(c.Context(), &services.BookInput{
		Title:  req.Title,
		Author: req.Author,
		ISBN:   req.ISBN,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrDuplicateISBN):
			return response.Conflict(c, "A book with this ISBN already exists.")
		default:
			return response.InternalServerError(c, "Failed to create book")
		}
	}

	return response.Created(c, "Book created!", fiber.Map{
		"book": book.ToResponse(),
	})
}

// Update updates an existing book
// @Summary Update book
// @Description Update title, author and ISBN of an existing book
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param body body BookRequest true "Book data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title == "" || req.Author == "" || req.ISBN == "" {
		return response.BadRequest(c, "Title, author, and ISBN are required fields")
	}

	book, err := h.bookService.Update(c.Context(), id, &services.BookInput{
		Title:  req.Title,
		Author: req.Author,
		ISBN:   req.ISBN,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found.")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrDuplicateISBN):
			return response.Conflict(c, "A book with this ISBN already exists.")
		default:
			return response.InternalServerError(c, "Failed to update book")
		}
	}

	return response.Success(c, "Book updated!", fiber.Map{
		"book": book.ToResponse(),
	})
}

// Delete soft-deletes a book
// @Summary Delete book
// @Description Mark a book as deleted; it disappears from lookups
// @Tags Books
// @Produce json
// @Param id path int true "Book ID"
// @Success 204 "Book deleted"
// @Failure 404 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.bookService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found.")
		default:
			return response.InternalServerError(c, "An error occurred while deleting the book.")
		}
	}

	return response.NoContent(c)
}

// List lists books
// @Summary List books
// @Tags Books
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	books, total, err := h.bookService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "An error occurred while fetching the books")
	}

	items := make([]interface{}, len(books))
	for i, book := range books {
		items[i] = book.ToResponse()
	}

	return response.Success(c, "Books retrieved successfully", pagination.NewResponse(items, params, total))
}

// GetByID gets a book by ID
// @Summary Get book by ID
// @Tags Books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	book, err := h.bookService.GetByID(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found.")
		default:
			return response.InternalServerError(c, "An error occurred while fetching the book")
		}
	}

	return response.Success(c, "Book retrieved successfully", fiber.Map{
		"book": book.ToResponse(),
	})
}
