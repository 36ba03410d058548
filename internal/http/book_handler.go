package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"bookshelf/internal/httpx"
	"bookshelf/internal/library"
)

type BookHandler struct {
	lib *library.Library
}

func NewBookHandler(lib *library.Library) *BookHandler {
	return &BookHandler{lib: lib}
}

// Root handles GET / with a greeting payload.
func (h *BookHandler) Root(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Welcome to the library API!"})
}

// List handles GET /books. Returns every record in catalog order as a
// bare array of summaries; the kind-specific fields are not included.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books := h.lib.Books()
	summaries := make([]library.Summary, 0, len(books))
	for _, b := range books {
		summaries = append(summaries, b.Summary())
	}
	httpx.JSON(w, http.StatusOK, summaries)
}

type createBookRequest struct {
	ISBN        string `json:"isbn" validate:"required,isbn_length"`
	BookType    string `json:"book_type"`
	FileFormat  string `json:"file_format"`
	DurationMin *int   `json:"duration_min" validate:"omitempty,gte=0"`
}

// Create handles POST /books: validates the ISBN, then runs the
// enrichment flow. 422 malformed ISBN or construction error, 400
// duplicate, 404 when the metadata lookup comes back empty.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if verrs := ValidateStruct(req); len(verrs) > 0 {
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   "validation failed",
			"details": verrs,
		})
		return
	}

	kind, ok := library.ParseKind(req.BookType)
	if !ok {
		httpx.JSONError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("unknown book type %q", req.BookType))
		return
	}

	book, err := h.lib.AddByISBN(r.Context(), req.ISBN, kind, library.AddOptions{
		FileFormat:  req.FileFormat,
		DurationMin: req.DurationMin,
	})
	if err != nil {
		switch {
		case errors.Is(err, library.ErrInvalidISBN):
			httpx.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, library.ErrDuplicate):
			httpx.JSONError(w, http.StatusBadRequest,
				fmt.Sprintf("book with ISBN %s already exists in the library", library.NormalizeISBN(req.ISBN)))
		case errors.Is(err, library.ErrUnavailable):
			httpx.JSONError(w, http.StatusNotFound,
				"book with ISBN not found or could not be retrieved")
		case errors.Is(err, library.ErrConstruction):
			httpx.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "server error")
		}
		return
	}

	httpx.JSON(w, http.StatusOK, book.Summary())
}

// Get handles GET /books/{isbn}. The not-found message reports the
// normalized ISBN.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	isbn := library.NormalizeISBN(r.PathValue("isbn"))
	book, err := h.lib.FindByISBN(isbn)
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound,
			fmt.Sprintf("book with ISBN %s not found", isbn))
		return
	}
	httpx.JSON(w, http.StatusOK, book.Summary())
}

// Delete handles DELETE /books/{isbn}.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	isbn := library.NormalizeISBN(r.PathValue("isbn"))
	if _, err := h.lib.FindByISBN(isbn); err != nil {
		httpx.JSONError(w, http.StatusNotFound,
			fmt.Sprintf("book with ISBN %s not found", isbn))
		return
	}
	if err := h.lib.Remove(isbn); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "server error")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("book with ISBN %s deleted", isbn),
	})
}
