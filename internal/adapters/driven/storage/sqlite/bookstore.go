package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
)

// bookStore implements driven.BookStore.
type bookStore struct {
	store *Store
}

var _ driven.BookStore = (*bookStore)(nil)

// SaveBook stores or updates a book.
func (s *bookStore) SaveBook(ctx context.Context, book *domain.Book) error {
	if book == nil || book.ID == "" {
		return domain.ErrInvalidInput
	}

	chaptersJSON, err := json.Marshal(book.Chapters)
	if err != nil {
		return fmt.Errorf("marshalling chapters: %w", err)
	}
	bookmarksJSON, err := json.Marshal(book.Bookmarks)
	if err != nil {
		return fmt.Errorf("marshalling bookmarks: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO books (
			id, title, author, file_name, file_type, file_size,
			content, html_content, has_payload, page_count, chapters,
			current_page, progress, bookmarks, color, uploaded_at, last_read_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			file_name = excluded.file_name,
			file_type = excluded.file_type,
			file_size = excluded.file_size,
			content = excluded.content,
			html_content = excluded.html_content,
			has_payload = excluded.has_payload,
			page_count = excluded.page_count,
			chapters = excluded.chapters,
			current_page = excluded.current_page,
			progress = excluded.progress,
			bookmarks = excluded.bookmarks,
			color = excluded.color,
			uploaded_at = excluded.uploaded_at,
			last_read_at = excluded.last_read_at
	`, book.ID, book.Title, book.Author, book.FileName, string(book.FileType),
		book.FileSize, book.Content, book.HTMLContent, book.HasPayload,
		book.PageCount, string(chaptersJSON), book.CurrentPage, book.Progress,
		string(bookmarksJSON), book.Color, book.UploadedAt.UTC(), nullTime(book.LastReadAt))
	if err != nil {
		return fmt.Errorf("saving book: %w", err)
	}
	return nil
}

// GetBook retrieves a book by ID.
func (s *bookStore) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, author, file_name, file_type, file_size,
		       content, html_content, has_payload, page_count, chapters,
		       current_page, progress, bookmarks, color, uploaded_at, last_read_at
		FROM books WHERE id = ?
	`, id)

	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting book: %w", err)
	}
	return book, nil
}

// ListBooks returns all books, most recently uploaded first.
func (s *bookStore) ListBooks(ctx context.Context) ([]domain.Book, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, author, file_name, file_type, file_size,
		       content, html_content, has_payload, page_count, chapters,
		       current_page, progress, bookmarks, color, uploaded_at, last_read_at
		FROM books ORDER BY uploaded_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, *book)
	}
	return books, rows.Err()
}

// DeleteBook removes a book record. Highlights and chat messages
// cascade via foreign keys.
func (s *bookStore) DeleteBook(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanBook reads one book row.
func scanBook(row scanner) (*domain.Book, error) {
	var (
		book          domain.Book
		fileType      string
		chaptersJSON  string
		bookmarksJSON string
		lastReadAt    sql.NullTime
	)

	err := row.Scan(
		&book.ID, &book.Title, &book.Author, &book.FileName, &fileType,
		&book.FileSize, &book.Content, &book.HTMLContent, &book.HasPayload,
		&book.PageCount, &chaptersJSON, &book.CurrentPage, &book.Progress,
		&bookmarksJSON, &book.Color, &book.UploadedAt, &lastReadAt,
	)
	if err != nil {
		return nil, err
	}

	book.FileType = domain.FileType(fileType)
	if lastReadAt.Valid {
		book.LastReadAt = lastReadAt.Time
	}
	if err := json.Unmarshal([]byte(chaptersJSON), &book.Chapters); err != nil {
		return nil, fmt.Errorf("unmarshalling chapters: %w", err)
	}
	if err := json.Unmarshal([]byte(bookmarksJSON), &book.Bookmarks); err != nil {
		return nil, fmt.Errorf("unmarshalling bookmarks: %w", err)
	}

	return &book, nil
}

// nullTime maps the zero time to SQL NULL.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
