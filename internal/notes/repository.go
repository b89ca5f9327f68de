package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const noteColumns = `id, title, content, created_at, updated_at`

type Repository struct {
	db  *sql.DB
	now func() time.Time

	stmtGet  *sql.Stmt
	stmtList *sql.Stmt
}

type Option func(*Repository)

// WithClock overrides time.Now for created_at / updated_at stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// NewRepository prepares the read statements. The queries use $n
// placeholders, which both pgx and SQLite accept.
func NewRepository(ctx context.Context, db *sql.DB, opts ...Option) (*Repository, error) {
	get, err := db.PrepareContext(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE id = $1
	`)
	if err != nil {
		return nil, err
	}

	list, err := db.PrepareContext(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		ORDER BY updated_at DESC, id DESC
	`)
	if err != nil {
		_ = get.Close()
		return nil, err
	}

	r := &Repository{
		db:       db,
		now:      time.Now,
		stmtGet:  get,
		stmtList: list,
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

func (r *Repository) Close() error {
	for _, s := range []*sql.Stmt{r.stmtGet, r.stmtList} {
		if s != nil {
			_ = s.Close()
		}
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]Note, error) {
	rows, err := r.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

// Create uses explicit transaction: INSERT notes + INSERT audit.
func (r *Repository) Create(ctx context.Context, title, content string) (Note, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Note{}, storageErr(err)
	}
	defer tx.Rollback()

	ts := r.now().UTC()
	n := Note{Title: title, Content: content, CreatedAt: ts, UpdatedAt: ts}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO notes (title, content, created_at, updated_at) VALUES ($1, $2, $3, $3)
		RETURNING id
	`, title, content, ts.UnixNano()).Scan(&n.ID)
	if err != nil {
		return Note{}, storageErr(err)
	}

	if err := audit(ctx, tx, n.ID, "create", ts); err != nil {
		return Note{}, err
	}
	if err := tx.Commit(); err != nil {
		return Note{}, storageErr(err)
	}
	return n, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (Note, error) {
	n, err := scanNote(r.stmtGet.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, storageErr(err)
	}
	return n, nil
}

// Update merges p into the stored note in one statement. updated_at always
// moves forward, even when the clock has not advanced since the last write.
func (r *Repository) Update(ctx context.Context, id int64, p NotePatch) (Note, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Note{}, storageErr(err)
	}
	defer tx.Rollback()

	ts := r.now().UTC()
	n, err := scanNote(tx.QueryRowContext(ctx, `
		UPDATE notes
		SET title = COALESCE($1, title),
		    content = COALESCE($2, content),
		    updated_at = CASE WHEN updated_at >= $3 THEN updated_at + 1 ELSE $3 END
		WHERE id = $4
		RETURNING `+noteColumns+`
	`, nullString(p.Title), nullString(p.Content), ts.UnixNano(), id))
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, storageErr(err)
	}

	if err := audit(ctx, tx, id, "update", n.UpdatedAt); err != nil {
		return Note{}, err
	}
	if err := tx.Commit(); err != nil {
		return Note{}, storageErr(err)
	}
	return n, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return storageErr(err)
	}
	a, err := res.RowsAffected()
	if err != nil {
		return storageErr(err)
	}
	if a == 0 {
		return ErrNotFound
	}

	if err := audit(ctx, tx, id, "delete", r.now().UTC()); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}
	return nil
}

// Search matches q as a literal, case-insensitive substring of title or
// content. Case folding happens in SQL on both sides so the pattern and the
// columns agree on what lower case means. Callers handle the empty query.
func (r *Repository) Search(ctx context.Context, q string) ([]Note, error) {
	pattern := "%" + escapeLike(q) + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE LOWER(title) LIKE LOWER($1) ESCAPE '\' OR LOWER(content) LIKE LOWER($1) ESCAPE '\'
		ORDER BY updated_at DESC, id DESC
	`, pattern)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

func audit(ctx context.Context, tx *sql.Tx, noteID int64, action string, at time.Time) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO notes_audit (note_id, action, at) VALUES ($1, $2, $3)`, noteID, action, at.UnixNano())
	if err != nil {
		return storageErr(fmt.Errorf("audit %s: %w", action, err))
	}
	return nil
}

// nullString turns an absent patch field into SQL NULL for COALESCE.
func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (Note, error) {
	var (
		n                Note
		created, updated int64
	)
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &created, &updated); err != nil {
		return Note{}, err
	}
	n.CreatedAt = time.Unix(0, created).UTC()
	n.UpdatedAt = time.Unix(0, updated).UTC()
	return n, nil
}

func scanNotes(rows *sql.Rows) ([]Note, error) {
	out := make([]Note, 0, 32)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, storageErr(err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}
	return out, nil
}
