package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/author/model"
)

const (
	uniqueViolation = "23505"

	constraintEmail   = "authors_email_key"
	constraintOAuthID = "authors_oauth_id_key"
)

const authorColumns = `id, name, surname, email, password_hash, oauth_id, birth_date, avatar_url, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// ========================================
// BASIC CRUD OPERATIONS
// ========================================

// Create insert author, DB sinh id và timestamps
func (r *postgresRepository) Create(ctx context.Context, a *model.Author) error {
	query := `
		INSERT INTO authors (name, surname, email, password_hash, oauth_id, birth_date, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		a.Name,
		a.Surname,
		a.Email,
		a.PasswordHash,
		a.OAuthID,
		a.BirthDate,
		a.AvatarURL,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert author: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`
	return r.findOne(ctx, query, id)
}

// FindByEmail - email đã lowercase ở service layer
func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE email = $1`
	return r.findOne(ctx, query, email)
}

func (r *postgresRepository) FindByOAuthID(ctx context.Context, oauthID string) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE oauth_id = $1`
	return r.findOne(ctx, query, oauthID)
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate authors: %w", err)
	}
	return authors, nil
}

// Update ghi đè profile fields, password_hash và oauth_id giữ nguyên
func (r *postgresRepository) Update(ctx context.Context, a *model.Author) error {
	query := `
		UPDATE authors
		SET name = $2, surname = $3, email = $4, birth_date = $5, avatar_url = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		a.ID,
		a.Name,
		a.Surname,
		a.Email,
		a.BirthDate,
		a.AvatarURL,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrAuthorNotFound
		}
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update author: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (*model.Author, error) {
	query := `
		UPDATE authors SET avatar_url = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + authorColumns
	return r.findOne(ctx, query, id, avatarURL)
}

// LinkOAuth gắn provider id vào author đã có (account linking)
func (r *postgresRepository) LinkOAuth(ctx context.Context, id uuid.UUID, oauthID string) (*model.Author, error) {
	// Không ghi đè link sẵn có với provider id khác
	query := `
		UPDATE authors SET oauth_id = $2, updated_at = now()
		WHERE id = $1 AND (oauth_id IS NULL OR oauth_id = $2)
		RETURNING ` + authorColumns
	a, err := r.findOne(ctx, query, id, oauthID)
	if !errors.Is(err, model.ErrAuthorNotFound) {
		return a, err
	}

	// 0 row: author không tồn tại hoặc đã link account khác
	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, model.ErrOAuthIDTaken
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

// ========================================
// HELPERS
// ========================================

func (r *postgresRepository) findOne(ctx context.Context, query string, args ...any) (*model.Author, error) {
	a, err := scanAuthor(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("query author: %w", err)
	}
	return a, nil
}

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Surname,
		&a.Email,
		&a.PasswordHash,
		&a.OAuthID,
		&a.BirthDate,
		&a.AvatarURL,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// mapUniqueViolation chuyển 23505 thành domain error theo tên constraint
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case constraintEmail:
		return model.ErrEmailAlreadyExists
	case constraintOAuthID:
		return model.ErrOAuthIDTaken
	default:
		return fmt.Errorf("unique violation on %s: %w", pgErr.ConstraintName, err)
	}
}
