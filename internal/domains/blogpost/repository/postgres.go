package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/blogpost/model"
	"blog-backend/pkg/database"
)

const tableBlogPosts = "blog_posts"

var postColumns = []string{
	"id", "category", "title", "cover", "content", "author",
	"read_time_value", "read_time_unit", "comments", "created_at", "updated_at",
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) qb() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// ========================================
// POSTS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, p *model.BlogPost) error {
	comments, err := marshalComments(p.Comments)
	if err != nil {
		return err
	}
	rtValue, rtUnit := readTimeColumns(p.ReadTime)

	sqlStr, args, err := r.qb().Insert(tableBlogPosts).
		Columns("category", "title", "cover", "content", "author", "read_time_value", "read_time_unit", "comments").
		Values(p.Category, p.Title, p.Cover, p.Content, p.Author, rtValue, rtUnit, sq.Expr("?::jsonb", comments)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert blog post: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("insert blog post: %w", err)
	}
	if p.Comments == nil {
		p.Comments = []model.Comment{}
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BlogPost, error) {
	sqlStr, args, err := r.qb().Select(postColumns...).
		From(tableBlogPosts).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select blog post: %w", err)
	}
	return r.findOne(ctx, r.pool, sqlStr, args...)
}

// List trả về một trang + tổng số post khớp filter
func (r *postgresRepository) List(ctx context.Context, filter ListFilter) ([]model.BlogPost, int, error) {
	countSQL, countArgs, err := applyFilter(r.qb().Select("COUNT(*)").From(tableBlogPosts), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count blog posts: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count blog posts: %w", err)
	}

	sqlStr, args, err := applyFilter(r.qb().Select(postColumns...).From(tableBlogPosts), filter).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list blog posts: %w", err)
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list blog posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.BlogPost, 0, filter.Limit)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate blog posts: %w", err)
	}
	return posts, total, nil
}

// Update chỉ SET các cột có trong patch
func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, patch Patch) (*model.BlogPost, error) {
	ub := r.qb().Update(tableBlogPosts).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})

	if patch.Category != nil {
		ub = ub.Set("category", *patch.Category)
	}
	if patch.Title != nil {
		ub = ub.Set("title", *patch.Title)
	}
	if patch.Content != nil {
		ub = ub.Set("content", *patch.Content)
	}
	if patch.Cover != nil {
		ub = ub.Set("cover", *patch.Cover)
	}
	if patch.ReadTime != nil {
		ub = ub.Set("read_time_value", patch.ReadTime.Value).
			Set("read_time_unit", patch.ReadTime.Unit)
	}

	sqlStr, args, err := ub.Suffix("RETURNING " + joinColumns()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update blog post: %w", err)
	}
	return r.findOne(ctx, r.pool, sqlStr, args...)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sqlStr, args, err := r.qb().Delete(tableBlogPosts).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete blog post: %w", err)
	}

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBlogPostNotFound
	}
	return nil
}

// ========================================
// COMMENTS
// ========================================

func (r *postgresRepository) AppendComment(ctx context.Context, postID uuid.UUID, c model.Comment) ([]model.Comment, error) {
	payload, err := marshalComments([]model.Comment{c})
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE blog_posts
		SET comments = comments || $2::jsonb, updated_at = now()
		WHERE id = $1
		RETURNING comments
	`

	var raw []byte
	if err := r.pool.QueryRow(ctx, query, postID, payload).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBlogPostNotFound
		}
		return nil, fmt.Errorf("append comment: %w", err)
	}
	return unmarshalComments(raw)
}

func (r *postgresRepository) MutateComments(ctx context.Context, postID uuid.UUID, fn CommentMutation) (*model.BlogPost, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.BlogPost, error) {
		sqlStr, args, err := r.qb().Select(postColumns...).
			From(tableBlogPosts).
			Where(sq.Eq{"id": postID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build lock blog post: %w", err)
		}

		post, err := r.findOne(ctx, tx, sqlStr, args...)
		if err != nil {
			return nil, err
		}

		if err := fn(post); err != nil {
			return nil, err
		}

		payload, err := marshalComments(post.Comments)
		if err != nil {
			return nil, err
		}

		err = tx.QueryRow(ctx,
			`UPDATE blog_posts SET comments = $2::jsonb, updated_at = now() WHERE id = $1 RETURNING updated_at`,
			postID, payload,
		).Scan(&post.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("write comments: %w", err)
		}
		return post, nil
	})
}

// ========================================
// HELPERS
// ========================================

// querier - pool hoặc tx
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *postgresRepository) findOne(ctx context.Context, q querier, sqlStr string, args ...any) (*model.BlogPost, error) {
	p, err := scanPost(q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBlogPostNotFound
		}
		return nil, fmt.Errorf("query blog post: %w", err)
	}
	return p, nil
}

func scanPost(row pgx.Row) (*model.BlogPost, error) {
	var (
		p       model.BlogPost
		rtValue *int
		rtUnit  *string
		raw     []byte
	)
	if err := row.Scan(
		&p.ID,
		&p.Category,
		&p.Title,
		&p.Cover,
		&p.Content,
		&p.Author,
		&rtValue,
		&rtUnit,
		&raw,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if rtValue != nil && rtUnit != nil {
		p.ReadTime = &model.ReadTime{Value: *rtValue, Unit: *rtUnit}
	}

	comments, err := unmarshalComments(raw)
	if err != nil {
		return nil, err
	}
	p.Comments = comments
	return &p, nil
}

func joinColumns() string {
	return strings.Join(postColumns, ", ")
}

func applyFilter(sb sq.SelectBuilder, filter ListFilter) sq.SelectBuilder {
	if filter.Author != "" {
		sb = sb.Where(sq.Eq{"author": filter.Author})
	}
	return sb
}

func readTimeColumns(rt *model.ReadTime) (*int, *string) {
	if rt == nil {
		return nil, nil
	}
	return &rt.Value, &rt.Unit
}

func marshalComments(comments []model.Comment) ([]byte, error) {
	if comments == nil {
		comments = []model.Comment{}
	}
	b, err := json.Marshal(comments)
	if err != nil {
		return nil, fmt.Errorf("marshal comments: %w", err)
	}
	return b, nil
}

func unmarshalComments(raw []byte) ([]model.Comment, error) {
	comments := []model.Comment{}
	if len(raw) == 0 {
		return comments, nil
	}
	if err := json.Unmarshal(raw, &comments); err != nil {
		return nil, fmt.Errorf("unmarshal comments: %w", err)
	}
	return comments, nil
}
