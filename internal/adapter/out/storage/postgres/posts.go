package postgres

import (
	"context"
	"errors"
	"fmt"

	"socialfeed/internal/adapter/out/storage"
	"socialfeed/internal/model"
	"socialfeed/internal/service"
	"socialfeed/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrBuildingQuery = errors.New("error building sql-query")

var postColumns = []string{
	tableinfo.PostIDColumn,
	tableinfo.PostUserIDColumn,
	tableinfo.PostTextColumn,
	tableinfo.PostAuthorNameColumn,
	tableinfo.PostAuthorAvatarColumn,
	tableinfo.PostCreatedAtColumn,
}

type PostStorage struct {
	pool   *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewPostStorage(pool *pgxpool.Pool, getter *trmpgx.CtxGetter) *PostStorage {
	return &PostStorage{
		pool:   pool,
		getter: getter,
	}
}

func scanPost(row pgx.Row) (model.Post, error) {
	var p model.Post
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Text,
		&p.AuthorName,
		&p.AuthorAvatar,
		&p.CreatedAt,
	)
	return p, err
}

func (s *PostStorage) CreatePost(ctx context.Context, in model.Post) (model.Post, error) {
	query, args, err := sq.
		Insert(tableinfo.PostsTableName).
		Columns(
			tableinfo.PostUserIDColumn,
			tableinfo.PostTextColumn,
			tableinfo.PostAuthorNameColumn,
			tableinfo.PostAuthorAvatarColumn,
		).
		Values(in.UserID, in.Text, in.AuthorName, in.AuthorAvatar).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s, %s, %s, %s",
			tableinfo.PostIDColumn,
			tableinfo.PostUserIDColumn,
			tableinfo.PostTextColumn,
			tableinfo.PostAuthorNameColumn,
			tableinfo.PostAuthorAvatarColumn,
			tableinfo.PostCreatedAtColumn,
		)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	out, err := scanPost(tr.QueryRow(ctx, query, args...))
	if err != nil {
		return model.Post{}, fmt.Errorf("exec insert post: %w", err)
	}
	return out, nil
}

func (s *PostStorage) GetPostByID(ctx context.Context, postID int64) (model.Post, error) {
	query, args, err := sq.
		Select(postColumns...).
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	out, err := scanPost(tr.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, service.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("exec select post by id: %w", err)
	}
	return out, nil
}

func (s *PostStorage) GetPosts(ctx context.Context, limit int) ([]model.Post, error) {
	if limit <= 0 {
		limit = service.DefaultPostsLimit
	}

	query, args, err := sq.
		Select(postColumns...).
		From(tableinfo.PostsTableName).
		OrderBy(
			tableinfo.PostCreatedAtColumn+" DESC",
			tableinfo.PostIDColumn+" DESC",
		).
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec select posts: %w", err)
	}
	defer rows.Close()

	out := make([]model.Post, 0, limit)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

// getPostsQueryBuilder builds the keyset query for a cursor walk. After means
// rows older than the cursor (feed order is created_at DESC); before walks
// the other way and the caller reverses the result.
func getPostsQueryBuilder(params storage.GetPostsParams) (sq.SelectBuilder, error) {
	base := sq.
		Select(postColumns...).
		From(tableinfo.PostsTableName).
		Limit(uint64(params.Limit)).
		PlaceholderFormat(sq.Dollar)

	switch params.Direction {
	case storage.DirectionAfter:
		return base.
			Where(sq.Expr(
				fmt.Sprintf("(%s, %s) < (?, ?)", tableinfo.PostCreatedAtColumn, tableinfo.PostIDColumn),
				params.Cursor.CreatedAt, params.Cursor.ID,
			)).
			OrderBy(
				tableinfo.PostCreatedAtColumn+" DESC",
				tableinfo.PostIDColumn+" DESC",
			), nil

	case storage.DirectionBefore:
		return base.
			Where(sq.Expr(
				fmt.Sprintf("(%s, %s) > (?, ?)", tableinfo.PostCreatedAtColumn, tableinfo.PostIDColumn),
				params.Cursor.CreatedAt, params.Cursor.ID,
			)).
			OrderBy(
				tableinfo.PostCreatedAtColumn+" ASC",
				tableinfo.PostIDColumn+" ASC",
			), nil

	default:
		return sq.SelectBuilder{}, storage.ErrDirectionUnset
	}
}

func (s *PostStorage) GetPostsWithCursor(ctx context.Context, params storage.GetPostsParams) ([]model.Post, error) {
	if params.Limit <= 0 {
		params.Limit = service.DefaultPostsLimit
	}

	qb, err := getPostsQueryBuilder(params)
	if err != nil {
		return nil, err
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec select posts with cursor: %w", err)
	}
	defer rows.Close()

	out := make([]model.Post, 0, params.Limit)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if params.Direction == storage.DirectionBefore {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (s *PostStorage) GetPostAuthorID(ctx context.Context, postID int64) (int64, error) {
	query, args, err := sq.
		Select(tableinfo.PostUserIDColumn).
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)

	var authorID int64
	if err := tr.QueryRow(ctx, query, args...).Scan(&authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, service.ErrNotFound
		}
		return 0, fmt.Errorf("exec select author_id: %w", err)
	}
	return authorID, nil
}

func (s *PostStorage) DeletePost(ctx context.Context, postID int64) error {
	query, args, err := sq.
		Delete(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		Suffix(fmt.Sprintf("RETURNING %s", tableinfo.PostIDColumn)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)

	var dummy int64
	if err := tr.QueryRow(ctx, query, args...).Scan(&dummy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.ErrNotFound
		}
		return fmt.Errorf("exec delete post: %w", err)
	}
	return nil
}
