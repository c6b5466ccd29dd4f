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

var commentColumns = []string{
	tableinfo.CommentIDColumn,
	tableinfo.CommentPostIDColumn,
	tableinfo.CommentUserIDColumn,
	tableinfo.CommentTextColumn,
	tableinfo.CommentAuthorNameColumn,
	tableinfo.CommentAuthorAvatarColumn,
	tableinfo.CommentCreatedAtColumn,
}

type CommentStorage struct {
	pool   *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewCommentStorage(pool *pgxpool.Pool, getter *trmpgx.CtxGetter) *CommentStorage {
	return &CommentStorage{pool: pool, getter: getter}
}

func scanComment(row pgx.Row) (model.Comment, error) {
	var c model.Comment
	err := row.Scan(
		&c.ID,
		&c.PostID,
		&c.UserID,
		&c.Text,
		&c.AuthorName,
		&c.AuthorAvatar,
		&c.CreatedAt,
	)
	return c, err
}

func (s *CommentStorage) CreateComment(ctx context.Context, in model.Comment) (model.Comment, error) {
	query, args, err := sq.
		Insert(tableinfo.CommentsTableName).
		Columns(
			tableinfo.CommentPostIDColumn,
			tableinfo.CommentUserIDColumn,
			tableinfo.CommentTextColumn,
			tableinfo.CommentAuthorNameColumn,
			tableinfo.CommentAuthorAvatarColumn,
		).
		Values(in.PostID, in.UserID, in.Text, in.AuthorName, in.AuthorAvatar).
		Suffix(fmt.Sprintf(
			"RETURNING %s, %s, %s, %s, %s, %s, %s",
			tableinfo.CommentIDColumn,
			tableinfo.CommentPostIDColumn,
			tableinfo.CommentUserIDColumn,
			tableinfo.CommentTextColumn,
			tableinfo.CommentAuthorNameColumn,
			tableinfo.CommentAuthorAvatarColumn,
			tableinfo.CommentCreatedAtColumn,
		)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Comment{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	out, err := scanComment(tr.QueryRow(ctx, query, args...))
	if err != nil {
		return model.Comment{}, fmt.Errorf("exec insert comment: %w", err)
	}
	return out, nil
}

func (s *CommentStorage) GetCommentByID(ctx context.Context, commentID int64) (model.Comment, error) {
	query, args, err := sq.
		Select(commentColumns...).
		From(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentIDColumn: commentID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Comment{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	out, err := scanComment(tr.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Comment{}, service.ErrNotFound
		}
		return model.Comment{}, fmt.Errorf("exec select comment by id: %w", err)
	}
	return out, nil
}

func (s *CommentStorage) GetCommentsByPost(ctx context.Context, postID int64, limit int) ([]model.Comment, error) {
	if limit <= 0 {
		limit = service.DefaultCommentsLimit
	}

	query, args, err := sq.
		Select(commentColumns...).
		From(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentPostIDColumn: postID}).
		OrderBy(
			tableinfo.CommentCreatedAtColumn+" DESC",
			tableinfo.CommentIDColumn+" DESC",
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
		return nil, fmt.Errorf("exec select comments: %w", err)
	}
	defer rows.Close()

	out := make([]model.Comment, 0, limit)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func getCommentsQueryBuilder(params storage.GetCommentsParams) (sq.SelectBuilder, error) {
	base := sq.
		Select(commentColumns...).
		From(tableinfo.CommentsTableName).
		Limit(uint64(params.Limit)).
		PlaceholderFormat(sq.Dollar)

	switch params.Direction {
	case storage.DirectionAfter:
		return base.
			Where(sq.And{
				sq.Eq{tableinfo.CommentPostIDColumn: params.PostID},
				sq.Expr(
					fmt.Sprintf("(%s, %s) < (?, ?)", tableinfo.CommentCreatedAtColumn, tableinfo.CommentIDColumn),
					params.Cursor.CreatedAt, params.Cursor.ID,
				),
			}).
			OrderBy(
				tableinfo.CommentCreatedAtColumn+" DESC",
				tableinfo.CommentIDColumn+" DESC",
			), nil

	case storage.DirectionBefore:
		return base.
			Where(sq.And{
				sq.Eq{tableinfo.CommentPostIDColumn: params.PostID},
				sq.Expr(
					fmt.Sprintf("(%s, %s) > (?, ?)", tableinfo.CommentCreatedAtColumn, tableinfo.CommentIDColumn),
					params.Cursor.CreatedAt, params.Cursor.ID,
				),
			}).
			OrderBy(
				tableinfo.CommentCreatedAtColumn+" ASC",
				tableinfo.CommentIDColumn+" ASC",
			), nil

	default:
		return sq.SelectBuilder{}, storage.ErrDirectionUnset
	}
}

func (s *CommentStorage) GetCommentsWithCursor(ctx context.Context, params storage.GetCommentsParams) ([]model.Comment, error) {
	if params.Limit <= 0 {
		params.Limit = service.DefaultCommentsLimit
	}

	qb, err := getCommentsQueryBuilder(params)
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
		return nil, fmt.Errorf("exec select comments with cursor: %w", err)
	}
	defer rows.Close()

	out := make([]model.Comment, 0, params.Limit)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
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

func (s *CommentStorage) DeleteComment(ctx context.Context, commentID int64) error {
	query, args, err := sq.
		Delete(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentIDColumn: commentID}).
		Suffix(fmt.Sprintf("RETURNING %s", tableinfo.CommentIDColumn)).
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
		return fmt.Errorf("exec delete comment: %w", err)
	}
	return nil
}
