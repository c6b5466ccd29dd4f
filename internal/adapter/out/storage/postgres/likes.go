package postgres

import (
	"context"
	"errors"
	"fmt"

	"socialfeed/internal/model"
	"socialfeed/internal/service"
	"socialfeed/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LikeStorage struct {
	pool   *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewLikeStorage(pool *pgxpool.Pool, getter *trmpgx.CtxGetter) *LikeStorage {
	return &LikeStorage{pool: pool, getter: getter}
}

// AddLike inserts the like as a single statement; the unique
// (post_id, user_id) constraint makes concurrent duplicates impossible.
// ON CONFLICT DO NOTHING returns no row when the pair already exists.
func (s *LikeStorage) AddLike(ctx context.Context, postID, userID int64) error {
	query, args, err := sq.
		Insert(tableinfo.LikesTableName).
		Columns(tableinfo.LikePostIDColumn, tableinfo.LikeUserIDColumn).
		Values(postID, userID).
		Suffix(fmt.Sprintf("ON CONFLICT DO NOTHING RETURNING %s", tableinfo.LikeUserIDColumn)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)

	var dummy int64
	if err := tr.QueryRow(ctx, query, args...).Scan(&dummy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.ErrAlreadyLiked
		}
		return fmt.Errorf("exec insert like: %w", err)
	}
	return nil
}

func (s *LikeStorage) RemoveLike(ctx context.Context, postID, userID int64) error {
	query, args, err := sq.
		Delete(tableinfo.LikesTableName).
		Where(sq.Eq{
			tableinfo.LikePostIDColumn: postID,
			tableinfo.LikeUserIDColumn: userID,
		}).
		Suffix(fmt.Sprintf("RETURNING %s", tableinfo.LikeUserIDColumn)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)

	var dummy int64
	if err := tr.QueryRow(ctx, query, args...).Scan(&dummy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.ErrNotLiked
		}
		return fmt.Errorf("exec delete like: %w", err)
	}
	return nil
}

func (s *LikeStorage) GetLikesByPost(ctx context.Context, postID int64) ([]model.Like, error) {
	query, args, err := sq.
		Select(
			tableinfo.LikePostIDColumn,
			tableinfo.LikeUserIDColumn,
			tableinfo.LikeCreatedAtColumn,
		).
		From(tableinfo.LikesTableName).
		Where(sq.Eq{tableinfo.LikePostIDColumn: postID}).
		OrderBy(tableinfo.LikeCreatedAtColumn + " DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exec select likes: %w", err)
	}
	defer rows.Close()

	var out []model.Like
	for rows.Next() {
		var l model.Like
		if err := rows.Scan(&l.PostID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}
