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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// unique_violation
const pgUniqueViolationCode = "23505"

var userColumns = []string{
	tableinfo.UserIDColumn,
	tableinfo.UserNameColumn,
	tableinfo.UserEmailColumn,
	tableinfo.UserPasswordHashColumn,
	tableinfo.UserAvatarColumn,
	tableinfo.UserCreatedAtColumn,
}

type UserStorage struct {
	pool   *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserStorage(pool *pgxpool.Pool, getter *trmpgx.CtxGetter) *UserStorage {
	return &UserStorage{pool: pool, getter: getter}
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Avatar,
		&u.CreatedAt,
	)
	return u, err
}

func (s *UserStorage) CreateUser(ctx context.Context, in model.User) (model.User, error) {
	query, args, err := sq.
		Insert(tableinfo.UsersTableName).
		Columns(
			tableinfo.UserNameColumn,
			tableinfo.UserEmailColumn,
			tableinfo.UserPasswordHashColumn,
			tableinfo.UserAvatarColumn,
		).
		Values(in.Name, in.Email, in.PasswordHash, in.Avatar).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s, %s, %s, %s",
			tableinfo.UserIDColumn,
			tableinfo.UserNameColumn,
			tableinfo.UserEmailColumn,
			tableinfo.UserPasswordHashColumn,
			tableinfo.UserAvatarColumn,
			tableinfo.UserCreatedAtColumn,
		)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	out, err := scanUser(tr.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return model.User{}, service.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("exec insert user: %w", err)
	}
	return out, nil
}

func (s *UserStorage) GetUserByID(ctx context.Context, userID int64) (model.User, error) {
	query, args, err := sq.
		Select(userColumns...).
		From(tableinfo.UsersTableName).
		Where(sq.Eq{tableinfo.UserIDColumn: userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	out, err := scanUser(tr.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, service.ErrNotFound
		}
		return model.User{}, fmt.Errorf("exec select user by id: %w", err)
	}
	return out, nil
}

func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	query, args, err := sq.
		Select(userColumns...).
		From(tableinfo.UsersTableName).
		Where(sq.Eq{tableinfo.UserEmailColumn: email}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	out, err := scanUser(tr.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, service.ErrNotFound
		}
		return model.User{}, fmt.Errorf("exec select user by email: %w", err)
	}
	return out, nil
}
