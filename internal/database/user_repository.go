package database

import (
	"context"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tandem/internal/models"
	"github.com/thenoetrevino/tandem/internal/types"
)

const usersTable = "users"

var userColumns = []string{"id", "name", "email", "avatar_url", "created_at", "updated_at"}

// usersByName orders users alphabetically regardless of case on every dialect
var usersByName = []string{"LOWER(name)", "name", "email"}

// NewUser holds the fields of a user to insert. An empty ID is generated.
type NewUser struct {
	ID        string
	Name      string
	Email     string
	AvatarURL *string
}

// UserPatch lists the user fields to change. Nil fields are left alone;
// an empty AvatarURL clears it.
type UserPatch struct {
	Name      *string
	Email     *string
	AvatarURL *string
}

// UserRepo handles all user-related database operations.
type UserRepo struct {
	*conn
}

// Create inserts a user. A taken email fails with ErrDuplicateEmail.
func (r *UserRepo) Create(ctx context.Context, in NewUser) (*models.User, error) {
	now := r.now()
	user := &models.User{
		ID:        in.ID,
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.ID == "" {
		user.ID = types.NewID()
	}
	if in.AvatarURL != nil && *in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}

	_, err := execAffected(ctx, r.db, r.sb.Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Name, user.Email, nullableString(user.AvatarURL), now, now))
	if err != nil {
		return nil, wrap(err, "create", usersTable, user.ID)
	}

	slog.Debug("user created", "user_id", user.ID)
	return user, nil
}

// GetByID retrieves a user by its ID
func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getWhere(ctx, r.db, sq.Eq{"id": id}, id)
}

// GetByEmail retrieves a user by email address
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getWhere(ctx, r.db, sq.Eq{"email": email}, email)
}

func (r *UserRepo) getWhere(ctx context.Context, q sqlx.QueryerContext, pred sq.Eq, key string) (*models.User, error) {
	user := &models.User{}
	err := selectOne(ctx, q, user, r.sb.Select(userColumns...).
		From(usersTable).
		Where(pred))
	if err != nil {
		return nil, wrap(err, "get", usersTable, key)
	}
	return user, nil
}

// GetAll retrieves every user ordered by name
func (r *UserRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	return r.list(ctx, r.db)
}

func (r *UserRepo) list(ctx context.Context, q sqlx.QueryerContext) ([]*models.User, error) {
	users := make([]*models.User, 0)
	err := selectAll(ctx, q, &users, r.sb.Select(userColumns...).
		From(usersTable).
		OrderBy(usersByName...))
	if err != nil {
		return nil, wrap(err, "list", usersTable, "")
	}
	return users, nil
}

// Update applies patch to the user and returns the stored result
func (r *UserRepo) Update(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	set := map[string]any{"updated_at": r.now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.AvatarURL != nil {
		set["avatar_url"] = nullableString(patch.AvatarURL)
	}

	var user *models.User
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		n, err := execAffected(ctx, tx, r.sb.Update(usersTable).SetMap(set).Where(sq.Eq{"id": id}))
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound("update", usersTable, id)
		}
		user, err = r.getWhere(ctx, tx, sq.Eq{"id": id}, id)
		return err
	})
	if err != nil {
		return nil, wrap(err, "update", usersTable, id)
	}
	return user, nil
}

// Delete removes a user. Only that user's assignments cascade; todos stay.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	n, err := execAffected(ctx, r.db, r.sb.Delete(usersTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return wrap(err, "delete", usersTable, id)
	}
	if n == 0 {
		return notFound("delete", usersTable, id)
	}
	slog.Debug("user deleted", "user_id", id)
	return nil
}
