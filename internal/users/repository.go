package users

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/felinefinder/felinefinder/pkg/database"
	"github.com/felinefinder/felinefinder/pkg/formatting"
	"github.com/felinefinder/felinefinder/pkg/pagination"
	"github.com/felinefinder/felinefinder/pkg/query"
	"github.com/felinefinder/felinefinder/pkg/repository"
	"github.com/felinefinder/felinefinder/pkg/storage"
)

type repo struct {
	db      database.System
	store   storage.System
	pageCfg pagination.Config
	logger  *slog.Logger
}

// New creates the user profile system.
func New(
	db database.System,
	store storage.System,
	pageCfg pagination.Config,
	logger *slog.Logger,
) System {
	return &repo{
		db:      db,
		store:   store,
		pageCfg: pageCfg,
		logger:  logger.With("system", "users"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pageCfg)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[User], error) {
	page.Normalize(r.pageCfg)

	builder := filters.apply(query.NewBuilder(projection, defaultSort...)).
		WhereSearch(page.Search, "name", "email").
		OrderByFields(page.Sort)

	countSQL, countArgs := builder.BuildCount()

	var total int
	if err := r.db.Connection().QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	pageSQL, pageArgs := builder.BuildPage(page.Page, page.PageSize)

	users, err := repository.QueryMany(ctx, r.db.Connection(), pageSQL, pageArgs, scanUser)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	result := pagination.NewPageResult(users, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id string) (*User, error) {
	sql, args := query.NewBuilder(projection).BuildSingle("id", id)

	user, err := repository.QueryOne(ctx, r.db.Connection(), sql, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &user, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	const insert = `
		INSERT INTO users (id, name, email)
		VALUES ($1, $2, $3)`

	_, err := r.db.Connection().ExecContext(ctx, insert, cmd.ID, cmd.Name, cmd.Email)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user registered", "id", cmd.ID)
	return r.Find(ctx, cmd.ID)
}

func (r *repo) Update(ctx context.Context, id string, cmd UpdateCommand) (*User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	existing, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	imageKey := existing.ImageKey
	if cmd.Image != nil {
		key, err := r.uploadAvatar(ctx, id, *cmd.Image)
		if err != nil {
			return nil, err
		}
		imageKey = &key
	}

	const update = `
		UPDATE users
		SET name = $2,
		    image_key = $3,
		    instagram = $4,
		    custom_platform = $5,
		    custom_url = $6,
		    updated_at = now()
		WHERE id = $1`

	err = repository.ExecExpectOne(
		ctx, r.db.Connection(), update,
		id, cmd.Name, imageKey, cmd.Instagram, cmd.CustomPlatform, cmd.CustomURL,
	)
	if err != nil {
		if cmd.Image != nil {
			if delErr := r.store.Delete(ctx, *imageKey); delErr != nil && !errors.Is(delErr, storage.ErrNotFound) {
				r.logger.Error("failed update left orphaned avatar", "key", *imageKey, "error", delErr)
			}
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if cmd.Image != nil && existing.ImageKey != nil {
		if err := r.store.Delete(ctx, *existing.ImageKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
			r.logger.Warn("replaced avatar left orphaned blob", "key", *existing.ImageKey, "error", err)
		}
	}

	return r.Find(ctx, id)
}

// Delete removes the user together with their listings and friendship edges.
// The cats rows must go in the same transaction: lister_id references users,
// so the user row cannot be deleted while listings remain. Blob cleanup runs
// after commit and is best effort.
func (r *repo) Delete(ctx context.Context, id string) error {
	existing, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	blobKeys, err := repository.WithTx(ctx, r.db.Connection(), func(tx *sql.Tx) ([]string, error) {
		const photos = "SELECT photo_key FROM cats WHERE lister_id = $1"
		keys, err := repository.QueryMany(ctx, tx, photos, []any{id}, scanKey)
		if err != nil {
			return nil, fmt.Errorf("collect listing photos: %w", err)
		}

		const listings = "DELETE FROM cats WHERE lister_id = $1"
		if _, err := tx.ExecContext(ctx, listings, id); err != nil {
			return nil, fmt.Errorf("delete listings: %w", err)
		}

		const friends = `
			DELETE FROM friendships
			WHERE user_id = $1 OR friend_id = $1`
		if _, err := tx.ExecContext(ctx, friends, id); err != nil {
			return nil, fmt.Errorf("delete friendships: %w", err)
		}

		const user = "DELETE FROM users WHERE id = $1"
		if err := repository.ExecExpectOne(ctx, tx, user, id); err != nil {
			return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		return keys, nil
	})
	if err != nil {
		return err
	}

	if existing.ImageKey != nil {
		blobKeys = append(blobKeys, *existing.ImageKey)
	}
	for _, key := range blobKeys {
		if err := r.store.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			r.logger.Warn("deleted user left orphaned blob", "key", key, "error", err)
		}
	}

	r.logger.Info("user deleted", "id", id)
	return nil
}

func (r *repo) Avatar(ctx context.Context, id string) (*storage.DownloadResult, error) {
	user, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.ImageKey == nil {
		return nil, ErrNotFound
	}

	result, err := r.store.Download(ctx, *user.ImageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download avatar %s: %w", *user.ImageKey, err)
	}

	return result, nil
}

// AddFriend writes both edge directions so friend lookups never need a
// bidirectional scan. The pair is committed or rolled back as a unit.
func (r *repo) AddFriend(ctx context.Context, userID, friendID string) error {
	if userID == friendID {
		return ErrSelfFriend
	}

	if _, err := r.Find(ctx, userID); err != nil {
		return err
	}
	if _, err := r.Find(ctx, friendID); err != nil {
		return err
	}

	_, err := repository.WithTx(ctx, r.db.Connection(), func(tx *sql.Tx) (struct{}, error) {
		var none struct{}

		const insert = "INSERT INTO friendships (user_id, friend_id) VALUES ($1, $2)"
		if _, err := tx.ExecContext(ctx, insert, userID, friendID); err != nil {
			return none, repository.MapError(err, ErrNotFound, ErrAlreadyFriends)
		}
		if _, err := tx.ExecContext(ctx, insert, friendID, userID); err != nil {
			return none, repository.MapError(err, ErrNotFound, ErrAlreadyFriends)
		}

		return none, nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("friendship added", "user_id", userID, "friend_id", friendID)
	return nil
}

func (r *repo) RemoveFriend(ctx context.Context, userID, friendID string) error {
	if userID == friendID {
		return ErrSelfFriend
	}

	const remove = `
		DELETE FROM friendships
		WHERE (user_id = $1 AND friend_id = $2)
		   OR (user_id = $2 AND friend_id = $1)`

	if err := repository.ExecExpectOne(ctx, r.db.Connection(), remove, userID, friendID); err != nil {
		return repository.MapError(err, ErrNotFriends, ErrDuplicate)
	}

	r.logger.Info("friendship removed", "user_id", userID, "friend_id", friendID)
	return nil
}

func (r *repo) Friends(ctx context.Context, userID string) ([]User, error) {
	if _, err := r.Find(ctx, userID); err != nil {
		return nil, err
	}

	sql := fmt.Sprintf(`
		SELECT %s
		FROM %s
		JOIN public.friendships f ON f.friend_id = u.id
		WHERE f.user_id = $1
		ORDER BY u.name`,
		projection.Columns(),
		projection.From(),
	)

	friends, err := repository.QueryMany(ctx, r.db.Connection(), sql, []any{userID}, scanUser)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}

	return friends, nil
}

func (r *repo) uploadAvatar(ctx context.Context, userID, image string) (string, error) {
	contentType, data, err := formatting.ParseDataURI(image)
	if err != nil {
		return "", fmt.Errorf("%w: decode avatar: %v", ErrInvalidUser, err)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: avatar must be an image, got %q", ErrInvalidUser, contentType)
	}

	key := fmt.Sprintf("avatars/%s/%s", userID, uuid.New())
	if err := r.store.Upload(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	return key, nil
}
