package cats

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/felinefinder/felinefinder/internal/classifier"
	"github.com/felinefinder/felinefinder/internal/submission"
	"github.com/felinefinder/felinefinder/pkg/database"
	"github.com/felinefinder/felinefinder/pkg/pagination"
	"github.com/felinefinder/felinefinder/pkg/query"
	"github.com/felinefinder/felinefinder/pkg/repository"
	"github.com/felinefinder/felinefinder/pkg/storage"
)

// batchLimit bounds concurrent workflow executions during a batch submit.
const batchLimit = 4

type repo struct {
	db      database.System
	store   storage.System
	rt      *submission.Runtime
	pageCfg pagination.Config
	logger  *slog.Logger
}

// New creates the cat listing system. The repository itself serves as the
// workflow's listing store, so the submission runtime is assembled here.
func New(
	db database.System,
	store storage.System,
	cls classifier.System,
	pageCfg pagination.Config,
	logger *slog.Logger,
) System {
	r := &repo{
		db:      db,
		store:   store,
		pageCfg: pageCfg,
		logger:  logger.With("system", "cats"),
	}

	r.rt = &submission.Runtime{
		Classifier: cls,
		Listings:   r,
		Logger:     r.logger,
	}

	return r
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pageCfg, maxUploadSize)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Cat], error) {
	page.Normalize(r.pageCfg)

	builder := filters.apply(query.NewBuilder(projection, defaultSort...)).
		WhereSearch(page.Search, "name", "description", "location").
		OrderByFields(page.Sort)

	countSQL, countArgs := builder.BuildCount()

	var total int
	if err := r.db.Connection().QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count cats: %w", err)
	}

	pageSQL, pageArgs := builder.BuildPage(page.Page, page.PageSize)

	cats, err := repository.QueryMany(ctx, r.db.Connection(), pageSQL, pageArgs, scanCat)
	if err != nil {
		return nil, fmt.Errorf("list cats: %w", err)
	}

	result := pagination.NewPageResult(cats, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Cat, error) {
	sql, args := query.NewBuilder(projection).BuildSingle("id", id)

	cat, err := repository.QueryOne(ctx, r.db.Connection(), sql, args, scanCat)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &cat, nil
}

func (r *repo) Submit(ctx context.Context, cmd SubmitCommand) (*SubmissionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	result := submission.Execute(ctx, r.rt, cmd.request(), cmd.Force)
	return r.resolve(ctx, result), nil
}

func (r *repo) SubmitBatch(ctx context.Context, cmds []SubmitCommand) ([]BatchResult, error) {
	results := make([]BatchResult, len(cmds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchLimit)

	for i, cmd := range cmds {
		g.Go(func() error {
			res, err := r.Submit(gctx, cmd)
			if err != nil {
				results[i] = BatchResult{Filename: cmd.Filename, Error: err.Error()}
				return nil
			}
			results[i] = BatchResult{Filename: cmd.Filename, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *repo) Photo(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, error) {
	cat, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := r.store.Download(ctx, cat.PhotoKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download photo %s: %w", cat.PhotoKey, err)
	}

	return result, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	cat, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	const stmt = "DELETE FROM cats WHERE id = $1"
	if err := repository.ExecExpectOne(ctx, r.db.Connection(), stmt, id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.store.Delete(ctx, cat.PhotoKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		r.logger.Warn("deleted listing left orphaned photo", "key", cat.PhotoKey, "error", err)
	}

	r.logger.Info("listing deleted", "id", id)
	return nil
}

// Create persists one listing: the photo blob first, then the row. A failed
// insert deletes the just-uploaded blob so the attempt leaves no trace.
func (r *repo) Create(ctx context.Context, req submission.Request) (uuid.UUID, error) {
	id := uuid.New()
	key := photoKey(req.ListerID, id, req.ContentType)

	if err := r.store.Upload(ctx, key, bytes.NewReader(req.Photo), req.ContentType); err != nil {
		return uuid.Nil, fmt.Errorf("upload photo: %w", err)
	}

	const insert = `
		INSERT INTO cats (id, name, description, location, photo_key, content_type, lister_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Connection().ExecContext(
		ctx, insert,
		id, req.Name, req.Description, req.Location, key, req.ContentType, req.ListerID,
	)
	if err != nil {
		if delErr := r.store.Delete(ctx, key); delErr != nil {
			r.logger.Error("orphaned photo after failed insert", "key", key, "error", delErr)
		}
		return uuid.Nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return id, nil
}

// resolve converts a workflow result into the HTTP response contract,
// reloading the persisted listing on the created path.
func (r *repo) resolve(ctx context.Context, res submission.Result) *SubmissionResult {
	out := &SubmissionResult{Outcome: res.Outcome}

	switch res.Outcome {
	case submission.OutcomeCreated:
		out.Success = true
		cat, err := r.Find(ctx, res.ListingID)
		if err != nil {
			r.logger.Warn("created listing could not be reloaded", "id", res.ListingID, "error", err)
		} else {
			out.Cat = cat
		}
	case submission.OutcomeBlocked:
		out.IsDuplicate = true
		out.Explanation = res.Explanation
	default:
		out.Error = res.Err.Error()
	}

	return out
}

func photoKey(listerID string, id uuid.UUID, contentType string) string {
	return fmt.Sprintf("cats/%s/%s%s", listerID, id, extension(contentType))
}

func extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".img"
	}
}
