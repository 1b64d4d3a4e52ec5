package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"matchpoint/internal/model"
)

var _ model.PhotoStore = (*PhotoRepository)(nil)

type PhotoRepository struct {
	db *Connection
}

func NewPhotoRepository(db *Connection) *PhotoRepository {
	return &PhotoRepository{
		db: db,
	}
}

func (r *PhotoRepository) GetByID(ctx context.Context, id int64) (model.Photo, error) {
	query := `
		SELECT p.id, p.owner_id, p.url, p.public_id, p.description, p.is_main, p.is_accepted, p.added_at
		FROM photos p
		WHERE p.id = $1`

	var photo model.Photo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&photo.ID, &photo.OwnerID, &photo.URL, &photo.PublicID,
		&photo.Description, &photo.IsMain, &photo.IsAccepted, &photo.AddedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Photo{}, model.ErrNotFound
		}
		return model.Photo{}, err
	}

	return photo, nil
}

func (r *PhotoRepository) GetByOwner(ctx context.Context, ownerID int64) ([]model.Photo, error) {
	query := `
		SELECT p.id, p.owner_id, p.url, p.public_id, p.description, p.is_main, p.is_accepted, p.added_at
		FROM photos p
		WHERE p.owner_id = $1
		ORDER BY p.added_at ASC, p.id ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []model.Photo
	for rows.Next() {
		var photo model.Photo
		err := rows.Scan(
			&photo.ID, &photo.OwnerID, &photo.URL, &photo.PublicID,
			&photo.Description, &photo.IsMain, &photo.IsAccepted, &photo.AddedAt,
		)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return photos, nil
}

func (r *PhotoRepository) GetMainForOwner(ctx context.Context, ownerID int64) (model.Photo, error) {
	query := `
		SELECT p.id, p.owner_id, p.url, p.public_id, p.description, p.is_main, p.is_accepted, p.added_at
		FROM photos p
		WHERE p.owner_id = $1 AND p.is_main`

	var photo model.Photo
	err := r.db.QueryRow(ctx, query, ownerID).Scan(
		&photo.ID, &photo.OwnerID, &photo.URL, &photo.PublicID,
		&photo.Description, &photo.IsMain, &photo.IsAccepted, &photo.AddedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Photo{}, model.ErrNotFound
		}
		return model.Photo{}, err
	}

	return photo, nil
}

func (r *PhotoRepository) GetPendingModeration(ctx context.Context, limit, offset int) ([]model.PhotoForModeration, error) {
	query := `
		SELECT p.id, u.user_name, p.url, p.is_accepted
		FROM photos p
		JOIN users u ON u.id = p.owner_id
		WHERE NOT p.is_accepted
		ORDER BY p.added_at ASC, p.id ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []model.PhotoForModeration
	for rows.Next() {
		var photo model.PhotoForModeration
		if err := rows.Scan(&photo.ID, &photo.OwnerName, &photo.URL, &photo.IsAccepted); err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return photos, nil
}

func (r *PhotoRepository) Create(ctx context.Context, photo model.Photo) (model.Photo, error) {
	query := `
		INSERT INTO photos (owner_id, url, public_id, description, is_main, is_accepted)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, owner_id, url, public_id, description, is_main, is_accepted, added_at`

	var savedPhoto model.Photo
	err := r.db.QueryRow(ctx, query,
		photo.OwnerID, photo.URL, photo.PublicID, photo.Description,
		photo.IsMain, photo.IsAccepted,
	).Scan(
		&savedPhoto.ID, &savedPhoto.OwnerID, &savedPhoto.URL, &savedPhoto.PublicID,
		&savedPhoto.Description, &savedPhoto.IsMain, &savedPhoto.IsAccepted, &savedPhoto.AddedAt,
	)
	if err != nil {
		return model.Photo{}, err
	}

	return savedPhoto, nil
}

// SetMain swaps the owner's main photo in one transaction. The owner's photo
// rows are locked first, so two concurrent swaps for the same owner cannot
// interleave between clearing the old flag and setting the new one.
func (r *PhotoRepository) SetMain(ctx context.Context, ownerID, photoID int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `SELECT id FROM photos WHERE owner_id = $1 FOR UPDATE`, ownerID)
	if err != nil {
		return err
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE photos SET is_main = FALSE WHERE owner_id = $1 AND is_main`, ownerID); err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, `UPDATE photos SET is_main = TRUE WHERE id = $1 AND owner_id = $2`, photoID, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *PhotoRepository) SetAccepted(ctx context.Context, id int64) error {
	const query = `UPDATE photos SET is_accepted = TRUE WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete removes a non-main photo row. The is_main guard sits inside the
// DELETE itself, so a main-photo swap committed after the caller's read
// re-evaluates against the row's current state; a row that became main in
// the meantime is refused with ErrInvalidState.
func (r *PhotoRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM photos WHERE id = $1 AND NOT is_main`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var isMain bool
		err := r.db.QueryRow(ctx, `SELECT is_main FROM photos WHERE id = $1`, id).Scan(&isMain)
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrNotFound
		}
		if err != nil {
			return err
		}
		if isMain {
			return model.ErrInvalidState
		}
		return model.ErrNotFound
	}
	return nil
}
