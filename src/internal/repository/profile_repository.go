package repository

import (
	"context"
	"database/sql"
	"errors"

	"coinvest-service/src/internal/entity"
	"coinvest-service/src/pkg/databases/mysql"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

type ProfileRepository struct {
	DB mysql.DBInterface
}

func NewProfileRepository(db mysql.DBInterface) *ProfileRepository {
	return &ProfileRepository{
		DB: db,
	}
}

const profileColumns = `
	id, user_id, coinvestor_id, balance,
	identity_type, identity_url, identity_status,
	photo_url, photo_status,
	created_at, updated_at
`

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var profile entity.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = ?`
	err = db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *ProfileRepository) FindByCoinvestorID(ctx context.Context, coinvestorID string) (*entity.Profile, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var profile entity.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE coinvestor_id = ?`
	err = db.GetContext(ctx, &profile, query, coinvestorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (user_id, coinvestor_id, balance, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
	`
	_, err = db.ExecContext(ctx, query, profile.UserID, profile.CoinvestorID, profile.Balance)
	if err != nil {
		var mysqlErr *mysqlDriver.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return ErrDuplicate
		}
		return err
	}

	return nil
}

func (r *ProfileRepository) ListByUserIDs(ctx context.Context, userIDs []string) ([]entity.Profile, error) {
	if len(userIDs) == 0 {
		return []entity.Profile{}, nil
	}

	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	query, args, err := sqlx.In(`SELECT `+profileColumns+` FROM profiles WHERE user_id IN (?)`, userIDs)
	if err != nil {
		return nil, err
	}

	var profiles []entity.Profile
	err = db.SelectContext(ctx, &profiles, db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *ProfileRepository) UpdateIdentityProof(ctx context.Context, userID, identityType, url string) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		UPDATE profiles
		SET identity_type = ?, identity_url = ?, identity_status = ?, updated_at = NOW()
		WHERE user_id = ?
	`
	result, err := db.ExecContext(ctx, query, identityType, url, entity.DocumentStatusPending, userID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *ProfileRepository) UpdatePhoto(ctx context.Context, userID, url string) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		UPDATE profiles
		SET photo_url = ?, photo_status = ?, updated_at = NOW()
		WHERE user_id = ?
	`
	result, err := db.ExecContext(ctx, query, url, entity.DocumentStatusPending, userID)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *ProfileRepository) SetDocumentStatuses(ctx context.Context, userID, status string) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	// Only sub-documents that were uploaded change status.
	query := `
		UPDATE profiles
		SET identity_status = IF(identity_url IS NOT NULL, ?, identity_status),
		    photo_status = IF(photo_url IS NOT NULL, ?, photo_status),
		    updated_at = NOW()
		WHERE user_id = ?
	`
	result, err := db.ExecContext(ctx, query, status, status, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// MySQL reports zero affected rows both for a missing profile and
		// an unchanged one; distinguish with a lookup.
		if _, err := r.FindByUserID(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProfileRepository) ListByDocumentStatus(ctx context.Context, status string, filter entity.DocumentFilter) ([]entity.Profile, int, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, 0, err
	}

	var predicate string
	switch status {
	case entity.DocumentStatusVerified:
		predicate = `identity_status = 'verified' AND photo_status = 'verified'`
	default:
		predicate = `(identity_status = 'pending' OR photo_status = 'pending')`
	}

	// the search predicate runs before LIMIT/OFFSET so matches on later
	// pages are not lost and the total reflects every match
	where := ` FROM profiles WHERE ` + predicate
	args := []interface{}{}
	if filter.Search != "" {
		where += ` AND (coinvestor_id LIKE ?`
		args = append(args, "%"+filter.Search+"%")
		if len(filter.MatchUserIDs) > 0 {
			where += ` OR user_id IN (?)`
			args = append(args, filter.MatchUserIDs)
		}
		where += `)`
	}

	countQuery, countArgs, err := sqlx.In(`SELECT COUNT(*)`+where, args...)
	if err != nil {
		return nil, 0, err
	}
	var total int
	err = db.GetContext(ctx, &total, db.Rebind(countQuery), countArgs...)
	if err != nil {
		return nil, 0, err
	}

	listArgs := append(append([]interface{}{}, args...), filter.Limit, (filter.Page-1)*filter.Limit)
	listQuery, expandedArgs, err := sqlx.In(
		`SELECT `+profileColumns+where+` ORDER BY updated_at DESC LIMIT ? OFFSET ?`, listArgs...)
	if err != nil {
		return nil, 0, err
	}

	var profiles []entity.Profile
	err = db.SelectContext(ctx, &profiles, db.Rebind(listQuery), expandedArgs...)
	if err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

func requireRowAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
