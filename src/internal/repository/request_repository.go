package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coinvest-service/src/internal/entity"
	"coinvest-service/src/pkg/databases/mysql"

	"github.com/jmoiron/sqlx"
)

type RequestRepository struct {
	DB mysql.DBInterface
}

func NewRequestRepository(db mysql.DBInterface) *RequestRepository {
	return &RequestRepository{
		DB: db,
	}
}

const requestColumns = `
	id, user_id, type, status, amount, payment_mode, proof_of_payment, note,
	submission_date, approval_date, rejection_date, rejection_reason
`

func (r *RequestRepository) Insert(ctx context.Context, req *entity.CoinRequest) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO coin_requests (id, user_id, type, status, amount, payment_mode, proof_of_payment, note, submission_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = db.ExecContext(ctx, query,
		req.ID, req.UserID, req.Type, req.Status, req.Amount,
		req.PaymentMode, req.ProofOfPayment, req.Note, req.SubmissionDate,
	)
	return err
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*entity.CoinRequest, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var req entity.CoinRequest
	query := `SELECT ` + requestColumns + ` FROM coin_requests WHERE id = ?`
	err = db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *RequestRepository) ListByUser(ctx context.Context, userID string, filter entity.RequestFilter) ([]entity.CoinRequest, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + requestColumns + ` FROM coin_requests WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, filter.Type)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}

	query += ` ORDER BY submission_date DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	requests := []entity.CoinRequest{}
	err = db.SelectContext(ctx, &requests, query, args...)
	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *RequestRepository) ListByType(ctx context.Context, reqType string, filter entity.ReviewFilter) ([]entity.CoinRequestWithProfile, int, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, 0, err
	}

	where := ` FROM coin_requests cr JOIN profiles p ON p.user_id = cr.user_id
		WHERE cr.type = ? AND cr.status = ?`
	args := []interface{}{reqType, filter.Status}
	if filter.Search != "" {
		// search narrows before LIMIT/OFFSET so matches on later pages
		// are not lost and the total counts every match
		where += ` AND (p.coinvestor_id LIKE ?`
		args = append(args, "%"+filter.Search+"%")
		if len(filter.MatchUserIDs) > 0 {
			where += ` OR cr.user_id IN (?)`
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

	order := ` ORDER BY cr.submission_date DESC`
	if filter.Sort == "oldest" {
		order = ` ORDER BY cr.submission_date ASC`
	}

	listArgs := append(append([]interface{}{}, args...), filter.Limit, (filter.Page-1)*filter.Limit)
	listQuery, expandedArgs, err := sqlx.In(`
		SELECT cr.id, cr.user_id, cr.type, cr.status, cr.amount, cr.payment_mode,
			cr.proof_of_payment, cr.note, cr.submission_date, cr.approval_date,
			cr.rejection_date, cr.rejection_reason, p.coinvestor_id`+
		where+order+` LIMIT ? OFFSET ?`, listArgs...)
	if err != nil {
		return nil, 0, err
	}

	requests := []entity.CoinRequestWithProfile{}
	err = db.SelectContext(ctx, &requests, db.Rebind(listQuery), expandedArgs...)
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// Approve flips a pending request to approved and moves the balance in one
// transaction. The request row lock serializes concurrent reviewers; the
// conditional balance update is the authoritative withdrawal check.
func (r *RequestRepository) Approve(ctx context.Context, requestID string, approvedAt time.Time) (*entity.CoinRequest, float64, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, 0, err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var req entity.CoinRequest
	err = tx.GetContext(ctx, &req, `SELECT `+requestColumns+` FROM coin_requests WHERE id = ? FOR UPDATE`, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	if req.Status != entity.RequestStatusPending {
		return nil, 0, ErrNotPending
	}

	switch req.Type {
	case entity.RequestTypePurchase:
		_, err = tx.ExecContext(ctx,
			`UPDATE profiles SET balance = balance + ?, updated_at = NOW() WHERE user_id = ?`,
			req.Amount, req.UserID,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to credit balance: %w", err)
		}
	case entity.RequestTypeWithdrawal:
		result, err := tx.ExecContext(ctx,
			`UPDATE profiles SET balance = balance - ?, updated_at = NOW() WHERE user_id = ? AND balance >= ?`,
			req.Amount, req.UserID, req.Amount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to debit balance: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return nil, 0, err
		}
		if rows == 0 {
			// balance guard failed; the rollback leaves the request pending
			return nil, 0, ErrInsufficientBalance
		}
	default:
		return nil, 0, fmt.Errorf("unknown request type %q", req.Type)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE coin_requests SET status = ?, approval_date = ? WHERE id = ? AND status = ?`,
		entity.RequestStatusApproved, approvedAt, requestID, entity.RequestStatusPending,
	)
	if err != nil {
		return nil, 0, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, 0, err
	}
	if rows == 0 {
		return nil, 0, ErrNotPending
	}

	var newBalance float64
	err = tx.GetContext(ctx, &newBalance, `SELECT balance FROM profiles WHERE user_id = ?`, req.UserID)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}

	req.Status = entity.RequestStatusApproved
	req.ApprovalDate = sql.NullTime{Time: approvedAt, Valid: true}
	return &req, newBalance, nil
}

// Reject flips a pending request to rejected. Enforces the same pending
// precondition as Approve.
func (r *RequestRepository) Reject(ctx context.Context, requestID, reason string, rejectedAt time.Time) (*entity.CoinRequest, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var req entity.CoinRequest
	err = tx.GetContext(ctx, &req, `SELECT `+requestColumns+` FROM coin_requests WHERE id = ? FOR UPDATE`, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Status != entity.RequestStatusPending {
		return nil, ErrNotPending
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE coin_requests SET status = ?, rejection_date = ?, rejection_reason = ? WHERE id = ? AND status = ?`,
		entity.RequestStatusRejected, rejectedAt, reason, requestID, entity.RequestStatusPending,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	req.Status = entity.RequestStatusRejected
	req.RejectionDate = sql.NullTime{Time: rejectedAt, Valid: true}
	req.RejectionReason = sql.NullString{String: reason, Valid: true}
	return &req, nil
}

// InsertApproved appends an already-approved request and applies its delta
// in the same transaction (manual admin deposits/withdrawals).
func (r *RequestRepository) InsertApproved(ctx context.Context, req *entity.CoinRequest) (float64, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	switch req.Type {
	case entity.RequestTypePurchase:
		result, err := tx.ExecContext(ctx,
			`UPDATE profiles SET balance = balance + ?, updated_at = NOW() WHERE user_id = ?`,
			req.Amount, req.UserID,
		)
		if err != nil {
			return 0, err
		}
		if err := requireRowAffected(result); err != nil {
			return 0, err
		}
	case entity.RequestTypeWithdrawal:
		result, err := tx.ExecContext(ctx,
			`UPDATE profiles SET balance = balance - ?, updated_at = NOW() WHERE user_id = ? AND balance >= ?`,
			req.Amount, req.UserID, req.Amount,
		)
		if err != nil {
			return 0, err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}
		if rows == 0 {
			var exists int
			if err := tx.GetContext(ctx, &exists, `SELECT COUNT(*) FROM profiles WHERE user_id = ?`, req.UserID); err != nil {
				return 0, err
			}
			if exists == 0 {
				return 0, ErrNotFound
			}
			return 0, ErrInsufficientBalance
		}
	default:
		return 0, fmt.Errorf("unknown request type %q", req.Type)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO coin_requests (id, user_id, type, status, amount, payment_mode, proof_of_payment, note, submission_date, approval_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.UserID, req.Type, req.Status, req.Amount,
		req.PaymentMode, req.ProofOfPayment, req.Note, req.SubmissionDate, req.ApprovalDate,
	)
	if err != nil {
		return 0, err
	}

	var newBalance float64
	err = tx.GetContext(ctx, &newBalance, `SELECT balance FROM profiles WHERE user_id = ?`, req.UserID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return newBalance, nil
}
