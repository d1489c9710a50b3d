package repository

import (
	"context"
	"database/sql"
	"errors"

	"coinvest-service/src/internal/entity"
	"coinvest-service/src/pkg/databases/mysql"
)

type PaymentMethodRepository struct {
	DB mysql.DBInterface
}

func NewPaymentMethodRepository(db mysql.DBInterface) *PaymentMethodRepository {
	return &PaymentMethodRepository{
		DB: db,
	}
}

const paymentMethodColumns = `id, type, title, details, qr_code_url, is_active, created_at, updated_at`

func (r *PaymentMethodRepository) Insert(ctx context.Context, method *entity.PaymentMethod) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO payment_methods (id, type, title, details, qr_code_url, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
	`
	_, err = db.ExecContext(ctx, query,
		method.ID, method.Type, method.Title, []byte(method.Details), method.QRCodeURL, method.IsActive,
	)
	return err
}

func (r *PaymentMethodRepository) Update(ctx context.Context, method *entity.PaymentMethod) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	query := `
		UPDATE payment_methods
		SET type = ?, title = ?, details = ?, qr_code_url = ?, is_active = ?, updated_at = NOW()
		WHERE id = ?
	`
	result, err := db.ExecContext(ctx, query,
		method.Type, method.Title, []byte(method.Details), method.QRCodeURL, method.IsActive, method.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// zero rows may just mean nothing changed
		if _, err := r.FindByID(ctx, method.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *PaymentMethodRepository) Delete(ctx context.Context, id string) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, `DELETE FROM payment_methods WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func (r *PaymentMethodRepository) FindByID(ctx context.Context, id string) (*entity.PaymentMethod, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var method entity.PaymentMethod
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE id = ?`
	err = db.GetContext(ctx, &method, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &method, nil
}

func (r *PaymentMethodRepository) List(ctx context.Context, activeOnly bool) ([]entity.PaymentMethod, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY created_at DESC`

	methods := []entity.PaymentMethod{}
	err = db.SelectContext(ctx, &methods, query)
	if err != nil {
		return nil, err
	}

	return methods, nil
}
