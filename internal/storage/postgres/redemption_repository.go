package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ryu-ryuk/re-wear/internal/domain"
)

type RedemptionRepository struct {
	pool *pgxpool.Pool
}

func NewRedemptionRepository(pool *pgxpool.Pool) *RedemptionRepository {
	return &RedemptionRepository{pool: pool}
}

func (r *RedemptionRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *RedemptionRepository) GetItemForUpdate(ctx context.Context, itemID string) (domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return scanItem(r.queryRow(ctx, query, itemID))
}

func (r *RedemptionRepository) GetUserForUpdate(ctx context.Context, userID string) (domain.User, error) {
	const query = `SELECT id, username, points, created_at FROM users WHERE id = $1 FOR UPDATE`

	var u domain.User
	err := r.queryRow(ctx, query, userID).Scan(&u.ID, &u.Username, &u.Points, &u.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.User{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// DeductPoints is conditional on the balance: the WHERE clause plus the
// points >= 0 check constraint keep a balance from ever going negative, even
// if two deductions race.
func (r *RedemptionRepository) DeductPoints(ctx context.Context, userID string, amount int) error {
	const stmt = `UPDATE users SET points = points - $2 WHERE id = $1 AND points >= $2`

	tag, err := r.exec(ctx, stmt, userID, amount)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientPoints
		}
		return fmt.Errorf("deduct points: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientPoints
	}
	return nil
}

func (r *RedemptionRepository) CreditPoints(ctx context.Context, userID string, amount int) error {
	const stmt = `UPDATE users SET points = points + $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, userID, amount)
	if err != nil {
		return fmt.Errorf("credit points: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *RedemptionRepository) TransferItem(ctx context.Context, itemID, newOwnerID string, status domain.ItemStatus) error {
	const stmt = `UPDATE items SET owner_id = $2, status = $3, updated_at = NOW() WHERE id = $1`

	tag, err := r.exec(ctx, stmt, itemID, newOwnerID, status)
	if err != nil {
		return fmt.Errorf("transfer item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *RedemptionRepository) CreateRedemption(ctx context.Context, redemption domain.Redemption) error {
	const stmt = `
INSERT INTO redemptions (id, item_id, redeemer_id, seller_id, points_spent, seller_reward, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		redemption.ID,
		redemption.ItemID,
		redemption.RedeemerID,
		redemption.SellerID,
		redemption.PointsSpent,
		redemption.SellerReward,
		redemption.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create redemption: %w", err)
	}
	return nil
}

func (r *RedemptionRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *RedemptionRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
