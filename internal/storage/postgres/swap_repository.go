package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ryu-ryuk/re-wear/internal/domain"
)

type SwapRepository struct {
	pool *pgxpool.Pool
}

func NewSwapRepository(pool *pgxpool.Pool) *SwapRepository {
	return &SwapRepository{pool: pool}
}

func (r *SwapRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const swapColumns = `id, requester_id, requested_item_id, offered_item_id, status, message, created_at, updated_at`

func (r *SwapRepository) GetSwap(ctx context.Context, swapID string) (domain.SwapRequest, error) {
	query := `SELECT ` + swapColumns + ` FROM swap_requests WHERE id = $1`
	return r.scanSwap(r.queryRow(ctx, query, swapID))
}

func (r *SwapRepository) GetSwapForUpdate(ctx context.Context, swapID string) (domain.SwapRequest, error) {
	query := `SELECT ` + swapColumns + ` FROM swap_requests WHERE id = $1 FOR UPDATE`
	return r.scanSwap(r.queryRow(ctx, query, swapID))
}

func (r *SwapRepository) scanSwap(row pgx.Row) (domain.SwapRequest, error) {
	var s domain.SwapRequest
	var status string
	err := row.Scan(
		&s.ID,
		&s.RequesterID,
		&s.RequestedItemID,
		&s.OfferedItemID,
		&status,
		&s.Message,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.SwapRequest{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.SwapRequest{}, domain.ErrSwapNotFound
		}
		return domain.SwapRequest{}, fmt.Errorf("get swap: %w", err)
	}
	s.Status = domain.SwapStatus(status)
	return s, nil
}

func (r *SwapRepository) ListSwapsForUser(ctx context.Context, userID string) ([]domain.SwapRequest, error) {
	const query = `
SELECT s.id, s.requester_id, s.requested_item_id, s.offered_item_id, s.status, s.message, s.created_at, s.updated_at
FROM swap_requests s
JOIN items i ON i.id = s.requested_item_id
WHERE s.requester_id = $1 OR i.owner_id = $1
ORDER BY s.created_at DESC`

	rows, err := r.query(ctx, query, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list swaps: %w", err)
	}
	defer rows.Close()

	var out []domain.SwapRequest
	for rows.Next() {
		var s domain.SwapRequest
		var status string
		if err := rows.Scan(
			&s.ID,
			&s.RequesterID,
			&s.RequestedItemID,
			&s.OfferedItemID,
			&status,
			&s.Message,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan swap: %w", err)
		}
		s.Status = domain.SwapStatus(status)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list swaps: %w", err)
	}
	return out, nil
}

func (r *SwapRepository) CreateSwap(ctx context.Context, swap domain.SwapRequest) error {
	const stmt = `
INSERT INTO swap_requests (id, requester_id, requested_item_id, offered_item_id, status, message, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(ctx, stmt,
		swap.ID,
		swap.RequesterID,
		swap.RequestedItemID,
		swap.OfferedItemID,
		swap.Status,
		swap.Message,
		swap.CreatedAt,
		swap.UpdatedAt,
	)
	if err != nil {
		// The partial unique index on pending triples backs the
		// duplicate-proposal invariant under concurrency.
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSwap
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create swap: %w", err)
	}
	return nil
}

func (r *SwapRepository) UpdateSwapStatus(ctx context.Context, swapID string, status domain.SwapStatus) error {
	const stmt = `UPDATE swap_requests SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.exec(ctx, stmt, swapID, status)
	if err != nil {
		return fmt.Errorf("update swap status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSwapNotFound
	}
	return nil
}

func (r *SwapRepository) DeleteSwap(ctx context.Context, swapID string) error {
	const stmt = `DELETE FROM swap_requests WHERE id = $1`

	tag, err := r.exec(ctx, stmt, swapID)
	if err != nil {
		return fmt.Errorf("delete swap: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSwapNotFound
	}
	return nil
}

func (r *SwapRepository) RejectConflictingSwaps(ctx context.Context, swapID string, itemIDs []string) (int, error) {
	const stmt = `
UPDATE swap_requests
SET status = 'rejected', updated_at = NOW()
WHERE id <> $1
  AND status = 'pending'
  AND (requested_item_id = ANY($2::uuid[]) OR offered_item_id = ANY($2::uuid[]))`

	tag, err := r.exec(ctx, stmt, swapID, itemIDs)
	if err != nil {
		return 0, fmt.Errorf("reject conflicting swaps: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *SwapRepository) HasPendingSwap(ctx context.Context, requesterID, requestedItemID, offeredItemID string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1 FROM swap_requests
	WHERE requester_id = $1 AND requested_item_id = $2 AND offered_item_id = $3 AND status = 'pending'
)`

	var exists bool
	if err := r.queryRow(ctx, query, requesterID, requestedItemID, offeredItemID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("check pending swap: %w", err)
	}
	return exists, nil
}

const itemColumns = `id, owner_id, title, status, point_value, is_approved, created_at, updated_at`

func (r *SwapRepository) GetItem(ctx context.Context, itemID string) (domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return scanItem(r.queryRow(ctx, query, itemID))
}

func (r *SwapRepository) GetItemForUpdate(ctx context.Context, itemID string) (domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return scanItem(r.queryRow(ctx, query, itemID))
}

func (r *SwapRepository) UpdateItemStatus(ctx context.Context, itemID string, status domain.ItemStatus) error {
	const stmt = `UPDATE items SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.exec(ctx, stmt, itemID, status)
	if err != nil {
		return fmt.Errorf("update item status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *SwapRepository) CreditPoints(ctx context.Context, userID string, amount int) error {
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

func scanItem(row pgx.Row) (domain.Item, error) {
	var i domain.Item
	var status string
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Title,
		&status,
		&i.PointValue,
		&i.IsApproved,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Item{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Item{}, domain.ErrItemNotFound
		}
		return domain.Item{}, fmt.Errorf("get item: %w", err)
	}
	i.Status = domain.ItemStatus(status)
	return i, nil
}

func (r *SwapRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *SwapRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *SwapRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
