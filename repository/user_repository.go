package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"playbook/ledger-service/database"
	"playbook/ledger-service/domain"
	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/interfaces"
)

type userRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) interfaces.UserRepository {
	return &userRepository{q: db.Pool}
}

// newUserRepository creates a new user repository bound to a transaction
func newUserRepository(tx Queryable) interfaces.UserRepository {
	return &userRepository{q: tx}
}

const userColumns = `id, username, balance::TEXT, created_at, updated_at`

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	var balance string
	err := row.Scan(
		&user.ID,
		&user.Username,
		&balance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance %q: %w", balance, err)
	}

	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}

	return user, nil
}

func (r *userRepository) Create(ctx context.Context, username string, initialBalance decimal.Decimal) (*entities.User, error) {
	query := `
		INSERT INTO users (username, balance)
		VALUES ($1, $2::NUMERIC)
		RETURNING id, created_at, updated_at`

	user := &entities.User{
		Username: username,
		Balance:  initialBalance,
	}
	err := r.q.QueryRow(ctx, query, username, initialBalance.String()).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}

	return user, nil
}

// Debit subtracts amount from the user's balance. The non-negativity guard
// lives in the UPDATE so concurrent debits cannot overdraw the account.
func (r *userRepository) Debit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE users
		SET balance = balance - $2::NUMERIC, updated_at = NOW()
		WHERE id = $1 AND balance >= $2::NUMERIC
		RETURNING balance::TEXT`

	var balance string
	err := r.q.QueryRow(ctx, query, userID, amount.String()).Scan(&balance)
	if err == pgx.ErrNoRows {
		// Distinguish a missing user from an overdraw
		exists, existsErr := r.exists(ctx, userID)
		if existsErr != nil {
			return decimal.Zero, existsErr
		}
		if !exists {
			return decimal.Zero, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
		}
		return decimal.Zero, fmt.Errorf("debit %s from user %d: %w", amount, userID, domain.ErrInsufficientFunds)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to debit user %d: %w", userID, err)
	}

	newBalance, err := decimal.NewFromString(balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse balance %q: %w", balance, err)
	}

	return newBalance, nil
}

func (r *userRepository) Credit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE users
		SET balance = balance + $2::NUMERIC, updated_at = NOW()
		WHERE id = $1
		RETURNING balance::TEXT`

	var balance string
	err := r.q.QueryRow(ctx, query, userID, amount.String()).Scan(&balance)
	if err == pgx.ErrNoRows {
		return decimal.Zero, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to credit user %d: %w", userID, err)
	}

	newBalance, err := decimal.NewFromString(balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse balance %q: %w", balance, err)
	}

	return newBalance, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

func (r *userRepository) exists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user %d: %w", userID, err)
	}
	return exists, nil
}
