package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopmesh/internal/domain"
)

var (
	ErrCredentialNotFound = errors.New("credential not found")
)

// CredentialRepository defines the interface for credential data access
type CredentialRepository interface {
	FindAll(ctx context.Context) ([]*domain.Credential, error)
	FindByID(ctx context.Context, id int) (*domain.Credential, error)
	FindByUsername(ctx context.Context, username string) (*domain.Credential, error)
	Create(ctx context.Context, credential *domain.Credential) error
	Update(ctx context.Context, credential *domain.Credential) error
	DeleteByID(ctx context.Context, id int) error
}

type credentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new instance of CredentialRepository
func NewCredentialRepository(db *sql.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

const credentialColumns = `credential_id, user_id, username, password_hash, role,
	is_enabled, is_account_non_expired, is_account_non_locked, is_credentials_non_expired`

func scanCredential(row interface{ Scan(...any) error }) (*domain.Credential, error) {
	c := &domain.Credential{}
	err := row.Scan(
		&c.CredentialID,
		&c.UserID,
		&c.Username,
		&c.PasswordHash,
		&c.Role,
		&c.IsEnabled,
		&c.IsAccountNonExpired,
		&c.IsAccountNonLocked,
		&c.IsCredentialsNonExpired,
	)
	return c, err
}

func (r *credentialRepository) FindAll(ctx context.Context) ([]*domain.Credential, error) {
	query := fmt.Sprintf(`SELECT %s FROM credentials ORDER BY credential_id`, credentialColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	defer rows.Close()

	credentials := []*domain.Credential{}
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		credentials = append(credentials, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credentials: %w", err)
	}

	return credentials, nil
}

func (r *credentialRepository) FindByID(ctx context.Context, id int) (*domain.Credential, error) {
	query := fmt.Sprintf(`SELECT %s FROM credentials WHERE credential_id = $1`, credentialColumns)

	c, err := scanCredential(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCredentialNotFound
		}
		return nil, fmt.Errorf("failed to find credential by ID: %w", err)
	}

	return c, nil
}

func (r *credentialRepository) FindByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	query := fmt.Sprintf(`SELECT %s FROM credentials WHERE username = $1`, credentialColumns)

	c, err := scanCredential(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCredentialNotFound
		}
		return nil, fmt.Errorf("failed to find credential by username: %w", err)
	}

	return c, nil
}

func (r *credentialRepository) Create(ctx context.Context, credential *domain.Credential) error {
	query := `
		INSERT INTO credentials (user_id, username, password_hash, role,
			is_enabled, is_account_non_expired, is_account_non_locked, is_credentials_non_expired)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING credential_id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		credential.UserID,
		credential.Username,
		credential.PasswordHash,
		credential.Role,
		credential.IsEnabled,
		credential.IsAccountNonExpired,
		credential.IsAccountNonLocked,
		credential.IsCredentialsNonExpired,
	).Scan(&credential.CredentialID)

	if err != nil {
		return fmt.Errorf("failed to create credential: %w", err)
	}

	return nil
}

func (r *credentialRepository) Update(ctx context.Context, credential *domain.Credential) error {
	query := `
		UPDATE credentials
		SET username = $2, password_hash = $3, role = $4, is_enabled = $5,
			is_account_non_expired = $6, is_account_non_locked = $7, is_credentials_non_expired = $8
		WHERE credential_id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		credential.CredentialID,
		credential.Username,
		credential.PasswordHash,
		credential.Role,
		credential.IsEnabled,
		credential.IsAccountNonExpired,
		credential.IsAccountNonLocked,
		credential.IsCredentialsNonExpired,
	)
	if err != nil {
		return fmt.Errorf("failed to update credential: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}

func (r *credentialRepository) DeleteByID(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE credential_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}
