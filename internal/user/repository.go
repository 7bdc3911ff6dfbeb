package user

import (
	"context"
	"database/sql"

	"dokan-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, name, email, hashedPassword string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*User, error)
	List(ctx context.Context) ([]User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, hashedPassword string) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateUser"),
		zap.String("email", email),
	)

	query := `
	INSERT INTO users (name, email, password)
	VALUES ($1, $2, $3)
	RETURNING id, name, email, phone, address, avatar_url, created_at
	`

	var u User
	err := r.db.QueryRowContext(ctx, query, name, email, hashedPassword).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.Address,
		&u.AvatarURL,
		&u.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	log.Info("user created", zap.Uint("user_id", u.ID))
	return &u, nil
}

// FindByEmail loads the account including the credential hash for the
// login comparison. Callers must not serialize the Password field.
func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `
	SELECT id, name, email, password, phone, address, avatar_url, created_at
	FROM users
	WHERE email = LOWER($1)
	`

	var u User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.Phone,
		&u.Address,
		&u.AvatarURL,
		&u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	query := `
	SELECT id, name, email, phone, address, avatar_url, created_at
	FROM users
	WHERE id = $1
	`

	var u User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.Address,
		&u.AvatarURL,
		&u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*User, error) {
	query := `
	UPDATE users
	SET name       = COALESCE($2, name),
	    phone      = COALESCE($3, phone),
	    address    = COALESCE($4, address),
	    avatar_url = COALESCE($5, avatar_url)
	WHERE id = $1
	RETURNING id, name, email, phone, address, avatar_url, created_at
	`

	var u User
	err := r.db.QueryRowContext(
		ctx,
		query,
		params.UserID,
		params.Name,
		params.Phone,
		params.Address,
		params.AvatarURL,
	).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.Address,
		&u.AvatarURL,
		&u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	query := `
	SELECT id, name, email, phone, address, avatar_url, created_at
	FROM users
	ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Email,
			&u.Phone,
			&u.Address,
			&u.AvatarURL,
			&u.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
