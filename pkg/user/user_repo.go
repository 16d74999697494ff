package user

import (
	"context"
	"database/sql"
	"errors"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user does not exist")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	DeleteUser(ctx context.Context, id int) error
	GetAllUsers(ctx context.Context) ([]User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type UserRepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	timezone := user.Settings.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	locale := user.Settings.CalendarLocale
	if locale == "" {
		locale = "en"
	}
	query := `INSERT INTO users (uid, username, display_name, timezone, calendar_locale)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := u.db.QueryRowContext(ctx, query,
		user.Uid,
		user.Username,
		user.DisplayName,
		timezone,
		locale,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, username, display_name, timezone, calendar_locale FROM users WHERE id = $1`
	var user User
	err := u.db.QueryRowContext(ctx, query, id).
		Scan(
			&user.Id,
			&user.Uid,
			&user.Username,
			&user.DisplayName,
			&user.Settings.Timezone,
			&user.Settings.CalendarLocale,
		)
	if errors.Is(err, sql.ErrNoRows) {
		log.Errorf("user with id %d not found: %v", id, err)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, display_name, timezone, calendar_locale FROM users WHERE uid = $1`

	var user User
	err := u.db.QueryRowContext(ctx, query, uid).
		Scan(
			&user.Id,
			&user.Uid,
			&user.Username,
			&user.DisplayName,
			&user.Settings.Timezone,
			&user.Settings.CalendarLocale,
		)
	if errors.Is(err, sql.ErrNoRows) {
		log.Infof("user with uid %s not found: %v", uid, err)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) DeleteUser(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := u.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Info("no rows affected of deleting user")
		return ErrUserNotFound
	}
	return nil
}

func (u *UserRepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, uid, username, display_name, timezone, calendar_locale FROM users`
	rows, err := u.db.QueryContext(ctx, query)
	if err != nil {
		log.Errorf("failed to get users: %v", err)
		return nil, err
	}
	defer rows.Close()
	users := make([]User, 0, 10)
	for rows.Next() {
		var user User
		err := rows.Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName, &user.Settings.Timezone,
			&user.Settings.CalendarLocale)
		if err != nil {
			log.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return users, nil
}

func (u *UserRepoImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE username = $1`
	var count int
	err := u.db.QueryRowContext(ctx, query, username).Scan(&count)
	if err != nil {
		log.Errorf("failed to check username availability: %v", err)
		return false, err
	}
	return count == 0, nil
}
