package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/Gudini108/tasktracker/pkg/auth"
	"github.com/Gudini108/tasktracker/pkg/tasks"
)

// Config holds PostgreSQL connection settings.
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns connection-pool defaults suitable for a small service.
func DefaultConfig() Config {
	return Config{
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// Postgres implements auth.AccountStore and tasks.Store over a PostgreSQL
// database.
type Postgres struct {
	db *sql.DB
}

// Open connects to PostgreSQL and verifies the connection.
func Open(cfg Config) (*Postgres, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("postgres URL is required")
	}

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Postgres{db: db}, nil
}

// NewPostgres wraps an existing database handle. Used by tests.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// DB exposes the underlying handle for health checks.
func (p *Postgres) DB() *sql.DB {
	return p.db
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// InitSchema creates the users and tasks tables if they do not exist. The
// unique constraint on username is the second line of defense behind the
// registration pre-check; the FK cascade removes a user's tasks with the user.
func (p *Postgres) InitSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(128) NOT NULL UNIQUE,
		first_name VARCHAR(128) NOT NULL,
		last_name TEXT,
		password VARCHAR(128) NOT NULL
	);
	CREATE TABLE IF NOT EXISTS tasks (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(256) NOT NULL,
		description TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'New',
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE
	);`

	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return wrap("init schema", err)
	}
	return nil
}

// GetAccountByUsername looks up an account by exact username. Returns
// (nil, nil) when no row matches.
func (p *Postgres) GetAccountByUsername(ctx context.Context, username string) (*auth.Account, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, username, first_name, last_name, password
		FROM users WHERE username = $1`, username)

	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get account by username", err)
	}
	return account, nil
}

// ListAccounts returns all accounts ordered by id.
func (p *Postgres) ListAccounts(ctx context.Context) ([]auth.Account, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, username, first_name, last_name, password
		FROM users ORDER BY id`)
	if err != nil {
		return nil, wrap("list accounts", err)
	}
	defer rows.Close()

	accounts := make([]auth.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, wrap("list accounts", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list accounts", err)
	}
	return accounts, nil
}

// CreateAccount inserts a new account. A unique-constraint violation on the
// username index is reported as auth.ErrDuplicateUser.
func (p *Postgres) CreateAccount(ctx context.Context, account *auth.Account) (*auth.Account, error) {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO users (username, first_name, last_name, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		account.Username, account.FirstName, nullString(account.LastName), account.PasswordHash,
	).Scan(&account.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, auth.ErrDuplicateUser
		}
		return nil, wrap("create account", err)
	}
	return account, nil
}

// GetTask returns a task with its owner joined in, or (nil, nil) when the id
// does not resolve.
func (p *Postgres) GetTask(ctx context.Context, id int64) (*tasks.Task, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT t.id, t.title, t.description, t.status, u.id, u.username
		FROM tasks t
		JOIN users u ON t.user_id = u.id
		WHERE t.id = $1`, id)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get task", err)
	}
	return task, nil
}

// CreateTask inserts a new task for its owner.
func (p *Postgres) CreateTask(ctx context.Context, task *tasks.Task) (*tasks.Task, error) {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO tasks (title, description, status, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		task.Title, nullString(task.Description), string(task.Status), task.Owner.ID,
	).Scan(&task.ID)
	if err != nil {
		return nil, wrap("create task", err)
	}
	return task, nil
}

// UpdateTask persists title, description and status of an existing task.
// Ownership never changes.
func (p *Postgres) UpdateTask(ctx context.Context, task *tasks.Task) error {
	_, err := p.db.ExecContext(ctx, `
		UPDATE tasks SET title = $1, description = $2, status = $3
		WHERE id = $4`,
		task.Title, nullString(task.Description), string(task.Status), task.ID)
	if err != nil {
		return wrap("update task", err)
	}
	return nil
}

// DeleteTask removes a task by id.
func (p *Postgres) DeleteTask(ctx context.Context, id int64) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return wrap("delete task", err)
	}
	return nil
}

// ListTasks returns one page of tasks matching the filter, ordered by id, with
// the total match count for pagination rendering.
func (p *Postgres) ListTasks(ctx context.Context, filter tasks.Filter, page tasks.PageParams) (*tasks.Page, error) {
	where, args := buildTaskFilter(filter)

	var total int64
	countQuery := "SELECT COUNT(*) FROM tasks t" + where
	if err := p.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, wrap("count tasks", err)
	}

	listQuery := `
		SELECT t.id, t.title, t.description, t.status, u.id, u.username
		FROM tasks t
		JOIN users u ON t.user_id = u.id` + where +
		" ORDER BY t.id LIMIT $" + strconv.Itoa(len(args)+1) +
		" OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, page.Size, (page.Number-1)*page.Size)

	rows, err := p.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, wrap("list tasks", err)
	}
	defer rows.Close()

	items := make([]tasks.Task, 0, page.Size)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, wrap("list tasks", err)
		}
		items = append(items, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list tasks", err)
	}

	return &tasks.Page{Items: items, Total: total, Page: page.Number, Size: page.Size}, nil
}

func buildTaskFilter(filter tasks.Filter) (where string, args []interface{}) {
	clauses := make([]string, 0, 2)
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, "t.user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		clauses = append(clauses, "t.status = $"+strconv.Itoa(len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row scanner) (*auth.Account, error) {
	var (
		account  auth.Account
		lastName sql.NullString
	)
	if err := row.Scan(&account.ID, &account.Username, &account.FirstName, &lastName, &account.PasswordHash); err != nil {
		return nil, err
	}
	account.LastName = lastName.String
	return &account, nil
}

func scanTask(row scanner) (*tasks.Task, error) {
	var (
		task        tasks.Task
		description sql.NullString
		status      string
	)
	if err := row.Scan(&task.ID, &task.Title, &description, &status, &task.Owner.ID, &task.Owner.Username); err != nil {
		return nil, err
	}
	task.Description = description.String
	task.Status = tasks.Status(status)
	return &task, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
