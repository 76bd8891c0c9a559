package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/perkmart/perkmart/internal/domain/errors"
	"github.com/perkmart/perkmart/internal/domain/model"
	"github.com/perkmart/perkmart/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on, kept as an
// interface so tests can substitute a mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type ledgerRepository struct {
	storage *Storage
}

type withdrawalRepository struct {
	storage *Storage
}

type redeemCodeRepository struct {
	storage *Storage
}

type taskRepository struct {
	storage *Storage
}

type settingsRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Ledger() repository.LedgerRepository {
	return &ledgerRepository{storage: s}
}

func (s *Storage) Withdrawals() repository.WithdrawalRepository {
	return &withdrawalRepository{storage: s}
}

func (s *Storage) RedeemCodes() repository.RedeemCodeRepository {
	return &redeemCodeRepository{storage: s}
}

func (s *Storage) Tasks() repository.TaskRepository {
	return &taskRepository{storage: s}
}

func (s *Storage) Settings() repository.SettingsRepository {
	return &settingsRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            verified BOOLEAN NOT NULL DEFAULT FALSE,
            standing TEXT NOT NULL DEFAULT 'normal',
            country TEXT NOT NULL DEFAULT '',
            points BIGINT NOT NULL DEFAULT 0 CHECK (points >= 0),
            referrer_id BIGINT REFERENCES users(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS point_events (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            points BIGINT NOT NULL,
            reason TEXT NOT NULL,
            reference TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS withdraw_requests (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            points BIGINT NOT NULL,
            payout DOUBLE PRECISION NOT NULL,
            voucher_type TEXT NOT NULL,
            code TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'processing',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS redeem_codes (
            id SERIAL PRIMARY KEY,
            code TEXT UNIQUE NOT NULL,
            points BIGINT NOT NULL,
            voucher_type TEXT NOT NULL,
            used BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            used_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS tasks (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            reward BIGINT NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS task_completions (
            user_id BIGINT NOT NULL REFERENCES users(id),
            task_id BIGINT NOT NULL REFERENCES tasks(id),
            completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (user_id, task_id)
        )`,
		`CREATE TABLE IF NOT EXISTS settings (
            name TEXT PRIMARY KEY,
            enabled BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE INDEX IF NOT EXISTS idx_requests_status ON withdraw_requests(status, id)`,
		`CREATE INDEX IF NOT EXISTS idx_codes_unused ON redeem_codes(used, id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_user ON point_events(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash, country string, referrerID *int64, startingPoints int64) (*model.User, error) {
	var u model.User
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertUser = `INSERT INTO users (login, password_hash, country, referrer_id, points)
                            VALUES ($1, $2, $3, $4, $5) RETURNING id, standing, created_at`
		err := tx.QueryRow(ctx, insertUser, login, passwordHash, country, referrerID, startingPoints).Scan(&u.ID, &u.Standing, &u.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}
		if startingPoints > 0 {
			const insertEvent = `INSERT INTO point_events (user_id, points, reason) VALUES ($1, $2, $3)`
			if _, err := tx.Exec(ctx, insertEvent, u.ID, startingPoints, model.ReasonSignupBonus); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.Country = country
	u.ReferrerID = referrerID
	u.Points = startingPoints
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, verified, standing, country, points, referrer_id, created_at
                   FROM users WHERE login=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, verified, standing, country, points, referrer_id, created_at
                   FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Verified, &u.Standing, &u.Country, &u.Points, &u.ReferrerID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) SetVerified(ctx context.Context, id int64) error {
	const query = `UPDATE users SET verified=TRUE WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) SetStanding(ctx context.Context, id int64, standing model.Standing) error {
	const query = `UPDATE users SET standing=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, standing, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- LedgerRepository implementation ---

func (r *ledgerRepository) Credit(ctx context.Context, userID, points int64, reason model.EarnReason, reference string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updatePoints = `UPDATE users SET points = points + $1 WHERE id=$2`
		tag, err := tx.Exec(ctx, updatePoints, points, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		const insertEvent = `INSERT INTO point_events (user_id, points, reason, reference) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, insertEvent, userID, points, reason, reference); err != nil {
			return err
		}
		return nil
	})
}

func (r *ledgerRepository) Summary(ctx context.Context, userID int64) (*model.BalanceSummary, error) {
	const query = `SELECT u.points,
                          COALESCE((SELECT SUM(w.points) FROM withdraw_requests w
                                    WHERE w.user_id=u.id AND w.status='success'), 0)
                   FROM users u WHERE u.id=$1`
	var summary model.BalanceSummary
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&summary.Points, &summary.Withdrawn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

func (r *ledgerRepository) Events(ctx context.Context, userID int64) ([]model.PointEvent, error) {
	const query = `SELECT id, user_id, points, reason, reference, created_at
                   FROM point_events WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PointEvent
	for rows.Next() {
		var e model.PointEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.Points, &e.Reason, &e.Reference, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- WithdrawalRepository implementation ---

func (r *withdrawalRepository) Submit(ctx context.Context, userID, points int64, payout float64, voucherType model.VoucherType) (*model.WithdrawRequest, error) {
	var req model.WithdrawRequest
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Guarded decrement: the balance check and the deduction are one
		// statement, so two concurrent submissions cannot both pass on a
		// balance only one of them can afford.
		const deduct = `UPDATE users SET points = points - $1 WHERE id=$2 AND points >= $1`
		tag, err := tx.Exec(ctx, deduct, points, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrInsufficientBalance
		}

		const insertRequest = `INSERT INTO withdraw_requests (user_id, points, payout, voucher_type)
                               VALUES ($1, $2, $3, $4) RETURNING id, status, created_at, updated_at`
		if err := tx.QueryRow(ctx, insertRequest, userID, points, payout, voucherType).Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return err
		}

		const insertEvent = `INSERT INTO point_events (user_id, points, reason, reference) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, insertEvent, userID, -points, model.ReasonWithdrawal, fmt.Sprintf("withdrawal:%d", req.ID)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	req.UserID = userID
	req.Points = points
	req.Payout = payout
	req.VoucherType = voucherType
	return &req, nil
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id int64) (*model.WithdrawRequest, error) {
	const query = `SELECT id, user_id, points, payout, voucher_type, code, status, created_at, updated_at
                   FROM withdraw_requests WHERE id=$1`
	var req model.WithdrawRequest
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&req.ID, &req.UserID, &req.Points, &req.Payout, &req.VoucherType, &req.Code, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *withdrawalRepository) ListByUser(ctx context.Context, userID int64) ([]model.WithdrawRequest, error) {
	const query = `SELECT id, user_id, points, payout, voucher_type, code, status, created_at, updated_at
                   FROM withdraw_requests WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.WithdrawRequest
	for rows.Next() {
		var req model.WithdrawRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.Points, &req.Payout, &req.VoucherType, &req.Code, &req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *withdrawalRepository) ListPending(ctx context.Context) ([]model.PendingWithdrawal, error) {
	const query = `SELECT w.id, w.user_id, w.points, w.payout, w.voucher_type, w.code, w.status,
                          w.created_at, w.updated_at, u.standing
                   FROM withdraw_requests w
                   JOIN users u ON u.id = w.user_id
                   WHERE w.status='processing'
                   ORDER BY w.id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PendingWithdrawal
	for rows.Next() {
		var p model.PendingWithdrawal
		if err := rows.Scan(&p.ID, &p.UserID, &p.Points, &p.Payout, &p.VoucherType, &p.Code, &p.Status, &p.CreatedAt, &p.UpdatedAt, &p.OwnerStanding); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *withdrawalRepository) AssignCode(ctx context.Context, requestID, codeID int64, code string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Both updates are guarded on the current state; zero affected rows
		// means another actor already consumed the code or resolved the
		// request, and the whole pair rolls back.
		const markUsed = `UPDATE redeem_codes SET used=TRUE, used_at=NOW() WHERE id=$1 AND used=FALSE`
		tag, err := tx.Exec(ctx, markUsed, codeID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrConflict
		}

		const promote = `UPDATE withdraw_requests SET status='success', code=$1, updated_at=NOW()
                         WHERE id=$2 AND status='processing'`
		tag, err = tx.Exec(ctx, promote, code, requestID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrConflict
		}
		return nil
	})
}

func (r *withdrawalRepository) Resolve(ctx context.Context, requestID int64, status model.WithdrawalStatus, code string) error {
	const query = `UPDATE withdraw_requests SET status=$1, code=$2, updated_at=NOW()
                   WHERE id=$3 AND status='processing'`
	tag, err := r.storage.pool.Exec(ctx, query, status, code, requestID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrConflict
	}
	return nil
}

// --- RedeemCodeRepository implementation ---

func (r *redeemCodeRepository) BulkAdd(ctx context.Context, codes []model.NewCode) (int, error) {
	added := 0
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insert = `INSERT INTO redeem_codes (code, points, voucher_type) VALUES ($1, $2, $3)
                        ON CONFLICT (code) DO NOTHING`
		for _, c := range codes {
			tag, err := tx.Exec(ctx, insert, c.Code, c.Points, c.VoucherType)
			if err != nil {
				return err
			}
			added += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

func (r *redeemCodeRepository) ListUnused(ctx context.Context) ([]model.RedeemCode, error) {
	const query = `SELECT id, code, points, voucher_type, used, created_at, used_at
                   FROM redeem_codes WHERE used=FALSE ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.RedeemCode
	for rows.Next() {
		var c model.RedeemCode
		if err := rows.Scan(&c.ID, &c.Code, &c.Points, &c.VoucherType, &c.Used, &c.CreatedAt, &c.UsedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- TaskRepository implementation ---

func (r *taskRepository) Create(ctx context.Context, title string, reward int64) (*model.Task, error) {
	const query = `INSERT INTO tasks (title, reward) VALUES ($1, $2) RETURNING id, active, created_at`
	var task model.Task
	err := r.storage.pool.QueryRow(ctx, query, title, reward).Scan(&task.ID, &task.Active, &task.CreatedAt)
	if err != nil {
		return nil, err
	}
	task.Title = title
	task.Reward = reward
	return &task, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	const query = `SELECT id, title, reward, active, created_at FROM tasks WHERE id=$1`
	var task model.Task
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&task.ID, &task.Title, &task.Reward, &task.Active, &task.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListActive(ctx context.Context) ([]model.Task, error) {
	const query = `SELECT id, title, reward, active, created_at FROM tasks WHERE active=TRUE ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Task
	for rows.Next() {
		var task model.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.Reward, &task.Active, &task.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *taskRepository) Complete(ctx context.Context, userID, taskID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectReward = `SELECT reward FROM tasks WHERE id=$1 AND active=TRUE`
		var reward int64
		if err := tx.QueryRow(ctx, selectReward, taskID).Scan(&reward); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const insertCompletion = `INSERT INTO task_completions (user_id, task_id) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, insertCompletion, userID, taskID); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		const updatePoints = `UPDATE users SET points = points + $1 WHERE id=$2`
		tag, err := tx.Exec(ctx, updatePoints, reward, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		const insertEvent = `INSERT INTO point_events (user_id, points, reason, reference) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, insertEvent, userID, reward, model.ReasonTask, fmt.Sprintf("task:%d", taskID)); err != nil {
			return err
		}
		return nil
	})
}

// --- SettingsRepository implementation ---

const settingRedemptionPaused = "redemption_paused"

func (r *settingsRepository) RedemptionPaused(ctx context.Context) (bool, error) {
	const query = `SELECT enabled FROM settings WHERE name=$1`
	var paused bool
	err := r.storage.pool.QueryRow(ctx, query, settingRedemptionPaused).Scan(&paused)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return paused, nil
}

func (r *settingsRepository) SetRedemptionPaused(ctx context.Context, paused bool) error {
	const query = `INSERT INTO settings (name, enabled) VALUES ($1, $2)
                   ON CONFLICT (name) DO UPDATE SET enabled=EXCLUDED.enabled`
	_, err := r.storage.pool.Exec(ctx, query, settingRedemptionPaused, paused)
	return err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
