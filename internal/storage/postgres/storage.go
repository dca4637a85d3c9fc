package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/solarteam/purchaseline/internal/domain/errors"
	"github.com/solarteam/purchaseline/internal/domain/model"
	"github.com/solarteam/purchaseline/internal/domain/reconcile"
	"github.com/solarteam/purchaseline/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage uses. Tests substitute
// a pgxmock pool through the same seam.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// querier is satisfied by both pgxPool and pgx.Tx so read helpers can run
// inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

var _ repository.Factory = (*Storage)(nil)

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type itemRepository struct {
	storage *Storage
}

type pushTokenRepository struct {
	storage *Storage
}

type documentRepository struct {
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

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Items() repository.ItemRepository {
	return &itemRepository{storage: s}
}

func (s *Storage) PushTokens() repository.PushTokenRepository {
	return &pushTokenRepository{storage: s}
}

func (s *Storage) Documents() repository.DocumentRepository {
	return &documentRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            subteam TEXT NOT NULL,
            phone TEXT,
            carrier TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            human_id TEXT NOT NULL DEFAULT '',
            meen_order_id TEXT,
            name TEXT NOT NULL,
            vendor TEXT NOT NULL DEFAULT '',
            cart_url TEXT,
            status TEXT NOT NULL,
            total_cost NUMERIC(12,2) NOT NULL DEFAULT 0,
            cost_verified BOOLEAN NOT NULL DEFAULT FALSE,
            comments TEXT,
            carrier TEXT,
            tracking_id TEXT,
            cost_breakdown JSONB,
            user_id BIGINT NOT NULL REFERENCES users(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS items (
            id BIGSERIAL PRIMARY KEY,
            human_id TEXT NOT NULL DEFAULT '',
            order_id BIGINT REFERENCES orders(id) ON DELETE CASCADE,
            name TEXT NOT NULL,
            vendor TEXT NOT NULL DEFAULT '',
            quantity INT NOT NULL DEFAULT 1,
            price NUMERIC(12,2) NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            part_number TEXT,
            link TEXT,
            notes TEXT,
            internal_sku TEXT,
            stock INT,
            location TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS documents (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            kind TEXT NOT NULL,
            name TEXT NOT NULL,
            url TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS push_tokens (
            id BIGSERIAL PRIMARY KEY,
            token TEXT UNIQUE NOT NULL,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            platform TEXT NOT NULL DEFAULT '',
            device_id TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_items_order ON items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_order ON documents(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_push_tokens_user ON push_tokens(user_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, human_id, meen_order_id, name, vendor, cart_url, status, total_cost, cost_verified, comments, carrier, tracking_id, cost_breakdown, user_id, created_at, updated_at`

const itemColumns = `id, human_id, order_id, name, vendor, quantity, price, status, part_number, link, notes, internal_sku, stock, location, created_at, updated_at`

const userColumns = `id, name, email, password_hash, role, subteam, phone, carrier, created_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var breakdown []byte
	err := row.Scan(&o.ID, &o.HumanID, &o.MeenOrderID, &o.Name, &o.Vendor, &o.CartURL, &o.Status,
		&o.TotalCost, &o.CostVerified, &o.Comments, &o.Carrier, &o.TrackingID, &breakdown,
		&o.UserID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &o.CostBreakdown); err != nil {
			return nil, fmt.Errorf("decode cost breakdown: %w", err)
		}
	}
	return &o, nil
}

func scanItem(row pgx.Row) (*model.Item, error) {
	var it model.Item
	err := row.Scan(&it.ID, &it.HumanID, &it.OrderID, &it.Name, &it.Vendor, &it.Quantity, &it.Price,
		&it.Status, &it.PartNumber, &it.Link, &it.Notes, &it.InternalSKU, &it.Stock, &it.Location,
		&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Subteam, &u.Phone, &u.Carrier, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func getOrder(ctx context.Context, q querier, query string, args ...any) (*model.Order, error) {
	order, err := scanOrder(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func getItem(ctx context.Context, q querier, query string, args ...any) (*model.Item, error) {
	item, err := scanItem(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func listOrders(ctx context.Context, q querier, query string, args ...any) ([]model.Order, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func listItems(ctx context.Context, q querier, query string, args ...any) ([]model.Item, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func marshalBreakdown(b model.CostBreakdown) (any, error) {
	if b == nil {
		return nil, nil
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode cost breakdown: %w", err)
	}
	return raw, nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	const query = `INSERT INTO users (name, email, password_hash, role, subteam, phone, carrier)
                   VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash,
		user.Role, user.Subteam, user.Phone, user.Carrier).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	user, err := scanUser(r.storage.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	user, err := scanUser(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) ListBySubteam(ctx context.Context, subteam string) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE subteam=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, subteam)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- OrderRepository implementation ---

func insertItemTx(ctx context.Context, tx pgx.Tx, item model.Item) (*model.Item, error) {
	const query = `INSERT INTO items (order_id, name, vendor, quantity, price, status, part_number, link, notes, internal_sku, stock, location)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id, created_at, updated_at`
	err := tx.QueryRow(ctx, query, item.OrderID, item.Name, item.Vendor, item.Quantity, item.Price,
		item.Status, item.PartNumber, item.Link, item.Notes, item.InternalSKU, item.Stock, item.Location).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	item.HumanID = fmt.Sprintf("ITM-%05d", item.ID)
	if _, err := tx.Exec(ctx, `UPDATE items SET human_id=$1 WHERE id=$2`, item.HumanID, item.ID); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderRepository) Create(ctx context.Context, order model.Order, items []model.Item) (*model.Order, []model.Item, error) {
	var (
		created      *model.Order
		createdItems []model.Item
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		breakdown, err := marshalBreakdown(order.CostBreakdown)
		if err != nil {
			return err
		}

		const insertOrder = `INSERT INTO orders (meen_order_id, name, vendor, cart_url, status, total_cost, cost_verified, comments, carrier, tracking_id, cost_breakdown, user_id)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id, created_at, updated_at`
		err = tx.QueryRow(ctx, insertOrder, order.MeenOrderID, order.Name, order.Vendor, order.CartURL,
			order.Status, order.TotalCost, order.CostVerified, order.Comments, order.Carrier,
			order.TrackingID, breakdown, order.UserID).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		order.HumanID = fmt.Sprintf("PO-%05d", order.ID)
		if _, err := tx.Exec(ctx, `UPDATE orders SET human_id=$1 WHERE id=$2`, order.HumanID, order.ID); err != nil {
			return err
		}

		for _, item := range items {
			item.OrderID = &order.ID
			inserted, err := insertItemTx(ctx, tx, item)
			if err != nil {
				return err
			}
			createdItems = append(createdItems, *inserted)
		}

		created = &order
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return created, createdItems, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return getOrder(ctx, r.storage.pool, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	return listOrders(ctx, r.storage.pool, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return listOrders(ctx, r.storage.pool, `SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

// ApplyTransition moves an order to the target status and cascades the
// change onto its items in a single transaction. The order row is locked
// first so concurrent transitions of the same order serialize; the item
// snapshot the plan is computed from cannot drift before the writes land.
func (r *orderRepository) ApplyTransition(ctx context.Context, orderID int64, update model.OrderUpdate) (*model.Order, []model.Item, error) {
	var (
		order *model.Order
		items []model.Item
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		current, err := getOrder(ctx, tx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, orderID)
		if err != nil {
			return err
		}

		snapshot, err := listItems(ctx, tx, `SELECT `+itemColumns+` FROM items WHERE order_id=$1 ORDER BY id FOR UPDATE`, orderID)
		if err != nil {
			return err
		}

		plan := reconcile.PlanOrderTransition(current.Status, update.Status, snapshot)

		breakdown, err := marshalBreakdown(update.CostBreakdown)
		if err != nil {
			return err
		}

		const updateOrder = `UPDATE orders SET status=$1,
                total_cost=COALESCE($2::NUMERIC, total_cost),
                cost_verified=COALESCE($3::BOOLEAN, cost_verified),
                carrier=COALESCE($4::TEXT, carrier),
                tracking_id=COALESCE($5::TEXT, tracking_id),
                meen_order_id=COALESCE($6::TEXT, meen_order_id),
                comments=COALESCE($7::TEXT, comments),
                cost_breakdown=COALESCE($8::JSONB, cost_breakdown),
                updated_at=NOW()
            WHERE id=$9`
		if _, err := tx.Exec(ctx, updateOrder, update.Status, update.TotalCost, update.CostVerified,
			update.Carrier, update.TrackingID, update.MeenOrderID, update.Comments, breakdown, orderID); err != nil {
			return err
		}

		if len(plan.ItemIDs) > 0 {
			const updateItems = `UPDATE items SET status=$1, updated_at=NOW() WHERE id = ANY($2)`
			if _, err := tx.Exec(ctx, updateItems, plan.ItemStatus, plan.ItemIDs); err != nil {
				return err
			}
		}

		order, err = getOrder(ctx, tx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, orderID)
		if err != nil {
			return err
		}
		items, err = listItems(ctx, tx, `SELECT `+itemColumns+` FROM items WHERE order_id=$1 ORDER BY id`, orderID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// SubteamSpend aggregates order totals per subteam. Orders with a cost
// breakdown split their total by percentage; the rest count fully against
// the owner's subteam.
func (r *orderRepository) SubteamSpend(ctx context.Context) (map[string]decimal.Decimal, error) {
	const query = `SELECT o.total_cost, o.cost_breakdown, u.subteam
                   FROM orders o JOIN users u ON u.id = o.user_id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hundred := decimal.NewFromInt(100)
	spend := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			total   decimal.Decimal
			raw     []byte
			subteam string
		)
		if err := rows.Scan(&total, &raw, &subteam); err != nil {
			return nil, err
		}

		var breakdown model.CostBreakdown
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &breakdown); err != nil {
				return nil, fmt.Errorf("decode cost breakdown: %w", err)
			}
		}
		if len(breakdown) == 0 {
			spend[subteam] = spend[subteam].Add(total)
			continue
		}
		for team, pct := range breakdown {
			share := total.Mul(decimal.NewFromInt(int64(pct))).Div(hundred)
			spend[team] = spend[team].Add(share)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return spend, nil
}

// --- ItemRepository implementation ---

func (r *itemRepository) Create(ctx context.Context, item model.Item) (*model.Item, error) {
	var created *model.Item
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		inserted, err := insertItemTx(ctx, tx, item)
		if err != nil {
			return err
		}
		created = inserted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	return getItem(ctx, r.storage.pool, `SELECT `+itemColumns+` FROM items WHERE id=$1`, id)
}

func (r *itemRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.Item, error) {
	return listItems(ctx, r.storage.pool, `SELECT `+itemColumns+` FROM items WHERE order_id=$1 ORDER BY id`, orderID)
}

func (r *itemRepository) ListInventory(ctx context.Context) ([]model.Item, error) {
	return listItems(ctx, r.storage.pool, `SELECT `+itemColumns+` FROM items WHERE order_id IS NULL ORDER BY id`)
}

func (r *itemRepository) Update(ctx context.Context, id int64, update model.ItemUpdate) (*model.Item, error) {
	const query = `UPDATE items SET
            name=COALESCE($1::TEXT, name),
            vendor=COALESCE($2::TEXT, vendor),
            quantity=COALESCE($3::INT, quantity),
            price=COALESCE($4::NUMERIC, price),
            part_number=COALESCE($5::TEXT, part_number),
            link=COALESCE($6::TEXT, link),
            notes=COALESCE($7::TEXT, notes),
            internal_sku=COALESCE($8::TEXT, internal_sku),
            stock=COALESCE($9::INT, stock),
            location=COALESCE($10::TEXT, location),
            updated_at=NOW()
        WHERE id=$11 RETURNING ` + itemColumns
	item, err := scanItem(r.storage.pool.QueryRow(ctx, query, update.Name, update.Vendor, update.Quantity,
		update.Price, update.PartNumber, update.Link, update.Notes, update.InternalSKU, update.Stock,
		update.Location, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// ApplyStatus sets the item's status and, for order-owned items, archives
// the parent once every sibling is picked up. The parent row is locked
// before siblings are inspected so two final pickups cannot both miss the
// archival.
func (r *itemRepository) ApplyStatus(ctx context.Context, id int64, status model.ItemStatus) (*model.Item, *model.Order, bool, error) {
	var (
		item     *model.Item
		order    *model.Order
		archived bool
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		current, err := getItem(ctx, tx, `SELECT `+itemColumns+` FROM items WHERE id=$1 FOR UPDATE`, id)
		if err != nil {
			return err
		}

		if current.OrderID != nil {
			order, err = getOrder(ctx, tx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, *current.OrderID)
			if err != nil {
				return err
			}
		}

		if _, err := tx.Exec(ctx, `UPDATE items SET status=$1, updated_at=NOW() WHERE id=$2`, status, id); err != nil {
			return err
		}
		item = current
		item.Status = status

		if order == nil {
			return nil
		}

		siblings, err := listItems(ctx, tx, `SELECT `+itemColumns+` FROM items WHERE order_id=$1 ORDER BY id`, order.ID)
		if err != nil {
			return err
		}
		if reconcile.ShouldArchive(status, siblings) {
			if _, err := tx.Exec(ctx, `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`, model.OrderStatusArchived, order.ID); err != nil {
				return err
			}
			order.Status = model.OrderStatusArchived
			archived = true
		}
		return nil
	})
	if err != nil {
		return nil, nil, false, err
	}
	return item, order, archived, nil
}

func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- PushTokenRepository implementation ---

func (r *pushTokenRepository) Register(ctx context.Context, token model.PushToken) (*model.PushToken, error) {
	const query = `INSERT INTO push_tokens (token, user_id, platform, device_id)
                   VALUES ($1, $2, $3, $4)
                   ON CONFLICT (token) DO UPDATE
                   SET user_id=EXCLUDED.user_id, platform=EXCLUDED.platform, device_id=EXCLUDED.device_id
                   RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query, token.Token, token.UserID, token.Platform, token.DeviceID).
		Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// Unregister is idempotent: removing an unknown token is not an error, the
// dispatcher prunes stale tokens through the same path.
func (r *pushTokenRepository) Unregister(ctx context.Context, token string) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM push_tokens WHERE token=$1`, token)
	return err
}

func (r *pushTokenRepository) ListByUsers(ctx context.Context, userIDs []int64) ([]model.PushToken, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	const query = `SELECT id, token, user_id, platform, device_id, created_at
                   FROM push_tokens WHERE user_id = ANY($1) ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PushToken
	for rows.Next() {
		var t model.PushToken
		if err := rows.Scan(&t.ID, &t.Token, &t.UserID, &t.Platform, &t.DeviceID, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- DocumentRepository implementation ---

func (r *documentRepository) Attach(ctx context.Context, doc model.Document) (*model.Document, error) {
	const query = `INSERT INTO documents (order_id, kind, name, url)
                   VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query, doc.OrderID, doc.Kind, doc.Name, doc.URL).
		Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.Document, error) {
	const query = `SELECT id, order_id, kind, name, url, created_at
                   FROM documents WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Document
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.OrderID, &d.Kind, &d.Name, &d.URL, &d.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
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
