package checkout

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlejandroCopponi/esencia-retro/internal/domain/cart"
	"github.com/AlejandroCopponi/esencia-retro/internal/domain/order"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// CreateOrderWithItems inserts the order and every item in one
// transaction: either the whole order lands or none of it does.
func (r *Repo) CreateOrderWithItems(ctx context.Context, o order.Order, items []order.Item) (order.Order, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return order.Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	addr, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return order.Order{}, err
	}
	cust, err := json.Marshal(o.Customer)
	if err != nil {
		return order.Order{}, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO orders
			(user_email, subtotal, shipping_cost, total, shipping_provider,
			 shipping_address, customer, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at
	`, o.UserEmail, o.Subtotal, o.ShippingCost, o.Total, o.ShippingProvider,
		addr, cust, o.Status).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return order.Order{}, err
	}

	for i := range items {
		items[i].OrderID = o.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, size, price, quantity)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id
		`, o.ID, items[i].ProductID, items[i].ProductName, items[i].Size,
			items[i].Price, items[i].Quantity).Scan(&items[i].ID)
		if err != nil {
			return order.Order{}, fmt.Errorf("order item insert failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return order.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *Repo) InsertAbandoned(ctx context.Context, email string, snapshot []cart.LineItem) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO abandoned_checkouts (email, cart_snapshot, recovered)
		VALUES ($1, $2, false)
	`, email, data)
	return err
}

// MarkRecovered flags only the most recent capture for the email.
func (r *Repo) MarkRecovered(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE abandoned_checkouts
		SET recovered = true
		WHERE id = (
			SELECT id FROM abandoned_checkouts
			WHERE email = $1
			ORDER BY created_at DESC
			LIMIT 1
		)
	`, email)
	return err
}

// ListOrders feeds the admin dashboard, newest first, items included.
func (r *Repo) ListOrders(ctx context.Context) ([]order.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_email, subtotal, shipping_cost, total, shipping_provider,
		       shipping_address, customer, status, created_at
		FROM orders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.Order
	byID := map[int64]int{}
	for rows.Next() {
		var (
			o          order.Order
			addr, cust []byte
		)
		if err := rows.Scan(&o.ID, &o.UserEmail, &o.Subtotal, &o.ShippingCost, &o.Total,
			&o.ShippingProvider, &addr, &cust, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(addr, &o.ShippingAddress)
		_ = json.Unmarshal(cust, &o.Customer)
		byID[o.ID] = len(out)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, product_name, size, price, quantity
		FROM order_items
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it order.Item
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.Size, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		if i, ok := byID[it.OrderID]; ok {
			out[i].Items = append(out[i].Items, it)
		}
	}
	return out, itemRows.Err()
}

func (r *Repo) ListAbandoned(ctx context.Context) ([]order.AbandonedCheckout, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, email, cart_snapshot, recovered, created_at
		FROM abandoned_checkouts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.AbandonedCheckout
	for rows.Next() {
		var (
			a    order.AbandonedCheckout
			snap []byte
		)
		if err := rows.Scan(&a.ID, &a.Email, &snap, &a.Recovered, &a.CreatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(snap, &a.CartSnapshot)
		out = append(out, a)
	}
	return out, rows.Err()
}
