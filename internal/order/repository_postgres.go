package order

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/productshopwm/shop-backend/internal/product"
	"github.com/productshopwm/shop-backend/internal/storage"
)

type PostgresRepository struct {
	db        *sql.DB
	txTimeout time.Duration
}

func NewPostgresRepository(db *sql.DB, txTimeout time.Duration) *PostgresRepository {
	return &PostgresRepository{db: db, txTimeout: txTimeout}
}

const selectOrderColumns = `order_id, user_id, order_date, payment_status, total, is_pickup, pickup_point_id, pickup_date`

const (
	insertOrderQuery = `INSERT INTO orders (user_id, payment_status, total, is_pickup, pickup_point_id)
		VALUES ($1, $2, 0, TRUE, $3)
		RETURNING order_id, order_date`

	lockProductQuery = `SELECT product_price FROM products WHERE product_id = $1 AND is_deleted = FALSE FOR UPDATE`

	// The stock guard lives in the WHERE clause: zero rows affected
	// means the decrement would have gone negative.
	deductStockQuery = `UPDATE products SET stock = stock - $2 WHERE product_id = $1 AND stock >= $2`

	restoreStockQuery = `UPDATE products SET stock = stock + $2 WHERE product_id = $1`

	insertItemQuery = `INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING order_item_id`

	recomputeTotalQuery = `UPDATE orders
		SET total = (SELECT COALESCE(SUM(quantity * price), 0) FROM order_items WHERE order_id = $1)
		WHERE order_id = $1`

	lockOrderQuery = `SELECT payment_status, pickup_date FROM orders WHERE order_id = $1 FOR UPDATE`

	lockItemQuery = `SELECT order_id, product_id, quantity FROM order_items WHERE order_item_id = $1 FOR UPDATE`
)

func (r *PostgresRepository) CreateFromCart(ctx context.Context, userID int, pickupPointID *int, lines []CheckoutLine) (Order, error) {
	var ord Order
	err := storage.WithinTx(ctx, r.db, r.txTimeout, func(tx *sql.Tx) error {
		ord = Order{
			UserID:        userID,
			Status:        StatusPending,
			IsPickup:      true,
			PickupPointID: pickupPointID,
		}
		if err := tx.QueryRow(insertOrderQuery, userID, StatusPending, nullableInt(pickupPointID)).
			Scan(&ord.ID, &ord.OrderDate); err != nil {
			return err
		}

		total := decimal.Zero
		for _, line := range lines {
			var price decimal.Decimal
			if err := tx.QueryRow(lockProductQuery, line.ProductID).Scan(&price); err != nil {
				if err == sql.ErrNoRows {
					return product.ErrNotFound
				}
				return err
			}
			if err := deductStock(tx, line.ProductID, line.Quantity); err != nil {
				return err
			}
			item := Item{
				OrderID:   ord.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     price,
			}
			if err := tx.QueryRow(insertItemQuery, ord.ID, line.ProductID, line.Quantity, price).
				Scan(&item.ID); err != nil {
				return err
			}
			ord.Items = append(ord.Items, item)
			total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		ord.Total = total
		_, err := tx.Exec(`UPDATE orders SET total = $1 WHERE order_id = $2`, total, ord.ID)
		return err
	})
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	row := r.db.QueryRow(`SELECT `+selectOrderColumns+` FROM orders WHERE order_id = $1`, id)
	ord, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	return r.listWhere(`WHERE user_id = $1`, userID)
}

func (r *PostgresRepository) ListAll() ([]Order, error) {
	return r.listWhere(``)
}

func (r *PostgresRepository) ListByStatus(status string) ([]Order, error) {
	return r.listWhere(`WHERE payment_status = $1`, status)
}

func (r *PostgresRepository) listWhere(clause string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+selectOrderColumns+` FROM orders `+clause+` ORDER BY order_date DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, nil
}

func (r *PostgresRepository) ListItems(orderID int) ([]Item, error) {
	rows, err := r.db.Query(
		`SELECT order_item_id, order_id, product_id, quantity, price FROM order_items WHERE order_id = $1 ORDER BY order_item_id`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) ConfirmPickup(ctx context.Context, id int, at time.Time) (Confirmation, error) {
	var conf Confirmation
	err := storage.WithinTx(ctx, r.db, r.txTimeout, func(tx *sql.Tx) error {
		status, pickupDate, err := lockOrder(tx, id)
		if err != nil {
			return err
		}
		switch status {
		case StatusIssued:
			conf = Confirmation{AlreadyIssued: true, PickupDate: *pickupDate}
			return nil
		case StatusCancelled:
			return ErrInvalidState
		}
		conf = Confirmation{PickupDate: at}
		_, err = tx.Exec(
			`UPDATE orders SET payment_status = $1, pickup_date = $2 WHERE order_id = $3`,
			StatusIssued, at, id,
		)
		return err
	})
	if err != nil {
		return Confirmation{}, err
	}
	return conf, nil
}

func (r *PostgresRepository) Cancel(ctx context.Context, id int, restock bool) error {
	return storage.WithinTx(ctx, r.db, r.txTimeout, func(tx *sql.Tx) error {
		status, _, err := lockOrder(tx, id)
		if err != nil {
			return err
		}
		switch status {
		case StatusIssued:
			return ErrInvalidState
		case StatusCancelled:
			return nil
		}
		if restock {
			if _, err := tx.Exec(
				`UPDATE products p SET stock = p.stock + oi.quantity
				 FROM order_items oi
				 WHERE oi.order_id = $1 AND oi.product_id = p.product_id`,
				id,
			); err != nil {
				return err
			}
		}
		_, err = tx.Exec(`UPDATE orders SET payment_status = $1 WHERE order_id = $2`, StatusCancelled, id)
		return err
	})
}

func (r *PostgresRepository) AddItem(ctx context.Context, orderID, productID, quantity int) (Item, error) {
	var item Item
	err := storage.WithinTx(ctx, r.db, r.txTimeout, func(tx *sql.Tx) error {
		status, _, err := lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		if status != StatusPending {
			return ErrInvalidState
		}
		var price decimal.Decimal
		if err := tx.QueryRow(lockProductQuery, productID).Scan(&price); err != nil {
			if err == sql.ErrNoRows {
				return product.ErrNotFound
			}
			return err
		}
		if err := deductStock(tx, productID, quantity); err != nil {
			return err
		}
		item = Item{OrderID: orderID, ProductID: productID, Quantity: quantity, Price: price}
		if err := tx.QueryRow(insertItemQuery, orderID, productID, quantity, price).Scan(&item.ID); err != nil {
			return err
		}
		_, err = tx.Exec(recomputeTotalQuery, orderID)
		return err
	})
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

func (r *PostgresRepository) SetItemQuantity(ctx context.Context, itemID, quantity int) error {
	return storage.WithinTx(ctx, r.db, r.txTimeout, func(tx *sql.Tx) error {
		var orderID, productID, oldQuantity int
		if err := tx.QueryRow(lockItemQuery, itemID).Scan(&orderID, &productID, &oldQuantity); err != nil {
			if err == sql.ErrNoRows {
				return ErrItemNotFound
			}
			return err
		}
		status, _, err := lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		if status != StatusPending {
			return ErrInvalidState
		}

		// The delta is computed against the stored quantity before any
		// write touches it.
		delta := quantity - oldQuantity
		if delta > 0 {
			if err := deductStock(tx, productID, delta); err != nil {
				return err
			}
		} else if delta < 0 {
			if _, err := tx.Exec(restoreStockQuery, productID, -delta); err != nil {
				return err
			}
		}

		if _, err := tx.Exec(`UPDATE order_items SET quantity = $1 WHERE order_item_id = $2`, quantity, itemID); err != nil {
			return err
		}
		_, err = tx.Exec(recomputeTotalQuery, orderID)
		return err
	})
}

func (r *PostgresRepository) RemoveItem(ctx context.Context, itemID int) error {
	return storage.WithinTx(ctx, r.db, r.txTimeout, func(tx *sql.Tx) error {
		var orderID, productID, quantity int
		if err := tx.QueryRow(lockItemQuery, itemID).Scan(&orderID, &productID, &quantity); err != nil {
			if err == sql.ErrNoRows {
				return ErrItemNotFound
			}
			return err
		}
		status, _, err := lockOrder(tx, orderID)
		if err != nil {
			return err
		}
		if status != StatusPending {
			return ErrInvalidState
		}
		if _, err := tx.Exec(restoreStockQuery, productID, quantity); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM order_items WHERE order_item_id = $1`, itemID); err != nil {
			return err
		}
		_, err = tx.Exec(recomputeTotalQuery, orderID)
		return err
	})
}

func deductStock(tx *sql.Tx, productID, quantity int) error {
	result, err := tx.Exec(deductStockQuery, productID, quantity)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return product.ErrInsufficientStock
	}
	return nil
}

func lockOrder(tx *sql.Tx, id int) (string, *time.Time, error) {
	var status string
	var pickupDate sql.NullTime
	if err := tx.QueryRow(lockOrderQuery, id).Scan(&status, &pickupDate); err != nil {
		if err == sql.ErrNoRows {
			return "", nil, ErrNotFound
		}
		return "", nil, err
	}
	if pickupDate.Valid {
		return status, &pickupDate.Time, nil
	}
	return status, nil, nil
}

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var ord Order
	var pickupPointID sql.NullInt64
	var pickupDate sql.NullTime
	err := row.Scan(&ord.ID, &ord.UserID, &ord.OrderDate, &ord.Status, &ord.Total,
		&ord.IsPickup, &pickupPointID, &pickupDate)
	if err != nil {
		return Order{}, err
	}
	if pickupPointID.Valid {
		id := int(pickupPointID.Int64)
		ord.PickupPointID = &id
	}
	if pickupDate.Valid {
		ord.PickupDate = &pickupDate.Time
	}
	return ord, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
