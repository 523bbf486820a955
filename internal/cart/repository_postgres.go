package cart

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	addOneQuery = `
		INSERT INTO carts (user_id, product_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = carts.quantity + 1
	`
	listCartQuery = `
		SELECT c.product_id, p.product_name, c.quantity, p.product_price,
			(SELECT pi.image_id FROM product_images pi WHERE pi.product_id = c.product_id ORDER BY pi.image_id LIMIT 1)
		FROM carts c
		JOIN products p ON p.product_id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.cart_id
	`
	listCheckoutQuery = `
		SELECT c.product_id, p.product_name, c.quantity, p.product_price
		FROM carts c
		JOIN products p ON p.product_id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.cart_id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) AddOne(userID, productID int) (int, error) {
	if _, err := r.db.Exec(addOneQuery, userID, productID); err != nil {
		return 0, err
	}
	return r.Count(userID)
}

func (r *PostgresRepository) GetQuantity(userID, productID int) (int, error) {
	var qty int
	err := r.db.QueryRow(`SELECT quantity FROM carts WHERE user_id = $1 AND product_id = $2`, userID, productID).Scan(&qty)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrItemNotFound
		}
		return 0, err
	}
	return qty, nil
}

func (r *PostgresRepository) SetQuantity(userID, productID, quantity int) error {
	result, err := r.db.Exec(`UPDATE carts SET quantity = $3 WHERE user_id = $1 AND product_id = $2`, userID, productID, quantity)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) Remove(userID, productID int) error {
	result, err := r.db.Exec(`DELETE FROM carts WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) Clear(userID int) error {
	_, err := r.db.Exec(`DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}

func (r *PostgresRepository) Count(userID int) (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM carts WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresRepository) List(userID int, includeImage bool) ([]Item, error) {
	query := listCheckoutQuery
	if includeImage {
		query = listCartQuery
	}
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var item Item
		if includeImage {
			var imageID sql.NullInt64
			if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.Price, &imageID); err != nil {
				return nil, err
			}
			if imageID.Valid {
				v := int(imageID.Int64)
				item.ImageID = &v
			}
		} else {
			if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
				return nil, err
			}
		}
		out = append(out, item)
	}
	return out, nil
}
