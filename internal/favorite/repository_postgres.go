package favorite

import (
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

const listFavoritesQuery = `
	SELECT f.product_id, p.product_name, p.product_price, p.stock, f.added_date
	FROM favorites f
	JOIN products p ON p.product_id = f.product_id
	WHERE f.user_id = $1
`

// sortColumns maps the allow-listed field names onto real columns. The
// service rejects anything else before this map is consulted.
var sortColumns = map[string]string{
	SortByAddedDate: "f.added_date",
	SortByPrice:     "p.product_price",
	SortByStock:     "p.stock",
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(userID, productID int, addedAt time.Time) (bool, error) {
	result, err := r.db.Exec(
		`INSERT INTO favorites (user_id, product_id, added_date) VALUES ($1,$2,$3) ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID, addedAt,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresRepository) Remove(userID, productID int) error {
	result, err := r.db.Exec(`DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFavorite
	}
	return nil
}

func (r *PostgresRepository) Contains(userID, productID int) (bool, error) {
	var one int
	err := r.db.QueryRow(`SELECT 1 FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PostgresRepository) ListProductIDs(userID int) ([]int, error) {
	rows, err := r.db.Query(`SELECT product_id FROM favorites WHERE user_id = $1 ORDER BY added_date`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func (r *PostgresRepository) List(userID int, sortBy string, desc bool) ([]Entry, error) {
	column, ok := sortColumns[sortBy]
	if !ok {
		return nil, ErrInvalidSort
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	rows, err := r.db.Query(listFavoritesQuery+" ORDER BY "+column+" "+direction, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ProductID, &e.ProductName, &e.Price, &e.Stock, &e.AddedDate); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
