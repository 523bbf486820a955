package category

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query(`SELECT category_id, category_name FROM categories ORDER BY category_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(id int) (Category, error) {
	var cat Category
	err := r.db.QueryRow(`SELECT category_id, category_name FROM categories WHERE category_id = $1`, id).Scan(&cat.ID, &cat.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}
	return cat, nil
}

func (r *PostgresRepository) ExistsByName(name string, excludeID int) (bool, error) {
	var one int
	err := r.db.QueryRow(
		`SELECT 1 FROM categories WHERE lower(category_name) = lower($1) AND category_id <> $2`,
		name, excludeID,
	).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PostgresRepository) Create(name string) (Category, error) {
	var id int
	if err := r.db.QueryRow(`INSERT INTO categories (category_name) VALUES ($1) RETURNING category_id`, name).Scan(&id); err != nil {
		return Category{}, err
	}
	return Category{ID: id, Name: name}, nil
}

func (r *PostgresRepository) Rename(id int, name string) error {
	result, err := r.db.Exec(`UPDATE categories SET category_name = $2 WHERE category_id = $1`, id, name)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE category_id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) HasProducts(id int) (bool, error) {
	var one int
	err := r.db.QueryRow(`SELECT 1 FROM products WHERE category_id = $1 LIMIT 1`, id).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
