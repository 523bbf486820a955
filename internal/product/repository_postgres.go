package product

import (
	"database/sql"
	"strings"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	selectProductColumns = `product_id, product_name, product_desc, product_price, stock, category_id, supplier, country_of_origin, expiration_date, is_deleted`

	listProductsQuery = `
		SELECT ` + selectProductColumns + `
		FROM products
		ORDER BY product_id
	`
	listByCategoryQuery = `
		SELECT ` + selectProductColumns + `
		FROM products
		WHERE category_id = $1 AND NOT is_deleted
		ORDER BY product_id
	`
	listByIDsQuery = `
		SELECT ` + selectProductColumns + `
		FROM products
		WHERE product_id = ANY($1::int[])
		ORDER BY array_position($1::int[], product_id)
	`
	getProductByIDQuery = `
		SELECT ` + selectProductColumns + `
		FROM products
		WHERE product_id = $1
	`
	searchProductsQuery = `
		SELECT ` + selectProductColumns + `
		FROM products
		WHERE (lower(product_name) LIKE $1 OR product_id::text = $2) AND NOT is_deleted
		ORDER BY product_id
	`
	insertProductQuery = `
		INSERT INTO products (product_name, product_desc, product_price, stock, category_id, supplier, country_of_origin, expiration_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING product_id
	`
	updateProductQuery = `
		UPDATE products
		SET product_name = $1,
			product_desc = $2,
			product_price = $3,
			stock = $4,
			category_id = $5,
			supplier = $6,
			country_of_origin = $7,
			expiration_date = $8
		WHERE product_id = $9
	`
	setDeletedQuery = `UPDATE products SET is_deleted = $2 WHERE product_id = $1`
	setStockQuery   = `UPDATE products SET stock = $2 WHERE product_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var (
		p          Product
		categoryID sql.NullInt64
		expiration sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &categoryID, &p.Supplier, &p.CountryOfOrigin, &expiration, &p.IsDeleted)
	if err != nil {
		return Product{}, err
	}
	if categoryID.Valid {
		v := int(categoryID.Int64)
		p.CategoryID = &v
	}
	if expiration.Valid {
		p.ExpirationDate = &expiration.String
	}
	return p, nil
}

func (r *PostgresRepository) List() []Product {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) ListByCategoryID(categoryID int) []Product {
	rows, err := r.db.Query(listByCategoryQuery, categoryID)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ListByIDs returns products in the order of the ids argument. An empty
// slice returns immediately without touching the database.
func (r *PostgresRepository) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := r.db.Query(listByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Exists(id int) bool {
	var one int
	return r.db.QueryRow(`SELECT 1 FROM products WHERE product_id = $1`, id).Scan(&one) == nil
}

// Search matches a name prefix or an exact numeric id.
func (r *PostgresRepository) Search(query string) ([]Product, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	rows, err := r.db.Query(searchProductsQuery, escapeLike(normalized)+"%", normalized)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	var id int
	err := r.db.QueryRow(
		insertProductQuery,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		nullableInt(p.CategoryID),
		p.Supplier,
		p.CountryOfOrigin,
		nullableString(p.ExpirationDate),
	).Scan(&id)
	if err != nil {
		return Product{}, err
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	result, err := r.db.Exec(
		updateProductQuery,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		nullableInt(p.CategoryID),
		p.Supplier,
		p.CountryOfOrigin,
		nullableString(p.ExpirationDate),
		id,
	)
	if err != nil {
		return Product{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) SetDeleted(id int, deleted bool) error {
	result, err := r.db.Exec(setDeletedQuery, id, deleted)
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

func (r *PostgresRepository) SetStock(id int, stock int) error {
	result, err := r.db.Exec(setStockQuery, id, stock)
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

func (r *PostgresRepository) AddImage(productID int, name string, data []byte) (Image, error) {
	if !r.Exists(productID) {
		return Image{}, ErrNotFound
	}
	var id int
	err := r.db.QueryRow(
		`INSERT INTO product_images (product_id, image_name, image_data) VALUES ($1,$2,$3) RETURNING image_id`,
		productID, name, data,
	).Scan(&id)
	if err != nil {
		return Image{}, err
	}
	return Image{ID: id, ProductID: productID, Name: name, Data: data}, nil
}

func (r *PostgresRepository) ListImages(productID int) ([]Image, error) {
	rows, err := r.db.Query(
		`SELECT image_id, product_id, image_name FROM product_images WHERE product_id = $1 ORDER BY image_id`,
		productID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Image, 0)
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.ProductID, &img.Name); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, nil
}

func (r *PostgresRepository) GetImage(imageID int) (Image, error) {
	var img Image
	err := r.db.QueryRow(
		`SELECT image_id, product_id, image_name, image_data FROM product_images WHERE image_id = $1`,
		imageID,
	).Scan(&img.ID, &img.ProductID, &img.Name, &img.Data)
	if err != nil {
		if err == sql.ErrNoRows {
			return Image{}, ErrImageNotFound
		}
		return Image{}, err
	}
	return img, nil
}

func (r *PostgresRepository) DeleteImage(imageID int) error {
	result, err := r.db.Exec(`DELETE FROM product_images WHERE image_id = $1`, imageID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrImageNotFound
	}
	return nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
