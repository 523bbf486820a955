package pickup

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Point, error) {
	rows, err := r.db.Query(`SELECT pickup_point_id, address, description FROM pickup_points ORDER BY pickup_point_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Point, 0)
	for rows.Next() {
		p, err := scanPoint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(id int) (Point, error) {
	p, err := scanPoint(r.db.QueryRow(`SELECT pickup_point_id, address, description FROM pickup_points WHERE pickup_point_id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Point{}, ErrNotFound
		}
		return Point{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Point) (Point, error) {
	var desc any
	if p.Description != nil {
		desc = *p.Description
	}
	var id int
	if err := r.db.QueryRow(`INSERT INTO pickup_points (address, description) VALUES ($1,$2) RETURNING pickup_point_id`, p.Address, desc).Scan(&id); err != nil {
		return Point{}, err
	}
	p.ID = id
	return p, nil
}

func scanPoint(row interface{ Scan(...any) error }) (Point, error) {
	var (
		p    Point
		desc sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Address, &desc); err != nil {
		return Point{}, err
	}
	if desc.Valid {
		p.Description = &desc.String
	}
	return p, nil
}
