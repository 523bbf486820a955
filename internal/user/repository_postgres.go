package user

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	selectUserColumns = `user_id, email, password, first_name, last_name, phone, role, avatar_pic, created_at, updated_at`

	listUsersQuery    = `SELECT ` + selectUserColumns + ` FROM users ORDER BY user_id`
	getUserByIDQuery  = `SELECT ` + selectUserColumns + ` FROM users WHERE user_id = $1`
	getUserByEmailQry = `SELECT ` + selectUserColumns + ` FROM users WHERE lower(email) = lower($1)`

	insertUserQuery = `
		INSERT INTO users (email, password, first_name, last_name, phone, role, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING user_id
	`
	updateUserQuery = `
		UPDATE users
		SET email = $1,
			password = COALESCE(NULLIF($2, ''), password),
			first_name = $3,
			last_name = $4,
			phone = $5,
			avatar_pic = $6,
			updated_at = $7
		WHERE user_id = $8
	`
	deleteUserQuery = `DELETE FROM users WHERE user_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var (
		u         User
		avatar    sql.NullString
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &avatar, &createdAt, &updatedAt); err != nil {
		return User{}, err
	}
	if avatar.Valid {
		u.AvatarPic = &avatar.String
	}
	if createdAt.Valid {
		u.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		u.UpdatedAt = updatedAt.String
	}
	return u, nil
}

func (r *PostgresRepository) List() []User {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return []User{}
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			continue
		}
		out = append(out, u)
	}
	return out
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByEmailQry, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Exists(id int) bool {
	var one int
	return r.db.QueryRow(`SELECT 1 FROM users WHERE user_id = $1`, id).Scan(&one) == nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	role := u.Role
	if role == "" {
		role = "customer"
	}
	var id int
	err := r.db.QueryRow(insertUserQuery, u.Email, u.Password, u.FirstName, u.LastName, u.Phone, role, u.CreatedAt, u.UpdatedAt).Scan(&id)
	if err != nil {
		return User{}, err
	}
	u.ID = id
	u.Role = role
	return u, nil
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	var avatar any
	if u.AvatarPic != nil {
		avatar = *u.AvatarPic
	}
	result, err := r.db.Exec(updateUserQuery, u.Email, u.Password, u.FirstName, u.LastName, u.Phone, avatar, u.UpdatedAt, id)
	if err != nil {
		return User{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteUserQuery, id)
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
