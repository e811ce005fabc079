package repos

import (
	"strings"

	"annapurna/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) Create(u *domain.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users(id, employee_id, full_name, email, password_hash, account_type, verification_token)
		VALUES(?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.EmployeeID, u.FullName, u.Email, u.Hash, u.AccountType, u.VerificationToken)
	return err
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT id, employee_id, full_name, email, password_hash, account_type
		FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT id, employee_id, full_name, email, password_hash, account_type
		FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ExistsByEmployeeOrEmail reports whether any user claims either identity.
func (r *UserRepo) ExistsByEmployeeOrEmail(employeeID, email string) (bool, error) {
	var n int
	err := r.DB.Get(&n, `
		SELECT COUNT(*) FROM users
		WHERE employee_id = ? OR LOWER(email) = LOWER(?)`, employeeID, email)
	return n > 0, err
}

func (r *UserRepo) SetResetToken(userID, token, expires string) error {
	_, err := r.DB.Exec(`
		UPDATE users SET reset_token = ?, reset_token_expires = ? WHERE id = ?`,
		token, expires, userID)
	return err
}

// IsVendorConflict matches the unique-index violation raised when a second
// vendor row is inserted. sqlite reports the partial index on account_type
// by column name, not index name.
func IsVendorConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "users.account_type")
}

// IsUniqueViolation matches any sqlite UNIQUE constraint failure.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
