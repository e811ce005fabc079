package domain

const (
	AccountCustomer = "customer"
	AccountVendor   = "vendor"
)

type User struct {
	ID                string `db:"id" json:"id"`
	EmployeeID        string `db:"employee_id" json:"employeeId"`
	FullName          string `db:"full_name" json:"fullName"`
	Email             string `db:"email" json:"email"`
	Hash              string `db:"password_hash" json:"-"`
	AccountType       string `db:"account_type" json:"accountType"`
	VerificationToken string `db:"verification_token" json:"-"`
	ResetToken        string `db:"reset_token" json:"-"`
	ResetTokenExpires string `db:"reset_token_expires" json:"-"`
}

func (u *User) IsVendor() bool   { return u.AccountType == AccountVendor }
func (u *User) IsCustomer() bool { return u.AccountType == AccountCustomer }
