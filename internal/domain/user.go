package domain

// User is the primary entity owned by the user service.
type User struct {
	UserID    int    `json:"userId" db:"user_id"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Email     string `json:"email" db:"email"`
	Phone     string `json:"phone" db:"phone"`
	ImageURL  string `json:"imageUrl" db:"image_url"`
}

// Credential holds the auth role and account-status flags for exactly
// one user. Deleting the user cascades its credential.
type Credential struct {
	CredentialID            int    `json:"credentialId" db:"credential_id"`
	UserID                  int    `json:"userId" db:"user_id"`
	Username                string `json:"username" db:"username"`
	PasswordHash            string `json:"-" db:"password_hash"`
	Role                    string `json:"role" db:"role"`
	IsEnabled               bool   `json:"isEnabled" db:"is_enabled"`
	IsAccountNonExpired     bool   `json:"isAccountNonExpired" db:"is_account_non_expired"`
	IsAccountNonLocked      bool   `json:"isAccountNonLocked" db:"is_account_non_locked"`
	IsCredentialsNonExpired bool   `json:"isCredentialsNonExpired" db:"is_credentials_non_expired"`
}

// Address is a shipping address belonging to a user.
type Address struct {
	AddressID   int    `json:"addressId" db:"address_id"`
	UserID      int    `json:"userId" db:"user_id"`
	FullAddress string `json:"fullAddress" db:"full_address"`
	PostalCode  string `json:"postalCode" db:"postal_code"`
	City        string `json:"city" db:"city"`
}

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)
