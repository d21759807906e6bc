package accounts

import "context"

type Role string

const (
	RoleClient   Role = "client"
	RoleEmployee Role = "employee"
)

// NewUser is the row written by Register. PasswordHash is a bcrypt hash.
type NewUser struct {
	FirstName    string
	LastName     string
	Email        string
	Role         Role
	PasswordHash string
}

// Profile is what a successful login returns.
type Profile struct {
	UserID    int64
	FirstName string
	LastName  string
	Email     string
	Role      Role
}

// Credentials is a stored user with its password hash.
type Credentials struct {
	Profile
	PasswordHash string
}

// Repository is the storage contract for accounts. Implementations return
// ErrDuplicateEmail for a uniqueness violation on email and ErrNotFound when
// FindByEmail matches nothing.
type Repository interface {
	CreateUser(ctx context.Context, user NewUser) (int64, error)
	CreateClient(ctx context.Context, userID int64) (int64, error)
	ListTeamIDs(ctx context.Context) ([]int64, error)
	CreateEmployee(ctx context.Context, userID, teamID int64) (int64, error)
	FindByEmail(ctx context.Context, email string) (Credentials, error)

	// WithTx runs fn inside one transaction on one connection. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
}
