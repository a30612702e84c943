package domain

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleStudent     Role = "student"
	RoleColaborador Role = "colaborador"
	RoleTrainer     Role = "trainer"
	RoleAdmin       Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleColaborador, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

// IsMember is true for gym members (students and collaborators), whose reads
// are always restricted to their own records.
func (r Role) IsMember() bool {
	return r == RoleStudent || r == RoleColaborador
}

// IsStaff is true for trainers and admins.
func (r Role) IsStaff() bool {
	return r == RoleTrainer || r == RoleAdmin
}

// Identity is a user record from the relational credential store.
// Identities are provisioned outside this service; we only read them.
type Identity struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Never expose this via JSON
	Role         Role   `json:"role"`
}

// Caller is the authenticated principal decoded from a session token.
type Caller struct {
	ID   int64
	Role Role
}
