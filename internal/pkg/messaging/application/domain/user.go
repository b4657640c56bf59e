package messaging

// UserRole distinguishes the two sides of the marketplace.
type UserRole string

const (
	UserRoleFreelancer UserRole = "freelancer"
	UserRoleRecruiter  UserRole = "recruiter"
)

// User is the slice of the account entity the realtime layer needs: identity
// attached to pushed messages. Account management lives elsewhere.
type User struct {
	ID        int64    `db:"id" json:"id"`
	Name      string   `db:"name" json:"name"`
	Email     string   `db:"email" json:"email"`
	Role      UserRole `db:"role" json:"role"`
	AvatarURL *string  `db:"avatar_url" json:"avatarUrl,omitempty"`
}
