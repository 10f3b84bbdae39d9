package models

// Role distinguishes the two parties working an order.
type Role string

const (
	RoleOperations Role = "ORIT_OPS"
	RoleFieldAgent Role = "FIELD_AGENT"
)

// SystemActor is the fixed identity recorded for Operations-driven changes.
// Field agents are recorded by name so field-driven changes stay attributable.
const SystemActor = "ORIT System"

// User is the acting identity supplied by the session layer on every call.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Region   string `json:"region"`
}

// AuditName renders the actor the way audit and notification text records it.
func (u User) AuditName() string {
	if u.Role == RoleFieldAgent {
		return u.Username + " (Field Agent)"
	}
	return SystemActor
}
