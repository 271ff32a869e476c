package auth

// Operator roles.
const (
	RoleAdmin   = "admin"
	RoleFaculty = "faculty"
)

// Allow decides whether a caller role satisfies the required roles.
// An empty requirement means any authenticated caller.
func Allow(callerRole string, required ...string) bool {
	if callerRole == "" {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if callerRole == r {
			return true
		}
	}
	return false
}
