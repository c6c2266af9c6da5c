package constants

import "fmt"

// Profile roles. Registration defaults to RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var AdminOnly = []string{RoleAdmin}

// RoleErrorAdmin is the 403 message of an admin-only surface.
func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf("❌ Seuls les administrateurs peuvent accéder à %s.", feature)
}
