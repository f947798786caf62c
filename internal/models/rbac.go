// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package models

// Role constants. Roles gate whole areas; fine-grained access is
// expressed through per-user permission strings carried in token claims.
const (
	// RoleViewer has read-only access to stock, orders and exports.
	RoleViewer = "viewer"

	// RoleOperator runs day-to-day warehouse operations: stock updates,
	// order status changes, picking lists.
	RoleOperator = "operator"

	// RoleAdmin has full access including user-affecting operations.
	RoleAdmin = "admin"
)

// Permission strings checked by the authorization middleware. A request is
// authorized when the user's role OR any listed permission matches.
const (
	PermInventoryWrite = "inventory:write"
	PermOrdersWrite    = "orders:write"
)

// ValidRoles contains all valid role names for validation.
var ValidRoles = []string{RoleViewer, RoleOperator, RoleAdmin}

// IsValidRole checks if a role name is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
