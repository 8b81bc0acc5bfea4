// Package dashboards serves the per-user client and trainer dashboards.
// Every route is owner-gated: a user only ever sees their own page.
package dashboards

import "time"

// Role names the dashboard a user id resolves to.
type Role string

const (
	RoleClient  Role = "client"
	RoleTrainer Role = "trainer"
)

// Profile is what a dashboard shows about its owner.
type Profile struct {
	UserID    int64
	Username  string
	Role      Role
	CreatedAt time.Time
}
