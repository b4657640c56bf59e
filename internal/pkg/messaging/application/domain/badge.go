package messaging

// Badge categories for per-user unread totals shown in the client UI.
// Counts are always derived from persisted read flags at query time, never
// maintained as standalone counters.
const (
	BadgeCategoryMessages      = "messages"
	BadgeCategoryNotifications = "notifications"
	BadgeCategoryApplications  = "applications"
)

// BadgeCounts holds per-category unread totals for one user.
type BadgeCounts map[string]int

// Total sums all categories.
func (b BadgeCounts) Total() int {
	sum := 0
	for _, n := range b {
		sum += n
	}
	return sum
}
