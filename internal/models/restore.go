package models

// RestoreQuota tracks how many streak restores have been used in a calendar month.
type RestoreQuota struct {
	Year        int `json:"year"`
	Month       int `json:"month"` // 1-12
	UsedChances int `json:"used_chances"`
}

// Remaining returns how many restores are left this month given the cap.
func (q RestoreQuota) Remaining(cap int) int {
	left := cap - q.UsedChances
	if left < 0 {
		return 0
	}
	return left
}
