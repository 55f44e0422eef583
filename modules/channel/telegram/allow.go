package telegram

// AllowList is the requester allowlist. Deny by default: an empty list allows
// nobody.
type AllowList struct {
	ids map[int64]struct{}
}

// NewAllowList creates an AllowList from user IDs.
func NewAllowList(ids []int64) *AllowList {
	m := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return &AllowList{ids: m}
}

// IsAllowed reports whether the user may drive the bot.
func (a *AllowList) IsAllowed(userID int64) bool {
	_, ok := a.ids[userID]
	return ok
}
