package domain

import "time"

// Activity identifies a recordable action. The set is closed; unknown kinds
// are rejected before anything is enqueued.
type Activity string

const (
	ActivityAddCard       Activity = "addCard"
	ActivityUpdateCard    Activity = "updateCard"
	ActivityDeleteCard    Activity = "deleteCard"
	ActivityDowngradeCard Activity = "downgradeCard"

	ActivityAddTask     Activity = "addTask"
	ActivityUpdateTask  Activity = "updateTask"
	ActivityDeleteTask  Activity = "deleteTask"
	ActivityUpgradeTask Activity = "upgradeTask"

	ActivityAddUserLink    Activity = "addUserLink"
	ActivityDeleteUserLink Activity = "deleteUserLink"

	ActivityAddLabelLink    Activity = "addLabelLink"
	ActivityDeleteLabelLink Activity = "deleteLabelLink"
)

var activityCatalog = map[Activity]struct{}{
	ActivityAddCard:         {},
	ActivityUpdateCard:      {},
	ActivityDeleteCard:      {},
	ActivityDowngradeCard:   {},
	ActivityAddTask:         {},
	ActivityUpdateTask:      {},
	ActivityDeleteTask:      {},
	ActivityUpgradeTask:     {},
	ActivityAddUserLink:     {},
	ActivityDeleteUserLink:  {},
	ActivityAddLabelLink:    {},
	ActivityDeleteLabelLink: {},
}

// Valid reports whether a names a known activity kind.
func (a Activity) Valid() bool {
	_, ok := activityCatalog[a]
	return ok
}

// ActivityEntry is one append-only record of "actor did activity on resource".
type ActivityEntry struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resource_id"`
	ActorID    string    `json:"actor_id"`
	Activity   Activity  `json:"activity"`
	CreatedAt  time.Time `json:"created_at"`
}
