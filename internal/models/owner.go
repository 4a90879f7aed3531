package models

// Owner is the single account allowed to author posts in live mode.
type Owner struct {
	OwnerID      string `json:"ownerId" db:"owner_id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	DisplayName  string `json:"displayName" db:"display_name"`
}
