package entities

import "time"

// Holding represents one user's share count in one asset.
// Rows only exist while quantity > 0; a decrement to zero prunes the row.
type Holding struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	AssetType AssetType `db:"asset_type"`
	AssetName string    `db:"asset_name"`
	Quantity  int64     `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Asset returns the holding's asset reference
func (h *Holding) Asset() AssetRef {
	return AssetRef{Type: h.AssetType, Name: h.AssetName}
}

// Covers checks if the holding has at least qty shares
func (h *Holding) Covers(qty int64) bool {
	return h.Quantity >= qty
}
