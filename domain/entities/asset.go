package entities

import "fmt"

// AssetType classifies a tradeable asset
type AssetType string

const (
	AssetTypePlayer   AssetType = "player"
	AssetTypeTeamFund AssetType = "team_fund"
)

// IsValid returns true for a known asset type
func (at AssetType) IsValid() bool {
	return at == AssetTypePlayer || at == AssetTypeTeamFund
}

// AssetRef identifies one tradeable asset
type AssetRef struct {
	Type AssetType `db:"asset_type" json:"asset_type"`
	Name string    `db:"asset_name" json:"asset_name"`
}

// Validate checks that the reference points at a well-formed asset
func (a AssetRef) Validate() error {
	if !a.Type.IsValid() {
		return fmt.Errorf("unknown asset type: %s", a.Type)
	}
	if a.Name == "" {
		return fmt.Errorf("asset name cannot be empty")
	}
	return nil
}

// String formats the reference for logs and error messages
func (a AssetRef) String() string {
	return fmt.Sprintf("%s/%s", a.Type, a.Name)
}
