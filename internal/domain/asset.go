package domain

import "time"

// AssetType enumerates hardware categories tracked by the helpdesk.
type AssetType string

const (
	AssetTypeLaptop  AssetType = "Laptop"
	AssetTypeDesktop AssetType = "Desktop"
	AssetTypeMonitor AssetType = "Monitor"
	AssetTypePrinter AssetType = "Printer"
	AssetTypeScanner AssetType = "Scanner"
	AssetTypeOther   AssetType = "Other"
)

// Valid reports whether the asset type is one of the known values.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeLaptop, AssetTypeDesktop, AssetTypeMonitor,
		AssetTypePrinter, AssetTypeScanner, AssetTypeOther:
		return true
	}
	return false
}

// ITAsset is a piece of tracked hardware. Assets are created once and never
// mutated; AssignedTo references an existing user by ID.
type ITAsset struct {
	ID               uint64    `json:"id"`
	AssetName        string    `json:"asset_name"`
	AssetType        AssetType `json:"asset_type"`
	PurchaseDate     time.Time `json:"purchase_date"`
	AssignedTo       uint64    `json:"assigned_to"`
	ApproxValue      float64   `json:"approx_value"`
	DepreciationRate float64   `json:"depreciation_rate"`
}
