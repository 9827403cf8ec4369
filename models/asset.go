package models

// Asset is a single tracked item inside a category.
type Asset struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	InventoryNumber string `json:"inventory_number,omitempty"`
	Location        string `json:"location,omitempty"`
	Status          string `json:"status,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// AssetCategory groups assets. Each user owns an independent ordered list
// of categories; the whole list is saved as one document per user.
type AssetCategory struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Items []Asset `json:"items"`
}
