package models

type ReviewAssetRequest struct {
	// Decision is "approved" or "rejected"
	Decision  string   `json:"decision"`
	SafeZones []string `json:"safe_zones,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

type CreateLetterHuntRequest struct {
	ChildName    string `json:"child_name"`
	TargetLetter string `json:"target_letter"`
	Theme        string `json:"theme"`
}

type GenerateSlotRequest struct {
	Slot string `json:"slot"`
}
