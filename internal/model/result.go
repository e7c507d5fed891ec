package model

// Status labels shown for the validity flag.
const (
	StatusEligible    = "Mua"
	StatusNotEligible = "Không mua"
)

// AnalysisResult is the analysis service's verdict for a single SIM number.
type AnalysisResult struct {
	SimNumber      string  `json:"sim_number"`
	Interpretation string  `json:"luan_giai"`
	Conclusion     string  `json:"ket_luan"`
	ErrorMessage   string  `json:"error_message,omitempty"`
	BatCucScore    float64 `json:"diem_bat_cuc"`
	FolkScore      float64 `json:"diem_dan_gian"`
	IsValid        bool    `json:"is_valid"`
}

// StatusLabel returns the human-readable purchase recommendation.
func (r AnalysisResult) StatusLabel() string {
	if r.IsValid {
		return StatusEligible
	}
	return StatusNotEligible
}
