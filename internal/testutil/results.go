package testutil

import "github.com/Veraticus/simsieve/internal/model"

// SampleResults returns a small result list covering every carrier group,
// both validity states and each lucky-category label.
func SampleResults() []model.AnalysisResult {
	return []model.AnalysisResult{
		{
			SimNumber:      "0987654321",
			BatCucScore:    8.5,
			FolkScore:      7,
			Interpretation: "Sinh Khí tốt, Thiên Y hỗ trợ",
			Conclusion:     "Nên mua",
			IsValid:        true,
		},
		{
			SimNumber:      "0912345678",
			BatCucScore:    6,
			Interpretation: "Diên Niên ổn định",
			Conclusion:     "Cân nhắc",
			IsValid:        false,
		},
		{
			SimNumber:      "0933253456",
			BatCucScore:    7,
			FolkScore:      6.5,
			Interpretation: "Phục Vị",
			Conclusion:     "Nên mua",
			IsValid:        true,
		},
		{
			SimNumber:      "0921112233",
			BatCucScore:    3,
			Interpretation: "",
			Conclusion:     "Không nên",
			ErrorMessage:   "thiếu dữ liệu",
		},
		{
			SimNumber:      "0991234567",
			BatCucScore:    5,
			Interpretation: "Sinh Khí",
			Conclusion:     "Cân nhắc",
			IsValid:        true,
		},
	}
}
