package filter

import "fmt"

// Summary describes how many results survived filtering.
type Summary struct {
	Total    int
	Shown    int
	Filtered bool
}

// Summarize builds a Summary for a view showing shown of total results.
func Summarize(total, shown int) Summary {
	return Summary{
		Total:    total,
		Shown:    shown,
		Filtered: shown != total,
	}
}

// String renders the results header line.
func (s Summary) String() string {
	switch {
	case s.Total == 0:
		return "Không có kết quả nào"
	case s.Shown == 0:
		return fmt.Sprintf("Không tìm thấy kết quả phù hợp với bộ lọc (Tổng: %d sim)", s.Total)
	case s.Filtered:
		return fmt.Sprintf("Hiển thị %d / %d sim (đã lọc)", s.Shown, s.Total)
	default:
		return fmt.Sprintf("Hiển thị %d / %d sim", s.Shown, s.Total)
	}
}
