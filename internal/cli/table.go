package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/simsieve/internal/filter"
	"github.com/Veraticus/simsieve/internal/model"
	"github.com/Veraticus/simsieve/internal/phone"
)

// EmptyCell stands in for missing text in tables.
const EmptyCell = "-"

// FormatScore renders a score without trailing zeros.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func orEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return EmptyCell
	}
	return s
}

// RenderResults prints the summary line for shown results out of total,
// followed by the result table when anything is shown.
func RenderResults(w io.Writer, results []model.AnalysisResult, total int) error {
	summary := filter.Summarize(total, len(results))
	if _, err := fmt.Fprintln(w, SubtleStyle.Render(ChartIcon+" "+summary.String())); err != nil {
		return err
	}

	if len(results) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Số Sim\tĐiểm SIM\tLuận Giải\tKết luận")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.SimNumber,
			FormatScore(r.BatCucScore),
			orEmpty(r.Interpretation),
			orEmpty(r.Conclusion))
	}
	return tw.Flush()
}

// RenderCarriers prints the carrier prefix table and the lucky-category labels.
func RenderCarriers(w io.Writer) error {
	if _, err := fmt.Fprintln(w, FormatTitle("Nhà mạng và sao cát")); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Nhà mạng\tĐầu số")
	for _, c := range phone.Carriers() {
		fmt.Fprintf(tw, "%s\t%s\n", c, strings.Join(phone.Prefixes(c), " "))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Sao cát\tNhãn")
	for _, category := range phone.LuckyCategories() {
		label, _ := phone.LuckyLabel(category)
		fmt.Fprintf(tw, "%s\t%s\n", category, label)
	}
	return tw.Flush()
}

// RenderSessions prints stored session summaries.
func RenderSessions(w io.Writer, sessions []model.SessionSummary) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("Chưa có phiên phân tích nào được lưu"))
		return err
	}

	if _, err := fmt.Fprintln(w, TitleStyle.Render(FolderIcon+" Phiên đã lưu")); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tThời gian\tSố lượng\tKết quả\tMua\tAPI")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
			s.ID,
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.NumberCount,
			s.ResultCount,
			s.ValidCount,
			s.Endpoint)
	}
	return tw.Flush()
}
