package output

import (
	"bytes"
	"encoding/csv"

	"github.com/futureproof/retirement-planner/internal/domain"
	"github.com/futureproof/retirement-planner/pkg/money"
)

// MedianSeriesCSV renders the median trajectory as CSV: one row per
// month with age, median real wealth and median real net income
// (annualized). This is the tabular record the export collaborator
// consumes.
func MedianSeriesCSV(s *domain.SimulationSummary) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"age", "wealth_median_real", "income_median_real_annual"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for m := range s.Ages {
		row := []string{
			s.Ages[m].StringFixed(4),
			money.FromDecimal(s.WealthP50[m]).String(),
			money.FromDecimal(s.WithdrawalP50[m]).Annual().String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
