package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rentbuy/rentbuy-calculator/internal/domain"
)

// CSVSweepExporter writes one row per sweep cell, ready for pivoting or plotting.
type CSVSweepExporter struct{}

func (c CSVSweepExporter) Name() string { return "sweep-csv" }

func (c CSVSweepExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Sweep", "XParameter", "XValue", "YParameter", "YValue", "HorizonYear", "BuyNetWorthReal", "RentNetWorthReal", "Difference", "Classification"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sw := range report.Sweeps {
		res := sw.Result
		for _, row := range res.Data {
			for _, cell := range row {
				record := []string{
					res.Name,
					string(res.XParameter),
					cell.XValue.String(),
					string(res.YParameter),
					cell.YValue.String(),
					intToString(cell.HorizonYear),
					cell.BuyNetWorth.StringFixed(2),
					cell.RentNetWorth.StringFixed(2),
					cell.Difference.StringFixed(2),
					string(cell.Classification),
				}
				if err := w.Write(record); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
