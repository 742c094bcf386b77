package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cinchlabs/cmseval/internal/scoring"
)

// exportHeaders is the fixed column order for score exports.
var exportHeaders = []string{
	"rank",
	"platform",
	"composite_score",
	"use_case_fit",
	"business_fit",
	"overall_fit",
	"best_for_use_case",
	"ai_generated",
}

// ExportCSV writes ranked platform scores as CSV, one row per platform
// in rank order. The first row is the header.
func ExportCSV(w io.Writer, ranked []scoring.RankedPlatform) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, rp := range ranked {
		record := []string{
			strconv.Itoa(rp.Rank),
			rp.Assessment.Platform,
			strconv.FormatFloat(rp.Composite, 'f', 4, 64),
			strconv.FormatFloat(rp.UseCaseFit, 'f', 4, 64),
			strconv.FormatFloat(rp.BusinessFit, 'f', 4, 64),
			strconv.FormatFloat(rp.Assessment.OverallFitScore, 'f', 4, 64),
			rp.Assessment.BestForUseCase,
			strconv.FormatBool(rp.Assessment.AIGenerated),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("csv: write row for %s: %w", rp.Assessment.Platform, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return nil
}
