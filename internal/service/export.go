package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"leadstyle/internal/model"
)

var exportHeader = []string{
	"first_name", "last_name", "email",
	"primary_style", "secondary_style",
	"adequacy_score", "adequacy_level",
	"directive_score", "informative_score", "participative_score", "delegative_score",
	"created_at",
}

// ExportCSV writes every finalized result as CSV, newest first
func (s *ReportService) ExportCSV(ctx context.Context, w io.Writer) error {
	views, err := s.ListResults(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, v := range views {
		tally := v.Result.StyleTally
		record := []string{
			v.Respondent.FirstName,
			v.Respondent.LastName,
			v.Respondent.Email,
			v.PrimaryStyleName,
			v.SecondaryStyleName,
			strconv.Itoa(v.Result.AdequacyScore),
			v.AdequacyLevelName,
			strconv.Itoa(tally[model.StyleDirective]),
			strconv.Itoa(tally[model.StyleInformative]),
			strconv.Itoa(tally[model.StyleParticipative]),
			strconv.Itoa(tally[model.StyleDelegative]),
			v.Result.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
