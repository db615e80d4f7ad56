package service

import (
	"context"
	"time"

	"library-backend/internal/domains/library/model"
	"library-backend/internal/domains/library/repository"

	"github.com/shopspring/decimal"
)

type reportingService struct {
	store repository.Store
	now   func() time.Time
}

// NewReportingService wires the status-report aggregation to the storage
// collaborator.
func NewReportingService(store repository.Store) ReportingService {
	return &reportingService{store: store, now: time.Now}
}

// PatronStatusReport partitions the patron's loans into active and full
// history, and totals the late fees on the active ones. A valid patron id
// with no records gets the empty report, never an error.
func (s *reportingService) PatronStatusReport(ctx context.Context, patronID string) (*model.PatronStatusReport, error) {
	if err := model.ValidatePatronID(patronID); err != nil {
		return nil, err
	}

	records, err := s.store.GetPatronBorrowRecords(ctx, patronID)
	if err != nil {
		return nil, model.NewPersistenceError("get patron borrow records", err)
	}

	asOf := s.now()

	current := make([]model.BorrowRecordResponse, 0)
	history := make([]model.BorrowRecordResponse, 0, len(records))
	totalFees := decimal.Zero

	for i := range records {
		entry := model.BorrowRecordToResponse(&records[i])
		history = append(history, entry)

		if records[i].Active() {
			current = append(current, entry)
			totalFees = totalFees.Add(LateFee(DaysOverdue(records[i].DueDate, asOf)))
		}
	}

	return &model.PatronStatusReport{
		CurrentlyBorrowed:    current,
		BorrowingHistory:     history,
		NumCurrentlyBorrowed: len(current),
		TotalLateFees:        totalFees.Round(2).InexactFloat64(),
	}, nil
}
