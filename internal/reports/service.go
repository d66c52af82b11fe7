package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/clubware/backoffice/pkg/db/models"
	"github.com/clubware/backoffice/pkg/enums"
	pkgerrors "github.com/clubware/backoffice/pkg/errors"
	"github.com/clubware/backoffice/pkg/logger"
	"github.com/google/uuid"
)

// Scope narrows a report to one store. The zero value means company-wide.
type Scope struct {
	StoreID uuid.UUID
}

// StoreScope scopes a report to a single store.
func StoreScope(storeID uuid.UUID) Scope {
	return Scope{StoreID: storeID}
}

// CompanyScope covers every store.
func CompanyScope() Scope {
	return Scope{}
}

func (s Scope) String() string {
	if s.StoreID == uuid.Nil {
		return "company"
	}
	return "store:" + s.StoreID.String()
}

// ReportLine is one transaction inside a sales report.
type ReportLine struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	StoreID       uuid.UUID `json:"store_id"`
	Total         float64   `json:"total"`
}

// Report is a read-only sales summary. Reports never mutate anything; the
// same window over the same data yields the same report.
type Report struct {
	Lines      []ReportLine `json:"lines"`
	Count      int          `json:"count"`
	GrandTotal float64      `json:"grand_total"`
}

// History is a member's full purchase record.
type History struct {
	Transactions []models.Transaction
	Count        int
	Total        float64
}

type transactionReader interface {
	InRange(ctx context.Context, scope Scope, start, end time.Time) ([]models.Transaction, error)
	InWindow(ctx context.Context, scope Scope, start, end time.Time) ([]models.Transaction, error)
	ByMemberBetween(ctx context.Context, memberID uuid.UUID, start, end time.Time) ([]models.Transaction, error)
	ByMember(ctx context.Context, memberID uuid.UUID) ([]models.Transaction, error)
}

// Service aggregates sales into reports.
type Service interface {
	// Range covers [start, end], both days inclusive.
	Range(ctx context.Context, scope Scope, start, end time.Time) (*Report, error)
	// Span covers [start, start+span), the end exclusive, so consecutive
	// spans tile without double counting.
	Span(ctx context.Context, scope Scope, span enums.ReportSpan, start time.Time) (*Report, error)
	// RewardsTotal sums the member's purchases over the trailing year ending
	// at periodEnd, both bounds inclusive. The reward percentage is applied
	// by the caller.
	RewardsTotal(ctx context.Context, memberID uuid.UUID, periodEnd time.Time) (float64, error)
	MemberHistory(ctx context.Context, memberID uuid.UUID) (*History, error)
}

type service struct {
	log   *logger.Logger
	repo  transactionReader
	cache *Cache
}

// NewService builds the report service. The cache may be nil; reports then
// always hit storage.
func NewService(log *logger.Logger, repo transactionReader, cache *Cache) (Service, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if repo == nil {
		return nil, fmt.Errorf("transaction reader required")
	}
	return &service{log: log, repo: repo, cache: cache}, nil
}

func (s *service) Range(ctx context.Context, scope Scope, start, end time.Time) (*Report, error) {
	if start.IsZero() || end.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report bounds required")
	}
	if end.Before(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report end before start")
	}

	key := cacheKey("range", scope, start, end)
	if report := s.cached(ctx, key); report != nil {
		return report, nil
	}

	transactions, err := s.repo.InRange(ctx, scope, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "querying sales")
	}
	report := build(transactions)
	s.store(ctx, key, report)
	return report, nil
}

func (s *service) Span(ctx context.Context, scope Scope, span enums.ReportSpan, start time.Time) (*Report, error) {
	if start.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report start required")
	}
	end, err := spanEnd(span, start)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid report span")
	}

	key := cacheKey(span.String(), scope, start, end)
	if report := s.cached(ctx, key); report != nil {
		return report, nil
	}

	transactions, err := s.repo.InWindow(ctx, scope, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "querying sales")
	}
	report := build(transactions)
	s.store(ctx, key, report)
	return report, nil
}

func (s *service) RewardsTotal(ctx context.Context, memberID uuid.UUID, periodEnd time.Time) (float64, error) {
	if memberID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "member id required")
	}
	if periodEnd.IsZero() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "period end required")
	}

	start := periodEnd.AddDate(-1, 0, 0)
	transactions, err := s.repo.ByMemberBetween(ctx, memberID, start, periodEnd)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "querying purchases")
	}
	var total float64
	for _, transaction := range transactions {
		total += transaction.TotalPrice
	}
	return total, nil
}

func (s *service) MemberHistory(ctx context.Context, memberID uuid.UUID) (*History, error) {
	if memberID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "member id required")
	}
	transactions, err := s.repo.ByMember(ctx, memberID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "querying purchases")
	}
	history := &History{
		Transactions: transactions,
		Count:        len(transactions),
	}
	for _, transaction := range transactions {
		history.Total += transaction.TotalPrice
	}
	return history, nil
}

func (s *service) cached(ctx context.Context, key string) *Report {
	if s.cache == nil {
		return nil
	}
	report, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn(s.log.WithField(ctx, "cache_key", key), "report cache read failed")
		return nil
	}
	return report
}

func (s *service) store(ctx context.Context, key string, report *Report) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, report); err != nil {
		s.log.Warn(s.log.WithField(ctx, "cache_key", key), "report cache write failed")
	}
}

func spanEnd(span enums.ReportSpan, start time.Time) (time.Time, error) {
	switch span {
	case enums.ReportSpanDay:
		return start.AddDate(0, 0, 1), nil
	case enums.ReportSpanMonth:
		return start.AddDate(0, 1, 0), nil
	case enums.ReportSpanYear:
		return start.AddDate(1, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("unknown span %q", span)
}

func build(transactions []models.Transaction) *Report {
	report := &Report{
		Lines: make([]ReportLine, 0, len(transactions)),
		Count: len(transactions),
	}
	for _, transaction := range transactions {
		report.Lines = append(report.Lines, ReportLine{
			TransactionID: transaction.ID,
			StoreID:       transaction.StoreID,
			Total:         transaction.TotalPrice,
		})
		report.GrandTotal += transaction.TotalPrice
	}
	return report
}

func cacheKey(kind string, scope Scope, start, end time.Time) string {
	return fmt.Sprintf("reports:%s:%s:%s:%s",
		kind, scope, start.Format("2006-01-02"), end.Format("2006-01-02"))
}
