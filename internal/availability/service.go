package availability

import (
	"context"
	"errors"

	"availability-service/internal/metrics"
	"availability-service/internal/models"
	"availability-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Outcome says how a breakdown resolution ended
type Outcome string

const (
	OutcomeResolved     Outcome = "resolved"
	OutcomeNotFound     Outcome = "not_found"
	OutcomeUnclassified Outcome = "unclassified"
	OutcomeFailed       Outcome = "failed"
)

// Resolution is the result of resolving one item's breakdown.
// Breakdown is only meaningful when Outcome is OutcomeResolved.
type Resolution struct {
	ItemID    uuid.UUID
	Item      *models.Item
	Breakdown models.Breakdown
	Outcome   Outcome
	Err       error
}

func (r Resolution) Resolved() bool {
	return r.Outcome == OutcomeResolved
}

const defaultConcurrency = 8

// Service resolves breakdowns from a repository and classifies risk
type Service struct {
	repo        repository.ReadRepository
	logger      *zap.Logger
	metrics     *metrics.Metrics
	concurrency int
}

func NewService(repo repository.ReadRepository, logger *zap.Logger, m *metrics.Metrics, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &Service{
		repo:        repo,
		logger:      logger,
		metrics:     m,
		concurrency: concurrency,
	}
}

// Resolve fetches everything one item's breakdown depends on.
// Failures are reported in the Resolution, never as a panic or error return.
func (s *Service) Resolve(ctx context.Context, itemID uuid.UUID) Resolution {
	res := s.resolve(ctx, itemID)
	s.metrics.ObserveLookup(string(res.Outcome))

	switch res.Outcome {
	case OutcomeFailed:
		s.logger.Warn("Failed to resolve item availability",
			zap.String("item_id", itemID.String()),
			zap.Error(res.Err),
		)
	case OutcomeNotFound, OutcomeUnclassified:
		s.logger.Debug("Item availability unresolved",
			zap.String("item_id", itemID.String()),
			zap.String("outcome", string(res.Outcome)),
		)
	}
	return res
}

func (s *Service) resolve(ctx context.Context, itemID uuid.UUID) Resolution {
	res := Resolution{ItemID: itemID}

	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			res.Outcome = OutcomeNotFound
			return res
		}
		return failed(res, "item lookup", err)
	}
	res.Item = item

	var inv Inventory
	switch item.Tracking {
	case models.TrackingSerialized:
		units, err := s.repo.ListUnits(ctx, itemID)
		if err != nil {
			return failed(res, "unit list", err)
		}
		inv = SerializedInventory{Units: units}
	case models.TrackingBulk:
		stock, err := s.repo.GetStock(ctx, itemID)
		if err != nil && !errors.Is(err, repository.ErrStockNotFound) {
			return failed(res, "stock lookup", err)
		}
		inv = BulkInventory{Stock: stock}
	default:
		res.Outcome = OutcomeUnclassified
		return res
	}

	reserved, err := s.repo.SumReservedQuantity(ctx, itemID)
	if err != nil {
		return failed(res, "reserved quantity", err)
	}

	res.Breakdown = ComputeBreakdown(inv, reserved)
	res.Outcome = OutcomeResolved
	return res
}

func failed(res Resolution, stage string, err error) Resolution {
	res.Outcome = OutcomeFailed
	res.Err = &LookupError{Stage: stage, Err: err}
	return res
}

// LookupError wraps a fetch failure with the stage it happened in
type LookupError struct {
	Stage string
	Err   error
}

func (e *LookupError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// GetItemAvailabilityBreakdown returns the item's breakdown, or the zero
// breakdown when the item is missing, unclassified or failed to load.
func (s *Service) GetItemAvailabilityBreakdown(ctx context.Context, itemID uuid.UUID) models.Breakdown {
	res := s.Resolve(ctx, itemID)
	if !res.Resolved() {
		return models.Breakdown{}
	}
	return res.Breakdown
}

// ResolveAll resolves distinct items in parallel.
// Each item's failure stays in its own Resolution.
func (s *Service) ResolveAll(ctx context.Context, itemIDs []uuid.UUID) map[uuid.UUID]Resolution {
	unique := make([]uuid.UUID, 0, len(itemIDs))
	seen := make(map[uuid.UUID]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	results := make([]Resolution, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range unique {
		i, id := i, id
		g.Go(func() error {
			results[i] = s.Resolve(gctx, id)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[uuid.UUID]Resolution, len(results))
	for _, res := range results {
		out[res.ItemID] = res
	}
	return out
}

// Breakdowns keeps only the resolved breakdowns, keyed by item
func Breakdowns(resolutions map[uuid.UUID]Resolution) map[uuid.UUID]models.Breakdown {
	out := make(map[uuid.UUID]models.Breakdown, len(resolutions))
	for id, res := range resolutions {
		if res.Resolved() {
			out[id] = res.Breakdown
		}
	}
	return out
}

// LineRequest is a requested quantity of an item, tracking mode unknown
type LineRequest struct {
	ItemID   uuid.UUID
	Quantity int
}

// LineAssessment is one classified line
type LineAssessment struct {
	ItemID       uuid.UUID
	ItemName     string
	Quantity     int
	IsSerialized bool
	Buffer       int
	Outcome      Outcome
	Breakdown    *models.Breakdown
	Risk         Level
}

// Assessment is the classification of a set of lines
type Assessment struct {
	Lines []LineAssessment
	Risk  Level
}

// AssessLines resolves every referenced item and classifies each line
// and the set as a whole. The tracking mode comes from the resolved item.
func (s *Service) AssessLines(ctx context.Context, requests []LineRequest) Assessment {
	ids := make([]uuid.UUID, len(requests))
	for i, r := range requests {
		ids[i] = r.ItemID
	}
	resolutions := s.ResolveAll(ctx, ids)
	breakdowns := Breakdowns(resolutions)

	lines := make([]Line, len(requests))
	assessed := make([]LineAssessment, len(requests))
	for i, r := range requests {
		res := resolutions[r.ItemID]
		line := Line{ItemID: r.ItemID, Quantity: r.Quantity}
		la := LineAssessment{ItemID: r.ItemID, Quantity: r.Quantity, Outcome: res.Outcome}
		if res.Item != nil {
			line.IsSerialized = res.Item.IsSerialized()
			la.ItemName = res.Item.Name
		}
		la.IsSerialized = line.IsSerialized

		if b, ok := breakdowns[r.ItemID]; ok {
			la.Breakdown = &b
			la.Buffer = CalculateBufferQuantity(line.IsSerialized, b.Total, r.Quantity)
		}
		la.Risk = ClassifyLine(line, la.Breakdown)
		s.metrics.ObserveRisk("line", string(la.Risk))

		lines[i] = line
		assessed[i] = la
	}

	risk := CalculateQuoteRisk(lines, breakdowns)
	s.metrics.ObserveRisk("quote", string(risk))

	return Assessment{Lines: assessed, Risk: risk}
}

// QuoteAssessment is a stored quote with its lines classified
type QuoteAssessment struct {
	Quote      *models.Quote
	QuoteLines []models.QuoteLine
	Assessment
}

// AssessQuote loads a quote and classifies it against live availability.
// repository.ErrQuoteNotFound is returned for unknown quotes.
func (s *Service) AssessQuote(ctx context.Context, quoteID uuid.UUID) (*QuoteAssessment, error) {
	quote, err := s.repo.FindQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	quoteLines, err := s.repo.ListQuoteLines(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	requests := make([]LineRequest, len(quoteLines))
	for i, l := range quoteLines {
		requests[i] = LineRequest{ItemID: l.ItemID, Quantity: l.Quantity}
	}

	return &QuoteAssessment{
		Quote:      quote,
		QuoteLines: quoteLines,
		Assessment: s.AssessLines(ctx, requests),
	}, nil
}
