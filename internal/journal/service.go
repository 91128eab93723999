package journal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"io.winapps.moodjournal/internal/advice"
	journalmodels "io.winapps.moodjournal/internal/models/journal"
	"io.winapps.moodjournal/internal/sentiment"
)

var (
	ErrEmptyText  = errors.New("entry text is empty")
	ErrSaveFailed = errors.New("failed to save entry")
)

// NeutralNotice accompanies every neutral result, since neutral also stands in
// for a classification that did not complete
const NeutralNotice = "The analysis could not be completed or your entry was judged neutral. Please check your internet connection and your text."

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

type Result struct {
	Entry  journalmodels.Entry
	Notice string
}

type HistoryQuery struct {
	// Sentiment filters the page; empty keeps every entry
	Sentiment sentiment.Label
	Page      int
	Limit     int
}

type HistoryPage struct {
	Entries    []journalmodels.Entry
	Page       int
	Limit      int
	Total      int
	TotalPages int
	// Weekly is computed over the whole history, not just the page
	Weekly WeeklyStats
}

// Service runs the classify, advise and store pipeline
type Service struct {
	classifier sentiment.Classifier
	store      *Store
	logger     *zap.SugaredLogger
}

func NewService(classifier sentiment.Classifier, store *Store, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{
		classifier: classifier,
		store:      store,
		logger:     logger,
	}
}

// now shares the store's clock so entry dates and weekly windows agree
func (s *Service) now() time.Time {
	return s.store.now()
}

// AnalyzeAndSave classifies text, attaches the summary and advice for the
// label and appends the entry. Only a persistence failure is an error.
func (s *Service) AnalyzeAndSave(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyText
	}

	label := s.classifier.Classify(ctx, text)

	entry, err := s.store.Append(ctx, Draft{
		Text:      text,
		Sentiment: label,
		Summary:   advice.SummaryFor(label),
		Advice:    advice.AdviceFor(label),
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	s.logger.Infow("entry saved", "entry_id", entry.ID, "sentiment", label)

	result := Result{Entry: entry}
	if label == sentiment.Neutral {
		result.Notice = NeutralNotice
	}
	return result, nil
}

// History returns one page of stored entries together with the weekly trend
func (s *Service) History(ctx context.Context, q HistoryQuery) HistoryPage {
	all := s.store.LoadAll(ctx)

	page := HistoryPage{
		Page:   q.Page,
		Limit:  q.Limit,
		Weekly: Weekly(all, s.now()),
	}
	if page.Page <= 0 {
		page.Page = defaultPage
	}
	if page.Limit <= 0 || page.Limit > maxLimit {
		page.Limit = defaultLimit
	}

	filtered := all
	if q.Sentiment != "" {
		filtered = make([]journalmodels.Entry, 0, len(all))
		for _, e := range all {
			if e.Sentiment == q.Sentiment {
				filtered = append(filtered, e)
			}
		}
	}

	page.Total = len(filtered)
	page.TotalPages = int(math.Ceil(float64(page.Total) / float64(page.Limit)))

	// Pages past the end are empty; checking first keeps the offset from overflowing
	start := len(filtered)
	if page.Page <= page.TotalPages {
		start = (page.Page - 1) * page.Limit
	}
	end := min(start+page.Limit, len(filtered))
	page.Entries = filtered[start:end]

	return page
}

// WeeklySummary computes the weekly trend over everything stored
func (s *Service) WeeklySummary(ctx context.Context) WeeklyStats {
	return Weekly(s.store.LoadAll(ctx), s.now())
}
