package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/croissanceConsulting/coaching-sportif-tracker/models"

	"github.com/rs/zerolog"
)

const (
	ebooksTable  = "eBooks"
	domainEbooks = "ebooks"
)

var (
	ErrEbookNotFound  = errors.New("ebook not found")
	ErrNoDownloadLink = errors.New("ebook has no download link")
)

// LinkPresigner turns a stored eBook link into one the browser can open.
type LinkPresigner interface {
	PresignEbookURL(ctx context.Context, link string) (string, error)
}

type EbookService struct {
	store     RecordStore
	mock      *MockProvider
	notifier  Notifier
	presigner LinkPresigner
	log       zerolog.Logger
}

// NewEbookService builds the eBook library. presigner may be nil when no
// object storage is configured; s3:// links then cannot be served.
func NewEbookService(store RecordStore, mock *MockProvider, notifier Notifier, presigner LinkPresigner, log zerolog.Logger) *EbookService {
	return &EbookService{
		store:     store,
		mock:      mock,
		notifier:  notifier,
		presigner: presigner,
		log:       log.With().Str("domain", domainEbooks).Logger(),
	}
}

// GetPublishedEbooks lists the library. Rows are projected as-is: the eBook
// table has a single known shape.
func (s *EbookService) GetPublishedEbooks(ctx context.Context) []models.Ebook {
	if !s.store.IsConfigured() {
		fallbackTotal.WithLabelValues(domainEbooks, reasonUnconfigured).Inc()
		return s.mock.Ebooks(ctx)
	}

	recs, err := s.store.FetchAllRecords(ctx, ebooksTable)
	if err != nil {
		fallbackTotal.WithLabelValues(domainEbooks, reasonFailed).Inc()
		s.log.Error().Err(err).Msg("failed to load ebooks, falling back to mock data")
		if ctx.Err() == nil {
			s.notifier.Notify(ctx, NotifyError, "Impossible de charger les eBooks. Veuillez réessayer plus tard.")
		}
		return s.mock.Ebooks(ctx)
	}

	out := make([]models.Ebook, 0, len(recs))
	for _, r := range recs {
		if ebookPublished(r) {
			out = append(out, NormalizeEbook(r))
		}
	}
	return out
}

// DownloadURL returns the link to open for the given eBook.
func (s *EbookService) DownloadURL(ctx context.Context, ebookID string) (models.Ebook, string, error) {
	for _, e := range s.GetPublishedEbooks(ctx) {
		if e.ID != ebookID {
			continue
		}
		if e.URLEbook == "" {
			return e, "", ErrNoDownloadLink
		}
		if !strings.HasPrefix(e.URLEbook, "s3://") {
			return e, e.URLEbook, nil
		}
		if s.presigner == nil {
			return e, "", fmt.Errorf("%w: object storage is not configured", ErrNoDownloadLink)
		}
		link, err := s.presigner.PresignEbookURL(ctx, e.URLEbook)
		if err != nil {
			return e, "", fmt.Errorf("presign %s: %w", e.URLEbook, err)
		}
		return e, link, nil
	}
	return models.Ebook{}, "", ErrEbookNotFound
}
