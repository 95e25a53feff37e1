package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/ports"
)

// IdempotencyStore remembers which complaint a submission key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (complaintID string, found bool, err error)
	Remember(ctx context.Context, key, complaintID string) error
}

// ComplaintService implements the reference backend use cases.
type ComplaintService struct {
	repo   ports.ComplaintRepository
	idem   IdempotencyStore
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

func NewComplaintService(repo ports.ComplaintRepository, idem IdempotencyStore, logger zerolog.Logger) *ComplaintService {
	return &ComplaintService{
		repo:   repo,
		idem:   idem,
		logger: logger.With().Str("component", "complaint_service").Logger(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// scope returns the user a listing must be restricted to. Anonymous callers
// (auth disabled) are not scoped.
func scope(caller ports.Caller) string {
	if caller.Role == domain.RoleStudent {
		return caller.UserID
	}
	return ""
}

func canManage(caller ports.Caller) bool {
	if caller.Role == "" {
		return true
	}
	return domain.Session{Role: caller.Role}.CanManage()
}

// Create stores a new Pending complaint. A repeated Idempotency-Key returns
// the complaint created the first time without writing again.
func (s *ComplaintService) Create(ctx context.Context, in ports.CreateComplaintInput) (*ports.CreateComplaintResult, error) {
	in.Priority = domain.NormalizePriority(in.Priority)
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		id, found, err := s.idem.Lookup(ctx, in.IdempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("idempotency lookup failed, creating anyway")
		} else if found {
			existing, err := s.repo.FindByID(ctx, id, "")
			if err == nil {
				s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("id", id).Msg("idempotent replay")
				return &ports.CreateComplaintResult{Complaint: existing, AlreadyExisted: true}, nil
			}
			s.logger.Warn().Err(err).Str("id", id).Msg("idempotency key points to a missing complaint")
		}
	}

	now := s.now().UTC()
	c := &domain.Complaint{
		ID:          s.newID(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		Status:      domain.StatusPending,
		Priority:    in.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
		User:        in.Submitter,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Msg("failed to create complaint")
		return nil, err
	}

	if in.IdempotencyKey != "" {
		if err := s.idem.Remember(ctx, in.IdempotencyKey, c.ID); err != nil {
			s.logger.Warn().Err(err).Str("id", c.ID).Msg("failed to set idempotency key")
		}
	}

	s.logger.Info().Str("id", c.ID).Str("user_id", c.User.ID).Str("category", string(c.Category)).Msg("complaint created")
	return &ports.CreateComplaintResult{Complaint: c}, nil
}

func validateCreate(in ports.CreateComplaintInput) error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", domain.ErrValidation, strings.Join(missing, ", "))
	}
	if !in.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, in.Category)
	}
	if !in.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, in.Priority)
	}
	return nil
}

// Get returns one complaint. Students cannot see other students' complaints;
// such lookups report not found.
func (s *ComplaintService) Get(ctx context.Context, caller ports.Caller, id string) (*domain.Complaint, error) {
	c, err := s.repo.FindByID(ctx, id, scope(caller))
	if err != nil {
		return nil, fmt.Errorf("get complaint: %w", err)
	}
	return c, nil
}

// List returns the complaints visible to caller.
func (s *ComplaintService) List(ctx context.Context, caller ports.Caller) ([]domain.Complaint, error) {
	out, err := s.repo.List(ctx, ports.ListComplaintsFilter{UserID: scope(caller)})
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return out, nil
}

// UpdateStatus applies a staff status change. Any status may follow any other.
func (s *ComplaintService) UpdateStatus(ctx context.Context, caller ports.Caller, in ports.UpdateStatusInput) (*domain.Complaint, error) {
	if !canManage(caller) {
		return nil, domain.ErrForbidden
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}

	now := s.now().UTC()
	var note *domain.Note
	if text := strings.TrimSpace(in.Note); text != "" {
		author := in.Author
		if author == "" {
			author = domain.DefaultNoteAuthor
		}
		note = &domain.Note{Text: text, CreatedAt: now, AddedBy: author}
	}

	c, err := s.repo.UpdateStatus(ctx, in.ID, in.Status, now, note)
	if err != nil {
		return nil, fmt.Errorf("update complaint status: %w", err)
	}

	s.logger.Info().
		Str("id", in.ID).
		Str("status", string(in.Status)).
		Bool("note", note != nil).
		Msg("complaint status updated")
	return c, nil
}

// SeedIfEmpty loads fixtures into an empty store.
func (s *ComplaintService) SeedIfEmpty(ctx context.Context, fixtures []domain.Complaint) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: count: %w", err)
	}
	if n > 0 {
		s.logger.Info().Int64("existing", n).Msg("store not empty, skipping seed")
		return 0, nil
	}

	written := 0
	for i := range fixtures {
		c := fixtures[i].Clone()
		if err := s.repo.Create(ctx, &c); err != nil {
			return written, fmt.Errorf("seed: create %s: %w", c.ID, err)
		}
		written++
	}
	s.logger.Info().Int("count", written).Msg("fixtures seeded")
	return written, nil
}
