package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/ports"
	"github.com/brocode/complaint-portal/internal/infrastructure/fixtures"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubComplaintRepo struct {
	byID       map[string]*domain.Complaint
	lastUserID string
	createErr  error
}

func newStubComplaintRepo() *stubComplaintRepo {
	return &stubComplaintRepo{byID: make(map[string]*domain.Complaint)}
}

func (r *stubComplaintRepo) Create(_ context.Context, c *domain.Complaint) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byID[c.ID]; ok {
		return domain.ErrDuplicateComplaint
	}
	clone := c.Clone()
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubComplaintRepo) FindByID(_ context.Context, id, userID string) (*domain.Complaint, error) {
	r.lastUserID = userID
	c, ok := r.byID[id]
	if !ok || (userID != "" && c.User.ID != userID) {
		return nil, domain.ErrComplaintNotFound
	}
	clone := c.Clone()
	return &clone, nil
}

func (r *stubComplaintRepo) List(_ context.Context, f ports.ListComplaintsFilter) ([]domain.Complaint, error) {
	r.lastUserID = f.UserID
	out := []domain.Complaint{}
	for _, c := range r.byID {
		if f.UserID != "" && c.User.ID != f.UserID {
			continue
		}
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubComplaintRepo) UpdateStatus(_ context.Context, id string, status domain.ComplaintStatus, at time.Time, note *domain.Note) (*domain.Complaint, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrComplaintNotFound
	}
	c.Status = status
	c.UpdatedAt = at
	if note != nil {
		c.Notes = append(c.Notes, *note)
	}
	clone := c.Clone()
	return &clone, nil
}

func (r *stubComplaintRepo) Count(context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

type stubIdempotency struct {
	keys      map[string]string
	lookupErr error
}

func (s *stubIdempotency) Lookup(_ context.Context, key string) (string, bool, error) {
	if s.lookupErr != nil {
		return "", false, s.lookupErr
	}
	id, ok := s.keys[key]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, key, id string) error {
	s.keys[key] = id
	return nil
}

func newTestComplaintService() (*ComplaintService, *stubComplaintRepo, *stubIdempotency) {
	repo := newStubComplaintRepo()
	idem := &stubIdempotency{keys: map[string]string{}}
	svc := NewComplaintService(repo, idem, zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }
	n := 0
	svc.newID = func() string {
		n++
		return "c" + string(rune('0'+n))
	}
	return svc, repo, idem
}

var (
	student = ports.Caller{UserID: "u1", Role: domain.RoleStudent}
	staff   = ports.Caller{UserID: "s1", Role: domain.RoleStaff}
)

func validInput() ports.CreateComplaintInput {
	return ports.CreateComplaintInput{
		Title:       "  Projector broken ",
		Category:    domain.CategoryFacilities,
		Description: "Room 4",
		Submitter:   domain.Submitter{ID: "u1", Name: "Ana"},
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCreate_StoresPendingWithDefaults(t *testing.T) {
	svc, repo, _ := newTestComplaintService()

	res, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := res.Complaint
	if c.Status != domain.StatusPending || c.Priority != domain.PriorityMedium || c.Title != "Projector broken" {
		t.Fatalf("unexpected complaint: %+v", c)
	}
	if !c.CreatedAt.Equal(fixedNow) || !c.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("expected timestamps at now, got %v / %v", c.CreatedAt, c.UpdatedAt)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected one stored complaint, got %d", len(repo.byID))
	}
}

func TestCreate_Validation(t *testing.T) {
	cases := map[string]func(*ports.CreateComplaintInput){
		"blank title":      func(in *ports.CreateComplaintInput) { in.Title = "   " },
		"missing category": func(in *ports.CreateComplaintInput) { in.Category = "" },
		"unknown category": func(in *ports.CreateComplaintInput) { in.Category = "Parking" },
		"blank body":       func(in *ports.CreateComplaintInput) { in.Description = "" },
		"unknown priority": func(in *ports.CreateComplaintInput) { in.Priority = "Critical" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, repo, _ := newTestComplaintService()
			in := validInput()
			mutate(&in)
			if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(repo.byID) != 0 {
				t.Fatal("nothing must be stored")
			}
		})
	}
}

func TestCreate_IdempotentReplay(t *testing.T) {
	svc, repo, _ := newTestComplaintService()
	in := validInput()
	in.IdempotencyKey = "key-1"

	first, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if !second.AlreadyExisted || second.Complaint.ID != first.Complaint.ID {
		t.Fatalf("expected replay of %s, got %+v", first.Complaint.ID, second)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected a single stored complaint, got %d", len(repo.byID))
	}
}

func TestCreate_IdempotencyStoreDownStillCreates(t *testing.T) {
	svc, repo, idem := newTestComplaintService()
	idem.lookupErr = errors.New("redis down")
	in := validInput()
	in.IdempotencyKey = "key-1"

	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.byID) != 1 {
		t.Fatal("expected complaint to be stored")
	}
}

func TestGetAndList_StudentsAreScoped(t *testing.T) {
	svc, repo, _ := newTestComplaintService()
	_, _ = svc.Create(context.Background(), validInput())
	other := validInput()
	other.Submitter = domain.Submitter{ID: "u2"}
	res, _ := svc.Create(context.Background(), other)

	if _, err := svc.Get(context.Background(), student, res.Complaint.ID); !errors.Is(err, domain.ErrComplaintNotFound) {
		t.Fatalf("student must not see other student's complaint, got %v", err)
	}
	if repo.lastUserID != "u1" {
		t.Fatalf("expected scoping by u1, got %q", repo.lastUserID)
	}

	mine, err := svc.List(context.Background(), student)
	if err != nil || len(mine) != 1 {
		t.Fatalf("expected 1 complaint for student, got %d (%v)", len(mine), err)
	}
	all, err := svc.List(context.Background(), staff)
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 complaints for staff, got %d (%v)", len(all), err)
	}
}

func TestUpdateStatus_Backend(t *testing.T) {
	t.Run("staff appends note with author", func(t *testing.T) {
		svc, _, _ := newTestComplaintService()
		res, _ := svc.Create(context.Background(), validInput())

		c, err := svc.UpdateStatus(context.Background(), staff, ports.UpdateStatusInput{
			ID: res.Complaint.ID, Status: domain.StatusResolved, Note: " replaced bulb ", Author: "Maya",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Status != domain.StatusResolved || len(c.Notes) != 1 {
			t.Fatalf("unexpected complaint: %+v", c)
		}
		if n := c.Notes[0]; n.Text != "replaced bulb" || n.AddedBy != "Maya" || !n.CreatedAt.Equal(fixedNow) {
			t.Fatalf("unexpected note: %+v", n)
		}
	})

	t.Run("blank note is not appended and author defaults", func(t *testing.T) {
		svc, _, _ := newTestComplaintService()
		res, _ := svc.Create(context.Background(), validInput())

		c, _ := svc.UpdateStatus(context.Background(), staff, ports.UpdateStatusInput{ID: res.Complaint.ID, Status: domain.StatusInProgress, Note: "  "})
		if len(c.Notes) != 0 {
			t.Fatal("blank note must not be stored")
		}
		c, _ = svc.UpdateStatus(context.Background(), staff, ports.UpdateStatusInput{ID: res.Complaint.ID, Status: domain.StatusPending, Note: "back"})
		if c.Notes[0].AddedBy != domain.DefaultNoteAuthor {
			t.Fatalf("expected default author, got %q", c.Notes[0].AddedBy)
		}
	})

	t.Run("students are forbidden", func(t *testing.T) {
		svc, _, _ := newTestComplaintService()
		res, _ := svc.Create(context.Background(), validInput())
		_, err := svc.UpdateStatus(context.Background(), student, ports.UpdateStatusInput{ID: res.Complaint.ID, Status: domain.StatusResolved})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("anonymous caller may manage", func(t *testing.T) {
		svc, _, _ := newTestComplaintService()
		res, _ := svc.Create(context.Background(), validInput())
		if _, err := svc.UpdateStatus(context.Background(), ports.Caller{}, ports.UpdateStatusInput{ID: res.Complaint.ID, Status: domain.StatusResolved}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("invalid status and unknown id", func(t *testing.T) {
		svc, _, _ := newTestComplaintService()
		if _, err := svc.UpdateStatus(context.Background(), staff, ports.UpdateStatusInput{ID: "x", Status: "Done"}); !errors.Is(err, domain.ErrInvalidStatus) {
			t.Fatalf("expected invalid status, got %v", err)
		}
		if _, err := svc.UpdateStatus(context.Background(), staff, ports.UpdateStatusInput{ID: "x", Status: domain.StatusResolved}); !errors.Is(err, domain.ErrComplaintNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestSeedIfEmpty(t *testing.T) {
	svc, repo, _ := newTestComplaintService()
	seed := fixtures.New().Complaints(fixedNow)

	n, err := svc.SeedIfEmpty(context.Background(), seed)
	if err != nil || n != len(seed) {
		t.Fatalf("expected %d seeded, got %d (%v)", len(seed), n, err)
	}
	n, err = svc.SeedIfEmpty(context.Background(), seed)
	if err != nil || n != 0 {
		t.Fatalf("second seed must be a no-op, got %d (%v)", n, err)
	}
	if len(repo.byID) != len(seed) {
		t.Fatalf("expected %d stored, got %d", len(seed), len(repo.byID))
	}
}
