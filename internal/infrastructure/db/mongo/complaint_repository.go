package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brocode/complaint-portal/internal/core/domain"
	"github.com/brocode/complaint-portal/internal/core/ports"
)

const collectionComplaints = "complaints"

// ComplaintRepository implements ports.ComplaintRepository.
type ComplaintRepository struct {
	col *mongo.Collection
}

var _ ports.ComplaintRepository = (*ComplaintRepository)(nil)

func NewComplaintRepository(db *mongo.Database) *ComplaintRepository {
	return &ComplaintRepository{col: db.Collection(collectionComplaints)}
}

// Create inserts a new complaint document.
func (r *ComplaintRepository) Create(ctx context.Context, c *domain.Complaint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateComplaint
		}
		return err
	}
	return nil
}

// FindByID retrieves a complaint by id. When userID is non-empty the
// submitter must match as well.
func (r *ComplaintRepository) FindByID(ctx context.Context, id, userID string) (*domain.Complaint, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Complaint
	err := r.col.FindOne(ctx, byID(id, userID)).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrComplaintNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns complaints newest first.
func (r *ComplaintRepository) List(ctx context.Context, filter ports.ListComplaintsFilter) ([]domain.Complaint, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.UserID != "" {
		q["user.id"] = filter.UserID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.col.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	out := []domain.Complaint{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus sets status and updated_at and pushes note in one write.
func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus, at time.Time, note *domain.Note) (*domain.Complaint, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": at}}
	if note != nil {
		update["$push"] = bson.M{"notes": note}
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c domain.Complaint
	err := r.col.FindOneAndUpdate(ctx, byID(id, ""), update, opts).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrComplaintNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ComplaintRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the indexes used by listings.
func (r *ComplaintRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user.id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func byID(id, userID string) bson.M {
	filter := bson.M{"_id": id}
	if userID != "" {
		filter["user.id"] = userID
	}
	return filter
}
