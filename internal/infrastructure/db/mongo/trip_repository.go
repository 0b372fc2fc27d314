package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
	"github.com/DBXDWARKA/office-runner-api/internal/core/ports"
)

const collectionTrips = "trips"

// TripRepository implements ports.TripRepository on MongoDB. All mutating
// updates are conditional: the filter pins the state the caller observed, so
// concurrent writers are serialized per trip (first writer wins, the second
// resolves to ErrInvalidTripState).
type TripRepository struct {
	col *mongo.Collection
}

func NewTripRepository(db *mongo.Database) *TripRepository {
	return &TripRepository{col: db.Collection(collectionTrips)}
}

type tripDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	RunnerID  string             `bson:"runner_id"`
	ManagerID string             `bson:"manager_id"`
	Status    string             `bson:"status"`
	// Open is set on insert and unset when the trip stops. Partial index filter
	// expressions only support $exists:true and equality-style matches, so the
	// one-open-trip unique index keys off this flag rather than a missing
	// end_time.
	Open             bool       `bson:"open,omitempty"`
	StartTime        time.Time  `bson:"start_time"`
	EndTime          *time.Time `bson:"end_time,omitempty"`
	StartLat         float64    `bson:"start_lat"`
	StartLng         float64    `bson:"start_lng"`
	EndLat           *float64   `bson:"end_lat,omitempty"`
	EndLng           *float64   `bson:"end_lng,omitempty"`
	Distance         float64    `bson:"distance"`
	AdjustedDistance *float64   `bson:"adjusted_distance,omitempty"`
	Parking          float64    `bson:"parking"`
	Payment          float64    `bson:"payment"`
}

func (d tripDoc) toDomain() *domain.Trip {
	return &domain.Trip{
		ID:               d.ID.Hex(),
		RunnerID:         d.RunnerID,
		ManagerID:        d.ManagerID,
		Status:           domain.TripStatus(d.Status),
		StartTime:        d.StartTime,
		EndTime:          d.EndTime,
		StartLat:         d.StartLat,
		StartLng:         d.StartLng,
		EndLat:           d.EndLat,
		EndLng:           d.EndLng,
		Distance:         d.Distance,
		AdjustedDistance: d.AdjustedDistance,
		Parking:          d.Parking,
		Payment:          d.Payment,
	}
}

func (r *TripRepository) Create(ctx context.Context, t *domain.Trip) (*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := tripDoc{
		RunnerID:  t.RunnerID,
		ManagerID: t.ManagerID,
		Status:    string(t.Status),
		Open:      true,
		StartTime: t.StartTime,
		StartLat:  t.StartLat,
		StartLng:  t.StartLng,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		// The partial unique index on open trips backs the one-open-trip
		// invariant even when two starts race past the service-level check.
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrOpenTripExists
		}
		return nil, fmt.Errorf("insert trip: %w", err)
	}

	created := *t
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TripRepository) FindByID(ctx context.Context, id string) (*domain.Trip, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTripNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tripDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TripRepository) FindOpenByRunner(ctx context.Context, runnerID string) (*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"runner_id": runnerID, "open": true}

	var doc tripDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTripNotFound
		}
		return nil, fmt.Errorf("find open trip: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TripRepository) List(ctx context.Context, filter ports.TripFilter) ([]*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.RunnerID != "" {
		q["runner_id"] = filter.RunnerID
	}
	if filter.ManagerID != "" {
		q["manager_id"] = filter.ManagerID
	}
	if filter.Status != "" && filter.Status != "all" {
		q["status"] = filter.Status
	}
	if filter.OnlyStopped {
		q["end_time"] = bson.M{"$exists": true}
	}
	// Window is inclusive at From, exclusive at To.
	window := bson.M{}
	if !filter.From.IsZero() {
		window["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		window["$lt"] = filter.To
	}
	if len(window) > 0 {
		q["start_time"] = window
	}

	cur, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer cur.Close(ctx)

	var trips []*domain.Trip
	for cur.Next(ctx) {
		var doc tripDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode trip: %w", err)
		}
		trips = append(trips, doc.toDomain())
	}
	return trips, cur.Err()
}

func (r *TripRepository) Stop(ctx context.Context, id string, upd ports.StopUpdate) (*domain.Trip, error) {
	filter := bson.M{"open": true}
	update := bson.M{
		"$set": bson.M{
			"end_time": upd.EndTime,
			"distance": upd.Distance,
			"end_lat":  upd.EndLat,
			"end_lng":  upd.EndLng,
			"payment":  upd.Payment,
		},
		// Clearing the flag releases the runner's slot in the partial unique
		// index, letting the next start go through.
		"$unset": bson.M{"open": ""},
	}
	return r.swap(ctx, id, filter, update)
}

func (r *TripRepository) UpdateParking(ctx context.Context, id string, parking, payment float64, expectedAdjusted *float64) (*domain.Trip, error) {
	filter := bson.M{
		"status":   string(domain.StatusPending),
		"end_time": bson.M{"$exists": true},
	}
	// Pin the distance the payment was computed from; a concurrent adjustment
	// invalidates this write.
	if expectedAdjusted != nil {
		filter["adjusted_distance"] = *expectedAdjusted
	} else {
		filter["adjusted_distance"] = bson.M{"$exists": false}
	}
	update := bson.M{"$set": bson.M{"parking": parking, "payment": payment}}
	return r.swap(ctx, id, filter, update)
}

func (r *TripRepository) AdjustDistance(ctx context.Context, id string, adjusted, payment, expectedParking float64) (*domain.Trip, error) {
	filter := bson.M{
		"status":   string(domain.StatusPending),
		"end_time": bson.M{"$exists": true},
		"parking":  expectedParking,
	}
	update := bson.M{"$set": bson.M{"adjusted_distance": adjusted, "payment": payment}}
	return r.swap(ctx, id, filter, update)
}

func (r *TripRepository) SetStatus(ctx context.Context, id string, status domain.TripStatus) (*domain.Trip, error) {
	filter := bson.M{
		"status":   string(domain.StatusPending),
		"end_time": bson.M{"$exists": true},
	}
	update := bson.M{"$set": bson.M{"status": string(status)}}
	return r.swap(ctx, id, filter, update)
}

// swap performs the compare-and-swap: apply update only when the trip still
// matches filter. A miss is resolved to ErrTripNotFound or ErrInvalidTripState
// by re-reading the record.
func (r *TripRepository) swap(ctx context.Context, id string, filter, update bson.M) (*domain.Trip, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTripNotFound
	}
	filter["_id"] = oid

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc tripDoc
	err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update trip: %w", err)
	}

	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Err(); errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTripNotFound
	}
	return nil, domain.ErrInvalidTripState
}

func (r *TripRepository) PendingCountsByRunner(ctx context.Context, runnerID string) ([]ports.PendingCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"runner_id": runnerID,
			"status":    string(domain.StatusPending),
			"end_time":  bson.M{"$exists": true},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$manager_id",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("pending counts: %w", err)
	}
	defer cur.Close(ctx)

	var counts []ports.PendingCount
	for cur.Next(ctx) {
		var row struct {
			ManagerID string `bson:"_id"`
			Count     int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode pending count: %w", err)
		}
		counts = append(counts, ports.PendingCount{ManagerID: row.ManagerID, Count: row.Count})
	}
	return counts, cur.Err()
}

func (r *TripRepository) CountByStatus(ctx context.Context) (ports.StatusCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return ports.StatusCounts{}, fmt.Errorf("count by status: %w", err)
	}
	defer cur.Close(ctx)

	var counts ports.StatusCounts
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return ports.StatusCounts{}, fmt.Errorf("decode status count: %w", err)
		}
		counts.Total += row.Count
		switch domain.TripStatus(row.Status) {
		case domain.StatusApproved:
			counts.Approved = row.Count
		case domain.StatusDeclined:
			counts.Declined = row.Count
		case domain.StatusPending:
			counts.Pending = row.Count
		}
	}
	return counts, cur.Err()
}

// tripIndexModels declares the trips indexes. The partial unique index allows
// at most one open trip per runner; it matches on the open flag because that
// is what partial filter expressions support.
func tripIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "runner_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"open": true}),
		},
		{Keys: bson.D{{Key: "manager_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "runner_id", Value: 1}, {Key: "start_time", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
}

// EnsureIndexes creates the trips indexes.
func (r *TripRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, tripIndexModels())
	return err
}
