package registry

import (
	"context"
	"errors"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
)

const (
	slotsCollection = "doctor_slots"
	slotsField      = "slots_booked"
)

// MongoStore keeps one document per doctor:
//
//	{_id: "12", slots_booked: {"5_7_2024": ["09:00 AM", "09:15 AM"]}}
//
// Every write is a single conditional UpdateOne, so reserve and release are
// atomic without a transaction.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(slotsCollection)}
}

type slotsDoc struct {
	ID          string              `bson:"_id"`
	SlotsBooked map[string][]string `bson:"slots_booked"`
}

func docID(doctorID uint) string {
	return strconv.FormatUint(uint64(doctorID), 10)
}

func slotPath(k schedule.DateKey) string {
	return slotsField + "." + k.String()
}

func (s *MongoStore) Booked(
	ctx context.Context,
	doctorID uint,
	keys []schedule.DateKey,
) (schedule.Registry, error) {

	projection := bson.M{}
	for _, k := range keys {
		projection[slotPath(k)] = 1
	}

	var doc slotsDoc
	err := s.coll.FindOne(
		ctx,
		bson.M{"_id": docID(doctorID)},
		options.FindOne().SetProjection(projection),
	).Decode(&doc)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return schedule.NewRegistry(), nil
	}
	if err != nil {
		return schedule.Registry{}, err
	}
	return schedule.FromLegacy(doc.SlotsBooked), nil
}

func (s *MongoStore) Apply(ctx context.Context, m schedule.Mutation) error {
	filter, update := reserveUpdate(m)

	res, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		// the document exists but the filter excluded it: upsert tried to
		// insert a second document with the same _id
		if mongo.IsDuplicateKeyError(err) {
			return schedule.ErrSlotUnavailable
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return schedule.ErrSlotUnavailable
	}
	return nil
}

func (s *MongoStore) Release(ctx context.Context, doctorID uint, ref schedule.SlotRef) error {
	_, err := s.coll.UpdateOne(
		ctx,
		bson.M{"_id": docID(doctorID)},
		bson.M{"$pull": bson.M{slotPath(ref.Date): anyOf(ref.Time)}},
	)
	return err
}

// anyOf matches label in any of the spellings older writers left behind.
func anyOf(label string) bson.M {
	return bson.M{"$in": schedule.LabelVariants(label)}
}

// reserveUpdate builds the conditional write for m. The filter only matches
// when no spelling of the reserved label is present on its date.
func reserveUpdate(m schedule.Mutation) (bson.M, any) {
	path := slotPath(m.Reserve.Date)
	filter := bson.M{
		"_id": docID(m.DoctorID),
		path:  bson.M{"$nin": schedule.LabelVariants(m.Reserve.Time)},
	}

	switch {
	case m.Release == nil:
		return filter, bson.M{"$push": bson.M{path: m.Reserve.Time}}

	case m.Release.Date != m.Reserve.Date:
		return filter, bson.M{
			"$push": bson.M{path: m.Reserve.Time},
			"$pull": bson.M{slotPath(m.Release.Date): anyOf(m.Release.Time)},
		}

	default:
		// $push and $pull on the same array conflict; rebuild it instead
		current := bson.D{{Key: "$ifNull", Value: bson.A{"$" + path, bson.A{}}}}
		kept := bson.D{{Key: "$filter", Value: bson.D{
			{Key: "input", Value: current},
			{Key: "as", Value: "t"},
			{Key: "cond", Value: bson.D{{Key: "$not", Value: bson.A{
				bson.D{{Key: "$in", Value: bson.A{"$$t", schedule.LabelVariants(m.Release.Time)}}},
			}}}},
		}}}

		return filter, mongo.Pipeline{
			{{Key: "$set", Value: bson.D{
				{Key: path, Value: bson.D{{Key: "$concatArrays", Value: bson.A{kept, bson.A{m.Reserve.Time}}}}},
			}}},
		}
	}
}

var _ schedule.Store = (*MongoStore)(nil)
