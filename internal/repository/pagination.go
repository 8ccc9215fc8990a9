package repository

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrInvalidCursor = errors.New("invalid page cursor")
	ErrDuplicate     = errors.New("document already exists")
)

// newestFirst is the single ordering every listing uses. _id breaks ties between
// documents written in the same millisecond.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// encodeCursor builds the opaque token pointing just after the given document.
func encodeCursor(createdAt time.Time, id primitive.ObjectID) string {
	raw := strconv.FormatInt(createdAt.UnixMilli(), 10) + ":" + id.Hex()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (time.Time, primitive.ObjectID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, primitive.NilObjectID, ErrInvalidCursor
	}

	millis, hex, found := strings.Cut(string(raw), ":")
	if !found {
		return time.Time{}, primitive.NilObjectID, ErrInvalidCursor
	}

	ms, err := strconv.ParseInt(millis, 10, 64)
	if err != nil {
		return time.Time{}, primitive.NilObjectID, ErrInvalidCursor
	}

	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return time.Time{}, primitive.NilObjectID, ErrInvalidCursor
	}

	return time.UnixMilli(ms).UTC(), id, nil
}

// ownerFilter scopes a query to one user and, when a cursor is given, to the
// documents that sort strictly after it (startAfter semantics).
func ownerFilter(userID primitive.ObjectID, cursor string) (bson.M, error) {
	filter := bson.M{"userId": userID}
	if cursor == "" {
		return filter, nil
	}

	createdAt, id, err := decodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	filter["$or"] = bson.A{
		bson.M{"createdAt": bson.M{"$lt": createdAt}},
		bson.M{"createdAt": createdAt, "_id": bson.M{"$lt": id}},
	}
	return filter, nil
}

// findPage runs a newest-first listing and slices it into a models.Page.
// One extra document is requested to learn whether another page exists.
func findPage[T any](
	ctx context.Context,
	collection *mongo.Collection,
	userID primitive.ObjectID,
	pageSize int,
	cursor string,
	key func(*T) (time.Time, primitive.ObjectID),
) (*models.Page[T], error) {
	pageSize = models.ClampPageSize(pageSize)

	filter, err := ownerFilter(userID, cursor)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(newestFirst).SetLimit(int64(pageSize + 1))
	cur, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection.Name(), err)
	}
	defer cur.Close(ctx)

	items := make([]T, 0, pageSize+1)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection.Name(), err)
	}

	page := &models.Page[T]{Items: items}
	if len(items) > pageSize {
		page.Items = items[:pageSize]
		page.HasMore = true
		createdAt, id := key(&page.Items[pageSize-1])
		page.NextCursor = encodeCursor(createdAt, id)
	}
	return page, nil
}

// stamp returns the write timestamp at the precision MongoDB stores.
func stamp(now time.Time) time.Time {
	return now.UTC().Truncate(time.Millisecond)
}
