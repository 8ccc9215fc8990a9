package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/Dias221467/Mindful_Companion/internal/genai"
	"github.com/Dias221467/Mindful_Companion/internal/models"
	"github.com/Dias221467/Mindful_Companion/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeMoodStore struct {
	items   []models.MoodCheckIn
	listErr error
	created int
}

func (f *fakeMoodStore) CreateCheckIn(_ context.Context, c *models.MoodCheckIn) (*models.MoodCheckIn, error) {
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now().UTC()
	f.items = append([]models.MoodCheckIn{*c}, f.items...)
	f.created++
	return c, nil
}

func (f *fakeMoodStore) ListCheckIns(_ context.Context, userID primitive.ObjectID, pageSize int, _ string) (*models.Page[models.MoodCheckIn], error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var mine []models.MoodCheckIn
	for _, c := range f.items {
		if c.UserID == userID {
			mine = append(mine, c)
		}
	}
	pageSize = models.ClampPageSize(pageSize)
	page := &models.Page[models.MoodCheckIn]{Items: mine}
	if len(mine) > pageSize {
		page.Items = mine[:pageSize]
		page.HasMore = true
		page.NextCursor = "next"
	}
	return page, nil
}

func (f *fakeMoodStore) LatestCheckIn(_ context.Context, userID primitive.ObjectID) (*models.MoodCheckIn, error) {
	for _, c := range f.items {
		if c.UserID == userID {
			c := c
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMoodStore) CountCheckIns(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var n int64
	for _, c := range f.items {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeMoodStore) UpdateCheckIn(_ context.Context, userID, id primitive.ObjectID, u models.CheckInUpdate) (*models.MoodCheckIn, error) {
	for i := range f.items {
		c := &f.items[i]
		if c.ID == id && c.UserID == userID {
			if u.Mood != nil {
				c.Mood = *u.Mood
			}
			if u.StressLevel != nil {
				c.StressLevel = *u.StressLevel
			}
			if u.JournalEntry != nil {
				c.JournalEntry = *u.JournalEntry
			}
			out := *c
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMoodStore) DeleteCheckIn(_ context.Context, userID, id primitive.ObjectID) error {
	for i, c := range f.items {
		if c.ID == id && c.UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeJournalStore struct {
	entries []models.JournalEntry
	dates   []time.Time
}

func (f *fakeJournalStore) CreateEntry(_ context.Context, e *models.JournalEntry) (*models.JournalEntry, error) {
	e.ID = primitive.NewObjectID()
	e.CreatedAt = time.Now().UTC()
	f.entries = append([]models.JournalEntry{*e}, f.entries...)
	return e, nil
}

func (f *fakeJournalStore) ListEntries(_ context.Context, userID primitive.ObjectID, _ int, _ string) (*models.Page[models.JournalEntry], error) {
	var mine []models.JournalEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			mine = append(mine, e)
		}
	}
	return &models.Page[models.JournalEntry]{Items: mine}, nil
}

func (f *fakeJournalStore) ListEntryDates(context.Context, primitive.ObjectID) ([]time.Time, error) {
	return f.dates, nil
}

func (f *fakeJournalStore) UpdateEntry(_ context.Context, userID, id primitive.ObjectID, u models.JournalUpdate) (*models.JournalEntry, error) {
	for i := range f.entries {
		e := &f.entries[i]
		if e.ID == id && e.UserID == userID {
			if u.Entry != nil {
				e.Entry = *u.Entry
			}
			out := *e
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeJournalStore) DeleteEntry(_ context.Context, userID, id primitive.ObjectID) error {
	for i, e := range f.entries {
		if e.ID == id && e.UserID == userID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeUserStore struct {
	mu      sync.Mutex
	users   map[primitive.ObjectID]*models.User
	touched map[primitive.ObjectID]time.Time
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{
		users:   map[primitive.ObjectID]*models.User{},
		touched: map[primitive.ObjectID]time.Time{},
	}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) CreateUser(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, repository.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserStore) find(match func(*models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Email == email })
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.ID == id })
}

func (f *fakeUserStore) GetUserByVerificationToken(_ context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, repository.ErrNotFound
	}
	return f.find(func(u *models.User) bool { return u.VerifyToken == token })
}

func (f *fakeUserStore) GetUserByResetToken(_ context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, repository.ErrNotFound
	}
	return f.find(func(u *models.User) bool { return u.ResetToken == token })
}

// UpdateUser round-trips the document through bson so field names are checked.
func (f *fakeUserStore) UpdateUser(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	raw, err := bson.Marshal(u)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	for k, v := range fields {
		doc[k] = v
	}
	raw, err = bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var updated models.User
	if err := bson.Unmarshal(raw, &updated); err != nil {
		return nil, err
	}
	f.users[id] = &updated
	out := updated
	return &out, nil
}

func (f *fakeUserStore) TouchLastActive(_ context.Context, id primitive.ObjectID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[id] = at
	return nil
}

func (f *fakeUserStore) GetInactiveUsers(_ context.Context, since, remindedBefore time.Time) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		if u.IsVerified && u.LastActiveAt.Before(since) && u.LastReminderAt.Before(remindedBefore) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// fakeGenerator answers with a canned JSON body per flow.
type fakeGenerator struct {
	mu       sync.Mutex
	replies  map[string]string
	err      error
	requests []genai.Request
}

func (g *fakeGenerator) GenerateJSON(_ context.Context, req genai.Request, out interface{}) error {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	return json.Unmarshal([]byte(g.replies[req.Flow]), out)
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

type sentMail struct {
	To, Subject, Body string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to, subject, body})
	return m.err
}
