package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gridironlabs/playoff-system/models"
	"github.com/gridironlabs/playoff-system/repositories"
	"github.com/gridironlabs/playoff-system/storage"
)

// In-memory fakes for the repository and storage interfaces. They keep the
// same not-found and conflict semantics as the postgres implementations.

type fakeEventRepo struct {
	mu      sync.Mutex
	events  map[string]*models.GameEvent // keyed by game id
	nextID  int
	inserts int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]*models.GameEvent), nextID: 1}
}

func (r *fakeEventRepo) Insert(ctx context.Context, exec repositories.SQLExecutor, event *models.GameEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[event.GameID]; ok {
		return repositories.ErrEventConflict
	}
	event.ID = r.nextID
	r.nextID++
	event.CreatedAt = time.Now()
	copied := *event
	r.events[event.GameID] = &copied
	r.inserts++
	return nil
}

func (r *fakeEventRepo) FindByGameID(ctx context.Context, dynastyID int, gameID string) (*models.GameEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[gameID]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) FindByDynastyAndTypePrefix(ctx context.Context, dynastyID int, eventType, gameIDPrefix string) ([]*models.GameEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.GameEvent
	for _, event := range r.events {
		if event.Type == eventType && len(event.GameID) >= len(gameIDPrefix) && event.GameID[:len(gameIDPrefix)] == gameIDPrefix {
			copied := *event
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListByDynastyAndType(ctx context.Context, dynastyID int, eventType string) ([]*models.GameEvent, error) {
	return r.FindByDynastyAndTypePrefix(ctx, dynastyID, eventType, "")
}

func (r *fakeEventRepo) ListDueWithoutResults(ctx context.Context, dynastyID int, eventType string, due time.Time) ([]*models.GameEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.GameEvent
	for _, event := range r.events {
		if event.Type == eventType && event.Results == nil && !event.Date.After(due) {
			copied := *event
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) UpdateResults(ctx context.Context, dynastyID int, gameID string, results models.GameResults) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[gameID]
	if !ok {
		return repositories.ErrEventNotFound
	}
	event.Results = &models.GameResults{AwayScore: results.AwayScore, HomeScore: results.HomeScore}
	return nil
}

type fakeStandingRepo struct {
	records map[models.Conference][]models.TeamRecord
}

func (r *fakeStandingRepo) GetRecord(ctx context.Context, dynastyID, season int, teamID string) (*models.TeamRecord, error) {
	for _, records := range r.records {
		for _, record := range records {
			if record.TeamID == teamID {
				return &record, nil
			}
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (r *fakeStandingRepo) ListBySeason(ctx context.Context, dynastyID, season int) ([]models.TeamRecord, error) {
	var out []models.TeamRecord
	for _, conference := range models.Conferences {
		out = append(out, r.records[conference]...)
	}
	return out, nil
}

func (r *fakeStandingRepo) ListByConference(ctx context.Context, dynastyID, season int, conference models.Conference) ([]models.TeamRecord, error) {
	return r.records[conference], nil
}

type fakeSeedingRepo struct {
	mu       sync.Mutex
	seedings map[string]*models.Seeding
	saves    int
}

func newFakeSeedingRepo() *fakeSeedingRepo {
	return &fakeSeedingRepo{seedings: make(map[string]*models.Seeding)}
}

func seedingKey(dynastyID, season int) string {
	return fmt.Sprintf("%d/%d", dynastyID, season)
}

func (r *fakeSeedingRepo) Save(ctx context.Context, dynastyID int, seeding *models.Seeding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seedings[seedingKey(dynastyID, seeding.Season)] = seeding
	r.saves++
	return nil
}

func (r *fakeSeedingRepo) Get(ctx context.Context, dynastyID, season int) (*models.Seeding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seeding, ok := r.seedings[seedingKey(dynastyID, season)]
	if !ok {
		return nil, repositories.ErrSeedingNotFound
	}
	return seeding, nil
}

type fakeDynastyRepo struct {
	mu      sync.Mutex
	dynasty models.Dynasty
}

func (r *fakeDynastyRepo) GetByID(ctx context.Context, id int) (*models.Dynasty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != r.dynasty.ID {
		return nil, repositories.ErrDynastyNotFound
	}
	copied := r.dynasty
	return &copied, nil
}

func (r *fakeDynastyRepo) GetByOwnerEmail(ctx context.Context, email string) (*models.Dynasty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if email != r.dynasty.OwnerEmail {
		return nil, repositories.ErrDynastyNotFound
	}
	copied := r.dynasty
	return &copied, nil
}

func (r *fakeDynastyRepo) UpdateCurrentDate(ctx context.Context, id int, current time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != r.dynasty.ID {
		return repositories.ErrDynastyNotFound
	}
	r.dynasty.CurrentDate = current
	return nil
}

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = buf.Bytes()
	return &storage.UploadResult{Key: key, Location: "https://archive.test/" + key}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://archive.test/" + key
}

// homeWinsSimulator always settles 24-17 for the home side, so bracket
// outcomes in tests are fully predictable.
type homeWinsSimulator struct{}

func (homeWinsSimulator) Simulate(event *models.GameEvent) models.GameResults {
	return models.GameResults{AwayScore: 17, HomeScore: 24}
}

// testStandings builds a full 32-team league with unique win totals per
// conference: four divisions of four, the division leader holding the
// division's best record.
func testStandings() map[models.Conference][]models.TeamRecord {
	divisions := []string{"East", "North", "South", "West"}
	standings := make(map[models.Conference][]models.TeamRecord)
	for _, conference := range models.Conferences {
		prefix := "A"
		if conference == models.ConferenceNFC {
			prefix = "N"
		}
		for j := 0; j < 16; j++ {
			wins := 16 - j
			standings[conference] = append(standings[conference], models.TeamRecord{
				TeamID:         fmt.Sprintf("%s%02d", prefix, j+1),
				Name:           fmt.Sprintf("%s Team %d", conference, j+1),
				Conference:     conference,
				Division:       divisions[j/4],
				Wins:           wins,
				Losses:         17 - wins,
				ConferenceWins: wins / 2,
				DivisionWins:   wins / 3,
				PointsFor:      300 + wins*5,
				PointsAgainst:  300,
			})
		}
	}
	return standings
}
