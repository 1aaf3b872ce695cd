package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gridironlabs/playoff-system/storage"
)

// ArchiveService snapshots a finished postseason to object storage so the
// dynasty's history survives database resets.
type ArchiveService interface {
	ArchiveSeason(ctx context.Context, dynastyID, season int) (string, error)
}

type seasonArchive struct {
	DynastyID  int         `json:"dynasty_id"`
	Season     int         `json:"season"`
	ArchivedAt time.Time   `json:"archived_at"`
	State      interface{} `json:"state"`
}

type archiveService struct {
	stateService StateService
	uploader     storage.FileUploader
}

func NewArchiveService(stateService StateService, uploader storage.FileUploader) ArchiveService {
	return &archiveService{stateService: stateService, uploader: uploader}
}

// ArchiveSeason uploads the full state snapshot as JSON and returns the
// public URL. Re-archiving overwrites the previous object for the season.
func (s *archiveService) ArchiveSeason(ctx context.Context, dynastyID, season int) (string, error) {
	snapshot, err := s.stateService.Snapshot(ctx, dynastyID, season)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(seasonArchive{
		DynastyID:  dynastyID,
		Season:     season,
		ArchivedAt: time.Now().UTC(),
		State:      snapshot,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal season archive: %w", err)
	}

	key := fmt.Sprintf("archives/%d/%d.json", dynastyID, season)
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to upload season archive %s: %w", key, err)
	}
	return result.Location, nil
}
