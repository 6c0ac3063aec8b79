package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"learnanything-backend/internal/cache"
	"learnanything-backend/internal/extract"
	"learnanything-backend/internal/shared/storage/object"
	"learnanything-backend/internal/shared/telemetry"
)

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
	Cache *cache.Cache
}

// Upload saves the file to object storage, records the document metadata,
// and fills the local artifact cache. The blob write and metadata insert
// must both succeed; an insert failure triggers a compensating delete of the
// blob. Cache fill is best-effort and never fails the upload.
func (s *Service) Upload(ctx context.Context, userID, title, fileName string, r io.Reader) (Document, error) {
	if userID == "" {
		return Document{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if fileName == "" {
		return Document{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(title) == "" {
		title = titleFromFileName(fileName)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return Document{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	storageKey, size, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		FilePath:  storageKey,
		Status:    StatusUploaded,
		SizeBytes: size,
		CreatedAt: time.Now().UTC(),
	}

	if pages, err := extract.PageCount(data); err == nil {
		doc.PageCount = &pages
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		// Compensate so a failed insert leaves no orphaned blob behind.
		if delErr := s.Store.Delete(ctx, storageKey); delErr != nil {
			telemetry.Error("document.upload.compensate", map[string]any{
				"document_id": doc.ID,
				"file_path":   storageKey,
				"error":       delErr.Error(),
			})
		}
		return Document{}, fmt.Errorf("create document: %w", err)
	}

	if err := s.Cache.Store(doc.ID, data); err != nil {
		telemetry.Error("document.cache.store", map[string]any{
			"document_id": doc.ID,
			"error":       err.Error(),
		})
	}

	return doc, nil
}

// Get returns a document by ID.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, fmt.Errorf("%w: user id and document id are required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// List returns the user's documents newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes a document and cascades: the blob, the metadata row (with
// dependent quizzes and attempts), and the local cache entry.
func (s *Service) Delete(ctx context.Context, userID, documentID string) error {
	doc, err := s.Repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return err
	}

	if err := s.Store.Delete(ctx, doc.FilePath); err != nil {
		telemetry.Error("document.delete.blob", map[string]any{
			"document_id": documentID,
			"file_path":   doc.FilePath,
			"error":       err.Error(),
		})
	}

	if err := s.Repo.Delete(ctx, userID, documentID); err != nil {
		return err
	}

	if err := s.Cache.Evict(documentID); err != nil {
		telemetry.Error("document.cache.evict", map[string]any{
			"document_id": documentID,
			"error":       err.Error(),
		})
	}
	return nil
}

func titleFromFileName(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
