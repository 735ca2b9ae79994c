package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"insighthub-be/internal/dto"
	"insighthub-be/internal/entity"
	"insighthub-be/internal/repository/unitofwork"
	"insighthub-be/pkg/storage"

	"github.com/google/uuid"
)

type ISourceService interface {
	CreateURL(ctx context.Context, req *dto.CreateUrlSourceRequest) (*dto.SourceResponse, error)
	CreateNote(ctx context.Context, req *dto.CreateNoteSourceRequest) (*dto.SourceResponse, error)
	Upload(ctx context.Context, req *dto.UploadSourceRequest) (*dto.SourceResponse, error)
	GetAll(ctx context.Context, workspaceId uuid.UUID) ([]*dto.SourceResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.SourceResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type sourceService struct {
	uowFactory unitofwork.RepositoryFactory
	files      storage.FileStore
}

func NewSourceService(uowFactory unitofwork.RepositoryFactory, files storage.FileStore) ISourceService {
	return &sourceService{
		uowFactory: uowFactory,
		files:      files,
	}
}

func (s *sourceService) CreateURL(ctx context.Context, req *dto.CreateUrlSourceRequest) (*dto.SourceResponse, error) {
	url := req.Url
	title := req.Title
	if title == "" {
		title = url
	}
	return s.create(ctx, &entity.Source{
		WorkspaceId: req.WorkspaceId,
		Kind:        entity.SourceKindURL,
		Title:       title,
		Url:         &url,
	})
}

func (s *sourceService) CreateNote(ctx context.Context, req *dto.CreateNoteSourceRequest) (*dto.SourceResponse, error) {
	content := req.Content
	return s.create(ctx, &entity.Source{
		WorkspaceId: req.WorkspaceId,
		Kind:        entity.SourceKindNote,
		Title:       req.Title,
		RawText:     &content,
	})
}

// Upload stores the file and records its locator in raw_text. The kind comes
// from the extension: .pdf and .csv are recognised, anything else is a plain file.
func (s *sourceService) Upload(ctx context.Context, req *dto.UploadSourceRequest) (*dto.SourceResponse, error) {
	if err := s.requireWorkspace(ctx, req.WorkspaceId); err != nil {
		return nil, err
	}

	id := uuid.New()
	filename := filepath.Base(req.Filename)

	locator, err := s.files.Save(ctx, id.String()+"_"+filename, req.File)
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = filename
	}
	return s.create(ctx, &entity.Source{
		Id:          id,
		WorkspaceId: req.WorkspaceId,
		Kind:        KindFromFilename(filename),
		Title:       title,
		Filename:    &filename,
		RawText:     &locator,
	})
}

func (s *sourceService) GetAll(ctx context.Context, workspaceId uuid.UUID) ([]*dto.SourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sources, err := uow.SourceRepository().FindByWorkspace(ctx, workspaceId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SourceResponse, 0, len(sources))
	for _, src := range sources {
		res = append(res, toSourceResponse(src))
	}
	return res, nil
}

func (s *sourceService) Show(ctx context.Context, id uuid.UUID) (*dto.SourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	src, err := uow.SourceRepository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, ErrSourceNotFound
	}
	return toSourceResponse(src), nil
}

func (s *sourceService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	src, err := uow.SourceRepository().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if src == nil {
		return ErrSourceNotFound
	}
	return uow.SourceRepository().Delete(ctx, id)
}

func (s *sourceService) requireWorkspace(ctx context.Context, workspaceId uuid.UUID) error {
	ws, err := s.uowFactory.NewUnitOfWork(ctx).WorkspaceRepository().FindByID(ctx, workspaceId)
	if err != nil {
		return err
	}
	if ws == nil {
		return ErrWorkspaceNotFound
	}
	return nil
}

func (s *sourceService) create(ctx context.Context, src *entity.Source) (*dto.SourceResponse, error) {
	if err := s.requireWorkspace(ctx, src.WorkspaceId); err != nil {
		return nil, err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	if src.Id == uuid.Nil {
		src.Id = uuid.New()
	}
	src.Status = entity.SourceStatusPending
	src.CreatedAt = now
	src.UpdatedAt = now

	if err := uow.SourceRepository().Create(ctx, src); err != nil {
		return nil, err
	}
	return toSourceResponse(src), nil
}

func KindFromFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return entity.SourceKindPDF
	case ".csv":
		return entity.SourceKindCSV
	default:
		return entity.SourceKindFile
	}
}

func toSourceResponse(src *entity.Source) *dto.SourceResponse {
	return &dto.SourceResponse{
		Id:           src.Id,
		WorkspaceId:  src.WorkspaceId,
		Type:         src.Kind,
		Title:        src.Title,
		Url:          src.Url,
		Filename:     src.Filename,
		Status:       src.Status,
		ErrorMessage: src.ErrorMessage,
		CreatedAt:    src.CreatedAt,
		UpdatedAt:    src.UpdatedAt,
	}
}
