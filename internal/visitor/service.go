package visitor

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/visitor-management/internal"
	visitorDatamodel "github.com/frahmantamala/visitor-management/internal/core/datamodel/visitor"
	"github.com/frahmantamala/visitor-management/internal/core/events"
)

// Repository interface defines the data access methods for visitors
type Repository interface {
	Create(ctx context.Context, v *visitorDatamodel.Visitor) error
	ListAll(ctx context.Context) ([]*visitorDatamodel.Visitor, error)
	Approve(ctx context.Context, id int64) (bool, error)
}

// PhotoStore persists an inline-encoded photo and returns its file name.
type PhotoStore interface {
	Save(fullName, payload string) (string, error)
}

// Service handles visitor business logic
type Service struct {
	repo   Repository
	photos PhotoStore
	events events.Publisher
	logger *slog.Logger
}

func NewService(repo Repository, photos PhotoStore, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		photos: photos,
		events: publisher,
		logger: logger,
	}
}

// CreateVisitor stores a pending visitor record. A photo that cannot be decoded or
// written is dropped and the record is stored without one.
func (s *Service) CreateVisitor(ctx context.Context, dto CreateVisitorDTO) (*Visitor, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var photoPath *string
	if dto.Photo != "" {
		filename, err := s.photos.Save(dto.FullName, dto.Photo)
		if err != nil {
			s.logger.Warn("failed to save visitor photo", "full_name", dto.FullName, "error", err)
		} else {
			photoPath = &filename
		}
	}

	visitor := NewVisitor(dto, photoPath)
	row := ToDataModel(visitor)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create visitor", "error", err)
		return nil, internal.NewInternalError("failed to create visitor", err)
	}
	visitor.ID = row.ID

	createdBy := internal.UsernameFromContext(ctx)
	s.publish(ctx, events.NewVisitorCreatedEvent(visitor.ID, visitor.FullName, createdBy, visitor.HasPhoto()))

	s.logger.Info("visitor created",
		"visitor_id", visitor.ID,
		"created_by", createdBy,
		"has_photo", visitor.HasPhoto())

	return visitor, nil
}

// ListVisitors returns every visitor in insertion order.
func (s *Service) ListVisitors(ctx context.Context) ([]Summary, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list visitors", "error", err)
		return nil, internal.NewInternalError("failed to list visitors", err)
	}

	summaries := make([]Summary, 0, len(rows))
	for _, v := range FromDataModelSlice(rows) {
		summaries = append(summaries, v.ToSummary())
	}
	return summaries, nil
}

// ApproveVisitor moves a pending visitor to approved. Unknown ids and visitors that are
// already approved are accepted without change.
func (s *Service) ApproveVisitor(ctx context.Context, id int64) error {
	changed, err := s.repo.Approve(ctx, id)
	if err != nil {
		s.logger.Error("failed to approve visitor", "error", err, "visitor_id", id)
		return internal.NewInternalError("failed to approve visitor", err)
	}

	approvedBy := internal.UsernameFromContext(ctx)
	if !changed {
		s.logger.Info("approve had no effect", "visitor_id", id, "approved_by", approvedBy)
		return nil
	}

	s.publish(ctx, events.NewVisitorApprovedEvent(id, approvedBy))
	s.logger.Info("visitor approved", "visitor_id", id, "approved_by", approvedBy)
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
