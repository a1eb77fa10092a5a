package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/dto"
	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
	"github.com/pavankrishan/test-backend-ecs--sub006/pkg/export"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
)

type purchaseReader interface {
	FindByID(ctx context.Context, id string) (*models.Purchase, error)
	ListStudents(ctx context.Context, purchaseID string) ([]models.PurchaseStudent, error)
}

type sessionReader interface {
	ListByPurchase(ctx context.Context, purchaseID string) ([]models.Session, error)
}

// PurchaseService serves read-side views of finished assignment attempts.
type PurchaseService struct {
	purchases purchaseReader
	sessions  sessionReader
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
}

// NewPurchaseService constructs the read-side service.
func NewPurchaseService(purchases purchaseReader, sessions sessionReader) *PurchaseService {
	return &PurchaseService{
		purchases: purchases,
		sessions:  sessions,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

// GetDetail aggregates a purchase with its students and session calendar.
func (s *PurchaseService) GetDetail(ctx context.Context, purchaseID string) (*dto.PurchaseDetail, error) {
	purchase, err := s.purchases.FindByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "purchase not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load purchase")
	}
	students, err := s.purchases.ListStudents(ctx, purchaseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	sessions, err := s.sessions.ListByPurchase(ctx, purchaseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sessions")
	}
	return &dto.PurchaseDetail{Purchase: purchase, Students: students, Sessions: sessions}, nil
}

var rosterHeaders = []string{"Session", "Date", "Time", "Type", "Status"}

// RosterCSV renders the session calendar of a purchase as CSV.
func (s *PurchaseService) RosterCSV(ctx context.Context, purchaseID string) ([]byte, error) {
	detail, err := s.GetDetail(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	return s.csv.Render(rosterDataset(detail.Sessions))
}

// RosterPDF renders the session calendar of a purchase as a tabular PDF.
func (s *PurchaseService) RosterPDF(ctx context.Context, purchaseID string) ([]byte, error) {
	detail, err := s.GetDetail(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Session roster %s", detail.Purchase.ExternalBookingID)
	return s.pdf.Render(rosterDataset(detail.Sessions), title)
}

func rosterDataset(sessions []models.Session) export.Dataset {
	rows := make([]map[string]string, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, map[string]string{
			"Session": strconv.Itoa(session.SessionNumber),
			"Date":    session.Date.Format("2006-01-02"),
			"Time":    session.TimeSlot,
			"Type":    string(session.Type),
			"Status":  string(session.Status),
		})
	}
	return export.Dataset{Headers: rosterHeaders, Rows: rows}
}
