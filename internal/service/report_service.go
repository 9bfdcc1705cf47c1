package service

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// ReportService renders a user's progression as a downloadable PDF.
type ReportService interface {
	ProgressReport(email string) ([]byte, error)
}

type reportService struct {
	progressSvc ProgressService
	badgeSvc    BadgeService
	moduloSvc   ModuloService
}

func NewReportService(progressSvc ProgressService, badgeSvc BadgeService, moduloSvc ModuloService) ReportService {
	return &reportService{progressSvc: progressSvc, badgeSvc: badgeSvc, moduloSvc: moduloSvc}
}

func (s *reportService) ProgressReport(email string) ([]byte, error) {
	view, err := s.progressSvc.GetForUser(email)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 16)
	pdf.AddPage()

	pdf.Cell(40, 10, "Progress Report")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("User: %s", view.UserEmail))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Level %d  (%d XP, %.1f%% into this level)",
		view.Level, view.TotalPoints, view.XPProgressPercent))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Streak: %d day(s), longest %d",
		view.CurrentStreak, view.LongestStreak))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Completed modules (%d)", len(view.CompletedModuloz)))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	for _, id := range view.CompletedModuloz {
		title := fmt.Sprintf("Module #%d", id)
		if m, err := s.moduloSvc.GetByID(id, false); err == nil {
			title = m.Title
		}
		pdf.Cell(0, 7, "- "+title)
		pdf.Ln(7)
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Quiz history (%d)", len(view.QuizHistory)))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	for _, q := range view.QuizHistory {
		pdf.Cell(0, 7, fmt.Sprintf("- Module #%d: %.1f%% on %s",
			q.ModuloID, q.Score, q.CompletedAt.Format("2006-01-02")))
		pdf.Ln(7)
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Badges (%d)", len(view.EarnedBadges)))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	for _, id := range view.EarnedBadges {
		name := fmt.Sprintf("Badge #%d", id)
		if b, err := s.badgeSvc.GetByID(id); err == nil {
			name = fmt.Sprintf("%s (%s)", b.Name, b.Rarity)
		}
		pdf.Cell(0, 7, "- "+name)
		pdf.Ln(7)
	}

	pdf.Cell(0, 7, fmt.Sprintf("Next level in %d XP", view.XPToNextLevel))
	pdf.Ln(7)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render progress report: %w", err)
	}
	return buf.Bytes(), nil
}
