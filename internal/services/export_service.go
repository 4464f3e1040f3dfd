package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/testing-service/internal/models"
	"github.com/SAP-F-2025/testing-service/internal/repositories"
)

const (
	xlsxContentType      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	submissionsSheetName = "Submissions"
)

var submissionExportHeader = []string{"Student", "Email", "Submitted At", "Graded", "Score", "Feedback"}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportSubmissions builds a workbook with one row per submission and one column per question
func (s *exportService) ExportSubmissions(ctx context.Context, testID uint, teacherID string) (*ExportFile, error) {
	test, err := loadOwnedTest(ctx, s.repo, testID, teacherID, "export_submissions")
	if err != nil {
		return nil, err
	}

	submissions, err := s.repo.Submission().ListByTest(ctx, nil, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	data, err := buildSubmissionsWorkbook(test, submissions)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Submissions exported", "test_id", testID, "teacher_id", teacherID, "rows", len(submissions))
	return &ExportFile{
		Filename:    fmt.Sprintf("test-%d-submissions.xlsx", testID),
		ContentType: xlsxContentType,
		Data:        data,
	}, nil
}

func buildSubmissionsWorkbook(test *models.Test, submissions []*models.Submission) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", submissionsSheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, 0, len(submissionExportHeader)+len(test.Questions))
	for _, h := range submissionExportHeader {
		header = append(header, h)
	}
	for i, q := range test.Questions {
		header = append(header, fmt.Sprintf("Q%d: %s", i+1, q.Question))
	}
	if err := f.SetSheetRow(submissionsSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(submissionsSheetName, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, sub := range submissions {
		row := make([]interface{}, 0, len(header))
		row = append(row,
			sub.Student.Name,
			sub.Student.Email,
			sub.SubmittedAt.UTC().Format(time.RFC3339),
			sub.Graded,
		)
		if sub.Score != nil {
			row = append(row, *sub.Score)
		} else {
			row = append(row, "")
		}
		if sub.Feedback != nil {
			row = append(row, *sub.Feedback)
		} else {
			row = append(row, "")
		}

		answers := make([]interface{}, len(test.Questions))
		for j := range answers {
			answers[j] = ""
		}
		for _, a := range sub.Answers {
			if a.QuestionIndex >= 0 && a.QuestionIndex < len(answers) {
				answers[a.QuestionIndex] = a.Answer
			}
		}
		row = append(row, answers...)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(submissionsSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
