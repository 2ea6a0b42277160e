package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stagetrack/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrNothingToExport = errors.New("没有可导出的数据")

// ExportService 报表导出业务接口
//
// 所有方法返回 (文件内容, 建议文件名, error)，由 HTTP 层负责
// Content-Disposition 下载头
type ExportService interface {
	// ExportInternsCSV 导出实习生清单为 CSV（UTF-8 带 BOM，Excel 可直接打开）
	ExportInternsCSV(ctx context.Context) ([]byte, string, error)
	// ExportInternsXLSX 导出实习生清单为 Excel 工作簿
	ExportInternsXLSX(ctx context.Context) ([]byte, string, error)
	// ExportEvaluationPDF 导出单份评价报告
	ExportEvaluationPDF(ctx context.Context, evaluationID string) ([]byte, string, error)
	// ExportCertificatePDF 为已评价的实习生生成实习证书
	ExportCertificatePDF(ctx context.Context, evaluationID string) ([]byte, string, error)
	// ExportCalendarICS 导出全部实习周期为 iCalendar 日历
	ExportCalendarICS(ctx context.Context) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── CSV ──────────────────────

var internExportHeader = []string{
	"Prénom", "Nom", "Intitulé du stage", "Email",
	"Date de début", "Date de fin", "Statut", "Genre",
}

func (s *exportService) ExportInternsCSV(ctx context.Context) ([]byte, string, error) {
	interns, err := s.repo.Intern.List(ctx)
	if err != nil {
		s.logger.Error("列出实习生失败", zap.Error(err))
		return nil, "", err
	}

	var buf bytes.Buffer
	// UTF-8 BOM，保证 Excel 正确识别法文重音字符
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write(internExportHeader); err != nil {
		return nil, "", err
	}
	for i := range interns {
		in := &interns[i]
		record := []string{
			in.FirstName,
			in.LastName,
			in.Title,
			in.Email,
			in.StartDate.Format(dateLayout),
			in.EndDate.Format(dateLayout),
			in.Status,
			in.Gender,
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("stagiaires_%s.csv", time.Now().Format(dateLayout))
	return buf.Bytes(), filename, nil
}

// ────────────────────── XLSX ──────────────────────

func (s *exportService) ExportInternsXLSX(ctx context.Context) ([]byte, string, error) {
	interns, err := s.repo.Intern.List(ctx)
	if err != nil {
		s.logger.Error("列出实习生失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Stagiaires"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// 表头样式：加粗 + 灰底
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", err
	}

	for col, title := range internExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(internExportHeader), 1)
	f.SetCellStyle(sheet, "A1", endHeader, headerStyle)

	for row, in := range interns {
		values := []interface{}{
			in.FirstName,
			in.LastName,
			in.Title,
			in.Email,
			in.StartDate.Format(dateLayout),
			in.EndDate.Format(dateLayout),
			in.Status,
			in.Gender,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	// 常用列加宽，避免日期显示成 ####
	f.SetColWidth(sheet, "A", "D", 20)
	f.SetColWidth(sheet, "E", "F", 14)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("stagiaires_%s.xlsx", time.Now().Format(dateLayout))
	return buf.Bytes(), filename, nil
}

// ────────────────────── 评价报告 PDF ──────────────────────

func (s *exportService) ExportEvaluationPDF(ctx context.Context, evaluationID string) ([]byte, string, error) {
	eval, err := s.repo.Evaluation.GetByID(ctx, evaluationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrEvaluationNotFound
		}
		s.logger.Error("查询评价失败", zap.String("id", evaluationID), zap.Error(err))
		return nil, "", err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	// 法文重音字符需要 cp1252 转换器
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("Rapport d'évaluation de stage"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	fullName := eval.FirstName + " " + eval.LastName
	rows := [][2]string{
		{"Stagiaire", fullName},
		{"Période", eval.StartDate.Format(dateLayout) + " — " + eval.EndDate.Format(dateLayout)},
		{"Note", strconv.FormatFloat(eval.Grade, 'f', 2, 64) + " / 20"},
		{"Appréciation", gradeMention(eval.Grade)},
	}
	for _, r := range rows {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(45, 9, tr(r[0]), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 9, tr(r[1]), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 9, tr("Commentaire"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	comment := eval.Comment
	if comment == "" {
		comment = "—"
	}
	pdf.MultiCell(0, 7, tr(comment), "1", "L", false)

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, tr("Document généré le "+time.Now().Format(dateLayout)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error("生成 PDF 失败", zap.String("id", evaluationID), zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("evaluation_%s_%s.pdf", eval.LastName, eval.FirstName)
	return buf.Bytes(), filename, nil
}

// ────────────────────── 实习证书 PDF ──────────────────────

func (s *exportService) ExportCertificatePDF(ctx context.Context, evaluationID string) ([]byte, string, error) {
	eval, err := s.repo.Evaluation.GetByID(ctx, evaluationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrEvaluationNotFound
		}
		s.logger.Error("查询评价失败", zap.String("id", evaluationID), zap.Error(err))
		return nil, "", err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// 证书边框
	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, 277, 190, "D")
	pdf.SetLineWidth(0.3)
	pdf.Rect(13, 13, 271, 184, "D")

	pdf.SetY(35)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.CellFormat(0, 14, tr("Certificat de stage"), "", 1, "C", false, 0, "")

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(0, 8, tr("Nous certifions que"), "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, tr(eval.FirstName+" "+eval.LastName), "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf(
		"a effectué un stage du %s au %s",
		eval.StartDate.Format("02/01/2006"), eval.EndDate.Format("02/01/2006"),
	)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf(
		"et a obtenu la note de %s sur 20 — %s",
		strconv.FormatFloat(eval.Grade, 'f', 2, 64), gradeMention(eval.Grade),
	)), "", 1, "C", false, 0, "")

	pdf.SetY(160)
	pdf.SetFont("Helvetica", "I", 11)
	pdf.CellFormat(0, 7, tr("Fait à Antananarivo, le "+time.Now().Format("02/01/2006")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error("生成证书失败", zap.String("id", evaluationID), zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("certificat_%s_%s.pdf", eval.LastName, eval.FirstName)
	return buf.Bytes(), filename, nil
}

// ────────────────────── iCalendar ──────────────────────

func (s *exportService) ExportCalendarICS(ctx context.Context) ([]byte, string, error) {
	interns, err := s.repo.Intern.List(ctx)
	if err != nil {
		s.logger.Error("列出实习生失败", zap.Error(err))
		return nil, "", err
	}
	if len(interns) == 0 {
		return nil, "", ErrNothingToExport
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//StageTrack//Backend//FR")
	cal.SetName("Périodes de stage")

	for i := range interns {
		in := &interns[i]
		event := cal.AddEvent(fmt.Sprintf("stage-%s@stagetrack", in.InternID))
		event.SetSummary(fmt.Sprintf("Stage : %s (%s)", in.FullName(), in.Title))
		event.SetDescription(fmt.Sprintf("Statut : %s", in.Status))
		// 全天事件：DTEND 为结束日翌日（iCalendar 约定为排他边界）
		event.SetAllDayStartAt(in.StartDate)
		event.SetAllDayEndAt(in.EndDate.AddDate(0, 0, 1))
		event.SetDtStampTime(time.Now())
	}

	filename := fmt.Sprintf("stages_%s.ics", time.Now().Format(dateLayout))
	return []byte(cal.Serialize()), filename, nil
}

// ── 内部辅助方法 ──

// gradeMention 法国 0-20 分制的评语档位
func gradeMention(grade float64) string {
	switch {
	case grade >= 16:
		return "Très bien"
	case grade >= 14:
		return "Bien"
	case grade >= 12:
		return "Assez bien"
	case grade >= 10:
		return "Passable"
	default:
		return "Insuffisant"
	}
}
