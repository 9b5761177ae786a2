// Package transfer handles bulk customer import from CSV/XLSX and list export to
// CSV, XLSX and PDF.
package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/infrastructure/spreadsheet"
)

// RequiredHeaders must all be present in an import file, in any order.
var RequiredHeaders = []string{"name", "phone", "location", "businessType", "dailyProduction", "stage"}

// ExportHeaders is the header row of CSV and XLSX exports.
var ExportHeaders = []string{"Name", "Phone", "Location", "Stage", "Business Type", "Daily Production (kg)"}

// ExportFormat selects the export file type.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
	ExportPDF  ExportFormat = "pdf"
)

// ParseExportFormat defaults to CSV when raw is empty.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return ExportCSV, nil
	case ExportCSV, ExportXLSX, ExportPDF:
		return f, nil
	}
	return "", domain.Validationf("unknown export format %q", raw)
}

// ContentType returns the MIME type of the export.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportPDF:
		return "application/pdf"
	}
	return "text/csv; charset=utf-8"
}

// Export is a rendered file ready to download.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

// UseCase wires import and export to the customer store.
type UseCase struct {
	w         *crm.Writer
	customers *crm.CustomerUseCase
	lists     ports.CustomerListPDFGenerator
}

// NewUseCase builds the use case. lists may be nil, in which case PDF export fails.
func NewUseCase(w *crm.Writer, customers *crm.CustomerUseCase, lists ports.CustomerListPDFGenerator) *UseCase {
	return &UseCase{w: w, customers: customers, lists: lists}
}

// ── Import ───────────────────────────────────────────────────────────────────

// Import parses the whole file and stores every row, or nothing. Errors wrap
// domain.ErrImport; row problems are *domain.ImportError.
func (uc *UseCase) Import(ctx context.Context, filename string, r io.Reader) (*dto.ImportResponse, error) {
	format, err := spreadsheet.DetectFormat(filename)
	if err != nil {
		return nil, &domain.ImportError{Reason: err.Error()}
	}
	rows, err := spreadsheet.Read(format, r)
	if err != nil {
		return nil, &domain.ImportError{Reason: "could not read file: " + err.Error()}
	}
	inputs, err := ParseRows(rows)
	if err != nil {
		return nil, err
	}

	now := uc.w.Engine().Now()
	customers := make([]*entity.Customer, 0, len(inputs))
	for i, in := range inputs {
		c, err := entity.NewCustomer(in, uc.w.NewCustomerID(), now)
		if err != nil {
			return nil, &domain.ImportError{Row: i + 2, Reason: reason(err)}
		}
		customers = append(customers, c)
	}
	if err := uc.w.Insert(ctx, crm.EventCustomersImported, customers...); err != nil {
		return nil, err
	}
	return &dto.ImportResponse{Imported: len(customers), Customers: crm.ToCustomerResponses(customers)}, nil
}

// ParseRows validates a header row plus data rows. The header is row 1.
func ParseRows(rows [][]string) ([]entity.NewCustomerInput, error) {
	if len(rows) < 2 {
		return nil, &domain.ImportError{Reason: "file is empty or has only a header"}
	}

	header := make([]string, len(rows[0]))
	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
		index[header[i]] = i
	}
	for _, h := range RequiredHeaders {
		if _, ok := index[h]; !ok {
			return nil, &domain.ImportError{
				Reason: "invalid header, must contain: " + strings.Join(RequiredHeaders, ", "),
			}
		}
	}

	out := make([]entity.NewCustomerInput, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNo := i + 2
		if len(row) != len(header) {
			return nil, &domain.ImportError{Row: rowNo, Reason: "incorrect number of columns"}
		}
		field := func(name string) string { return strings.TrimSpace(row[index[name]]) }

		in := entity.NewCustomerInput{CustomerDetails: entity.CustomerDetails{
			Name:     field("name"),
			Phone:    field("phone"),
			Location: field("location"),
		}}
		if in.Name == "" || in.Phone == "" || in.Location == "" {
			return nil, &domain.ImportError{Row: rowNo, Reason: "name, phone and location are required"}
		}
		n, err := strconv.Atoi(field("dailyProduction"))
		if err != nil || n <= 0 {
			return nil, &domain.ImportError{Row: rowNo, Reason: "'dailyProduction' must be a positive number"}
		}
		in.DailyProduction = n
		if in.BusinessType, err = entity.ParseBusinessType(field("businessType")); err != nil {
			return nil, &domain.ImportError{Row: rowNo, Reason: "invalid 'businessType', must be 'Murukku' or 'Snacks'"}
		}
		if in.Stage, err = entity.ParseStage(field("stage")); err != nil {
			return nil, &domain.ImportError{Row: rowNo, Reason: "invalid 'stage'"}
		}
		out = append(out, in)
	}
	return out, nil
}

func reason(err error) string {
	msg := err.Error()
	if errors.Is(err, domain.ErrValidation) {
		msg = strings.TrimPrefix(msg, domain.ErrValidation.Error()+": ")
	}
	return msg
}

// ── Export ───────────────────────────────────────────────────────────────────

// Export renders the customers matching q in the given format.
func (uc *UseCase) Export(ctx context.Context, format ExportFormat, q dto.CustomerListQuery) (*Export, error) {
	customers, err := uc.customers.Filter(ctx, q)
	if err != nil {
		return nil, err
	}

	var body []byte
	switch format {
	case ExportCSV:
		body, err = ExportCSVBytes(customers)
	case ExportXLSX:
		body, err = ExportXLSXBytes(customers)
	case ExportPDF:
		if uc.lists == nil {
			return nil, errors.New("transfer: pdf export not configured")
		}
		body, err = uc.lists.GenerateCustomerListPDF(ctx, "Customer List", customers)
	default:
		return nil, domain.Validationf("unknown export format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("transfer: export %s: %w", format, err)
	}

	return &Export{
		Filename:    fmt.Sprintf("customers-%s.%s", uc.w.Engine().Now().Format("2006-01-02"), format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

func exportRow(c *entity.Customer) []string {
	return []string{
		spreadsheet.SafeCell(c.Name),
		spreadsheet.SafePhone(c.Phone),
		spreadsheet.SafeCell(c.Location),
		spreadsheet.SafeCell(c.Stage.Label()),
		spreadsheet.SafeCell(string(c.BusinessType)),
		strconv.Itoa(c.DailyProduction),
	}
}

// ExportCSVBytes renders customers as CSV with ExportHeaders.
func ExportCSVBytes(customers []*entity.Customer) ([]byte, error) {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, exportRow(c))
	}
	var buf bytes.Buffer
	if err := spreadsheet.WriteCSV(&buf, ExportHeaders, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportXLSXBytes renders customers as a one-sheet workbook. Daily production stays numeric.
func ExportXLSXBytes(customers []*entity.Customer) ([]byte, error) {
	rows := make([][]any, 0, len(customers))
	for _, c := range customers {
		r := exportRow(c)
		rows = append(rows, []any{r[0], r[1], r[2], r[3], r[4], c.DailyProduction})
	}
	var buf bytes.Buffer
	if err := spreadsheet.WriteXLSX(&buf, "Customers", ExportHeaders, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
