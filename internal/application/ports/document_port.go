package ports

import (
	"context"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// CompanyProfile is the letterhead and remittance data printed on documents.
type CompanyProfile struct {
	Name          string
	Tagline       string
	Address       string
	GSTIN         string
	Contact       string
	BankName      string
	AccountName   string
	AccountNumber string
	IFSC          string
	Terms         []string
}

// QuotationPDFGenerator renders a quotation for a customer.
type QuotationPDFGenerator interface {
	GenerateQuotationPDF(ctx context.Context, company CompanyProfile, customer *entity.Customer, quotation *entity.Quotation) ([]byte, error)
}

// CustomerListPDFGenerator renders a customer table.
type CustomerListPDFGenerator interface {
	GenerateCustomerListPDF(ctx context.Context, title string, customers []*entity.Customer) ([]byte, error)
}
