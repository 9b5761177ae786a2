package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/pipeline-crm/internal/application/analytics"
	"github.com/jhoicas/pipeline-crm/internal/application/auth"
	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/internal/application/transfer"
	"github.com/jhoicas/pipeline-crm/internal/application/usecase"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/ledger"
	"github.com/jhoicas/pipeline-crm/internal/domain/lifecycle"
	"github.com/jhoicas/pipeline-crm/internal/infrastructure/memory"
	"github.com/jhoicas/pipeline-crm/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/pipeline-crm/internal/interfaces/http"
	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

type failingSuggester struct{}

func (failingSuggester) SuggestFollowUp(context.Context, ports.FollowUpSnapshot) (string, error) {
	return "", errors.New("provider down")
}

type api struct {
	app   *fiber.App
	token string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	now := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	clock := domain.ClockFunc(func() time.Time { return now })
	log := logger.Nop()

	repo := memory.NewCustomerRepo(memory.DemoCustomers(now)...)
	bus := crm.NewEventBus(16, log)
	numbers := ledger.NewNumberGenerator("SLI-Q")
	engine := lifecycle.NewEngine(clock, lifecycle.WithNumbers(numbers))
	w := crm.NewWriter(repo, engine, bus, log)
	generator := pdf.NewMarotoPDFGenerator()
	customerUC := crm.NewCustomerUseCase(w, 7)

	hash, err := auth.HashPassword("secret-pass")
	require.NoError(t, err)
	authUC := auth.NewAuthUseCase(
		auth.Credentials{Username: "admin", PasswordHash: hash},
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 10, Issuer: testIssuer},
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC:  customerUC,
		QuotationUC: crm.NewQuotationUseCase(w, numbers, generator, ports.CompanyProfile{Name: "Test"}),
		TransferUC:  transfer.NewUseCase(w, customerUC, generator),
		DashboardUC: appanalytics.NewDashboardUseCase(repo, clock, 7),
		ReportsUC:   appanalytics.NewReportsUseCase(repo, clock),
		AIUC:        usecase.NewAIUseCase(failingSuggester{}, repo, log),
		AuthUC:      authUC,
		Events:      bus,
		Log:         log,
		JWTSecret:   testJWTSecret,
	})

	a := &api{app: app}
	resp := a.do(t, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"secret-pass"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	decode(t, resp, &login)
	a.token = login.Token
	return a
}

func (a *api) do(t *testing.T, method, target, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}

func TestLogin_WrongPassword(t *testing.T) {
	a := newAPI(t)
	a.token = ""
	resp := a.do(t, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = a.do(t, http.MethodPost, "/api/auth/login", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	a := newAPI(t)
	a.token = ""
	resp := a.do(t, http.MethodGet, "/api/customers", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCustomerEndpoints(t *testing.T) {
	a := newAPI(t)

	resp := a.do(t, http.MethodGet, "/api/customers?stages=Lead&sort=name&dir=desc", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.DataResponse[dto.CustomerResponse]
	decode(t, resp, &list)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "Tirunelveli Halwa King", list.Data[0].Name)

	resp = a.do(t, http.MethodGet, "/api/customers?created=decade", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, http.MethodPost, "/api/customers",
		`{"name":"Kavin Foods","phone":"9444444444","location":"Theni","business_type":"Snacks","daily_production":220}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.CustomerResponse
	decode(t, resp, &created)
	assert.Equal(t, "Enquiry", created.Stage)

	resp = a.do(t, http.MethodPost, "/api/customers",
		`{"name":"Kavin Foods","phone":"9444444444","location":"Theni","business_type":"Sweets","daily_production":220}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = a.do(t, http.MethodPost, "/api/customers", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, resp))

	resp = a.do(t, http.MethodPut, "/api/customers/"+created.ID+"/stage", `{"stage":"Lead"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var moved dto.CustomerResponse
	decode(t, resp, &moved)
	assert.Len(t, moved.StageHistory, 2)

	resp = a.do(t, http.MethodPost, "/api/customers/"+created.ID+"/notes", `{"content":"Sent brochure"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/customers/CUST-missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, http.MethodDelete, "/api/customers/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestQuotationEndpoints(t *testing.T) {
	a := newAPI(t)

	resp := a.do(t, http.MethodPost, "/api/customers/CUST-002/quotations",
		`{"line_items":[{"description":"Line A","hsn":"8438","pcs":1,"quantity":1,"amount":"1000"},{"description":"Line B","pcs":1,"quantity":1,"amount":"2000"}]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var q dto.QuotationResponse
	decode(t, resp, &q)
	assert.Equal(t, "3540", q.NetAmount.String())
	assert.Equal(t, "270", q.CGST.String())

	resp = a.do(t, http.MethodPost, "/api/customers/CUST-002/quotations", `{"line_items":[]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, http.MethodPost, "/api/customers/CUST-002/quotations/"+q.ID+"/confirm", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var c dto.CustomerResponse
	decode(t, resp, &c)
	assert.Equal(t, "Booking", c.Stage)

	resp = a.do(t, http.MethodPut, "/api/customers/CUST-002/quotations/"+q.ID,
		`{"line_items":[{"description":"Line A","pcs":1,"quantity":1,"amount":"10"}]}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/customers/CUST-002/quotations/"+q.ID+"/pdf", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = a.do(t, http.MethodGet, "/api/quotations/next-number", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var next dto.NextNumberResponse
	decode(t, resp, &next)
	assert.Regexp(t, `^SLI-Q-2025-\d{1,3}$`, next.QuotationNumber)
}

func TestImportEndpoint_RejectsBadRow(t *testing.T) {
	a := newAPI(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "leads.csv")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("name,phone,location,businessType,dailyProduction,stage\nRavi,9000000000,Trichy,Snacks,-5,Lead\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+a.token)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "IMPORT", e.Code)
	assert.Contains(t, e.Message, "Row 2")

	resp = a.do(t, http.MethodGet, "/api/customers", "")
	var list dto.DataResponse[dto.CustomerResponse]
	decode(t, resp, &list)
	assert.Equal(t, 6, list.Total)
}

func TestExportEndpoint(t *testing.T) {
	a := newAPI(t)
	resp := a.do(t, http.MethodGet, "/api/export?format=csv&stages=Booking", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="customers-2025-06-11.csv"`, resp.Header.Get("Content-Disposition"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t,
		"Name,Phone,Location,Stage,Business Type,Daily Production (kg)\nChennai Sweets,9988776655,Chennai,Booking,Snacks,500\n",
		string(body))

	resp = a.do(t, http.MethodGet, "/api/export?format=docx", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDashboardReportsAndAI(t *testing.T) {
	a := newAPI(t)

	resp := a.do(t, http.MethodGet, "/api/dashboard/summary", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary dto.DashboardSummaryDTO
	decode(t, resp, &summary)
	assert.Equal(t, 6, summary.TotalCustomers)
	assert.Len(t, summary.TodayFollowUps, 2)

	resp = a.do(t, http.MethodGet, "/api/reports/daily?date=2025-06-10", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report dto.DailyReportDTO
	decode(t, resp, &report)
	assert.Equal(t, "2025-06-10", report.Date)
	assert.Len(t, report.StageChanges, 1)

	resp = a.do(t, http.MethodPost, "/api/customers/CUST-001/follow-up-suggestion", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var suggestion dto.FollowUpSuggestionResponse
	decode(t, resp, &suggestion)
	assert.True(t, suggestion.Fallback)
	assert.Equal(t, usecase.FallbackFollowUpMessage, suggestion.Message)
}
