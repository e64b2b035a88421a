package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wrsoft/branchledger/internal/apperrors"
	"github.com/wrsoft/branchledger/internal/core/domain"
	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
	"github.com/wrsoft/branchledger/internal/dto"
	"github.com/wrsoft/branchledger/internal/handlers"
	"github.com/wrsoft/branchledger/internal/middleware"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) CreateIncome(ctx context.Context, caller domain.Caller, req dto.CreateIncomeRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) CreateExpense(ctx context.Context, caller domain.Caller, req dto.CreateExpenseRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, caller domain.Caller, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, caller, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, caller domain.Caller, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, caller, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockTransactionService) GetSummary(ctx context.Context, caller domain.Caller, params dto.SummaryParams) (*dto.SummaryResponse, error) {
	args := m.Called(ctx, caller, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SummaryResponse), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, caller domain.Caller, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, caller, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, caller domain.Caller, transactionID string) error {
	args := m.Called(ctx, caller, transactionID)
	return args.Error(0)
}

// --- Mock AuthService (caller resolution only) ---
type MockAuthService struct {
	mock.Mock
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

func (m *MockAuthService) ResolveCaller(ctx context.Context, userID string) (domain.Caller, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Caller), args.Error(1)
}

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockTransactionSvc *MockTransactionService
	mockAuthSvc        *MockAuthService
	jwtSecret          string
	caller             domain.Caller
}

// generateTestToken creates a signed JWT for the given user.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "branchledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidations()

	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockTransactionSvc = new(MockTransactionService)
	suite.mockAuthSvc = new(MockAuthService)

	branchID := uuid.NewString()
	suite.caller = domain.Caller{UserID: uuid.NewString(), Role: domain.RoleAccountant, BranchID: &branchID}

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, suite.mockAuthSvc))
	handlers.RegisterTransactionRoutes(v1, suite.mockTransactionSvc)
}

// authedRequest builds a request carrying a valid bearer token and wires the
// caller resolution for it.
func (suite *TransactionHandlerTestSuite) authedRequest(method, url string, body any) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.caller.UserID))
	req.Header.Set("Content-Type", "application/json")

	suite.mockAuthSvc.On("ResolveCaller", mock.Anything, suite.caller.UserID).Return(suite.caller, nil).Once()
	return req
}

func (suite *TransactionHandlerTestSuite) TestCreateIncome_Success() {
	amount := decimal.NewFromInt(250)
	body := dto.CreateIncomeRequest{
		Date:          time.Now().UTC().Truncate(time.Second),
		Category:      domain.CategorySales,
		PaymentMethod: domain.PaymentCash,
		Amount:        &amount,
	}

	expected := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		TransactionType: domain.Income,
		Category:        domain.CategorySales,
		Amount:          amount,
		TotalAmount:     amount,
		PaidAmount:      amount,
		BranchID:        *suite.caller.BranchID,
		CurrencyCode:    "EGP",
	}

	suite.mockTransactionSvc.On("CreateIncome",
		mock.Anything,
		suite.caller,
		mock.MatchedBy(func(req dto.CreateIncomeRequest) bool {
			return req.Category == domain.CategorySales && req.Amount != nil && req.Amount.Equal(amount)
		}),
	).Return(expected, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/transactions/income", body))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.TransactionID, resp.TransactionID)
	suite.Equal("INCOME", resp.TransactionType)
	suite.True(resp.TotalAmount.Equal(amount))
	suite.mockTransactionSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateIncome_UnknownCategoryRejectedByBinding() {
	amount := decimal.NewFromInt(50)
	body := dto.CreateIncomeRequest{
		Date:          time.Now().UTC(),
		Category:      domain.Category("LOTTERY"),
		PaymentMethod: domain.PaymentCash,
		Amount:        &amount,
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/transactions/income", body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransactionSvc.AssertNotCalled(suite.T(), "CreateIncome", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateExpense_InsufficientStockDetailsInBody() {
	itemID := uuid.NewString()
	qty := decimal.NewFromInt(5)
	unitPrice := decimal.NewFromInt(10)
	body := dto.CreateExpenseRequest{
		Date:     time.Now().UTC(),
		Category: domain.CategoryInventoryPurchase,
		Items: []dto.LineItemInput{{
			InventoryItemID: itemID,
			Quantity:        qty,
			UnitPrice:       &unitPrice,
			OperationType:   domain.OperationConsumption,
		}},
	}

	stockErr := apperrors.NewInsufficientStockError(itemID, decimal.NewFromInt(2), qty)
	suite.mockTransactionSvc.On("CreateExpense", mock.Anything, suite.caller, mock.Anything).
		Return(nil, stockErr).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/transactions/expense", body))

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(itemID, resp["itemID"])
	suite.Contains(resp, "available")
	suite.Contains(resp, "requested")
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	transactionID := uuid.NewString()

	suite.mockTransactionSvc.On("GetTransactionByID", mock.Anything, suite.caller, transactionID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/transactions/"+transactionID, nil))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_Success() {
	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{TransactionID: uuid.NewString(), TransactionType: "INCOME", Category: "SALES"},
			{TransactionID: uuid.NewString(), TransactionType: "EXPENSE", Category: "UTILITIES"},
		},
	}

	suite.mockTransactionSvc.On("ListTransactions",
		mock.Anything,
		suite.caller,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool { return p.Limit == 10 }),
	).Return(expected, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/transactions?limit=10", nil))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 2)
	suite.Equal(expected.Transactions[0].TransactionID, resp.Transactions[0].TransactionID)
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_LinkedConflict() {
	transactionID := uuid.NewString()

	suite.mockTransactionSvc.On("DeleteTransaction", mock.Anything, suite.caller, transactionID).
		Return(apperrors.ErrConflict).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodDelete, "/api/v1/transactions/"+transactionID, nil))

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, err := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	suite.Require().NoError(err)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTransactionSvc.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
