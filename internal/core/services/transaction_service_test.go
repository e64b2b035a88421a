package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wrsoft/branchledger/internal/apperrors"
	"github.com/wrsoft/branchledger/internal/core/domain"
	portsrepo "github.com/wrsoft/branchledger/internal/core/ports/repositories"
	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
	"github.com/wrsoft/branchledger/internal/core/services"
	"github.com/wrsoft/branchledger/internal/dto"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryWithTx = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SavePosting(ctx context.Context, posting domain.Posting) error {
	args := m.Called(ctx, posting)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), nextToken, args.Error(2)
}

func (m *MockTransactionRepository) SummarizeTransactions(ctx context.Context, filter portsrepo.SummaryFilter) (domain.TransactionSummary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.TransactionSummary), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SoftDeleteTransaction(ctx context.Context, transactionID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, transactionID, deletedBy, deletedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock EmployeeRepository ---
type MockEmployeeRepository struct {
	mock.Mock
}

var _ portsrepo.EmployeeRepositoryFacade = (*MockEmployeeRepository)(nil)

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployeesByBranch(ctx context.Context, branchID string) ([]domain.Employee, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

// --- Mock InventoryService ---
type MockInventoryService struct {
	mock.Mock
}

var _ portssvc.InventorySvcFacade = (*MockInventoryService)(nil)

func (m *MockInventoryService) ProcessOperation(ctx context.Context, branchID string, transactionID string, category domain.Category, input dto.LineItemInput, actorUserID string) (*portssvc.PostingLine, error) {
	args := m.Called(ctx, branchID, transactionID, category, input, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.PostingLine), args.Error(1)
}

func (m *MockInventoryService) CreateItem(ctx context.Context, caller domain.Caller, req dto.CreateInventoryItemRequest) (*domain.InventoryItem, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) GetItem(ctx context.Context, caller domain.Caller, itemID string, branchID *string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, caller, itemID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) ListItems(ctx context.Context, caller domain.Caller, params dto.ListInventoryParams) (*dto.ListInventoryItemsResponse, error) {
	args := m.Called(ctx, caller, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListInventoryItemsResponse), args.Error(1)
}

func (m *MockInventoryService) ListMovements(ctx context.Context, caller domain.Caller, itemID string, params dto.ListInventoryParams) (*dto.ListInventoryMovementsResponse, error) {
	args := m.Called(ctx, caller, itemID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListInventoryMovementsResponse), args.Error(1)
}

// --- Mock DebtService ---
type MockDebtService struct {
	mock.Mock
}

var _ portssvc.DebtSvcFacade = (*MockDebtService)(nil)

func (m *MockDebtService) PlanPartialPayment(ctx context.Context, p portssvc.PartialPaymentInput) (*portssvc.PaymentPlan, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.PaymentPlan), args.Error(1)
}

func (m *MockDebtService) PlanReceivable(ctx context.Context, p portssvc.ReceivableInput) (*domain.AccountReceivable, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountReceivable), args.Error(1)
}

func (m *MockDebtService) ListPayables(ctx context.Context, caller domain.Caller, params dto.ListDebtsParams) (*dto.ListDebtsResponse, error) {
	args := m.Called(ctx, caller, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListDebtsResponse), args.Error(1)
}

func (m *MockDebtService) ListReceivables(ctx context.Context, caller domain.Caller, params dto.ListDebtsParams) (*dto.ListDebtsResponse, error) {
	args := m.Called(ctx, caller, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListDebtsResponse), args.Error(1)
}

// --- Mock BranchService ---
type MockBranchService struct {
	mock.Mock
}

var _ portssvc.BranchSvcFacade = (*MockBranchService)(nil)

func (m *MockBranchService) ResolveBranchID(ctx context.Context, caller domain.Caller, requestedBranchID *string) (string, error) {
	args := m.Called(ctx, caller, requestedBranchID)
	return args.String(0), args.Error(1)
}

func (m *MockBranchService) EffectiveBranchFilter(ctx context.Context, caller domain.Caller, requestedBranchID *string) (*string, error) {
	args := m.Called(ctx, caller, requestedBranchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	filterVal := args.Get(0).(string)
	return &filterVal, args.Error(1)
}

func (m *MockBranchService) GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

func (m *MockCurrencyService) GetDefaultCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Test Suite Setup ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockEmployeeRepo *MockEmployeeRepository
	mockInventorySvc *MockInventoryService
	mockDebtSvc      *MockDebtService
	mockBranchSvc    *MockBranchService
	mockCurrencySvc  *MockCurrencyService
	service          portssvc.TransactionSvcFacade
	caller           domain.Caller
	branchID         string
	currency         domain.Currency
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockEmployeeRepo = new(MockEmployeeRepository)
	suite.mockInventorySvc = new(MockInventoryService)
	suite.mockDebtSvc = new(MockDebtService)
	suite.mockBranchSvc = new(MockBranchService)
	suite.mockCurrencySvc = new(MockCurrencyService)

	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockEmployeeRepo,
		suite.mockInventorySvc,
		suite.mockDebtSvc,
		suite.mockBranchSvc,
		suite.mockCurrencySvc,
		nil, nil, nil,
	)

	suite.branchID = uuid.NewString()
	branchID := suite.branchID
	suite.caller = domain.Caller{UserID: uuid.NewString(), Role: domain.RoleAccountant, BranchID: &branchID}
	suite.currency = domain.Currency{CurrencyCode: "EGP", Symbol: "E£", Name: "Egyptian Pound", Precision: 2, IsDefault: true}
}

func (suite *TransactionServiceTestSuite) expectHappyPathCollaborators(ctx context.Context) {
	suite.mockBranchSvc.On("ResolveBranchID", ctx, suite.caller, mock.Anything).Return(suite.branchID, nil).Once()
	suite.mockCurrencySvc.On("GetDefaultCurrency", ctx).Return(&suite.currency, nil).Once()
}

// --- Income posting ---

func (suite *TransactionServiceTestSuite) TestCreateIncome_FlatAmountWithPercentageDiscount() {
	ctx := context.Background()
	amount := decimal.NewFromInt(200)
	discountType := domain.DiscountPercentage
	discountValue := decimal.NewFromInt(10)
	req := dto.CreateIncomeRequest{
		Date:          time.Now().UTC().Add(-time.Hour),
		Category:      domain.CategorySales,
		PaymentMethod: domain.PaymentCash,
		Amount:        &amount,
		DiscountType:  &discountType,
		DiscountValue: &discountValue,
	}

	suite.expectHappyPathCollaborators(ctx)

	var saved domain.Posting
	suite.mockTxnRepo.On("SavePosting", ctx, mock.AnythingOfType("domain.Posting")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Posting) }).
		Return(nil).Once()

	txn, err := suite.service.CreateIncome(ctx, suite.caller, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.Income, txn.TransactionType)
	suite.Equal(suite.branchID, txn.BranchID)
	suite.Equal("EGP", txn.CurrencyCode)
	suite.True(txn.TotalAmount.Equal(decimal.NewFromInt(180)), "10%% off 200 should be 180, got %s", txn.TotalAmount)
	suite.True(txn.DiscountAmount.Equal(decimal.NewFromInt(20)))
	suite.True(txn.PaidAmount.Equal(txn.TotalAmount))
	suite.Nil(txn.LinkedReceivableID)

	suite.Empty(saved.LineItems)
	suite.Empty(saved.Mutations)
	suite.Nil(saved.Receivable)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockBranchSvc.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateIncome_ItemsConsumptionPosting() {
	ctx := context.Background()
	itemID := uuid.NewString()
	sellingPrice := decimal.NewFromInt(50)
	req := dto.CreateIncomeRequest{
		Date:          time.Now().UTC().Add(-time.Hour),
		Category:      domain.CategorySales,
		PaymentMethod: domain.PaymentCash,
		Items: []dto.LineItemInput{
			{InventoryItemID: itemID, Quantity: decimal.NewFromInt(3), UnitPrice: &sellingPrice, OperationType: domain.OperationConsumption},
		},
	}

	suite.expectHappyPathCollaborators(ctx)

	line := &portssvc.PostingLine{
		LineItem: domain.TransactionLineItem{
			LineItemID:      uuid.NewString(),
			InventoryItemID: itemID,
			Quantity:        decimal.NewFromInt(3),
			UnitPrice:       sellingPrice,
			OperationType:   domain.OperationConsumption,
			Subtotal:        decimal.NewFromInt(150),
			Total:           decimal.NewFromInt(150),
		},
		Mutation: domain.InventoryMutation{
			ItemID:        itemID,
			BranchID:      suite.branchID,
			OperationType: domain.OperationConsumption,
			Quantity:      decimal.NewFromInt(3),
		},
		Movement: &domain.InventoryMovement{MovementID: uuid.NewString(), ItemID: itemID},
	}
	suite.mockInventorySvc.On("ProcessOperation", ctx, suite.branchID, mock.AnythingOfType("string"), domain.CategorySales, req.Items[0], suite.caller.UserID).
		Return(line, nil).Once()

	var saved domain.Posting
	suite.mockTxnRepo.On("SavePosting", ctx, mock.AnythingOfType("domain.Posting")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Posting) }).
		Return(nil).Once()

	txn, err := suite.service.CreateIncome(ctx, suite.caller, req)

	suite.Require().NoError(err)
	suite.True(txn.TotalAmount.Equal(decimal.NewFromInt(150)))
	suite.Len(saved.LineItems, 1)
	suite.Len(saved.Mutations, 1)
	suite.Len(saved.Movements, 1)
	suite.Equal(domain.OperationConsumption, saved.Mutations[0].OperationType)

	suite.mockInventorySvc.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateIncome_InsufficientStockPropagates() {
	ctx := context.Background()
	itemID := uuid.NewString()
	req := dto.CreateIncomeRequest{
		Date:          time.Now().UTC().Add(-time.Hour),
		Category:      domain.CategorySales,
		PaymentMethod: domain.PaymentCash,
		Items: []dto.LineItemInput{
			{InventoryItemID: itemID, Quantity: decimal.NewFromInt(10), OperationType: domain.OperationConsumption},
		},
	}

	suite.expectHappyPathCollaborators(ctx)

	stockErr := apperrors.NewInsufficientStockError(itemID, decimal.NewFromInt(4), decimal.NewFromInt(10))
	suite.mockInventorySvc.On("ProcessOperation", ctx, suite.branchID, mock.AnythingOfType("string"), domain.CategorySales, req.Items[0], suite.caller.UserID).
		Return(nil, stockErr).Once()

	txn, err := suite.service.CreateIncome(ctx, suite.caller, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	var insufficientErr *apperrors.InsufficientStockError
	suite.True(errors.As(err, &insufficientErr))
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SavePosting", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateIncome_WithReceivable() {
	ctx := context.Background()
	amount := decimal.NewFromInt(500)
	contactID := uuid.NewString()
	req := dto.CreateIncomeRequest{
		Date:             time.Now().UTC().Add(-time.Hour),
		Category:         domain.CategoryCatering,
		PaymentMethod:    domain.PaymentCash,
		Amount:           &amount,
		CreateReceivable: true,
		ContactID:        &contactID,
	}

	suite.expectHappyPathCollaborators(ctx)

	receivable := &domain.AccountReceivable{
		ReceivableID:    uuid.NewString(),
		BranchID:        suite.branchID,
		ContactID:       contactID,
		OriginalAmount:  amount,
		RemainingAmount: amount,
		Status:          domain.DebtActive,
	}
	suite.mockDebtSvc.On("PlanReceivable", ctx, mock.MatchedBy(func(p portssvc.ReceivableInput) bool {
		return p.Amount.Equal(amount) && p.BranchID == suite.branchID && p.ContactID != nil && *p.ContactID == contactID
	})).Return(receivable, nil).Once()

	var saved domain.Posting
	suite.mockTxnRepo.On("SavePosting", ctx, mock.AnythingOfType("domain.Posting")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Posting) }).
		Return(nil).Once()

	txn, err := suite.service.CreateIncome(ctx, suite.caller, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn.LinkedReceivableID)
	suite.Equal(receivable.ReceivableID, *txn.LinkedReceivableID)
	suite.Require().NotNil(saved.Receivable)
	suite.Equal(receivable.ReceivableID, saved.Receivable.ReceivableID)

	suite.mockDebtSvc.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateIncome_AmountAndItemsRejected() {
	ctx := context.Background()
	amount := decimal.NewFromInt(100)
	req := dto.CreateIncomeRequest{
		Date:          time.Now().UTC().Add(-time.Hour),
		Category:      domain.CategorySales,
		PaymentMethod: domain.PaymentCash,
		Amount:        &amount,
		Items: []dto.LineItemInput{
			{InventoryItemID: uuid.NewString(), Quantity: decimal.NewFromInt(1), OperationType: domain.OperationConsumption},
		},
	}

	suite.mockBranchSvc.On("ResolveBranchID", ctx, suite.caller, mock.Anything).Return(suite.branchID, nil).Once()

	_, err := suite.service.CreateIncome(ctx, suite.caller, req)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.ErrorContains(err, services.ErrAmountOrItems.Error())
}

func (suite *TransactionServiceTestSuite) TestCreateIncome_NeitherAmountNorItemsRejected() {
	ctx := context.Background()
	req := dto.CreateIncomeRequest{
		Date:          time.Now().UTC().Add(-time.Hour),
		Category:      domain.CategorySales,
		PaymentMethod: domain.PaymentCash,
	}

	suite.mockBranchSvc.On("ResolveBranchID", ctx, suite.caller, mock.Anything).Return(suite.branchID, nil).Once()

	_, err := suite.service.CreateIncome(ctx, suite.caller, req)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *TransactionServiceTestSuite) TestCreateIncome_FutureDateRejected() {
	ctx := context.Background()
	amount := decimal.NewFromInt(100)
	req := dto.CreateIncomeRequest{
		Date:          time.Now().UTC().Add(48 * time.Hour),
		Category:      domain.CategorySales,
		PaymentMethod: domain.PaymentCash,
		Amount:        &amount,
	}

	suite.mockBranchSvc.On("ResolveBranchID", ctx, suite.caller, mock.Anything).Return(suite.branchID, nil).Once()

	_, err := suite.service.CreateIncome(ctx, suite.caller, req)

	suite.Require().Error(err)
	suite.ErrorContains(err, services.ErrDateInFuture.Error())
}

func (suite *TransactionServiceTestSuite) TestCreateIncome_ExpenseCategoryRejected() {
	ctx := context.Background()
	amount := decimal.NewFromInt(100)
	req := dto.CreateIncomeRequest{
		Date:          time.Now().UTC().Add(-time.Hour),
		Category:      domain.CategoryRent,
		PaymentMethod: domain.PaymentCash,
		Amount:        &amount,
	}

	suite.mockBranchSvc.On("ResolveBranchID", ctx, suite.caller, mock.Anything).Return(suite.branchID, nil).Once()

	_, err := suite.service.CreateIncome(ctx, suite.caller, req)

	suite.Require().Error(err)
	suite.ErrorContains(err, services.ErrCategoryTypeMismatch.Error())
}

func (suite *TransactionServiceTestSuite) TestCreateIncome_DiscountNotAllowedForCategory() {
	ctx := context.Background()
	amount := decimal.NewFromInt(100)
	discountType := domain.DiscountPercentage
	discountValue := decimal.NewFromInt(5)
	req := dto.CreateIncomeRequest{
		Date:          time.Now().UTC().Add(-time.Hour),
		Category:      domain.CategoryOtherIncome,
		PaymentMethod: domain.PaymentCash,
		Amount:        &amount,
		DiscountType:  &discountType,
		DiscountValue: &discountValue,
	}

	suite.mockBranchSvc.On("ResolveBranchID", ctx, suite.caller, mock.Anything).Return(suite.branchID, nil).Once()

	_, err := suite.service.CreateIncome(ctx, suite.caller, req)

	suite.Require().Error(err)
	suite.ErrorContains(err, services.ErrDiscountNotAllowed.Error())
}

func (suite *TransactionServiceTestSuite) TestCreateIncome_DiscountWithItemsRejected() {
	ctx := context.Background()
	discountType := domain.DiscountPercentage
	discountValue := decimal.NewFromInt(5)
	req := dto.CreateIncomeRequest{
		Date:          time.Now().UTC().Add(-time.Hour),
		Category:      domain.CategorySales,
		PaymentMethod: domain.PaymentCash,
		Items: []dto.LineItemInput{
			{InventoryItemID: uuid.NewString(), Quantity: decimal.NewFromInt(1), OperationType: domain.OperationConsumption},
		},
		DiscountType:  &discountType,
		DiscountValue: &discountValue,
	}

	suite.mockBranchSvc.On("ResolveBranchID", ctx, suite.caller, mock.Anything).Return(suite.branchID, nil).Once()

	_, err := suite.service.CreateIncome(ctx, suite.caller, req)

	suite.Require().Error(err)
	suite.ErrorContains(err, services.ErrDiscountWithItems.Error())
}

// --- Expense posting ---

func (suite *TransactionServiceTestSuite) TestCreateExpense_PartialPaymentSpawnsPayable() {
	ctx := context.Background()
	total := decimal.NewFromInt(1000)
	paid := decimal.NewFromInt(400)
	contactID := uuid.NewString()
	req := dto.CreateExpenseRequest{
		Date:       time.Now().UTC().Add(-time.Hour),
		Category:   domain.CategoryUtilities,
		Amount:     &total,
		PaidAmount: &paid,
		ContactID:  &contactID,
	}

	suite.expectHappyPathCollaborators(ctx)

	payable := &domain.AccountPayable{
		PayableID:       uuid.NewString(),
		BranchID:        suite.branchID,
		ContactID:       contactID,
		OriginalAmount:  decimal.NewFromInt(600),
		RemainingAmount: decimal.NewFromInt(600),
		Status:          domain.DebtActive,
	}
	suite.mockDebtSvc.On("PlanPartialPayment", ctx, mock.MatchedBy(func(p portssvc.PartialPaymentInput) bool {
		return p.TotalAmount.Equal(total) && p.PaidAmount != nil && p.PaidAmount.Equal(paid)
	})).Return(&portssvc.PaymentPlan{
		PaidAmount:      paid,
		RemainingAmount: decimal.NewFromInt(600),
		Payable:         payable,
	}, nil).Once()

	var saved domain.Posting
	suite.mockTxnRepo.On("SavePosting", ctx, mock.AnythingOfType("domain.Posting")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Posting) }).
		Return(nil).Once()

	txn, err := suite.service.CreateExpense(ctx, suite.caller, req)

	suite.Require().NoError(err)
	suite.True(txn.TotalAmount.Equal(total))
	suite.True(txn.PaidAmount.Equal(paid))
	suite.Require().NotNil(txn.LinkedPayableID)
	suite.Equal(payable.PayableID, *txn.LinkedPayableID)
	suite.Require().NotNil(saved.Payable)
	suite.True(saved.Payable.RemainingAmount.Equal(decimal.NewFromInt(600)))

	suite.mockDebtSvc.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateExpense_FullPaymentSpawnsNothing() {
	ctx := context.Background()
	total := decimal.NewFromInt(300)
	req := dto.CreateExpenseRequest{
		Date:     time.Now().UTC().Add(-time.Hour),
		Category: domain.CategoryRent,
		Amount:   &total,
	}

	suite.expectHappyPathCollaborators(ctx)

	suite.mockDebtSvc.On("PlanPartialPayment", ctx, mock.AnythingOfType("services.PartialPaymentInput")).
		Return(&portssvc.PaymentPlan{PaidAmount: total, RemainingAmount: decimal.Zero}, nil).Once()

	var saved domain.Posting
	suite.mockTxnRepo.On("SavePosting", ctx, mock.AnythingOfType("domain.Posting")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Posting) }).
		Return(nil).Once()

	txn, err := suite.service.CreateExpense(ctx, suite.caller, req)

	suite.Require().NoError(err)
	suite.True(txn.PaidAmount.Equal(total))
	suite.Nil(txn.LinkedPayableID)
	suite.Nil(saved.Payable)
}

func (suite *TransactionServiceTestSuite) TestCreateExpense_OptOutWithRemainderRejected() {
	ctx := context.Background()
	total := decimal.NewFromInt(1000)
	paid := decimal.NewFromInt(400)
	contactID := uuid.NewString()
	optOut := false
	req := dto.CreateExpenseRequest{
		Date:                   time.Now().UTC().Add(-time.Hour),
		Category:               domain.CategoryUtilities,
		Amount:                 &total,
		PaidAmount:             &paid,
		ContactID:              &contactID,
		CreateDebtForRemaining: &optOut,
	}

	suite.expectHappyPathCollaborators(ctx)

	suite.mockDebtSvc.On("PlanPartialPayment", ctx, mock.AnythingOfType("services.PartialPaymentInput")).
		Return(&portssvc.PaymentPlan{
			PaidAmount:      paid,
			RemainingAmount: decimal.NewFromInt(600),
			Payable:         &domain.AccountPayable{PayableID: uuid.NewString()},
		}, nil).Once()

	_, err := suite.service.CreateExpense(ctx, suite.caller, req)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.ErrorContains(err, services.ErrPayableOptOutRemainder.Error())
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SavePosting", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateExpense_SalaryRequiresEmployee() {
	ctx := context.Background()
	total := decimal.NewFromInt(5000)
	req := dto.CreateExpenseRequest{
		Date:     time.Now().UTC().Add(-time.Hour),
		Category: domain.CategoryEmployeeSalaries,
		Amount:   &total,
	}

	suite.mockBranchSvc.On("ResolveBranchID", ctx, suite.caller, mock.Anything).Return(suite.branchID, nil).Once()

	_, err := suite.service.CreateExpense(ctx, suite.caller, req)

	suite.Require().Error(err)
	suite.ErrorContains(err, services.ErrEmployeeRequired.Error())
}

func (suite *TransactionServiceTestSuite) TestCreateExpense_SalaryRejectsResignedEmployee() {
	ctx := context.Background()
	total := decimal.NewFromInt(5000)
	employeeID := uuid.NewString()
	req := dto.CreateExpenseRequest{
		Date:       time.Now().UTC().Add(-time.Hour),
		Category:   domain.CategoryEmployeeSalaries,
		Amount:     &total,
		EmployeeID: &employeeID,
	}

	suite.mockBranchSvc.On("ResolveBranchID", ctx, suite.caller, mock.Anything).Return(suite.branchID, nil).Once()
	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, employeeID).
		Return(&domain.Employee{EmployeeID: employeeID, Status: domain.EmployeeResigned}, nil).Once()

	_, err := suite.service.CreateExpense(ctx, suite.caller, req)

	suite.Require().Error(err)
	suite.ErrorContains(err, services.ErrEmployeeNotActive.Error())
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
}

// --- Read path and mutation guards ---

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_ForeignBranchHidden() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	foreignTxn := &domain.Transaction{TransactionID: transactionID, BranchID: uuid.NewString()}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(foreignTxn, nil).Once()

	txn, err := suite.service.GetTransactionByID(ctx, suite.caller, transactionID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_LinkedIsImmutable() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	payableID := uuid.NewString()
	notes := "new notes"
	linked := &domain.Transaction{
		TransactionID:   transactionID,
		BranchID:        suite.branchID,
		LinkedPayableID: &payableID,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(linked, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, suite.caller, transactionID, dto.UpdateTransactionRequest{Notes: &notes})

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrConflict))
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_Success() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	notes := "corrected supplier name"
	existing := &domain.Transaction{TransactionID: transactionID, BranchID: suite.branchID}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Notes == notes && t.LastUpdatedBy == suite.caller.UserID
	})).Return(nil).Once()

	txn, err := suite.service.UpdateTransaction(ctx, suite.caller, transactionID, dto.UpdateTransactionRequest{Notes: &notes})

	suite.Require().NoError(err)
	suite.Equal(notes, txn.Notes)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NoFieldsIsNoOp() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	existing := &domain.Transaction{TransactionID: transactionID, BranchID: suite.branchID, Notes: "unchanged"}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(existing, nil).Once()

	txn, err := suite.service.UpdateTransaction(ctx, suite.caller, transactionID, dto.UpdateTransactionRequest{})

	suite.Require().NoError(err)
	suite.Equal("unchanged", txn.Notes)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_LinkedIsImmutable() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	receivableID := uuid.NewString()
	linked := &domain.Transaction{
		TransactionID:      transactionID,
		BranchID:           suite.branchID,
		LinkedReceivableID: &receivableID,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(linked, nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.caller, transactionID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrConflict))
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SoftDeleteTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_Success() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	existing := &domain.Transaction{TransactionID: transactionID, BranchID: suite.branchID}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(existing, nil).Once()
	suite.mockTxnRepo.On("SoftDeleteTransaction", ctx, transactionID, suite.caller.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.caller, transactionID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_AppliesBranchScope() {
	ctx := context.Background()
	suite.mockBranchSvc.On("EffectiveBranchFilter", ctx, suite.caller, mock.Anything).Return(suite.branchID, nil).Once()

	suite.mockTxnRepo.On("ListTransactions", ctx, mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
		return f.BranchID != nil && *f.BranchID == suite.branchID && f.Limit == 20
	})).Return([]domain.Transaction{{TransactionID: uuid.NewString(), BranchID: suite.branchID}}, nil, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, suite.caller, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.Nil(resp.NextToken)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
