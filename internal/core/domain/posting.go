package domain

// Posting is the full set of writes produced by one income/expense creation.
// The persistence layer commits everything here in a single database
// transaction: all of it lands or none of it does.
type Posting struct {
	Transaction Transaction
	LineItems   []TransactionLineItem
	Mutations   []InventoryMutation
	Movements   []InventoryMovement
	Payable     *AccountPayable
	Receivable  *AccountReceivable
}
