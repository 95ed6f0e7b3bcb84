package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind says which side of the ledger a transaction sits on.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Category labels with fixed meaning. Expense transactions start
// Uncategorized and may be relabeled by the categorizer; income transactions
// are labeled Income at normalization time and never re-categorized.
const (
	CategoryUncategorized = "Uncategorized"
	CategoryIncome        = "Income"
)

// Categories is the closed vocabulary the categorizer may assign to an
// expense transaction.
var Categories = []string{
	"Food",
	"Transport",
	"Utilities",
	"Shopping",
	"Entertainment",
	"Health",
	"Transfer",
	"Housing",
	"Salary",
	"Investment",
	"Other",
}

// Transaction is the unit of record. Amount is always a positive magnitude;
// Kind carries the sign. Only Category is revisable after creation.
type Transaction struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"-"`
	Kind        Kind      `json:"kind"`
}

// MarshalJSON renders Date in its canonical YYYY-MM-DD form.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias(t), t.DateString()})
}

// DateString renders the transaction date in its canonical YYYY-MM-DD form.
func (t *Transaction) DateString() string {
	return t.Date.Format("2006-01-02")
}

// DedupeKey identifies a transaction for duplicate detection across repeated
// statement uploads: same day, narration, magnitude and side.
func (t *Transaction) DedupeKey() string {
	return fmt.Sprintf("%s\x00%s\x00%s\x00%.2f", t.DateString(), t.Description, t.Kind, t.Amount)
}
