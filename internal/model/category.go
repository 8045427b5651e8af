package model

import "fmt"

// Category is one of the value types whose fromString factories are tracked
type Category string

const (
	CategoryAmount                 Category = "Amount"
	CategoryEmail                  Category = "Email"
	CategoryGoals                  Category = "Goals"
	CategoryIncomeDescription      Category = "IncomeDescription"
	CategoryTransactionDescription Category = "TransactionDescription"
	CategoryWalletNames            Category = "WalletNames"
)

// Categories returns the fixed category set in declaration order
func Categories() []Category {
	return []Category{
		CategoryAmount,
		CategoryEmail,
		CategoryGoals,
		CategoryIncomeDescription,
		CategoryTransactionDescription,
		CategoryWalletNames,
	}
}

// ParseCategory maps a type name to its Category
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", name)
}

// IsNumeric reports whether values of the category are compared as numbers
func (c Category) IsNumeric() bool {
	return c == CategoryAmount
}

// Usage is a point where a declared name is passed to a category factory
type Usage struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
}
