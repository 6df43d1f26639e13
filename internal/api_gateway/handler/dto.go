package handler

// DateLayout is the wire format of entry dates
const DateLayout = "2006-01-02"

// CreateAccountRequest represents a request to create a new account
type CreateAccountRequest struct {
	Name         string `json:"name" binding:"required"`
	StartBalance int64  `json:"start_balance"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	StartBalance int64  `json:"start_balance"`
	CreatedAt    string `json:"created_at"`
}

// EntryRequest represents a request to create or update an entry.
// CategoryID may name a category, the split category or another account.
type EntryRequest struct {
	AccountID   int64             `json:"account_id" binding:"required,gt=0"`
	CategoryID  *int64            `json:"category_id"`
	Date        string            `json:"date"`
	Amount      int64             `json:"amount"`
	Description string            `json:"description"`
	Memo        string            `json:"memo"`
	Status      string            `json:"status" binding:"omitempty,oneof=RECONCILING CLEARED RECONCILED"`
	SubEntries  []SubEntryRequest `json:"sub_entries" binding:"dive"`
}

// SubEntryRequest is one categorized part of a split entry
type SubEntryRequest struct {
	CategoryID  *int64 `json:"category_id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Memo        string `json:"memo"`
}

// ImportEntryRequest represents a request to book an entry asynchronously.
// Resubmitting with the same import_id books the entry once.
type ImportEntryRequest struct {
	ImportID    string            `json:"import_id" binding:"omitempty,uuid"`
	CategoryID  *int64            `json:"category_id"`
	Date        string            `json:"date"`
	Amount      int64             `json:"amount"`
	Description string            `json:"description"`
	Memo        string            `json:"memo"`
	SubEntries  []SubEntryRequest `json:"sub_entries" binding:"dive"`
}

// EntryResponse represents an entry in API responses
type EntryResponse struct {
	ID           int64           `json:"id"`
	AccountID    int64           `json:"account_id"`
	CategoryID   *int64          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Date         string          `json:"date,omitempty"`
	CreatedAt    string          `json:"created_at"`
	Amount       int64           `json:"amount"`
	Description  string          `json:"description,omitempty"`
	Memo         string          `json:"memo,omitempty"`
	Status       string          `json:"status,omitempty"`
	OtherID      *int64          `json:"other_id,omitempty"`
	SplitEntryID *int64          `json:"split_entry_id,omitempty"`
	Balance      *int64          `json:"balance,omitempty"`
	SubEntries   []EntryResponse `json:"sub_entries,omitempty"`
}

// EntryListParams represents the query of an account's entry listing
type EntryListParams struct {
	Page   *int   `form:"page"`
	Filter string `form:"filter"`
}

// CountResponse carries the number of entries of an account
type CountResponse struct {
	Count int64 `json:"count"`
}

// CategoryNode is a category with nested children, used to read and save trees
type CategoryNode struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Type     string         `json:"type,omitempty" binding:"omitempty,oneof=NORMAL SPLIT"`
	ParentID *int64         `json:"parent_id,omitempty"`
	Children []CategoryNode `json:"children" binding:"dive"`
}

// CreateCategoryRequest represents a request to create a new category.
// Without parent_id the category is placed below the root.
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *int64 `json:"parent_id" binding:"omitempty,gt=0"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID *int64 `json:"parent_id,omitempty"`
	Position int    `json:"position"`
	Level    *int   `json:"level,omitempty"`
}

// SessionResponse represents the ledger session in API responses
type SessionResponse struct {
	RootCategoryID  int64 `json:"root_category_id"`
	SplitCategoryID int64 `json:"split_category_id"`
	Created         bool  `json:"created"`
}

// IDResponse carries the identifier of a created resource
type IDResponse struct {
	ID int64 `json:"id"`
}
