package category

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrInvalidTree is returned when a submitted tree cannot be applied
	ErrInvalidTree = errors.New("invalid category tree")

	// ErrReservedCategory is returned when a singleton category would be removed
	ErrReservedCategory = errors.New("root and split categories cannot be deleted")
)

// Repository defines category persistence operations. Only rows of
// KindCategory are visible through it.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id int64) (*Category, error)
	GetAll(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id int64) error

	// NextPosition returns the position after the last child of parentID
	NextPosition(ctx context.Context, parentID int64) (int, error)

	// KindOf returns the kind of the row with the given id, including accounts
	KindOf(ctx context.Context, id int64) (Kind, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrCategoryNotFound indicates missing category
type ErrCategoryNotFound struct {
	CategoryID int64
}

func (e ErrCategoryNotFound) Error() string {
	return "category not found: " + strconv.FormatInt(e.CategoryID, 10)
}

// Is implements the errors.Is interface for ErrCategoryNotFound
func (e ErrCategoryNotFound) Is(target error) bool {
	t, ok := target.(ErrCategoryNotFound)
	if !ok {
		return false
	}
	// A zero target id matches any ErrCategoryNotFound
	if t.CategoryID == 0 {
		return true
	}
	return e.CategoryID == t.CategoryID
}
