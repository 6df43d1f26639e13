package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/household-ledger/internal/domain/category"
	"github.com/household-ledger/internal/domain/session"
	"github.com/jackc/pgx/v5"
)

// CategoryService edits the category tree below the session root
type CategoryService struct {
	db     Transactor
	repos  Repositories
	logger *slog.Logger
}

// NewCategoryService creates a new category tree service
func NewCategoryService(logger *slog.Logger, db Transactor, repos Repositories) *CategoryService {
	return &CategoryService{db: db, repos: repos, logger: logger}
}

// Tree returns the root with all descendants nested in position order
func (s *CategoryService) Tree(ctx context.Context, sess *session.Session) (*category.Node, error) {
	all, err := s.repos.Categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildTree(all, sess.RootCategoryID)
}

// List flattens the tree depth first. The root itself is left out and its
// children are at level 0.
func (s *CategoryService) List(ctx context.Context, sess *session.Session) ([]category.Leveled, error) {
	root, err := s.Tree(ctx, sess)
	if err != nil {
		return nil, err
	}

	out := []category.Leveled{}
	var walk func(n *category.Node, level int)
	walk = func(n *category.Node, level int) {
		for pos, child := range n.Children {
			out = append(out, category.Leveled{
				Category: category.Category{
					ID:       child.ID,
					Name:     child.Name,
					Type:     child.Type,
					ParentID: child.ParentID,
					Position: pos,
				},
				Level: level,
			})
			walk(child, level+1)
		}
	}
	walk(root, 0)
	return out, nil
}

// Save writes name, type, parent and position of every node in the submitted
// tree. Categories missing from the tree are left as they are.
func (s *CategoryService) Save(ctx context.Context, sess *session.Session, root *category.Node) error {
	if root == nil || root.ID != sess.RootCategoryID {
		return fmt.Errorf("%w: top node must be the root category", category.ErrInvalidTree)
	}

	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		r := s.repos.withTx(tx)
		seen := map[int64]bool{}

		var save func(n *category.Node, parentID *int64, position int) error
		save = func(n *category.Node, parentID *int64, position int) error {
			if seen[n.ID] {
				return fmt.Errorf("%w: category %d appears twice", category.ErrInvalidTree, n.ID)
			}
			seen[n.ID] = true

			c, err := r.Categories.GetByID(ctx, n.ID)
			if err != nil {
				return err
			}
			n.MapTo(c)
			if c.ID == sess.SplitCategoryID {
				c.Type = category.TypeSplit
			} else if c.Type == category.TypeSplit {
				c.Type = category.TypeNormal
			}
			if c.Name == "" {
				return fmt.Errorf("%w: category %d has no name", category.ErrInvalidTree, n.ID)
			}
			c.ParentID = parentID
			c.Position = position
			if err := r.Categories.Update(ctx, c); err != nil {
				return err
			}

			id := c.ID
			for pos, child := range n.Children {
				if child == nil {
					return fmt.Errorf("%w: empty child of category %d", category.ErrInvalidTree, id)
				}
				if err := save(child, &id, pos); err != nil {
					return err
				}
			}
			return nil
		}

		return save(root, nil, 0)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Category tree saved", "root_id", root.ID)
	return nil
}

// Create appends a new category below node.ParentID, or below the root when
// no parent is given
func (s *CategoryService) Create(ctx context.Context, sess *session.Session, node *category.Node) (int64, error) {
	parentID := sess.RootCategoryID
	if node.ParentID != nil {
		parentID = *node.ParentID
	}

	c, err := category.NewCategory(node.Name, category.TypeNormal, &parentID)
	if err != nil {
		return 0, err
	}

	err = s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		r := s.repos.withTx(tx)

		if _, err := r.Categories.GetByID(ctx, parentID); err != nil {
			return err
		}
		if c.Position, err = r.Categories.NextPosition(ctx, parentID); err != nil {
			return err
		}
		return r.Categories.Create(ctx, c)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Category created", "category_id", c.ID, "parent_id", parentID)
	return c.ID, nil
}

// Delete removes the category and its descendants. Entries booked on any of
// them keep existing without category.
func (s *CategoryService) Delete(ctx context.Context, sess *session.Session, id int64) error {
	if id == sess.RootCategoryID || id == sess.SplitCategoryID {
		return category.ErrReservedCategory
	}

	var cleared int64
	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		r := s.repos.withTx(tx)

		if _, err := r.Categories.GetByID(ctx, id); err != nil {
			return err
		}

		all, err := r.Categories.GetAll(ctx)
		if err != nil {
			return err
		}
		doomed := subtree(all, id)
		for _, cid := range doomed {
			if cid == sess.RootCategoryID || cid == sess.SplitCategoryID {
				return category.ErrReservedCategory
			}
		}

		// Children first so no row is left pointing at a removed parent
		for i := len(doomed) - 1; i >= 0; i-- {
			n, err := r.Entries.ClearCategory(ctx, doomed[i])
			if err != nil {
				return err
			}
			cleared += n
			if err := r.Categories.Delete(ctx, doomed[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Category deleted", "category_id", id, "cleared_entries", cleared)
	return nil
}

// Root returns the root category of the session
func (s *CategoryService) Root(ctx context.Context, sess *session.Session) (*category.Category, error) {
	return s.repos.Categories.GetByID(ctx, sess.RootCategoryID)
}

// Split returns the split marker category of the session
func (s *CategoryService) Split(ctx context.Context, sess *session.Session) (*category.Category, error) {
	return s.repos.Categories.GetByID(ctx, sess.SplitCategoryID)
}

func buildTree(all []*category.Category, rootID int64) (*category.Node, error) {
	nodes := make(map[int64]*category.Node, len(all))
	for _, c := range all {
		nodes[c.ID] = category.NewNode(c)
	}

	// all is ordered by parent and position, so children arrive in order
	for _, c := range all {
		if c.ParentID == nil {
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok {
			parent.Children = append(parent.Children, nodes[c.ID])
		}
	}

	root, ok := nodes[rootID]
	if !ok {
		return nil, category.ErrCategoryNotFound{CategoryID: rootID}
	}
	return root, nil
}

// subtree lists id and all its descendants, parents before children
func subtree(all []*category.Category, id int64) []int64 {
	children := map[int64][]int64{}
	for _, c := range all {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	out := []int64{id}
	for i := 0; i < len(out); i++ {
		out = append(out, children[out[i]]...)
	}
	return out
}
