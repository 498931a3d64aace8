package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/blog-platform-api/internal/models"
	"github.com/hashicorp/go-multierror"
	"github.com/lib/pq"
)

const pqForeignKeyViolation = "23503"

// syncPostCategories makes the post_categories rows for postID exactly match
// categoryIDs: every existing link is deleted and the de-duplicated set is
// inserted. It must run inside the transaction that wrote the post row.
func syncPostCategories(ctx context.Context, q querier, postID int64, categoryIDs []int64) error {
	ids := models.UniqueIDs(categoryIDs)

	if err := ensureCategoriesExist(ctx, q, ids); err != nil {
		return err
	}

	if _, err := q.ExecContext(ctx, "DELETE FROM post_categories WHERE post_id = $1", postID); err != nil {
		return fmt.Errorf("failed to clear category links: %w", err)
	}

	if len(ids) == 0 {
		return nil
	}

	query := `
		INSERT INTO post_categories (post_id, category_id)
		SELECT $1, unnest($2::bigint[])
	`
	if _, err := q.ExecContext(ctx, query, postID, pq.Array(ids)); err != nil {
		if isForeignKeyViolation(err) {
			// A category vanished between the check and the insert
			return multierror.Append(nil, &models.ValidationError{
				Field:   "categories",
				Message: "category does not exist",
				Value:   foreignKeyDetail(err),
			})
		}
		return fmt.Errorf("failed to insert category links: %w", err)
	}

	return nil
}

// ensureCategoriesExist share-locks the referenced categories and reports every
// missing id in one aggregate error.
func ensureCategoriesExist(ctx context.Context, q querier, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	rows, err := q.QueryContext(ctx, "SELECT id FROM categories WHERE id = ANY($1) FOR SHARE", pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to look up categories: %w", err)
	}
	defer rows.Close()

	found := make(map[int64]bool, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var result *multierror.Error
	for _, id := range ids {
		if !found[id] {
			result = multierror.Append(result, models.UnknownCategoryError(id))
		}
	}
	return result.ErrorOrNil()
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}

func foreignKeyDetail(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Detail
	}
	return ""
}
