package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/ufind/internal/common"
	"github.com/dmitrijs2005/ufind/internal/dbx"
	"github.com/dmitrijs2005/ufind/internal/server/models"
)

const itemColumns = `id, title, description, date_found, location_found, status, image_url, contact_info, created_at, updated_at`

// sortColumns whitelists the columns a listing can be ordered by.
var sortColumns = map[string]string{
	"title":      "title",
	"date_found": "date_found",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"status":     "status",
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) error {

	query :=
		`INSERT INTO items (` + itemColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 `

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Title, item.Description, item.DateFound, item.LocationFound,
		string(item.Status), item.ImageURL, item.ContactInfo, item.CreatedAt, item.UpdatedAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) List(ctx context.Context, page models.PageRequest) (*models.Page, error) {
	return r.selectPage(ctx, "", nil, page)
}

func (r *PostgresRepository) Search(ctx context.Context, query string, status *models.ItemStatus, page models.PageRequest) (*models.Page, error) {
	where := `WHERE (title ILIKE $1 OR description ILIKE $1 OR location_found ILIKE $1)`
	args := []any{"%" + escapeLike(query) + "%"}

	if status != nil {
		where += ` AND status = $2`
		args = append(args, string(*status))
	}

	return r.selectPage(ctx, where, args, page)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.ItemStatus, updatedAt time.Time) error {
	query := `UPDATE items SET status = $2, updated_at = $3 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func (r *PostgresRepository) SetImage(ctx context.Context, id string, imageURL string, updatedAt time.Time) error {
	query := `UPDATE items SET image_url = $2, updated_at = $3 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, imageURL, updatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

// selectPage counts the rows matching where and loads the requested page.
// Placeholders for LIMIT and OFFSET follow the ones used by args.
func (r *PostgresRepository) selectPage(ctx context.Context, where string, args []any, page models.PageRequest) (*models.Page, error) {
	var total int64
	countQuery := strings.TrimSpace(`SELECT COUNT(*) FROM items ` + where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	result := &models.Page{Items: []*models.Item{}, Number: page.Number, Size: page.Size, TotalElements: total}
	// The page exists only while Number*Size < total; comparing against
	// the last page index keeps huge page numbers from overflowing OFFSET.
	if total == 0 || page.Number < 0 || page.Size <= 0 || int64(page.Number) > (total-1)/int64(page.Size) {
		return result, nil
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM items %s ORDER BY %s, id LIMIT $%d OFFSET $%d`,
		itemColumns, where, orderBy(page), n+1, n+2)
	args = append(args, page.Size, page.Number*page.Size)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result.Items = append(result.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	item := &models.Item{}
	var status string
	err := row.Scan(&item.ID, &item.Title, &item.Description, &item.DateFound, &item.LocationFound,
		&status, &item.ImageURL, &item.ContactInfo, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Status = models.ItemStatus(status)
	return item, nil
}

func orderBy(page models.PageRequest) string {
	col, ok := sortColumns[page.Sort]
	if !ok {
		col = "created_at"
	}
	if page.Desc {
		return col + " DESC"
	}
	return col + " ASC"
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// escapeLike makes LIKE wildcards in s match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
