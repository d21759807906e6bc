package postgres

import (
	"context"

	"github.com/aqtareen/Taqreeb/internal/domain/vendors"
	"github.com/jackc/pgx/v5"
)

var _ vendors.Repository = (*VendorRepository)(nil)

type VendorRepository struct {
	executor
}

func (r *VendorRepository) List(ctx context.Context) ([]vendors.Vendor, error) {
	var out []vendors.Vendor
	err := r.run(ctx, "list_vendors", func(ctx context.Context, q Querier) error {
		rows, err := q.Query(ctx, `SELECT vendor_id, vendor_name FROM vendors ORDER BY vendor_name, vendor_id`)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, pgx.RowToStructByPos[vendors.Vendor])
		return err
	})
	return out, err
}

func (r *VendorRepository) Get(ctx context.Context, id int64) (vendors.Vendor, error) {
	var v vendors.Vendor
	err := r.run(ctx, "get_vendor", func(ctx context.Context, q Querier) error {
		return q.QueryRow(ctx, `SELECT vendor_id, vendor_name FROM vendors WHERE vendor_id = $1`, id).Scan(&v.ID, &v.Name)
	})
	if err != nil {
		return vendors.Vendor{}, notFound(err, vendors.ErrNotFound)
	}
	return v, nil
}

func (r *VendorRepository) Create(ctx context.Context, name string) (vendors.Vendor, error) {
	v := vendors.Vendor{Name: name}
	err := r.run(ctx, "insert_vendor", func(ctx context.Context, q Querier) error {
		return q.QueryRow(ctx, `INSERT INTO vendors (vendor_name) VALUES ($1) RETURNING vendor_id`, name).Scan(&v.ID)
	})
	if err != nil {
		return vendors.Vendor{}, err
	}
	return v, nil
}

func (r *VendorRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "delete_vendor", `DELETE FROM vendors WHERE vendor_id = $1`, id, vendors.ErrNotFound)
}

func (r *VendorRepository) ListItems(ctx context.Context, vendorID int64) ([]vendors.Item, error) {
	out := []vendors.Item{}
	err := r.run(ctx, "list_vendor_items", func(ctx context.Context, q Querier) error {
		rows, err := q.Query(ctx, `
SELECT i.item_id, i.item_name
  FROM items i
  JOIN vendor_items vi ON i.item_id = vi.item_id
 WHERE vi.vendor_id = $1
 ORDER BY i.item_id`, vendorID)
		if err != nil {
			return err
		}
		items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[vendors.Item])
		if err != nil {
			return err
		}
		out = append(out, items...)
		return nil
	})
	return out, err
}

// AddItem upserts the item by name and links it in one statement, so a
// missing vendor leaves no orphan item behind.
func (r *VendorRepository) AddItem(ctx context.Context, vendorID int64, itemName string) (vendors.Item, error) {
	var item vendors.Item
	err := r.run(ctx, "add_vendor_item", func(ctx context.Context, q Querier) error {
		return q.QueryRow(ctx, `
WITH item AS (
    INSERT INTO items (item_name) VALUES ($2)
    ON CONFLICT (item_name) DO UPDATE SET item_name = EXCLUDED.item_name
    RETURNING item_id, item_name
), link AS (
    INSERT INTO vendor_items (vendor_id, item_id)
    SELECT $1::integer, item_id FROM item
    ON CONFLICT DO NOTHING
)
SELECT item_id, item_name FROM item`, vendorID, itemName).Scan(&item.ID, &item.Name)
	})
	if isForeignKeyViolation(err) {
		return vendors.Item{}, vendors.ErrNotFound
	}
	if err != nil {
		return vendors.Item{}, err
	}
	return item, nil
}

func (r *VendorRepository) RemoveItem(ctx context.Context, vendorID, itemID int64) error {
	err := r.run(ctx, "remove_vendor_item", func(ctx context.Context, q Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM vendor_items WHERE vendor_id = $1 AND item_id = $2`, vendorID, itemID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	return notFound(err, vendors.ErrItemNotFound)
}
