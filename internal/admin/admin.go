// Package admin is the back-office CRUD surface. One engine serves all
// managed tables through per-resource descriptors instead of a handler
// set per table.
package admin

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/antonskv/shop_backend/internal/apperr"
	"github.com/antonskv/shop_backend/internal/hash"
	"github.com/antonskv/shop_backend/internal/repo"
)

// Resource describes one managed table: its route segment, the backing
// table and the writable column whitelist. Anything outside Fields is
// rejected, never silently dropped. ReadOnly resources serve list/get
// only.
type Resource struct {
	Name     string
	Table    string
	Fields   []string
	ReadOnly bool
}

var resources = map[string]Resource{
	"users": {
		Name:   "users",
		Table:  "users",
		Fields: []string{"username", "email", "password", "role"},
	},
	"products": {
		Name:   "products",
		Table:  "products",
		Fields: []string{"name", "description", "price", "last_price", "firm_name", "sold_quantity", "manufacturing_year"},
	},
	"reviews": {
		Name:   "reviews",
		Table:  "reviews",
		Fields: []string{"product_id", "user_id", "comment"},
	},
	"ratings": {
		Name:   "ratings",
		Table:  "ratings",
		Fields: []string{"product_id", "user_id", "rating"},
	},
	"favorites": {
		Name:   "favorites",
		Table:  "favorites",
		Fields: []string{"user_id", "product_id"},
	},
	"cart": {
		Name:   "cart",
		Table:  "cart_items",
		Fields: []string{"user_id", "product_id", "quantity"},
	},
	"delivery": {
		Name:   "delivery",
		Table:  "delivery_orders",
		Fields: []string{"user_id", "product_id", "count", "date", "time", "status"},
	},
	// Photo blobs are written through the product endpoints; the back
	// office only inspects them.
	"photos": {
		Name:     "photos",
		Table:    "photos",
		ReadOnly: true,
	},
}

// Lookup resolves a route segment to its descriptor.
func Lookup(name string) (Resource, bool) {
	r, ok := resources[name]
	return r, ok
}

// Names lists the managed resources in stable order.
func Names() []string {
	out := make([]string, 0, len(resources))
	for name := range resources {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type Engine struct {
	DB *gorm.DB
}

func (r Resource) allowed(field string) bool {
	for _, f := range r.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// filter keeps only whitelisted keys and rewrites plaintext passwords
// into the stored hash column.
func (r Resource) filter(payload map[string]any) (map[string]any, error) {
	row := make(map[string]any, len(payload))
	for key, val := range payload {
		if !r.allowed(key) {
			return nil, apperr.Validation("INVALID_DATA", "Недопустимое поле: %s", key)
		}
		if r.Name == "users" && key == "password" {
			raw, ok := val.(string)
			if !ok || raw == "" {
				return nil, apperr.Validation("INVALID_DATA", "Недопустимое значение поля password")
			}
			hashed, err := hash.HashPassword(raw)
			if err != nil {
				return nil, err
			}
			row["password_hash"] = hashed
			continue
		}
		row[key] = val
	}
	if len(row) == 0 {
		return nil, apperr.Validation("INVALID_DATA", "Не переданы данные для записи")
	}
	return row, nil
}

func (e *Engine) List(ctx context.Context, res Resource) ([]map[string]any, error) {
	var rows []map[string]any
	err := e.DB.WithContext(ctx).Table(res.Table).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	scrub(res, rows)
	return rows, nil
}

func (e *Engine) Get(ctx context.Context, res Resource, id uint) (map[string]any, error) {
	var row map[string]any
	err := e.DB.WithContext(ctx).Table(res.Table).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, apperr.NotFound("NOT_FOUND", "Запись не найдена")
		}
		return nil, err
	}
	scrub(res, []map[string]any{row})
	return row, nil
}

func (e *Engine) Create(ctx context.Context, res Resource, payload map[string]any) (map[string]any, error) {
	if res.ReadOnly {
		return nil, apperr.Validation("INVALID_DATA", "Ресурс %s доступен только для чтения", res.Name)
	}
	row, err := res.filter(payload)
	if err != nil {
		return nil, err
	}
	if err := e.DB.WithContext(ctx).Table(res.Table).Create(row).Error; err != nil {
		if repo.IsDuplicate(err) {
			return nil, apperr.Conflict("DUPLICATE_ENTRY", "Запись уже существует")
		}
		return nil, err
	}

	// gorm backfills the generated id into the map on insert.
	if id, ok := rowID(row); ok {
		return e.Get(ctx, res, id)
	}
	scrub(res, []map[string]any{row})
	return row, nil
}

func (e *Engine) Update(ctx context.Context, res Resource, id uint, payload map[string]any) (map[string]any, error) {
	if res.ReadOnly {
		return nil, apperr.Validation("INVALID_DATA", "Ресурс %s доступен только для чтения", res.Name)
	}
	row, err := res.filter(payload)
	if err != nil {
		return nil, err
	}

	result := e.DB.WithContext(ctx).Table(res.Table).Where("id = ?", id).Updates(row)
	if result.Error != nil {
		if repo.IsDuplicate(result.Error) {
			return nil, apperr.Conflict("DUPLICATE_ENTRY", "Запись уже существует")
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("NOT_FOUND", "Запись не найдена")
	}
	return e.Get(ctx, res, id)
}

// Delete issues the statement directly; table names come from the fixed
// descriptor set, never from the request.
func (e *Engine) Delete(ctx context.Context, res Resource, id uint) error {
	if res.ReadOnly {
		return apperr.Validation("INVALID_DATA", "Ресурс %s доступен только для чтения", res.Name)
	}
	result := e.DB.WithContext(ctx).Exec("DELETE FROM "+res.Table+" WHERE id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("NOT_FOUND", "Запись не найдена")
	}
	return nil
}

// scrub removes stored credentials from user rows before they leave the
// engine.
func scrub(res Resource, rows []map[string]any) {
	if res.Name != "users" {
		return
	}
	for _, row := range rows {
		delete(row, "password_hash")
	}
}

func rowID(row map[string]any) (uint, bool) {
	switch v := row["id"].(type) {
	case uint:
		return v, true
	case uint64:
		return uint(v), true
	case int64:
		if v > 0 {
			return uint(v), true
		}
	case int:
		if v > 0 {
			return uint(v), true
		}
	}
	return 0, false
}
