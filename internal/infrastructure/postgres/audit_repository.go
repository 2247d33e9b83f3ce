package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación de AuditRepository sobre PostgreSQL.
type AuditRepo struct {
	q Querier
}

func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Insert agrega una entrada al log. Details se serializa como JSONB.
func (r *AuditRepo) Insert(entry *entity.AuditEntry) error {
	var details []byte
	if entry.Details != nil {
		b, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("marshal audit details: %w", err)
		}
		details = b
	}
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO audit_log (id, user_id, action, entity_type, entity_id, details, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())`,
		entry.ID, nullable(entry.UserID), entry.Action, entry.EntityType,
		nullable(entry.EntityID), details)
	if err != nil {
		return wrapErr("insert audit entry", err)
	}
	return nil
}

// List devuelve las entradas más recientes, hasta limit.
func (r *AuditRepo) List(limit int) ([]*entity.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT id, user_id, action, entity_type, entity_id, details, created_at
		 FROM audit_log ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, wrapErr("list audit entries", err)
	}
	defer rows.Close()
	var list []*entity.AuditEntry
	for rows.Next() {
		var (
			e        entity.AuditEntry
			userID   *string
			entityID *string
			details  []byte
		)
		if err := rows.Scan(&e.ID, &userID, &e.Action, &e.EntityType, &entityID, &details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if userID != nil {
			e.UserID = *userID
		}
		if entityID != nil {
			e.EntityID = *entityID
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, fmt.Errorf("unmarshal audit details: %w", err)
			}
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
