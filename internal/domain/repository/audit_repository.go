package repository

import "github.com/jhoicas/Inventario-patio/internal/domain/entity"

// AuditRepository puerto del log de auditoría global (append-only).
type AuditRepository interface {
	Insert(entry *entity.AuditEntry) error
	List(limit int) ([]*entity.AuditEntry, error)
}
