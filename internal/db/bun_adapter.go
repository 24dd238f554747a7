// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"sort"
	"time"

	"github.com/toeirei/srvinv/internal/model"
	"github.com/uptrace/bun"
)

// AdminModel maps the `admin` table for Bun queries.
type AdminModel struct {
	bun.BaseModel `bun:"table:admin"`
	ID            int    `bun:"id,pk,autoincrement"`
	Name          string `bun:"name"`
}

// IPModel maps the `ip` table.
type IPModel struct {
	bun.BaseModel `bun:"table:ip"`
	ID            int    `bun:"id,pk,autoincrement"`
	Address       string `bun:"address"`
}

// TagModel maps the `tag` table.
type TagModel struct {
	bun.BaseModel `bun:"table:tag"`
	ID            int    `bun:"id,pk,autoincrement"`
	Name          string `bun:"name"`
}

// ServerStatusModel maps the `server_status` table.
type ServerStatusModel struct {
	bun.BaseModel `bun:"table:server_status"`
	ID            int    `bun:"id,pk,autoincrement"`
	Name          string `bun:"name"`
}

// ServerTypeModel maps the `server_type` table.
type ServerTypeModel struct {
	bun.BaseModel `bun:"table:server_type"`
	ID            int    `bun:"id,pk,autoincrement"`
	Name          string `bun:"name"`
}

// ServerModel maps the `server` table together with its relations. The
// relation fields are only populated by selects that request them.
type ServerModel struct {
	bun.BaseModel `bun:"table:server"`
	ID            int                `bun:"id,pk,autoincrement"`
	Name          string             `bun:"name"`
	Description   sql.NullString     `bun:"description"`
	StatusID      int                `bun:"status_id"`
	Status        *ServerStatusModel `bun:"rel:belongs-to,join:status_id=id"`
	TypeID        int                `bun:"type_id"`
	Type          *ServerTypeModel   `bun:"rel:belongs-to,join:type_id=id"`
	IPs           []IPModel          `bun:"m2m:server_ip,join:Server=IP"`
	Tags          []TagModel         `bun:"m2m:server_tag,join:Server=Tag"`
	Admins        []AdminModel       `bun:"m2m:server_admin,join:Server=Admin"`
}

// ServerIPModel maps the `server_ip` association table.
type ServerIPModel struct {
	bun.BaseModel `bun:"table:server_ip"`
	ServerID      int          `bun:"server_id,pk"`
	Server        *ServerModel `bun:"rel:belongs-to,join:server_id=id"`
	IPID          int          `bun:"ip_id,pk"`
	IP            *IPModel     `bun:"rel:belongs-to,join:ip_id=id"`
}

// ServerTagModel maps the `server_tag` association table.
type ServerTagModel struct {
	bun.BaseModel `bun:"table:server_tag"`
	ServerID      int          `bun:"server_id,pk"`
	Server        *ServerModel `bun:"rel:belongs-to,join:server_id=id"`
	TagID         int          `bun:"tag_id,pk"`
	Tag           *TagModel    `bun:"rel:belongs-to,join:tag_id=id"`
}

// ServerAdminModel maps the `server_admin` association table.
type ServerAdminModel struct {
	bun.BaseModel `bun:"table:server_admin"`
	ServerID      int          `bun:"server_id,pk"`
	Server        *ServerModel `bun:"rel:belongs-to,join:server_id=id"`
	AdminID       int          `bun:"admin_id,pk"`
	Admin         *AdminModel  `bun:"rel:belongs-to,join:admin_id=id"`
}

// AuditLogModel maps the audit_log table.
type AuditLogModel struct {
	bun.BaseModel `bun:"table:audit_log"`
	ID            int       `bun:"id,pk,autoincrement"`
	Timestamp     time.Time `bun:"timestamp"`
	Username      string    `bun:"username"`
	Action        string    `bun:"action"`
	Details       string    `bun:"details"`
}

// Mapping helpers. The model package stays free of bun tags.

func adminModelToModel(m AdminModel) model.Admin { return model.Admin{ID: m.ID, Name: m.Name} }
func adminToModel(a model.Admin) AdminModel     { return AdminModel{ID: a.ID, Name: a.Name} }

func ipModelToModel(m IPModel) model.IP { return model.IP{ID: m.ID, Address: m.Address} }
func ipToModel(i model.IP) IPModel     { return IPModel{ID: i.ID, Address: i.Address} }

func tagModelToModel(m TagModel) model.Tag { return model.Tag{ID: m.ID, Name: m.Name} }
func tagToModel(t model.Tag) TagModel     { return TagModel{ID: t.ID, Name: t.Name} }

func statusModelToModel(m ServerStatusModel) model.ServerStatus {
	return model.ServerStatus{ID: m.ID, Name: m.Name}
}
func statusToModel(s model.ServerStatus) ServerStatusModel {
	return ServerStatusModel{ID: s.ID, Name: s.Name}
}

func typeModelToModel(m ServerTypeModel) model.ServerType {
	return model.ServerType{ID: m.ID, Name: m.Name}
}
func typeToModel(t model.ServerType) ServerTypeModel {
	return ServerTypeModel{ID: t.ID, Name: t.Name}
}

func auditLogModelToModel(m AuditLogModel) model.AuditLogEntry {
	return model.AuditLogEntry{ID: m.ID, Timestamp: m.Timestamp, Username: m.Username, Action: m.Action, Details: m.Details}
}

// serverModelToModel converts a loaded server row. Relation sets are sorted
// by id because bun does not order m2m results.
func serverModelToModel(m ServerModel) model.Server {
	s := model.Server{
		ID:       m.ID,
		Name:     m.Name,
		StatusID: m.StatusID,
		TypeID:   m.TypeID,
		IPs:      mapSlice(m.IPs, ipModelToModel),
		Tags:     mapSlice(m.Tags, tagModelToModel),
		Admins:   mapSlice(m.Admins, adminModelToModel),
	}
	if m.Description.Valid {
		s.Description = m.Description.String
	}
	if m.Status != nil {
		s.Status = statusModelToModel(*m.Status)
	}
	if m.Type != nil {
		s.Type = typeModelToModel(*m.Type)
	}
	sort.Slice(s.IPs, func(i, j int) bool { return s.IPs[i].ID < s.IPs[j].ID })
	sort.Slice(s.Tags, func(i, j int) bool { return s.Tags[i].ID < s.Tags[j].ID })
	sort.Slice(s.Admins, func(i, j int) bool { return s.Admins[i].ID < s.Admins[j].ID })
	return s
}

// serverToModel converts the scalar columns of a server. Relations are
// written separately as association rows.
func serverToModel(s model.Server) ServerModel {
	return ServerModel{
		ID:          s.ID,
		Name:        s.Name,
		Description: sql.NullString{String: s.Description, Valid: s.Description != ""},
		StatusID:    s.StatusID,
		TypeID:      s.TypeID,
	}
}

func mapSlice[M any, T any](in []M, fn func(M) T) []T {
	out := make([]T, 0, len(in))
	for _, m := range in {
		out = append(out, fn(m))
	}
	return out
}
