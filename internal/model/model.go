// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the inventory entities shared by the store, the
// core operations and the user interfaces. The structs are plain values;
// persistence mappings live in internal/db.
package model // import "github.com/toeirei/srvinv/internal/model"

import (
	"strings"
	"time"
)

// Admin is a person responsible for one or more servers. Names are unique.
type Admin struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// String returns the admin name.
func (a Admin) String() string { return a.Name }

// IP is an IPv4 address in dotted-quad form that can be attached to servers.
type IP struct {
	ID      int    `json:"id"`
	Address string `json:"address"`
}

// String returns the textual address.
func (i IP) String() string { return i.Address }

// Tag is a free-form label attached to servers.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// String returns the tag name.
func (t Tag) String() string { return t.Name }

// ServerStatus is a state label for a server such as "Running".
type ServerStatus struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// String returns the status name.
func (s ServerStatus) String() string { return s.Name }

// ServerType is a category label for a server such as "Web".
type ServerType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// String returns the type name.
func (s ServerType) String() string { return s.Name }

// Server is the inventory aggregate. StatusID and TypeID always reference
// existing rows; Status and Type carry the resolved rows when loaded from
// the store. IPs, Tags and Admins are sets ordered by id.
type Server struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	StatusID    int          `json:"status_id"`
	TypeID      int          `json:"type_id"`
	Status      ServerStatus `json:"status"`
	Type        ServerType   `json:"type"`
	IPs         []IP         `json:"ips"`
	Tags        []Tag        `json:"tags"`
	Admins      []Admin      `json:"admins"`
}

// String returns the server name, matching the text rendering of the
// other entities.
func (s Server) String() string { return s.Name }

// Summary renders the server with its relations on a single line, e.g.
// "web01 [Running/Web] ips=10.0.0.1 tags=prod admins=Alice".
func (s Server) Summary() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteString(" [")
	b.WriteString(s.Status.Name)
	b.WriteString("/")
	b.WriteString(s.Type.Name)
	b.WriteString("]")
	if len(s.IPs) > 0 {
		b.WriteString(" ips=")
		b.WriteString(joinNames(s.IPs))
	}
	if len(s.Tags) > 0 {
		b.WriteString(" tags=")
		b.WriteString(joinNames(s.Tags))
	}
	if len(s.Admins) > 0 {
		b.WriteString(" admins=")
		b.WriteString(joinNames(s.Admins))
	}
	return b.String()
}

// HasIP reports whether the server holds an IP with the given id.
func (s Server) HasIP(id int) bool {
	for _, ip := range s.IPs {
		if ip.ID == id {
			return true
		}
	}
	return false
}

// HasTag reports whether the server holds a tag with the given id.
func (s Server) HasTag(id int) bool {
	for _, t := range s.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

// HasAdmin reports whether the server holds an admin with the given id.
func (s Server) HasAdmin(id int) bool {
	for _, a := range s.Admins {
		if a.ID == id {
			return true
		}
	}
	return false
}

// AuditLogEntry records a single mutation performed through the store.
type AuditLogEntry struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}

func joinNames[T interface{ String() string }](items []T) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.String())
	}
	return strings.Join(parts, ",")
}
