// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package model

// BackupSchemaVersion is written into every backup and checked on restore.
const BackupSchemaVersion = 1

// BackupData is a container for all data exported for a backup. Rows keep
// their ids so association pairs stay valid after a restore.
type BackupData struct {
	// SchemaVersion helps in handling migrations during restore.
	SchemaVersion int `json:"schema_version"`

	Admins          []Admin         `json:"admins"`
	IPs             []IP            `json:"ips"`
	Tags            []Tag           `json:"tags"`
	ServerStatuses  []ServerStatus  `json:"server_statuses"`
	ServerTypes     []ServerType    `json:"server_types"`
	Servers         []ServerRow     `json:"servers"`
	ServerIPs       []ServerLink    `json:"server_ips"`
	ServerTags      []ServerLink    `json:"server_tags"`
	ServerAdmins    []ServerLink    `json:"server_admins"`
	AuditLogEntries []AuditLogEntry `json:"audit_log_entries"`
}

// ServerRow is the flat server row without resolved relations.
type ServerRow struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StatusID    int    `json:"status_id"`
	TypeID      int    `json:"type_id"`
}

// ServerLink is one row of an association table: the server id paired
// with the id of the related ip, tag or admin.
type ServerLink struct {
	ServerID  int `json:"server_id"`
	RelatedID int `json:"related_id"`
}
