// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// textRule describes the constraints of one text field. Checks run in the
// order length, charset, capitalization; the first failure is returned.
type textRule struct {
	entity  string
	field   string
	min     int
	max     int
	charset *regexp.Regexp
	pattern string
	capital bool
}

var (
	adminNameRule = textRule{entity: EntityAdmin, field: "name", min: 1, max: 20,
		charset: regexp.MustCompile(`^[A-Za-z0-9 ]+$`), pattern: "[A-Za-z0-9 ]+"}
	tagNameRule = textRule{entity: EntityTag, field: "name", min: 1, max: 15,
		charset: regexp.MustCompile(`^[A-Za-z0-9_ ]+$`), pattern: "[A-Za-z0-9_ ]+"}
	statusNameRule = textRule{entity: EntityStatus, field: "name", min: 1, max: 20,
		charset: regexp.MustCompile(`^[A-Za-z_]+$`), pattern: "[A-Za-z_]+", capital: true}
	typeNameRule = textRule{entity: EntityType, field: "name", min: 1, max: 20,
		charset: regexp.MustCompile(`^[A-Za-z ]+$`), pattern: "[A-Za-z ]+", capital: true}
	serverNameRule = textRule{entity: EntityServer, field: "name", min: 1, max: 30,
		charset: regexp.MustCompile(`^[A-Za-z0-9_]+$`), pattern: "[A-Za-z0-9_]+"}
	serverDescriptionRule = textRule{entity: EntityServer, field: "description", min: 1, max: 60,
		charset: regexp.MustCompile(`^[A-Za-z0-9_ ]+$`), pattern: "[A-Za-z0-9_ ]+"}

	ipAddressPattern = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})\.(\d{1,3})\.(\d{1,3})$`)
)

func (r textRule) check(value string) error {
	if n := utf8.RuneCountInString(value); n < r.min || n > r.max {
		return &Error{Entity: r.entity, Field: r.field, Kind: KindLength, Value: value,
			Msg: fmt.Sprintf("wrong length %d, should be in range %d-%d", n, r.min, r.max)}
	}
	if !r.charset.MatchString(value) {
		return &Error{Entity: r.entity, Field: r.field, Kind: KindCharset, Value: value,
			Msg: "does not match " + r.pattern}
	}
	if r.capital {
		first, _ := utf8.DecodeRuneInString(value)
		if !unicode.IsUpper(first) {
			return &Error{Entity: r.entity, Field: r.field, Kind: KindCapital, Value: value,
				Msg: "must start with a capital letter"}
		}
	}
	return nil
}

// ParseID validates a textual id for entity and returns it as an integer.
func ParseID(entity, raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &Error{Entity: entity, Field: "id", Kind: KindType, Value: raw,
			Msg: "must be an integer", Err: err}
	}
	return id, nil
}

// ValidateAdminName checks an admin name: 1-20 of [A-Za-z0-9 ].
func ValidateAdminName(name string) error { return adminNameRule.check(name) }

// ValidateTagName checks a tag name: 1-15 of [A-Za-z0-9_ ].
func ValidateTagName(name string) error { return tagNameRule.check(name) }

// ValidateStatusName checks a server status name: 1-20 of [A-Za-z_],
// starting with an uppercase letter.
func ValidateStatusName(name string) error { return statusNameRule.check(name) }

// ValidateTypeName checks a server type name: 1-20 of [A-Za-z ], starting
// with an uppercase letter.
func ValidateTypeName(name string) error { return typeNameRule.check(name) }

// ValidateServerName checks a server name: 1-30 of [A-Za-z0-9_].
func ValidateServerName(name string) error { return serverNameRule.check(name) }

// ValidateServerDescription checks a server description: 1-60 of [A-Za-z0-9_ ].
func ValidateServerDescription(desc string) error { return serverDescriptionRule.check(desc) }

// ValidateIPAddress checks for a dotted quad with every octet in 0-255.
func ValidateIPAddress(address string) error {
	m := ipAddressPattern.FindStringSubmatch(address)
	if m == nil {
		return &Error{Entity: EntityIP, Field: "address", Kind: KindCharset, Value: address,
			Msg: `does not match \d{1,3}.\d{1,3}.\d{1,3}.\d{1,3}`}
	}
	for _, octet := range m[1:] {
		if n, _ := strconv.Atoi(octet); n > 255 {
			return &Error{Entity: EntityIP, Field: "address", Kind: KindCharset, Value: address,
				Msg: fmt.Sprintf("octet %s out of range 0-255", octet)}
		}
	}
	return nil
}
