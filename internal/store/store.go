// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all site entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import "errors"

// ErrNotFound is returned by deletes and updates that touch zero rows.
// Callers must be able to tell a no-op apart from a success: deleting a
// record that is already gone is reported, not swallowed.
var ErrNotFound = errors.New("store: not found")
