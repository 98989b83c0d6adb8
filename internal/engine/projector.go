// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

// Page is the visible slice of a collection together with the pagination
// numbers used to render it.
type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	PageSize   int
	Total      int
}

// TotalPages returns max(1, ceil(n/pageSize)). A non-positive pageSize puts
// everything on one page.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Project computes the visible page of items. The requested page is clamped
// and the returned Items slice is a copy, so callers may keep it after the
// collection changes.
func Project[T any](items []T, page, pageSize int) Page[T] {
	n := len(items)
	total := TotalPages(n, pageSize)
	page = ClampPage(page, total)

	start, end := 0, n
	if pageSize > 0 {
		start = (page - 1) * pageSize
		end = min(page*pageSize, n)
	}

	visible := make([]T, 0, end-start)
	visible = append(visible, items[start:end]...)

	return Page[T]{
		Items:      visible,
		Page:       page,
		TotalPages: total,
		PageSize:   pageSize,
		Total:      n,
	}
}
