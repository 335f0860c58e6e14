package repository

import (
	"context"
	"strings"
)

// SearchQuery carries the optional filters of the public match search.
// Zero values mean "no filter". TimeFilter is "upcoming" (default) or "any".
type SearchQuery struct {
	Team       string
	Stadium    string
	Location   string
	TimeFilter string
	Page       int
	PageSize   int
}

// SearchResult is one page of matches plus the total count across all pages.
type SearchResult struct {
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	Pages   int            `json:"pages"`
	Matches []*MatchDetail `json:"matches"`
}

// Search runs a filtered, paginated match query. Text filters are
// case-insensitive substring matches; the team filter matches either side.
func (r *MatchRepo) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}

	where := []string{"1=1"}
	args := []any{}
	if q.TimeFilter != "any" {
		where = append(where, "m.starts_at >= NOW()", "m.status = 'SCHEDULED'")
	}
	if s := strings.TrimSpace(q.Team); s != "" {
		where = append(where, "(LOWER(t1.name) LIKE ? OR LOWER(t2.name) LIKE ?)")
		p := "%" + strings.ToLower(s) + "%"
		args = append(args, p, p)
	}
	if s := strings.TrimSpace(q.Stadium); s != "" {
		where = append(where, "LOWER(s.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	if s := strings.TrimSpace(q.Location); s != "" {
		where = append(where, "LOWER(s.location) LIKE ?")
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	cond := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+matchDetailFrom+cond, args...).Scan(&total); err != nil {
		return nil, err
	}

	res := &SearchResult{
		Total:   total,
		Page:    q.Page,
		Pages:   (total + q.PageSize - 1) / q.PageSize,
		Matches: make([]*MatchDetail, 0),
	}
	if total == 0 {
		return res, nil
	}

	dataQ := "SELECT " + matchDetailColumns + matchDetailFrom + cond +
		" ORDER BY m.starts_at ASC LIMIT ? OFFSET ?"
	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)

	rows, err := r.db.QueryContext(ctx, dataQ, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		d, err := scanMatchDetail(rows)
		if err != nil {
			return nil, err
		}
		res.Matches = append(res.Matches, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
