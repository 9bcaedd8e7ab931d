package domain

import (
	"net/url"
	"strconv"
)

// ListQuery holds the filters accepted by the remote list endpoints. Zero
// values are omitted from the query string.
type ListQuery struct {
	Search    string
	Category  string
	Status    string
	StartDate string
	EndDate   string
	Page      int
	PerPage   int
}

func (q ListQuery) Values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("search", q.Search)
	set("category", q.Category)
	set("status", q.Status)
	set("start_date", q.StartDate)
	set("end_date", q.EndDate)
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	return v
}
