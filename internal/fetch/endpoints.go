package fetch

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// Query holds the filters of the stats table endpoint.
type Query struct {
	SeasonID     int
	Mode         string
	StatsType    string
	Weeks        []int
	Rounds       []int
	Teams        []int
	Positions    []int
	PlayerSearch string
	MinCredits   int
	MaxCredits   int
	SortBy       string
	SortOrder    string
	Iframe       string
	DateFrom     string
	DateTo       string
}

// StatsTableCachePath is where the last stats table payload is kept.
const StatsTableCachePath = "stats/table.json"

// Encode renders q in the key order the site itself uses; array filters are
// repeated as "key[]=v".
func (q Query) Encode() string {
	var b strings.Builder
	add := func(k, v string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}
	addInts := func(k string, vs []int) {
		for _, v := range vs {
			add(k+"[]", strconv.Itoa(v))
		}
	}

	add("season_id", strconv.Itoa(q.SeasonID))
	add("mode", q.Mode)
	add("stats_type", q.StatsType)
	addInts("weeks", q.Weeks)
	addInts("rounds", q.Rounds)
	addInts("teams", q.Teams)
	addInts("positions", q.Positions)
	add("player_search", q.PlayerSearch)
	add("min_cr", strconv.Itoa(q.MinCredits))
	add("max_cr", strconv.Itoa(q.MaxCredits))
	add("sort_by", q.SortBy)
	add("sort_order", q.SortOrder)
	add("iframe", q.Iframe)
	add("date_from", q.DateFrom)
	add("date_to", q.DateTo)
	return b.String()
}

// /stats/table
func (c *Client) StatsTable(ctx context.Context, q Query, force bool) ([]byte, error) {
	return c.FetchRaw(ctx, "/stats/table?"+q.Encode(), StatsTableCachePath, force)
}
