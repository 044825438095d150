package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/agritech/internal/service/session"
	"github.com/mamadbah2/agritech/pkg/listing"
)

var errInvalidParam = errors.New("invalid parameter")

// eventParams names the query parameters a view understands beyond the
// common list ones.
type eventParams struct {
	filters  []string
	settings []string
}

// parseEvent turns query parameters into a UI event. Parameters that are
// absent leave the view state unchanged.
func parseEvent(c *gin.Context, p eventParams) (session.Event, error) {
	var ev session.Event

	if search, ok := c.GetQuery("search"); ok {
		ev.Update.Search = &search
	}

	rawDir, hasDir := c.GetQuery("dir")
	dir, err := listing.ParseDirection(rawDir)
	if err != nil {
		return ev, fmt.Errorf("%w: %v", errInvalidParam, err)
	}
	if key, ok := c.GetQuery("sort"); ok {
		ev.Update.Sort = &listing.SortSpec{Key: key, Direction: dir}
	} else if hasDir && rawDir != "" {
		// dir alone re-orders the current sort column.
		ev.Update.Direction = &dir
	}

	limit, hasLimit, err := intQuery(c, "limit")
	if err != nil {
		return ev, err
	}
	offset, hasOffset, err := intQuery(c, "offset")
	if err != nil {
		return ev, err
	}
	if hasLimit || hasOffset {
		ev.Update.Page = &listing.Page{Limit: limit, Offset: offset}
	}
	page, hasPage, err := intQuery(c, "page")
	if err != nil {
		return ev, err
	}
	if hasPage {
		ev.Update.GoTo = &page
	}

	for _, name := range p.filters {
		if value, ok := c.GetQuery(name); ok {
			if ev.Update.Filters == nil {
				ev.Update.Filters = make(map[string]string, len(p.filters))
			}
			ev.Update.Filters[name] = value
		}
	}

	for _, name := range p.settings {
		if value := c.Query(name); value != "" {
			if ev.Settings == nil {
				ev.Settings = make(map[string]string, len(p.settings))
			}
			ev.Settings[name] = value
		}
	}

	return ev, nil
}

func intQuery(c *gin.Context, name string) (int, bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false, fmt.Errorf("%w: %s=%q", errInvalidParam, name, raw)
	}
	return n, true, nil
}

func idParam(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id=%q", errInvalidParam, raw)
	}
	return id, nil
}
