package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mamadbah2/agritech/internal/dataset"
	"github.com/mamadbah2/agritech/internal/service/admin"
	"github.com/mamadbah2/agritech/internal/service/crops"
	"github.com/mamadbah2/agritech/internal/service/inventory"
	"github.com/mamadbah2/agritech/internal/service/livestock"
	"github.com/mamadbah2/agritech/internal/service/marketplace"
	"github.com/mamadbah2/agritech/pkg/listing"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0088FE")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#646464"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// listOptions are the flags of the list command.
type listOptions struct {
	search  string
	sortKey string
	dir     string
	filters []string
	page    int
	limit   int
}

var listOpts listOptions

// tableView renders one dataset list as a table.
type tableView func(c *dataset.Catalog, opts listOptions) (string, error)

var views = map[string]tableView{
	"inventory":   schemaView(inventory.Schema, (*dataset.Catalog).InventoryItems),
	"livestock":   schemaView(livestock.Schema, (*dataset.Catalog).Livestock),
	"crops":       schemaView(crops.Schema, (*dataset.Catalog).Crops),
	"marketplace": schemaView(marketplace.Schema, (*dataset.Catalog).MarketProducts),
	"admin":       schemaView(admin.Schema, (*dataset.Catalog).AdminProducts),
}

func viewNames() []string {
	names := make([]string, 0, len(views))
	for name := range views {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var listCmd = &cobra.Command{
	Use:   "list <view>",
	Short: "Print a dataset list as a table",
	Long: `Print a dataset list as a table after search, filter, sort and paging.

Views: ` + strings.Join(viewNames(), ", "),
	Example: `  agritechctl list livestock --sort weight --dir desc
  agritechctl list inventory --filter status="Low Stock"
  agritechctl list admin --search che --page 2 --limit 5`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: viewNames(),
	RunE:      runList,
}

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listOpts.search, "search", "s", "", "case-insensitive search text")
	f.StringVar(&listOpts.sortKey, "sort", "", "field to sort on")
	f.StringVar(&listOpts.dir, "dir", "asc", "sort direction, asc or desc")
	f.StringArrayVarP(&listOpts.filters, "filter", "f", nil, "field=value filter, repeatable")
	f.IntVar(&listOpts.page, "page", 0, "1-based page number")
	f.IntVar(&listOpts.limit, "limit", 0, "rows per page")
}

func runList(cmd *cobra.Command, args []string) error {
	view, ok := views[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("unknown view %q, expected one of %s", args[0], strings.Join(viewNames(), ", "))
	}
	out, err := view(catalog, listOpts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// schemaView builds a table view over any schema: one column per field.
func schemaView[T any](schema *listing.Schema[T], items func(*dataset.Catalog) []T) tableView {
	return func(c *dataset.Catalog, opts listOptions) (string, error) {
		u, err := opts.update()
		if err != nil {
			return "", err
		}
		res, err := schema.Apply(items(c), schema.DefaultQuery().With(u))
		if err != nil {
			return "", err
		}

		rows := make([][]string, 0, len(res.Items))
		for _, item := range res.Items {
			rows = append(rows, schema.Cells(item))
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(borderStyle).
			Headers(schema.Names()...).
			Rows(rows...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})

		return t.String() + "\n" + footerStyle.Render(footer(res)), nil
	}
}

func footer[T any](res listing.Result[T]) string {
	if res.Page == nil {
		return fmt.Sprintf("%d of %d rows", len(res.Items), res.Total)
	}
	return fmt.Sprintf("%d of %d rows, page %d (limit %d)",
		len(res.Items), res.Total, res.Page.Offset/res.Page.Limit+1, res.Page.Limit)
}

// update converts the flags into a listing update.
func (o listOptions) update() (listing.Update, error) {
	var u listing.Update
	if o.search != "" {
		u.Search = &o.search
	}
	if o.sortKey != "" {
		dir, err := listing.ParseDirection(o.dir)
		if err != nil {
			return u, err
		}
		u.Sort = &listing.SortSpec{Key: o.sortKey, Direction: dir}
	}
	for _, f := range o.filters {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return u, fmt.Errorf("invalid filter %q, expected field=value", f)
		}
		if u.Filters == nil {
			u.Filters = map[string]string{}
		}
		u.Filters[key] = value
	}
	if o.limit < 0 || o.page < 0 {
		return u, errors.New("page and limit must not be negative")
	}
	if o.limit > 0 {
		u.Page = &listing.Page{Limit: o.limit}
	}
	if o.page > 0 {
		u.GoTo = &o.page
	}
	return u, nil
}
