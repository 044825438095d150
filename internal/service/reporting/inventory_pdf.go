package reporting

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mamadbah2/agritech/internal/domain/models"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 136, Blue: 254}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 255, Green: 128, Blue: 66}
)

// InventoryPDF renders the snapshot of now and the inventory table as an A4
// PDF document.
func (s *Service) InventoryPDF(ctx context.Context, now time.Time) ([]byte, error) {
	snap := s.BuildSnapshot(ctx, now)
	items := s.catalog.InventoryItems()

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventory report "+snap.Date.String(), true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(titleRow(snap))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(snap))
	if snap.HasShortages() {
		m.AddRows(shortageRow(snap))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(items)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate inventory pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(snap models.DashboardSnapshot) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New("Farm inventory report", props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
		})),
		col.New(4).Add(text.New(snap.Date.String(), props.Text{
			Size: 10, Align: align.Right, Top: 3, Color: colorGray,
		})),
	)
}

func summaryRow(snap models.DashboardSnapshot) core.Row {
	stat := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		)
	}
	return row.New(14).Add(
		stat("Items", strconv.Itoa(snap.InventoryItems)),
		stat("Units", strconv.Itoa(snap.InventoryUnits)),
		stat("Stock value", "$"+snap.InventoryValue.StringFixed(2)),
		stat("Livestock heads", strconv.Itoa(snap.LivestockHeads)),
	)
}

func shortageRow(snap models.DashboardSnapshot) core.Row {
	names := append(append([]string{}, snap.OutOfStockItems...), snap.LowStockItems...)
	names = append(names, snap.LowStockProducts...)
	return row.New(8).Add(col.New(12).Add(text.New(
		fmt.Sprintf("Restock needed: %s", strings.Join(names, ", ")),
		props.Text{Style: fontstyle.Bold, Size: 8, Color: colorAlert, Top: 2},
	)))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Item", 3, align.Left),
		h("Category", 2, align.Left),
		h("Qty", 1, align.Right),
		h("Price", 2, align.Right),
		h("Status", 2, align.Center),
		h("Location", 2, align.Left),
	)
}

func tableRows(items []models.InventoryItem) []core.Row {
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1}))
	}
	rows := make([]core.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, row.New(7).Add(
			cell(item.Name, 3, align.Left),
			cell(item.Category, 2, align.Left),
			cell(strconv.Itoa(item.Quantity), 1, align.Right),
			cell("$"+item.Price.StringFixed(2), 2, align.Right),
			cell(string(item.EffectiveStatus()), 2, align.Center),
			cell(item.Location, 2, align.Left),
		))
	}
	return rows
}
