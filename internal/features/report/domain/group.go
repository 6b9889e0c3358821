package domain

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// GroupedRecord is one drill-down aggregate group. Depending on the metric
// mode the primary key is a delivery city, an occurrence code or a deadline
// label, and the secondary key a date or a city.
type GroupedRecord struct {
	PrimaryKey   string   `json:"primary_key"`
	SecondaryKey string   `json:"secondary_key"`
	Quantity     int      `json:"quantity"`
	ShipmentIDs  []string `json:"shipment_ids"`
	// Late is only meaningful in deadline mode: true when any contributing
	// record missed its lead time.
	Late bool `json:"late"`
}

// ComputeGroups filters the dataset for the given unit and metric and folds
// the result into ordered aggregate groups in a single pass. Groups appear
// in first-encounter order; every shipment id of the filtered set lands in
// exactly one group.
func ComputeGroups(d *Dataset, unit string, sel FilterSelection, lookup DeadlineLookup) ([]GroupedRecord, error) {
	ctx, err := newMetricContext(d, unit, sel, lookup)
	if err != nil {
		return nil, err
	}
	strat := strategyFor(sel.Mode)

	var groups []GroupedRecord
	index := make(map[string]int)

	for _, r := range d.Rows {
		if !strat.groupFilter(ctx, r) {
			continue
		}
		primary, secondary, late := strat.groupKey(ctx, r)
		shipment := orNA(r.Get(ctx.cols.ShipmentID))

		key := primary + "\x00" + secondary
		if i, ok := index[key]; ok {
			groups[i].Quantity++
			groups[i].ShipmentIDs = append(groups[i].ShipmentIDs, shipment)
			groups[i].Late = groups[i].Late || late
			continue
		}
		index[key] = len(groups)
		groups = append(groups, GroupedRecord{
			PrimaryKey:   primary,
			SecondaryKey: secondary,
			Quantity:     1,
			ShipmentIDs:  []string{shipment},
			Late:         late,
		})
	}

	return groups, nil
}

// SortField selects the group column to order by.
type SortField string

const (
	SortByPrimary   SortField = "primary"
	SortBySecondary SortField = "secondary"
	SortByQuantity  SortField = "quantity"
)

// SortDirection toggles ascending/descending order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortGroups orders groups in place. Primary keys compare with pt-BR
// collation; secondary keys compare as dates when both sides parse, as
// collated strings otherwise. The sort is stable so repeated clicks on the
// same column only flip direction.
func SortGroups(groups []GroupedRecord, field SortField, direction SortDirection) {
	col := collate.New(language.BrazilianPortuguese)

	compare := func(a, b GroupedRecord) int {
		switch field {
		case SortBySecondary:
			da, okA := ParseFlexibleDate(a.SecondaryKey)
			db, okB := ParseFlexibleDate(b.SecondaryKey)
			if okA && okB {
				switch {
				case da.Before(db):
					return -1
				case da.After(db):
					return 1
				default:
					return 0
				}
			}
			return col.CompareString(a.SecondaryKey, b.SecondaryKey)
		case SortByQuantity:
			return a.Quantity - b.Quantity
		default:
			return col.CompareString(a.PrimaryKey, b.PrimaryKey)
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		c := compare(groups[i], groups[j])
		if direction == SortDesc {
			return c > 0
		}
		return c < 0
	})
}
