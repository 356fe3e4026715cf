package backtest

import (
	"fmt"
	"time"
)

// ColumnKind tells which value slice of a Column is populated.
type ColumnKind string

const (
	ColumnKindBool  ColumnKind = "bool"
	ColumnKindFloat ColumnKind = "float"
)

// Column is one named, index-aligned column of an annotated table.
type Column struct {
	Name   string
	Kind   ColumnKind
	Bools  []bool
	Floats []float64
}

// AnnotatedTable is a copy of the price series extended with per-strategy columns,
// ready for a renderer. Columns are ordered Buy1, Sell1, Buy2, Sell2, ...,
// Strategy1_Position, ..., Strategy1_Returns, ...
type AnnotatedTable struct {
	Times   []time.Time
	Close   []float64
	Columns []Column
}

// Column returns the column with the given name.
func (t *AnnotatedTable) Column(name string) (Column, bool) {
	for _, column := range t.Columns {
		if column.Name == name {
			return column, true
		}
	}

	return Column{}, false
}

// Names returns the column names in order.
func (t *AnnotatedTable) Names() []string {
	names := make([]string, len(t.Columns))
	for i, column := range t.Columns {
		names[i] = column.Name
	}

	return names
}

// BuyColumn returns the name of the buy column of the n-th strategy (1-based).
func BuyColumn(n int) string {
	return fmt.Sprintf("Buy%d", n)
}

// SellColumn returns the name of the sell column of the n-th strategy (1-based).
func SellColumn(n int) string {
	return fmt.Sprintf("Sell%d", n)
}

// PositionColumn returns the name of the position column of the n-th strategy (1-based).
func PositionColumn(n int) string {
	return fmt.Sprintf("Strategy%d_Position", n)
}

// ReturnsColumn returns the name of the period return column of the n-th strategy (1-based).
func ReturnsColumn(n int) string {
	return fmt.Sprintf("Strategy%d_Returns", n)
}

// Annotate builds a new table from the comparison. The comparison itself is left untouched.
func (c *Comparison) Annotate() *AnnotatedTable {
	closes, err := c.Series.Closes()
	if err != nil {
		closes = []float64{}
	}

	table := &AnnotatedTable{
		Times:   c.Series.Times(),
		Close:   closes,
		Columns: make([]Column, 0, 4*len(c.Results)),
	}

	for _, result := range c.Results {
		table.Columns = append(table.Columns,
			Column{Name: BuyColumn(result.Index), Kind: ColumnKindBool, Bools: append([]bool(nil), result.Signals.Buy...)},
			Column{Name: SellColumn(result.Index), Kind: ColumnKindBool, Bools: append([]bool(nil), result.Signals.Sell...)},
		)
	}

	for _, result := range c.Results {
		table.Columns = append(table.Columns,
			Column{Name: PositionColumn(result.Index), Kind: ColumnKindFloat, Floats: append([]float64(nil), result.Positions...)},
		)
	}

	for _, result := range c.Results {
		table.Columns = append(table.Columns,
			Column{Name: ReturnsColumn(result.Index), Kind: ColumnKindFloat, Floats: append([]float64(nil), result.Returns.Period...)},
		)
	}

	return table
}
