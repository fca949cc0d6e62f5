package preview

// Type labels reported for columns. The names follow dataframe dtype
// conventions so the summary reads the way data engineers expect.
const (
	TypeInt64   = "int64"
	TypeFloat64 = "float64"
	TypeBool    = "bool"
	TypeObject  = "object"
)

// Column is a named, typed sequence of values, one per table row.
type Column struct {
	// Name is the column name, unique within its table.
	Name string
	// Type is the inferred type label.
	Type string
	// Values holds one value per row.
	Values []Value
}

// NonNull returns the number of non-null values in the column.
func (c Column) NonNull() int {
	count := 0

	for _, v := range c.Values {
		if !v.IsNull() {
			count++
		}
	}

	return count
}

// Table is a rectangular, column-oriented data set.
type Table struct {
	columns []Column
	rows    int
}

// Columns returns the table columns in order.
func (t *Table) Columns() []Column { return t.columns }

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}

	return names
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Values[i]
	}

	return row
}

// Head returns up to n rows from the top of the table.
func (t *Table) Head(n int) [][]Value {
	n = max(0, min(n, t.rows))

	rows := make([][]Value, n)
	for i := range rows {
		rows[i] = t.Row(i)
	}

	return rows
}

// cell is a single named value of a row under construction.
type cell struct {
	name  string
	value Value
}

// builder assembles a rectangular table from rows that may not share the
// same set of columns. Columns appear in order of first occurrence, and
// values missing from a row are null.
type builder struct {
	index   map[string]int
	columns []Column
	rows    int
}

func newBuilder() *builder {
	return &builder{index: make(map[string]int)}
}

// column returns the index of the named column, creating it backfilled with
// nulls for all rows seen so far.
func (b *builder) column(name string) int {
	if i, ok := b.index[name]; ok {
		return i
	}

	b.columns = append(b.columns, Column{Name: name, Values: make([]Value, b.rows, b.rows+1)})
	b.index[name] = len(b.columns) - 1

	return len(b.columns) - 1
}

// appendRow adds one row. A name repeated within the row keeps the last value.
func (b *builder) appendRow(cells []cell) {
	for _, c := range cells {
		b.column(c.name)
	}

	for i := range b.columns {
		b.columns[i].Values = append(b.columns[i].Values, NullValue())
	}

	for _, c := range cells {
		b.columns[b.index[c.name]].Values[b.rows] = c.value
	}

	b.rows++
}

// build infers column types and returns the finished table.
func (b *builder) build() *Table {
	for i, c := range b.columns {
		b.columns[i] = newColumn(c.Name, c.Values)
	}

	return &Table{columns: b.columns, rows: b.rows}
}

// newColumn types values and, for float64 columns, rewrites every number in
// floating point notation so that 1 and 2.5 read as 1.0 and 2.5.
func newColumn(name string, values []Value) Column {
	typ := inferType(values)

	if typ == TypeFloat64 {
		for i, v := range values {
			if v.Kind() == Number {
				values[i] = v.floating()
			}
		}
	}

	return Column{Name: name, Type: typ, Values: values}
}

// inferType labels a column from the kinds of its values. A column is only
// numeric or boolean when every non-null value agrees; integers with gaps are
// reported as float64 and booleans with gaps as object.
func inferType(values []Value) string {
	var (
		nulls, bools, numbers, integral, others int
	)

	for _, v := range values {
		switch v.Kind() {
		case Null:
			nulls++
		case Bool:
			bools++
		case Number:
			numbers++

			if v.IsIntegral() {
				integral++
			}
		default:
			others++
		}
	}

	nonNull := len(values) - nulls

	switch {
	case nonNull == 0 || others > 0:
		return TypeObject
	case numbers == nonNull:
		if integral == numbers && nulls == 0 {
			return TypeInt64
		}

		return TypeFloat64
	case bools == nonNull && nulls == 0:
		return TypeBool
	default:
		return TypeObject
	}
}
