package datasource

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
	"go.uber.org/zap"
)

type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDataSource creates a new DuckDB data source instance with the specified database path.
// The path parameter specifies the DuckDB database file location, ":memory:" keeps it in memory.
// This is distinct from Initialize() which loads market data into the database.
func NewDataSource(path string, logger *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	// First drop the view if it exists
	_, err := d.db.Exec(`DROP VIEW IF EXISTS market_data;`)
	if err != nil {
		return fmt.Errorf("failed to drop existing view: %w", err)
	}

	reader := "read_parquet"
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		reader = "read_csv_auto"
	}

	// Create a view from the file - using raw SQL as Squirrel doesn't support CREATE VIEW
	query := fmt.Sprintf(`
		CREATE VIEW market_data AS
		SELECT * FROM %s('%s');
	`, reader, strings.ReplaceAll(path, "'", "''"))

	_, err = d.db.Exec(query)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeBacktestDataPathError, err, "failed to load market data from %s", path)
	}

	return nil
}

// withWindow restricts a query to [start, end].
func withWindow(builder squirrel.SelectBuilder, start optional.Option[time.Time], end optional.Option[time.Time]) squirrel.SelectBuilder {
	if start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"time": start.Unwrap()})
	}

	if end.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"time": end.Unwrap()})
	}

	return builder
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	query, args, err := withWindow(d.sq.Select("COUNT(*)").From("market_data"), start, end).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int

	if err := d.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count market data", err)
	}

	return count, nil
}

// Symbols implements DataSource.
func (d *DuckDBDataSource) Symbols() ([]string, error) {
	query, args, err := d.sq.Select("DISTINCT symbol").From("market_data").OrderBy("symbol ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build symbols query: %w", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query symbols", err)
	}
	defer rows.Close()

	symbols := []string{}

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}

		symbols = append(symbols, symbol)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return symbols, nil
}

// ReadSeries implements DataSource.
func (d *DuckDBDataSource) ReadSeries(symbol string, start optional.Option[time.Time], end optional.Option[time.Time]) (types.PriceSeries, error) {
	d.logger.Debug("Reading price series",
		zap.String("symbol", symbol),
	)

	if symbol == "" {
		symbols, err := d.Symbols()
		if err != nil {
			return types.PriceSeries{}, err
		}

		if len(symbols) > 1 {
			return types.PriceSeries{}, errors.Newf(errors.ErrCodeMissingParameter,
				"data holds %d symbols (%s), a symbol is required", len(symbols), strings.Join(symbols, ", "))
		}
	}

	builder := d.sq.
		Select("time", "symbol", "open", "high", "low", "close", "volume").
		From("market_data")

	if symbol != "" {
		builder = builder.Where(squirrel.Eq{"symbol": symbol})
	}

	query, args, err := withWindow(builder, start, end).OrderBy("time ASC").ToSql()
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("failed to build series query: %w", err)
	}

	// Use prepared statement for better performance
	stmt, err := d.db.Prepare(query)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("failed to prepare query: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(args...)
	if err != nil {
		return types.PriceSeries{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query market data", err)
	}
	defer rows.Close()

	series := types.PriceSeries{
		Symbol: symbol,
		Bars:   make([]types.Bar, 0, 256),
	}

	for rows.Next() {
		var (
			timestamp                      time.Time
			open, high, low, close, volume float64
			rowSymbol                      string
		)

		err := rows.Scan(&timestamp, &rowSymbol, &open, &high, &low, &close, &volume)
		if err != nil {
			return types.PriceSeries{}, fmt.Errorf("failed to scan row: %w", err)
		}

		series.Symbol = rowSymbol
		series.Bars = append(series.Bars, types.Bar{
			Time:   timestamp,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: int64(volume),
		})
	}

	if err = rows.Err(); err != nil {
		return types.PriceSeries{}, fmt.Errorf("error iterating rows: %w", err)
	}

	if series.Len() == 0 {
		return types.PriceSeries{}, errors.Newf(errors.ErrCodeNoDataFound, "no bars found for symbol %q in the requested window", symbol)
	}

	if err := series.Validate(); err != nil {
		return types.PriceSeries{}, err
	}

	return series, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}
