package repository

import (
	"context"
	"fmt"

	"ChipTick/internal/domain/models"
	"ChipTick/pkg/clickhouse"
	"ChipTick/pkg/util"
)

// ClickHouseTickArchiver inserts appended daily points into a ticks table.
type ClickHouseTickArchiver struct {
	client *clickhouse.Client
	table  string
}

// NewClickHouseTickArchiver ensures the ticks table exists and returns an
// archiver writing into it.
func NewClickHouseTickArchiver(ctx context.Context, client *clickhouse.Client, table string) (*ClickHouseTickArchiver, error) {
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			symbol String,
			day    Date,
			price  Int64
		) ENGINE = ReplacingMergeTree()
		ORDER BY (symbol, day)`, table)

	if err := client.InitSchema(ctx, []string{ddl}); err != nil {
		return nil, err
	}

	return &ClickHouseTickArchiver{client: client, table: table}, nil
}

func (a *ClickHouseTickArchiver) Archive(ctx context.Context, symbol string, p models.PricePoint) error {
	day, err := util.ParseDay(p.Date)
	if err != nil {
		return fmt.Errorf("archive tick: %w", err)
	}

	query := fmt.Sprintf("INSERT INTO %s (symbol, day, price) VALUES (?, ?, ?)", a.table)
	if _, err := a.client.DB().ExecContext(ctx, query, symbol, day, p.Price); err != nil {
		return fmt.Errorf("archive tick to clickhouse: %w", err)
	}
	return nil
}

func (a *ClickHouseTickArchiver) Close() error {
	return a.client.Close()
}
