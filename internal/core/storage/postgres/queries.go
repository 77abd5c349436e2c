package postgres

import (
	"fmt"

	"github.com/lib/pq"
)

// Table names come from config, so statements are assembled once at
// adapter construction with quoted identifiers and prepared eagerly.

func queryRetrieveOrdersSince(table string) string {
	return fmt.Sprintf(`
		SELECT store_id, user_id, order_id, menu_id, total_price, ordered_at
		FROM %s
		WHERE ordered_at >= $1
		ORDER BY ordered_at ASC
	`, pq.QuoteIdentifier(table))
}

func queryInsertSummary(table string) string {
	return fmt.Sprintf(`
		INSERT INTO %s (
			period_type, period_start, store_id, total_sales,
			total_orders, avg_order_value, unique_visitors, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, pq.QuoteIdentifier(table))
}

func queryDeleteSummaryKey(table string) string {
	return fmt.Sprintf(`
		DELETE FROM %s
		WHERE period_type = $1 AND period_start = $2 AND store_id = $3
	`, pq.QuoteIdentifier(table))
}
