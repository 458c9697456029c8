package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// llmEventRow mirrors one row of llm_request_events.
type llmEventRow struct {
	ID           int    `db:"id"`
	Sequence     int64  `db:"sequence"`
	Timestamp    int64  `db:"timestamp"`
	Provider     string `db:"provider"`
	Model        string `db:"model"`
	Purpose      string `db:"purpose"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
	LatencyMs    int64  `db:"latency_ms"`
	Success      bool   `db:"success"`
	ErrorMessage string `db:"error_message"`
	RequestBody  string `db:"request_body"`
	ResponseBody string `db:"response_body"`
}

func (r llmEventRow) record() LLMRequestEventRecord {
	return LLMRequestEventRecord{
		ID:        r.ID,
		Sequence:  r.Sequence,
		Timestamp: time.Unix(0, r.Timestamp).UTC(),
		LLMRequestEventData: LLMRequestEventData{
			Provider:     r.Provider,
			Model:        r.Model,
			Purpose:      r.Purpose,
			InputTokens:  r.InputTokens,
			OutputTokens: r.OutputTokens,
			LatencyMs:    r.LatencyMs,
			Success:      r.Success,
			ErrorMessage: r.ErrorMessage,
			RequestBody:  r.RequestBody,
			ResponseBody: r.ResponseBody,
		},
	}
}

const llmEventColumns = `id, sequence, timestamp, provider, model, purpose, input_tokens,
	output_tokens, latency_ms, success, error_message, request_body, response_body`

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO llm_request_events (sequence, timestamp, provider, model, purpose,
			input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixNano(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
		data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	where, args := opts.filter()
	query := `SELECT ` + llmEventColumns + ` FROM llm_request_events` + where + ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	var rows []llmEventRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}

	records := make([]LLMRequestEventRecord, len(rows))
	for i, row := range rows {
		records[i] = row.record()
	}
	return records, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	var row llmEventRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+llmEventColumns+` FROM llm_request_events WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	rec := row.record()
	return &rec, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	var rows []struct {
		Purpose      string  `db:"purpose"`
		Calls        int     `db:"calls"`
		InputTokens  int     `db:"input_tokens"`
		OutputTokens int     `db:"output_tokens"`
		AvgLatency   float64 `db:"avg_latency"`
	}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT purpose, COUNT(*) AS calls,
			COALESCE(SUM(input_tokens), 0) AS input_tokens,
			COALESCE(SUM(output_tokens), 0) AS output_tokens,
			COALESCE(AVG(latency_ms), 0) AS avg_latency
		 FROM llm_request_events GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("LLM usage by purpose: %w", err)
	}

	stats := make([]LLMUsageStats, len(rows))
	for i, row := range rows {
		stats[i] = LLMUsageStats{
			Purpose:      row.Purpose,
			Calls:        row.Calls,
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
			AvgLatencyMs: int64(row.AvgLatency),
		}
	}
	return stats, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	var rows []struct {
		Model        string `db:"model"`
		Calls        int    `db:"calls"`
		InputTokens  int    `db:"input_tokens"`
		OutputTokens int    `db:"output_tokens"`
	}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT model, COUNT(*) AS calls,
			COALESCE(SUM(input_tokens), 0) AS input_tokens,
			COALESCE(SUM(output_tokens), 0) AS output_tokens
		 FROM llm_request_events GROUP BY model ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("LLM usage by model: %w", err)
	}

	usage := make([]LLMModelUsage, len(rows))
	for i, row := range rows {
		usage[i] = LLMModelUsage(row)
	}
	return usage, nil
}

// filter builds a WHERE clause from the sequence and time bounds.
func (o QueryOpts) filter() (string, []any) {
	var conds []string
	var args []any
	if o.After > 0 {
		conds = append(conds, "sequence > ?")
		args = append(args, o.After)
	}
	if o.Before > 0 {
		conds = append(conds, "sequence < ?")
		args = append(args, o.Before)
	}
	if !o.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, o.From.UnixNano())
	}
	if !o.To.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, o.To.UnixNano())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
