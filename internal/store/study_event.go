package store

import (
	"context"
	"fmt"
	"time"
)

type studyEventRow struct {
	ID           int    `db:"id"`
	Sequence     int64  `db:"sequence"`
	Timestamp    int64  `db:"timestamp"`
	SessionID    string `db:"session_id"`
	Action       string `db:"action"`
	Kind         string `db:"kind"`
	QuizID       string `db:"quiz_id"`
	Questions    int    `db:"questions"`
	Correct      int    `db:"correct"`
	Score        int    `db:"score"`
	XP           int    `db:"xp"`
	DurationSecs int    `db:"duration_secs"`
}

func (r *eventRepo) AppendStudyEvent(ctx context.Context, data StudyEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO study_events (sequence, timestamp, session_id, action, kind, quiz_id,
			questions, correct, score, xp, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixNano(), data.SessionID, data.Action, data.Kind, data.QuizID,
		data.Questions, data.Correct, data.Score, data.XP, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save study event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryStudyEvents(ctx context.Context, opts QueryOpts) ([]StudyEventRecord, error) {
	where, args := opts.filter()
	query := `SELECT id, sequence, timestamp, session_id, action, kind, quiz_id,
		questions, correct, score, xp, duration_secs FROM study_events` + where + ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	var rows []studyEventRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query study events: %w", err)
	}

	records := make([]StudyEventRecord, len(rows))
	for i, row := range rows {
		records[i] = StudyEventRecord{
			ID:        row.ID,
			Sequence:  row.Sequence,
			Timestamp: time.Unix(0, row.Timestamp).UTC(),
			StudyEventData: StudyEventData{
				SessionID:    row.SessionID,
				Action:       row.Action,
				Kind:         row.Kind,
				QuizID:       row.QuizID,
				Questions:    row.Questions,
				Correct:      row.Correct,
				Score:        row.Score,
				XP:           row.XP,
				DurationSecs: row.DurationSecs,
			},
		}
	}
	return records, nil
}
