package history

import (
	"database/sql"
	"time"

	"github.com/fragmede/bridgetui/internal/actions"
)

// Entry is one recorded result.
type Entry struct {
	ID         int64
	Action     string
	Seq        uint64
	RequestID  string
	StatusCode int
	Failed     bool
	Message    string
	Error      string
	RecordedAt time.Time
}

// Record appends r to the log, stamped with the current time.
func (d *DB) Record(r actions.Result) error {
	var failed int
	var errText string
	if r.Err != nil {
		failed = 1
		errText = r.Err.Error()
	}
	_, err := d.db.Exec(`INSERT INTO results
		(action, seq, request_id, status_code, failed, message, error, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Action.String(), int64(r.Seq), r.RequestID, r.StatusCode, failed,
		nullStr(r.Message), nullStr(errText), time.Now().UnixNano())
	return err
}

// Recent returns up to limit entries, newest first.
func (d *DB) Recent(limit int) ([]Entry, error) {
	rows, err := d.db.Query(`SELECT id, action, seq, request_id, status_code, failed, message, error, recorded_at
		FROM results ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var e Entry
		var seq, recordedAt int64
		var failed int
		var message, errText sql.NullString
		if err := rows.Scan(&e.ID, &e.Action, &seq, &e.RequestID, &e.StatusCode,
			&failed, &message, &errText, &recordedAt); err != nil {
			return nil, err
		}
		e.Seq = uint64(seq)
		e.Failed = failed != 0
		e.Message = message.String
		e.Error = errText.String
		e.RecordedAt = time.Unix(0, recordedAt)
		result = append(result, e)
	}
	return result, rows.Err()
}

// Prune keeps the newest keep entries and deletes the rest.
func (d *DB) Prune(keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := d.db.Exec(`DELETE FROM results WHERE id NOT IN
		(SELECT id FROM results ORDER BY id DESC LIMIT ?)`, keep)
	return err
}

func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
