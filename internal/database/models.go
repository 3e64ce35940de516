package database

import "time"

// TimestampLayout is fixed-width UTC so lexical order on the column is
// chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// QueryLog is one case-search attempt. Rows are only ever inserted.
type QueryLog struct {
	ID         uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Court      string `json:"court" gorm:"index:idx_logs_court"`
	CaseType   string `json:"case_type"`
	CaseNumber string `json:"case_number"`
	CaseYear   string `json:"case_year"`
	Timestamp  string `json:"timestamp" gorm:"index:idx_logs_timestamp"`
	RawHTML    string `json:"raw_html" gorm:"column:raw_html;type:text"`
}

func (QueryLog) TableName() string {
	return "logs"
}

// Time parses the stored timestamp.
func (q QueryLog) Time() (time.Time, error) {
	return time.Parse(TimestampLayout, q.Timestamp)
}

// FormatTimestamp renders t in the stored layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
