package repository

import (
	"encoding/base64"
	"time"
)

const (
	timeFormat = "2006-01-02T15:04:05.999Z07:00" // reduce precision from RFC3339Nano as date format

	defaultPageNum int64 = 10
	maxPageNum     int64 = 30
)

// EncodeCursor will encode the time into an opaque pagination cursor
func EncodeCursor(t time.Time) string {
	timeString := t.Format(timeFormat)

	return base64.StdEncoding.EncodeToString([]byte(timeString))
}

// DecodeCursor will decode the cursor into a time.Time
func DecodeCursor(encodedTime string) (time.Time, error) {
	byt, err := base64.StdEncoding.DecodeString(encodedTime)
	if err != nil {
		return time.Time{}, err
	}

	timeString := string(byt)
	t, err := time.Parse(timeFormat, timeString)

	return t, err
}

// PageVerify clamps the requested page size into a sane range
func PageVerify(num *int64) {
	if *num <= 0 {
		*num = defaultPageNum
	}
	if *num > maxPageNum {
		*num = maxPageNum
	}
}
