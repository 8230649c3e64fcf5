package util

import "time"

const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
)

func StrToDate(str string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, str, GetDefaultTimezone())
	if err != nil {
		return time.Time{}, err
	}

	return t, nil
}

func DateToStr(dt time.Time) string {
	return dt.Format(DateFormat)
}

func DateTimeToStr(dt time.Time) string {
	return dt.Format(DateTimeFormat)
}

func Now() time.Time {
	return time.Now().In(GetDefaultTimezone())
}

func GetDefaultTimezone() *time.Location {
	localTimeZone, _ := time.LoadLocation("Local")
	return localTimeZone
}
