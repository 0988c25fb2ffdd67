package profile

import "time"

const birthDateLayout = "2006-01-02"

// AgeFromDate computes the whole-year age for a YYYY-MM-DD birth date.
// Empty or unparseable input yields -1, a sentinel rather than an error, so
// display code can decide to skip the field.
func AgeFromDate(date string) int {
	return ageFromDateAt(date, time.Now())
}

func ageFromDateAt(date string, now time.Time) int {
	if date == "" {
		return -1
	}
	birth, err := time.Parse(birthDateLayout, date)
	if err != nil {
		return -1
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
