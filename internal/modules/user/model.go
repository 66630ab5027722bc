// README: User account model and profile fields.
package user

import "time"

type User struct {
	ID              string
	Email           string
	Username        string
	PasswordHash    string
	Active          bool
	ProfileImage    string
	FullName        string
	Gender          string
	DateOfBirth     string // "2006-01-02", empty when not provided
	Age             int
	Country         string
	Interests       []string
	TravelFrequency string
	Budget          string
	TravelReasons   []string
	CreatedAt       time.Time
}

// ProfileUpdate carries optional profile fields; nil means "leave unchanged".
type ProfileUpdate struct {
	FullName        *string
	Gender          *string
	DateOfBirth     *string
	Country         *string
	ProfileImage    *string
	Interests       *[]string
	TravelFrequency *string
	Budget          *string
	TravelReasons   *[]string
}

// AgeFromDOB computes full years elapsed since dob ("2006-01-02").
// Returns 0 for empty or unparseable input.
func AgeFromDOB(dob string, now time.Time) int {
	t, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return 0
	}
	age := now.Year() - t.Year()
	if now.YearDay() < t.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
