package dto

import "time"

type ServiceHoursResponse struct {
	At        time.Time `json:"at"`
	Open      bool      `json:"open"`
	Holiday   bool      `json:"holiday"`
	OpenHour  int       `json:"open_hour"`
	CloseHour int       `json:"close_hour"`
}
