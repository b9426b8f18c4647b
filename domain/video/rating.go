package video

import "fmt"

// Rating 分级
type Rating string

const (
	RatingL  Rating = "L"
	Rating10 Rating = "10"
	Rating12 Rating = "12"
	Rating14 Rating = "14"
	Rating16 Rating = "16"
	Rating18 Rating = "18"
)

const ratingErrorMessage = "The rating must be one of the following values: L, 10, 12, 14, 16, 18"

func ParseRating(value string) (Rating, error) {
	r := Rating(value)
	if !r.Valid() {
		return "", fmt.Errorf("%s, passed value: %q", ratingErrorMessage, value)
	}
	return r, nil
}

func (r Rating) Valid() bool {
	switch r {
	case RatingL, Rating10, Rating12, Rating14, Rating16, Rating18:
		return true
	}
	return false
}
