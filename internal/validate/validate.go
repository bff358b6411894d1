package validate

import (
	"math"
	"path/filepath"
	"regexp"
	"strings"

	"tradenook/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePhone = regexp.MustCompile(`^[0-9+() .-]{7,20}$`)
	reUser  = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,30}$`)
)

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Username allows letters, digits and ._- between 3 and 30 characters.
func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUser.MatchString(s)
}

// Password only checks presence and a sane upper bound.
func Password(s string) bool {
	return s != "" && len(s) <= 256
}

// Q trims a search query and caps its length. Empty is valid (no filter).
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 100 {
		return "", false
	}
	return s, true
}

// ID validates a simple resource identifier (product/user ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Condition(s string) (domain.Condition, bool) {
	c := domain.Condition(strings.TrimSpace(s))
	return c, c.Valid()
}

func Price(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v < 1e9
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// Text requires a non-blank value no longer than max bytes.
func Text(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= max
}

// ImageName accepts png, jpg, jpeg and gif file names.
func ImageName(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// Listing checks the presence and shape of every listing field and returns
// the cleaned input together with the name of the first bad field.
func Listing(in domain.ProductInput) (domain.ProductInput, string) {
	var ok bool
	if in.Title, ok = Text(in.Title, 120); !ok {
		return in, "title"
	}
	if in.Description, ok = Text(in.Description, 4000); !ok {
		return in, "description"
	}
	if !Price(in.Price) {
		return in, "price"
	}
	if in.Category, ok = Text(in.Category, 64); !ok {
		return in, "category"
	}
	if in.Condition, ok = Condition(string(in.Condition)); !ok {
		return in, "condition"
	}
	if in.Location, ok = Text(in.Location, 120); !ok {
		return in, "location"
	}
	if in.ContactPhone, ok = Phone(in.ContactPhone); !ok {
		return in, "contactPhone"
	}
	if in.ImageURL, ok = Text(in.ImageURL, 2048); !ok {
		return in, "imageUrl"
	}
	return in, ""
}
