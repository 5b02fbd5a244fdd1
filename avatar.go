package signup

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const gravatarBase = "https://www.gravatar.com/avatar/"

// AvatarResolver derives a profile-image URL from an email address. It is
// pure: the same email always resolves to the same URL, and there is
// always a result because the default-image policy covers addresses with
// no gravatar behind them.
type AvatarResolver struct {
	size     int
	rating   string
	fallback string
}

func NewAvatarResolver(size int, rating, fallback string) *AvatarResolver {
	if size <= 0 {
		size = 200
	}
	if rating == "" {
		rating = "pg"
	}
	if fallback == "" {
		fallback = "mm"
	}
	return &AvatarResolver{size: size, rating: rating, fallback: fallback}
}

func (r *AvatarResolver) Resolve(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))

	q := url.Values{}
	q.Set("s", strconv.Itoa(r.size))
	q.Set("r", r.rating)
	q.Set("d", r.fallback)

	return fmt.Sprintf("%s%x?%s", gravatarBase, sum, q.Encode())
}
