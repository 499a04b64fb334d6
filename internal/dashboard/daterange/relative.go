package daterange

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/smartdata/ssm-dashboard/internal/common/ssmerrors"
)

var (
	relativePattern = regexp.MustCompile(`^now(-\d+[mhdwM])+$`)
	segmentPattern  = regexp.MustCompile(`-(\d+)([mhdwM])`)
)

// ParseTag validates s against the set of supported tags.
func ParseTag(s string) (Tag, error) {
	tag := Tag(s)
	if !slices.Contains(Tags, tag) {
		return noTag, errors.WithStack(&ssmerrors.ErrInvalidArgument{
			Name:    "dateRange",
			Value:   s,
			Message: "expected one of " + joinTags(),
		})
	}
	return tag, nil
}

// RangeFromNow resolves a relative expression such as "now-1h" or "now-1d-12h" into a static
// range ending at now. Units are m (minutes), h (hours), d (days), w (weeks) and M (calendar months).
func RangeFromNow(expr Tag, now time.Time) (DateRange, error) {
	if !relativePattern.MatchString(string(expr)) {
		return DateRange{}, errors.WithStack(&ssmerrors.ErrInvalidArgument{
			Name:    "dateRange",
			Value:   string(expr),
			Message: "expected now-{n}{m|h|d|w|M}",
		})
	}
	from := now
	for _, segment := range segmentPattern.FindAllStringSubmatch(string(expr), -1) {
		n, err := strconv.Atoi(segment[1])
		if err != nil {
			return DateRange{}, errors.WithStack(err)
		}
		switch segment[2] {
		case "m":
			from = from.Add(-time.Duration(n) * time.Minute)
		case "h":
			from = from.Add(-time.Duration(n) * time.Hour)
		case "d":
			from = from.AddDate(0, 0, -n)
		case "w":
			from = from.AddDate(0, 0, -7*n)
		case "M":
			from = from.AddDate(0, -n, 0)
		}
	}
	return Static(from, now), nil
}

// ToStatic resolves a dynamic range against now; static ranges are returned unchanged.
// An unresolvable tag is logged and yields an empty window at now. Tags from ParseTag, ParseText
// and JSON are always resolvable; only a Dynamic built from an unchecked Tag can hit this.
func ToStatic(r DateRange, now time.Time) DateRange {
	if !r.IsDynamic() {
		return r
	}
	resolved, err := RangeFromNow(r.tag, now)
	if err != nil {
		log.WithError(err).Warnf("could not resolve date range %q", r.tag)
		return Static(now, now)
	}
	return resolved
}

// ParseText reads a range from user input: either a tag or "from..to", where each bound is an
// RFC3339 timestamp or a number of seconds since the epoch.
func ParseText(s string) (DateRange, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, rangeSeparator) {
		tag, err := ParseTag(s)
		if err != nil {
			return DateRange{}, err
		}
		return Dynamic[time.Time](tag), nil
	}

	parts := strings.SplitN(s, rangeSeparator, 2)
	return ParseStatic(parts[0], parts[1])
}

// ParseStatic reads the bounds of a static range. Each bound is an RFC3339 timestamp or a number
// of seconds since the epoch, and from must not be after to.
func ParseStatic(from, to string) (DateRange, error) {
	fromTime, err := parseInstant(from)
	if err != nil {
		return DateRange{}, err
	}
	toTime, err := parseInstant(to)
	if err != nil {
		return DateRange{}, err
	}
	if toTime.Before(fromTime) {
		return DateRange{}, errors.WithStack(&ssmerrors.ErrInvalidArgument{
			Name:    "dateRange",
			Value:   strings.TrimSpace(from) + rangeSeparator + strings.TrimSpace(to),
			Message: "range ends before it starts",
		})
	}
	return Static(fromTime, toTime), nil
}

func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if seconds, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Seconds(seconds).Time(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.WithStack(&ssmerrors.ErrInvalidArgument{
			Name:    "dateRange",
			Value:   s,
			Message: "expected RFC3339 timestamp or epoch seconds",
		})
	}
	return t, nil
}

func joinTags() string {
	names := make([]string, len(Tags))
	for i, tag := range Tags {
		names[i] = string(tag)
	}
	return strings.Join(names, ", ")
}
