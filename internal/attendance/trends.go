package attendance

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"

	"github.com/google/uuid"
)

// Trend kinds.
const (
	TrendEmotion     = "emotion"
	TrendPunctuality = "punctuality"
	TrendPresence    = "presence"
	TrendLeave       = "leave"
)

// Bucket intervals.
const (
	IntervalDaily   = "daily"
	IntervalMonthly = "monthly"
	IntervalYearly  = "yearly"
)

// Leave categories are estimated as fixed shares of the recorded total,
// with the residue attributed to uncategorized leave.
const (
	leaveSickShare     = 0.30
	leaveVacationShare = 0.45
	leaveCasualShare   = 0.20
)

func (s *service) Trends(ctx context.Context, kind string, start, end time.Time, interval string) (TrendsResponse, error) {
	switch interval {
	case IntervalDaily, IntervalMonthly, IntervalYearly:
	case "":
		interval = IntervalDaily
	default:
		return TrendsResponse{}, attendanceerrors.ErrInvalidTrendKind
	}
	if end.Before(start) {
		return TrendsResponse{}, attendanceerrors.ErrInvalidDate
	}

	switch kind {
	case TrendEmotion:
		return s.emotionTrend(ctx, start, end, interval)
	case TrendPunctuality:
		return s.punctualityTrend(ctx, start, end, interval)
	case TrendPresence:
		return s.presenceTrend(ctx, start, end, interval)
	case TrendLeave:
		return s.leaveDistribution(ctx)
	default:
		return TrendsResponse{}, attendanceerrors.ErrInvalidTrendKind
	}
}

func bucketKey(date time.Time, interval string) string {
	switch interval {
	case IntervalMonthly:
		return date.Format("2006-01")
	case IntervalYearly:
		return date.Format("2006")
	default:
		return date.Format("2006-01-02")
	}
}

// bucketKeys enumerates every bucket touching [start, end] in order, so a
// period without records still appears as a zero bucket.
func bucketKeys(start, end time.Time, interval string) []string {
	var keys []string
	switch interval {
	case IntervalMonthly:
		cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
		last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
		for !cur.After(last) {
			keys = append(keys, cur.Format("2006-01"))
			cur = cur.AddDate(0, 1, 0)
		}
	case IntervalYearly:
		for y := start.Year(); y <= end.Year(); y++ {
			keys = append(keys, time.Date(y, 1, 1, 0, 0, 0, 0, start.Location()).Format("2006"))
		}
	default:
		cur := DateOnly(start)
		last := DateOnly(end)
		for !cur.After(last) {
			keys = append(keys, cur.Format("2006-01-02"))
			cur = cur.AddDate(0, 0, 1)
		}
	}
	return keys
}

// emotionTrend counts IN records into fixed happy/sad/neutral buckets,
// matched case-insensitively. Any other recorded state still counts toward
// the bucket's total.
func (s *service) emotionTrend(ctx context.Context, start, end time.Time, interval string) (TrendsResponse, error) {
	ins, err := s.repo.FindInRange(ctx, start, end, TypeIn, nil)
	if err != nil {
		return TrendsResponse{}, err
	}

	type tally struct{ happy, sad, neutral, total int }
	counts := make(map[string]*tally)
	for _, rec := range ins {
		if rec.EmotionalState == nil || *rec.EmotionalState == "" {
			continue
		}
		key := bucketKey(rec.Date, interval)
		if counts[key] == nil {
			counts[key] = &tally{}
		}
		counts[key].total++
		switch strings.ToLower(*rec.EmotionalState) {
		case "happy":
			counts[key].happy++
		case "sad":
			counts[key].sad++
		case "neutral":
			counts[key].neutral++
		}
	}

	labels := make([]string, 0, len(counts))
	for key := range counts {
		labels = append(labels, key)
	}
	sort.Strings(labels)

	happy := make([]int, len(labels))
	sad := make([]int, len(labels))
	neutral := make([]int, len(labels))
	total := make([]int, len(labels))
	for i, key := range labels {
		happy[i] = counts[key].happy
		sad[i] = counts[key].sad
		neutral[i] = counts[key].neutral
		total[i] = counts[key].total
	}

	return TrendsResponse{
		Labels: labels,
		Series: map[string][]int{
			"happy":   happy,
			"sad":     sad,
			"neutral": neutral,
			"total":   total,
		},
	}, nil
}

func (s *service) punctualityTrend(ctx context.Context, start, end time.Time, interval string) (TrendsResponse, error) {
	ins, err := s.repo.FindInRange(ctx, start, end, TypeIn, nil)
	if err != nil {
		return TrendsResponse{}, err
	}

	type split struct{ onTime, late int }
	counts := make(map[string]*split)
	for _, rec := range ins {
		key := bucketKey(rec.Date, interval)
		if counts[key] == nil {
			counts[key] = &split{}
		}
		if ClockOf(rec.Time) > InTimeEnd {
			counts[key].late++
		} else {
			counts[key].onTime++
		}
	}

	labels := make([]string, 0, len(counts))
	for key := range counts {
		labels = append(labels, key)
	}
	sort.Strings(labels)

	onTime := make([]int, len(labels))
	late := make([]int, len(labels))
	for i, key := range labels {
		onTime[i] = counts[key].onTime
		late[i] = counts[key].late
	}

	return TrendsResponse{
		Labels: labels,
		Series: map[string][]int{"on_time": onTime, "late": late},
	}, nil
}

// presenceTrend reports, per bucket, how many distinct employees checked in
// and how many did not. The two series always sum to the headcount.
func (s *service) presenceTrend(ctx context.Context, start, end time.Time, interval string) (TrendsResponse, error) {
	total, err := s.repo.CountEmployees(ctx)
	if err != nil {
		return TrendsResponse{}, err
	}
	ins, err := s.repo.FindInRange(ctx, start, end, TypeIn, nil)
	if err != nil {
		return TrendsResponse{}, err
	}

	seen := make(map[string]map[uuid.UUID]struct{})
	for _, rec := range ins {
		key := bucketKey(rec.Date, interval)
		if seen[key] == nil {
			seen[key] = make(map[uuid.UUID]struct{})
		}
		seen[key][rec.EmployeeID] = struct{}{}
	}

	labels := bucketKeys(start, end, interval)
	present := make([]int, len(labels))
	absent := make([]int, len(labels))
	for i, key := range labels {
		present[i] = len(seen[key])
		absent[i] = int(total) - present[i]
		if absent[i] < 0 {
			absent[i] = 0
		}
	}

	return TrendsResponse{
		Labels: labels,
		Series: map[string][]int{"present": present, "absent": absent},
	}, nil
}

// leaveDistribution splits the all-time leave total into estimated
// categories. Rounded shares never exceed the total because the remainder
// category absorbs the residue, clamped at zero.
func (s *service) leaveDistribution(ctx context.Context) (TrendsResponse, error) {
	total, err := s.leaves.SumAll(ctx)
	if err != nil {
		return TrendsResponse{}, err
	}

	sick := int(math.Round(float64(total) * leaveSickShare))
	vacation := int(math.Round(float64(total) * leaveVacationShare))
	casual := int(math.Round(float64(total) * leaveCasualShare))
	other := int(total) - sick - vacation - casual
	if other < 0 {
		other = 0
	}

	return TrendsResponse{
		Labels: []string{"Sick Leave", "Vacation Leave", "Casual Leave", "Other"},
		Series: map[string][]int{"leaves": {sick, vacation, casual, other}},
	}, nil
}
