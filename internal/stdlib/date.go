package stdlib

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

// DateNamespace builds the Date: bindings (spec §4.6). Every timestamp
// is a plain epoch-millisecond number, mirroring the teacher's
// TDateTime-as-float convention (internal/interp/builtins_datetime.go)
// but using Unix-epoch millis instead of a Delphi epoch, since AiScript
// dates are JS-style.
func DateNamespace() map[string]runtime.Value {
	component := func(name string, f func(t time.Time) int) runtime.Value {
		return runtime.NewNativeSync("Date:"+name, func(args []runtime.Value) (runtime.Value, error) {
			t, err := tsArg(args, 0)
			if err != nil {
				return nil, err
			}
			return runtime.Num(float64(f(t))), nil
		})
	}

	return map[string]runtime.Value{
		"now": runtime.NewNativeSync("Date:now", func(args []runtime.Value) (runtime.Value, error) {
			return runtime.Num(float64(time.Now().UnixMilli())), nil
		}),
		"year":        component("year", func(t time.Time) int { return t.Year() }),
		"month":       component("month", func(t time.Time) int { return int(t.Month()) }),
		"day":         component("day", func(t time.Time) int { return t.Day() }),
		"hour":        component("hour", func(t time.Time) int { return t.Hour() }),
		"minute":      component("minute", func(t time.Time) int { return t.Minute() }),
		"second":      component("second", func(t time.Time) int { return t.Second() }),
		"millisecond": component("millisecond", func(t time.Time) int { return t.Nanosecond() / 1e6 }),

		"parse": runtime.NewNativeSync("Date:parse", func(args []runtime.Value) (runtime.Value, error) {
			s, err := expectStr(arg(args, 0))
			if err != nil {
				return nil, err
			}
			ms, ok := parseDate(s)
			if !ok {
				return runtime.Num(math.NaN()), nil
			}
			return runtime.Num(float64(ms)), nil
		}),

		"to_iso_str": runtime.NewNativeSync("Date:to_iso_str", func(args []runtime.Value) (runtime.Value, error) {
			t, err := tsArg(args, 0)
			if err != nil {
				return nil, err
			}
			offsetMin := 0
			if len(args) > 1 && args[1].Type() != "null" {
				n, err := expectInt(args[1], "to_iso_str")
				if err != nil {
					return nil, err
				}
				offsetMin = n
			}
			return runtime.Str(toISOStr(t, offsetMin)), nil
		}),
	}
}

func tsArg(args []runtime.Value, i int) (time.Time, error) {
	ms := float64(time.Now().UnixMilli())
	if len(args) > i && args[i].Type() != "null" {
		n, err := expectNum(args[i])
		if err != nil {
			return time.Time{}, err
		}
		ms = n
	}
	sec := int64(ms) / 1000
	nsec := (int64(ms) % 1000) * int64(time.Millisecond)
	return time.Unix(sec, nsec).UTC(), nil
}

func toISOStr(t time.Time, offsetMin int) string {
	t = t.In(time.FixedZone("", offsetMin*60))
	base := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%03d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1e6)
	if offsetMin == 0 {
		return base + "Z"
	}
	sign := "+"
	abs := offsetMin
	if abs < 0 {
		sign = "-"
		abs = -abs
	}
	return fmt.Sprintf("%s%s%02d:%02d", base, sign, abs/60, abs%60)
}

// parseDate accepts RFC 3339, RFC 1123/822, and otherwise falls back to
// a byte-scanning heuristic that reads the digit-runs it finds in order as
// year, month, day, then (when at least six runs are present) hour,
// minute, second, and a seventh run as milliseconds; fewer than three runs
// fail. Whatever punctuation separates the runs is ignored ('-', '/', ':', ' ',
// 'T'). This mirrors loosely-punctuated date strings that neither RFC
// parser accepts.
func parseDate(s string) (int64, bool) {
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, time.RFC1123, time.RFC1123Z, time.RFC822, time.RFC822Z} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), true
		}
	}
	return parseDateHeuristic(s)
}

func parseDateHeuristic(s string) (int64, bool) {
	var nums []int
	i := 0
	for i < len(s) {
		if s[i] >= '0' && s[i] <= '9' {
			j := i
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			n, _ := strconv.Atoi(s[i:j])
			nums = append(nums, n)
			i = j
		} else {
			i++
		}
	}
	if len(nums) < 3 {
		return 0, false
	}
	year, month, day := nums[0], nums[1], nums[2]
	hour, minute, second, ms := 0, 0, 0, 0
	if len(nums) >= 6 {
		hour, minute, second = nums[3], nums[4], nums[5]
	}
	if len(nums) >= 7 {
		ms = nums[6]
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, false
	}
	t := time.Date(year, time.Month(month), day, hour, minute, second, ms*1e6, time.UTC)
	return t.UnixMilli(), true
}

