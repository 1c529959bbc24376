package options

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/today/pkg/model"
)

// RecurrenceOptions collects the flags describing a recurrence pattern.
type RecurrenceOptions struct {
	Every    string
	Interval int
	On       string
	Until    string
	Count    int
}

func (o *RecurrenceOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Every, "every", "", "Repeat frequency: daily, weekly, or monthly.")
	cmd.Flags().IntVar(&o.Interval, "interval", 1, "Repeat every N units.")
	cmd.Flags().StringVar(&o.On, "on", "", "Weekdays for weekly repeats, comma separated 0-6 (0 = Sunday).")
	cmd.Flags().StringVar(&o.Until, "until", "", "Last date the repeat may occur on (YYYY-MM-DD).")
	cmd.Flags().IntVar(&o.Count, "count", 0, "Stop after this many occurrences.")
}

// Pattern builds the recurrence pattern, or nil when --every was not
// given.
func (o *RecurrenceOptions) Pattern() (*model.RecurrencePattern, error) {
	if o.Every == "" {
		return nil, nil
	}
	freq, err := model.ParseFrequency(o.Every)
	if err != nil {
		return nil, err
	}
	p := &model.RecurrencePattern{
		Frequency: freq,
		Interval:  o.Interval,
		EndDate:   o.Until,
		EndAfter:  o.Count,
	}
	if o.On != "" {
		for _, part := range strings.Split(o.On, ",") {
			d, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || d < 0 || d > 6 {
				return nil, fmt.Errorf("invalid weekday %q", part)
			}
			p.DaysOfWeek = append(p.DaysOfWeek, d)
		}
	}
	return p, nil
}
