package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/quiz-content-api/internal/models"
)

// ContestStore reads the flat-file contest list and partitions it into live
// and expired at call time
type ContestStore struct {
	path string
	log  zerolog.Logger
}

// NewContestStore creates a contest store backed by the given file path
func NewContestStore(path string, log zerolog.Logger) *ContestStore {
	return &ContestStore{
		path: path,
		log:  log.With().Str("store", "contests").Logger(),
	}
}

// List partitions all contests by comparing each end timestamp to now: live
// when the contest ends strictly after now, expired otherwise. Live contests
// are sorted by start date ascending, expired by end date descending (most
// recently ended first). Contests whose timestamps fail to parse are skipped,
// not escalated.
func (s *ContestStore) List(now time.Time) (live, expired []*models.Contest, err error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []*models.Contest{}, []*models.Contest{}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var contests []*models.Contest
	if err := json.Unmarshal(data, &contests); err != nil {
		return nil, nil, fmt.Errorf("contest store %s: %w", s.path, err)
	}

	live = make([]*models.Contest, 0)
	expired = make([]*models.Contest, 0)

	for _, c := range contests {
		// Timestamps are naive wall-clock values; parse them in the server's
		// zone so the comparison against now is a wall-clock comparison.
		if _, err := time.ParseInLocation(models.ContestTimeLayout, c.StartDate, time.Local); err != nil {
			s.log.Warn().Str("contest_id", c.ID).Str("start_date", c.StartDate).Msg("Skipping contest with bad start date")
			continue
		}
		end, err := time.ParseInLocation(models.ContestTimeLayout, c.EndDate, time.Local)
		if err != nil {
			s.log.Warn().Str("contest_id", c.ID).Str("end_date", c.EndDate).Msg("Skipping contest with bad end date")
			continue
		}

		if end.After(now) {
			live = append(live, c)
		} else {
			expired = append(expired, c)
		}
	}

	// The fixed timestamp layout sorts correctly as a string.
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].StartDate < live[j].StartDate
	})
	sort.SliceStable(expired, func(i, j int) bool {
		return expired[i].EndDate > expired[j].EndDate
	})

	return live, expired, nil
}
