// Package clock provides NTP-synchronized civil time under a selectable
// timezone. Sync failures are never fatal: the source keeps serving the
// last known offset until the next periodic resync.
package clock

import (
	"fmt"
	"log"
	"time"
	_ "time/tzdata" // the target image has no tz database of its own

	"github.com/beevik/ntp"
)

// DefaultServers are tried in order on each resync.
var DefaultServers = []string{"pool.ntp.org", "time.nist.gov", "time.google.com"}

const (
	// maxSyncAttempts bounds how long a resync may stall the loop.
	maxSyncAttempts = 6
	queryTimeout    = 2 * time.Second
)

// Snapshot holds one reading of civil time fields.
type Snapshot struct {
	Hour24  int
	Hour12  int
	Minute  int
	Second  int
	Day     int
	Month   int
	Year    int
	Weekday int // 0 = Sunday
	Zone    string
}

// MinuteOfDay returns minutes since local midnight.
func (s Snapshot) MinuteOfDay() int {
	return s.Hour24*60 + s.Minute
}

// Source produces civil time snapshots from the system clock corrected by
// an NTP-measured offset.
type Source struct {
	servers   []string
	zoneIndex int
	loc       *time.Location
	offset    time.Duration
	lastSync  time.Time
	synced    bool
	now       func() time.Time
	query     func(server string, timeout time.Duration) (time.Duration, error)
}

// NewSource creates a source in the given timezone table entry.
func NewSource(zoneIndex int) (*Source, error) {
	s := &Source{
		servers: DefaultServers,
		now:     time.Now,
		query:   ntpQuery,
	}
	if err := s.SelectZone(zoneIndex); err != nil {
		return nil, err
	}
	return s, nil
}

func ntpQuery(server string, timeout time.Duration) (time.Duration, error) {
	resp, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		return 0, err
	}
	if err := resp.Validate(); err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

// SelectZone switches to the timezone at the given table index.
// Out-of-range indexes are rejected; the current zone is kept.
func (s *Source) SelectZone(index int) error {
	if !ValidZoneIndex(index) {
		return fmt.Errorf("timezone index %d out of range [0,%d)", index, len(Zones))
	}
	loc, err := time.LoadLocation(Zones[index].TZ)
	if err != nil {
		return fmt.Errorf("load zone %q: %w", Zones[index].TZ, err)
	}
	s.zoneIndex = index
	s.loc = loc
	return nil
}

// Resync queries the NTP server pool with a bounded number of attempts and
// stores the measured clock offset. On failure the previous offset stays in
// effect.
func (s *Source) Resync() error {
	var lastErr error
	for attempt := 0; attempt < maxSyncAttempts; attempt++ {
		server := s.servers[attempt%len(s.servers)]
		offset, err := s.query(server, queryTimeout)
		if err != nil {
			lastErr = err
			log.Printf("ntp: %s: %v", server, err)
			continue
		}
		s.offset = offset
		s.lastSync = s.now()
		s.synced = true
		return nil
	}
	return fmt.Errorf("ntp sync failed after %d attempts: %w", maxSyncAttempts, lastErr)
}

// Now returns the current civil time in the selected zone.
func (s *Source) Now() Snapshot {
	t := s.now().Add(s.offset).In(s.loc)
	h24 := t.Hour()
	h12 := h24 % 12
	if h12 == 0 {
		h12 = 12
	}
	return Snapshot{
		Hour24:  h24,
		Hour12:  h12,
		Minute:  t.Minute(),
		Second:  t.Second(),
		Day:     t.Day(),
		Month:   int(t.Month()),
		Year:    t.Year(),
		Weekday: int(t.Weekday()),
		Zone:    Zones[s.zoneIndex].Name,
	}
}

// ZoneIndex returns the index of the active timezone table entry.
func (s *Source) ZoneIndex() int { return s.zoneIndex }

// ZoneName returns the display name of the active timezone.
func (s *Source) ZoneName() string { return Zones[s.zoneIndex].Name }

// Synced reports whether at least one NTP sync has succeeded.
func (s *Source) Synced() bool { return s.synced }

// LastSync returns the time of the last successful sync.
func (s *Source) LastSync() time.Time { return s.lastSync }
