package models

// Summary holds attendance totals. Total always equals the sum of ByStatus:
// records with a status outside the known set are left out entirely.
type Summary struct {
	Total       int
	ByStatus    map[AttendanceStatus]int
	TotalGuests int
}

func NewSummary() *Summary {
	s := &Summary{ByStatus: make(map[AttendanceStatus]int, len(Statuses))}
	for _, st := range Statuses {
		s.ByStatus[st] = 0
	}
	return s
}

// Add folds count records with the given status and guest total into s.
func (s *Summary) Add(status AttendanceStatus, count, guests int) {
	if !status.Valid() {
		return
	}
	s.ByStatus[status] += count
	s.Total += count
	s.TotalGuests += guests
}

// Summarize computes a summary by scanning records.
func Summarize(attendees []*Attendee) *Summary {
	s := NewSummary()
	for _, a := range attendees {
		s.Add(a.Status, 1, a.NumberOfGuests)
	}
	return s
}

// SummaryResponse is the wire shape of a Summary. totalRSVPs counts only
// records whose status is confirmed, pending or cancelled, so it can be lower
// than the number of stored records.
type SummaryResponse struct {
	TotalRSVPs     int `json:"totalRSVPs"`
	ConfirmedRSVPs int `json:"confirmedRSVPs"`
	PendingRSVPs   int `json:"pendingRSVPs"`
	CancelledRSVPs int `json:"cancelledRSVPs"`
	TotalGuests    int `json:"totalGuests"`
}

func (s *Summary) Response() SummaryResponse {
	return SummaryResponse{
		TotalRSVPs:     s.Total,
		ConfirmedRSVPs: s.ByStatus[StatusConfirmed],
		PendingRSVPs:   s.ByStatus[StatusPending],
		CancelledRSVPs: s.ByStatus[StatusCancelled],
		TotalGuests:    s.TotalGuests,
	}
}
